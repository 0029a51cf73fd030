// Package main provides the entry point for cachesim.
// cachesim is a trace-driven single-level cache simulator.
//
// For the full CLI, use: go run ./cmd/cachesim
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	printUsage(os.Stdout)

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/cachesim' instead.")
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "cachesim - trace-driven cache simulator")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage: cachesim [options] <cache size> <dm|fa> <uc|sc>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --trace         Path to the memory trace (default mem_trace.txt, env CACHESIM_TRACE)")
	fmt.Fprintln(w, "  --config        Path to cache configuration JSON file")
	fmt.Fprintln(w, "  -v, --verbose   Print every access")
	fmt.Fprintln(w, "  --verify        Cross-check against the Akita directory model")
	fmt.Fprintln(w, "  --dump[=path]   Write every resolved access to a CSV file")
	fmt.Fprintln(w, "  --breakdown     Print misses, evictions and per-kind counters")
	fmt.Fprintln(w, "  --zero-is-data  Treat address 0 as an access, not the end of the trace")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'go run ./cmd/cachesim' for the full CLI.")
}
