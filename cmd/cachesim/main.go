// Package main provides the entry point for cachesim.
// cachesim replays a memory access trace against a single-level cache and
// reports how many accesses hit.
package main

func main() {
	Execute()
}
