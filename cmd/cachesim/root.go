package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/report"
	"github.com/sarchlab/cachesim/trace"
)

const defaultTracePath = "mem_trace.txt"

// options holds the flag values of one invocation.
type options struct {
	tracePath  string
	configPath string
	dumpPath   string
	verbose    bool
	verify     bool
	breakdown  bool
	zeroIsData bool
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "cachesim [cache size: 128-4096] [cache mapping: dm|fa] [cache organization: uc|sc]",
		Short: "Replay a memory access trace against a single-level cache.",
		Long: `cachesim replays the accesses of a trace file against a direct-mapped or ` +
			`fully-associative cache with 64 byte blocks, unified or split into ` +
			`instruction and data halves, and prints the hit rate.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := resolveConfig(opts, args)
			if err != nil {
				return err
			}

			return simulate(stdout, config, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.tracePath, "trace", tracePathDefault(),
		"Path to the memory trace (env CACHESIM_TRACE)")
	flags.StringVar(&opts.configPath, "config", "",
		"Path to a cache configuration JSON file, replaces the positional arguments")
	flags.StringVar(&opts.dumpPath, "dump", "",
		"Write every resolved access to a CSV file")
	flags.Lookup("dump").NoOptDefVal = "-"
	flags.BoolVarP(&opts.verbose, "verbose", "v", false,
		"Print every access before it is simulated")
	flags.BoolVar(&opts.verify, "verify", false,
		"Cross-check every access against the Akita directory model")
	flags.BoolVar(&opts.breakdown, "breakdown", false,
		"Print misses, evictions and per-kind counters after the statistics")
	flags.BoolVar(&opts.zeroIsData, "zero-is-data", false,
		"Treat a record with address 0 as an access instead of the end of the trace")

	return cmd
}

// Execute runs the root command and exits the process.
func Execute() {
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func tracePathDefault() string {
	if path := os.Getenv("CACHESIM_TRACE"); path != "" {
		return path
	}

	return defaultTracePath
}

func resolveConfig(opts *options, args []string) (cache.Config, error) {
	if opts.configPath != "" {
		if len(args) != 0 {
			return cache.Config{}, errors.New("--config cannot be combined with positional arguments")
		}

		return cache.LoadConfig(opts.configPath)
	}

	if len(args) != 3 {
		return cache.Config{}, fmt.Errorf("expected 3 arguments, got %d", len(args))
	}

	return parseArgs(args)
}

func parseArgs(args []string) (cache.Config, error) {
	size, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return cache.Config{}, fmt.Errorf("%w: bad cache size %q", cache.ErrInvalidConfig, args[0])
	}

	mapping, err := cache.ParseMapping(args[1])
	if err != nil {
		return cache.Config{}, err
	}

	org, err := cache.ParseOrganization(args[2])
	if err != nil {
		return cache.Config{}, err
	}

	return cache.Config{
		SizeBytes:    uint32(size),
		Mapping:      mapping,
		Organization: org,
	}, nil
}

func simulate(stdout io.Writer, config cache.Config, opts *options) error {
	engine, err := cache.NewEngine(config)
	if err != nil {
		return err
	}

	var readerOpts []trace.Option
	if opts.zeroIsData {
		readerOpts = append(readerOpts, trace.WithZeroAddressAsData())
	}

	reader, err := trace.Open(opts.tracePath, readerOpts...)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	if opts.verbose {
		engine.AcceptHook(report.NewDebugHook(stdout))
	}

	if opts.dumpPath != "" {
		path := opts.dumpPath
		if path == "-" {
			path = ""
		}

		dump := report.NewCSVAccessWriter(path)
		if err := dump.Init(); err != nil {
			return err
		}
		defer func() { _ = dump.Close() }()

		engine.AcceptHook(dump)
	}

	var checkers []cache.Checker
	if opts.verify {
		ref, err := cache.NewReferenceModel(config)
		if err != nil {
			return err
		}

		checkers = append(checkers, ref)
	}

	if err := cache.Run(engine, reader, checkers...); err != nil {
		return err
	}

	stats := engine.Stats()
	if err := report.WriteStatistics(stdout, stats); err != nil {
		return err
	}

	if opts.breakdown {
		return report.WriteBreakdown(stdout, stats)
	}

	return nil
}
