package main

import (
	"time"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
)

// options holds the parsed CLI surface, grounded on runner.ParseFlags's
// goflags.FlagSet/CreateGroup construction in alterx.
type options struct {
	Benchmark       string
	Property        string
	Generator       string
	Strategy        string
	IgnoreAmbiguous bool
	Timeout         time.Duration
	DotPath         string
	Matrix          bool
	Verbose         bool

	timeoutRaw string
}

func parseFlags() *options {
	opts := &options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("Oneshot safety verifier for Regular Transition Systems.")

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Benchmark, "benchmark", "b", "", "benchmark JSON file describing I, T, and the property automata"),
		flagSet.StringVarP(&opts.Property, "property", "p", "", "property name to check (key into the benchmark's properties map)"),
	)

	flagSet.CreateGroup("search", "Search",
		flagSet.StringVarP(&opts.Generator, "generator", "g", "buffered-bfs", "step-game generator: buffered-bfs, simple-dfs, cached-dfs"),
		flagSet.StringVarP(&opts.Strategy, "strategy", "s", "dfs", "joint-state exploration order: dfs, bfs, min-disprove"),
		flagSet.BoolVarP(&opts.IgnoreAmbiguous, "ignore-ambiguous", "ia", false, "skip ambiguous step-game branches (trades completeness for speed)"),
		flagSet.StringVarP(&opts.timeoutRaw, "timeout", "t", "20m", "wall-clock timeout for the search (Go duration syntax)"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.DotPath, "dot", "d", "", "write the I×B pairing transducer as Graphviz DOT to this path"),
		flagSet.BoolVarP(&opts.Matrix, "matrix", "m", false, "run every generator x strategy x ignore-ambiguous combination (18 runs)"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose logging"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s", err)
	}

	if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	if opts.Benchmark == "" {
		gologger.Fatal().Msg("rtverify: -benchmark is required")
	}
	if opts.Property == "" {
		gologger.Fatal().Msg("rtverify: -property is required")
	}

	timeout, err := time.ParseDuration(opts.timeoutRaw)
	if err != nil {
		gologger.Fatal().Msgf("rtverify: invalid -timeout %q: %v", opts.timeoutRaw, err)
	}
	opts.Timeout = timeout

	return opts
}
