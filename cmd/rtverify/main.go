// Command rtverify runs the Oneshot safety-verification procedure against a
// JSON benchmark, restoring Main.py's full matrix-driver behavior as an
// additive -matrix flag.
package main

import (
	"context"
	"os"
	"time"

	"github.com/coregx/rtverify/automaton"
	"github.com/coregx/rtverify/bench"
	"github.com/coregx/rtverify/dot"
	"github.com/coregx/rtverify/internal/runctl"
	"github.com/coregx/rtverify/oneshot"
	"github.com/coregx/rtverify/stepgame"
	"github.com/projectdiscovery/gologger"
)

func main() {
	opts := parseFlags()

	rts, err := bench.LoadRTS(opts.Benchmark)
	if err != nil {
		gologger.Fatal().Msgf("rtverify: %v", err)
	}

	ixb, err := rts.Property(opts.Property)
	if err != nil {
		gologger.Fatal().Msgf("rtverify: %v", err)
	}

	if opts.DotPath != "" {
		if err := writeDot(opts.DotPath, ixb); err != nil {
			gologger.Error().Msgf("rtverify: failed to write dot file: %v", err)
		} else {
			gologger.Info().Msgf("rtverify: wrote %s", opts.DotPath)
		}
	}

	if opts.Matrix {
		runMatrix(rts, ixb, opts)
		return
	}

	generator, err := oneshot.ParseStrategyName(opts.Generator)
	if err != nil {
		gologger.Fatal().Msgf("rtverify: %v", err)
	}
	order, err := oneshot.ParseOrderName(opts.Strategy)
	if err != nil {
		gologger.Fatal().Msgf("rtverify: %v", err)
	}

	result := runOne(rts, ixb, generator, order, opts.Strategy == "min-disprove", opts.IgnoreAmbiguous, opts.Timeout)
	report(opts.Generator, opts.Strategy, opts.IgnoreAmbiguous, result, 0)

	if result.Outcome == oneshot.Found {
		os.Exit(1)
	}
}

func writeDot(path string, ixb *automaton.Automaton) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return dot.Write(f, ixb, nil)
}

func runOne(rts *bench.RTS, ixb *automaton.Automaton, generator stepgame.Strategy, order oneshot.Order, restricted, ignoreAmbiguous bool, timeout time.Duration) oneshot.Result {
	search := oneshot.NewSearch(ixb, rts.T, generator, order, ignoreAmbiguous)
	if restricted {
		search = search.WithRestrictedAlphabet()
	}

	var result oneshot.Result
	signalCh, stop := runctl.NotifySignals()
	defer stop()

	err := runctl.Run(context.Background(), timeout, signalCh, func(ctx context.Context) error {
		result = search.Run(ctx)
		return nil
	})
	if err != nil {
		result.Outcome = oneshot.TimedOut
	}
	return result
}

func runMatrix(rts *bench.RTS, ixb *automaton.Automaton, opts *options) {
	generators := []string{"buffered-bfs", "simple-dfs", "cached-dfs"}
	strategies := []string{"dfs", "bfs", "min-disprove"}
	ignoreSettings := []bool{false, true}

	anyFound := false
	for _, g := range generators {
		generator, err := oneshot.ParseStrategyName(g)
		if err != nil {
			gologger.Fatal().Msgf("rtverify: %v", err)
		}
		for _, s := range strategies {
			order, err := oneshot.ParseOrderName(s)
			if err != nil {
				gologger.Fatal().Msgf("rtverify: %v", err)
			}
			for _, ia := range ignoreSettings {
				start := time.Now()
				result := runOne(rts, ixb, generator, order, s == "min-disprove", ia, opts.Timeout)
				elapsed := time.Since(start)
				report(g, s, ia, result, elapsed)
				if result.Outcome == oneshot.Found {
					anyFound = true
				}
			}
		}
	}
	if anyFound {
		os.Exit(1)
	}
}

func report(generator, strategy string, ignoreAmbiguous bool, result oneshot.Result, elapsed time.Duration) {
	gologger.Info().Msgf(
		"generator=%s strategy=%s ignore_ambiguous=%v outcome=%s states=%d transitions=%d cache_hits=%d elapsed=%s",
		generator, strategy, ignoreAmbiguous, result.Outcome,
		result.Counters.ExploredStates, result.Counters.ExploredTransitions, result.Counters.CacheHits, elapsed,
	)
	if result.Witness != nil {
		gologger.Info().Msgf("witness: joint_state=%d column=%v", result.Witness.JointState, result.Witness.Column)
	}
}
