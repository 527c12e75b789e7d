package stepgame

import (
	"sort"
	"testing"

	"github.com/coregx/rtverify/alphabet"
	"github.com/coregx/rtverify/automaton"
	"github.com/coregx/rtverify/stepcache"
)

// buildIdentityT builds a 1-state transducer where every symbol maps to
// itself: q0 --(s,s)--> q0 for every s in Sigma.
func buildIdentityT(t *testing.T, codec *alphabet.Codec) *automaton.Automaton {
	t.Helper()
	a := automaton.New(codec)
	a.AddInitial(0)
	a.AddFinal(0)
	for _, s := range codec.Symbols() {
		a.AddTransition(0, codec.Pack(s, s), 0)
	}
	return a
}

func drain(t *testing.T, g Generator) []automaton.Column {
	t.Helper()
	var out []automaton.Column
	for {
		col, ok := g.Next()
		if !ok {
			break
		}
		out = append(out, col)
	}
	g.Close()
	return out
}

func keys(cols []automaton.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Key()
	}
	sort.Strings(out)
	return out
}

func TestIdentityTransducerWinsImmediately(t *testing.T) {
	codec, _ := alphabet.NewCodec([]string{"N", "T", "C"})
	tr := buildIdentityT(t, codec)

	for _, strategy := range []Strategy{BufferedBFS, SimpleDFS, CachedDFS} {
		cache := stepcache.New()
		g0 := GameState{L: 0, I: codec.FullSigma().Refine(1), Dp: 0} // remove symbol 1 ("T")
		g := New(strategy, tr, cache, false, automaton.Column{0}, 1, g0)
		got := drain(t, g)
		if len(got) == 0 {
			t.Fatalf("%v: expected at least one winning column, got none", strategy)
		}
		found := false
		for _, c := range got {
			if c.Equal(automaton.Column{0}) {
				found = true
			}
		}
		if !found {
			t.Errorf("%v: winning set %v should contain column [0]", strategy, got)
		}
	}
}

func TestAllStrategiesAgreeOnWinnerSet(t *testing.T) {
	codec, _ := alphabet.NewCodec([]string{"a", "b"})
	tr := automaton.New(codec)
	tr.AddInitial(0)
	tr.AddFinal(1)
	// q0 --(a,a)--> q0 ; q0 --(a,b)--> q1 ; q1 --(b,b)--> q1
	tr.AddTransition(0, codec.Pack(0, 0), 0)
	tr.AddTransition(0, codec.Pack(0, 1), 1)
	tr.AddTransition(1, codec.Pack(1, 1), 1)

	var results [][]string
	for _, strategy := range []Strategy{BufferedBFS, SimpleDFS, CachedDFS} {
		cache := stepcache.New()
		g0 := GameState{L: 0, I: codec.FullSigma().Refine(0), Dp: 0}
		g := New(strategy, tr, cache, false, automaton.Column{0}, 0, g0)
		results = append(results, keys(drain(t, g)))
	}
	for i := 1; i < len(results); i++ {
		if len(results[i]) != len(results[0]) {
			t.Fatalf("strategy %d produced %d winners, strategy 0 produced %d", i, len(results[i]), len(results[0]))
		}
		for j := range results[i] {
			if results[i][j] != results[0][j] {
				t.Errorf("winner set mismatch between strategies: %v vs %v", results[0], results[i])
			}
		}
	}
}

func TestCacheIsPopulatedAndReused(t *testing.T) {
	codec, _ := alphabet.NewCodec([]string{"a", "b"})
	tr := buildIdentityT(t, codec)
	cache := stepcache.New()
	g0 := GameState{L: 0, I: codec.FullSigma().Refine(0), Dp: 0}

	g1 := New(CachedDFS, tr, cache, false, automaton.Column{0}, 0, g0)
	drain(t, g1)
	if cache.Len() == 0 {
		t.Fatal("CachedDFS should populate the step cache")
	}

	hitsBefore := cache.Hits()
	g2 := New(CachedDFS, tr, cache, false, automaton.Column{0}, 0, g0)
	drain(t, g2)
	if cache.Hits() <= hitsBefore {
		t.Error("running the identical step game again should register a cache hit")
	}
}

func TestSimpleDFSNeverPopulatesCache(t *testing.T) {
	codec, _ := alphabet.NewCodec([]string{"a", "b"})
	tr := buildIdentityT(t, codec)
	cache := stepcache.New()
	g0 := GameState{L: 0, I: codec.FullSigma().Refine(0), Dp: 0}

	g := New(SimpleDFS, tr, cache, false, automaton.Column{0}, 0, g0)
	drain(t, g)
	if cache.Len() != 0 {
		t.Error("SimpleDFS must never consult or populate the step cache")
	}
}

func TestEarlyCloseDoesNotDeadlock(t *testing.T) {
	codec, _ := alphabet.NewCodec([]string{"a", "b", "c"})
	tr := automaton.New(codec)
	tr.AddInitial(0)
	tr.AddFinal(0)
	tr.AddFinal(1)
	tr.AddTransition(0, codec.Pack(0, 0), 0)
	tr.AddTransition(0, codec.Pack(1, 1), 1)
	tr.AddTransition(1, codec.Pack(2, 2), 0)

	cache := stepcache.New()
	g0 := GameState{L: 0, I: codec.FullSigma().Refine(0), Dp: 0}
	g := New(BufferedBFS, tr, cache, false, automaton.Column{0}, 0, g0)

	// Pull exactly one value, then close without draining.
	_, _ = g.Next()
	g.Close()
}

func TestIgnoreAmbiguousNeverProducesSpuriousWitness(t *testing.T) {
	codec, _ := alphabet.NewCodec([]string{"a", "b"})
	tr := automaton.New(codec)
	tr.AddInitial(0)
	tr.AddFinal(1)
	tr.AddTransition(0, codec.Pack(0, 0), 0)
	tr.AddTransition(0, codec.Pack(0, 1), 1)
	tr.AddTransition(0, codec.Pack(1, 1), 1)
	tr.AddTransition(1, codec.Pack(1, 1), 1)

	g0 := GameState{L: 0, I: codec.FullSigma().Refine(0), Dp: 0}

	full := keys(drain(t, New(BufferedBFS, tr, stepcache.New(), false, automaton.Column{0}, 0, g0)))
	reduced := keys(drain(t, New(BufferedBFS, tr, stepcache.New(), true, automaton.Column{0}, 0, g0)))

	fullSet := make(map[string]bool, len(full))
	for _, k := range full {
		fullSet[k] = true
	}
	for _, k := range reduced {
		if !fullSet[k] {
			t.Errorf("ignore_ambiguous produced a winner %q absent from the complete (false) run", k)
		}
	}
}
