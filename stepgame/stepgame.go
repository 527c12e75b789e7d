// Package stepgame implements the lazy successor generator: given a
// from-column c and a removed symbol v, it yields every to-column d that
// wins the step game over the inductive separator transducer, in one of
// three traversal orders.
package stepgame

import (
	"sync"

	"github.com/coregx/rtverify/alphabet"
	"github.com/coregx/rtverify/automaton"
	"github.com/coregx/rtverify/stepcache"
)

// GameState is the triple <l, I, d'>: l is a cursor into the from-column, I
// is the current separator bitmap, and d' counts how many times the
// expansion step appended a new state to the to-column (a step that reuses an
// already-present state leaves d' unchanged).
type GameState struct {
	L  int
	I  alphabet.Bitmap
	Dp int
}

// Equal reports whether two game states are identical in all three
// components.
func (g GameState) Equal(o GameState) bool {
	return g.L == o.L && g.I == o.I && g.Dp == o.Dp
}

// Strategy selects one of the three traversal orders.
type Strategy int

const (
	// BufferedBFS collects every candidate at the current expansion level
	// before recursing into them, consulting and populating the cache.
	BufferedBFS Strategy = iota
	// SimpleDFS recurses into each candidate immediately and never consults
	// the cache.
	SimpleDFS
	// CachedDFS recurses into each candidate immediately, consulting and
	// populating the cache exactly as BufferedBFS does.
	CachedDFS
)

// String returns a human-readable strategy name, used by the CLI driver.
func (s Strategy) String() string {
	switch s {
	case BufferedBFS:
		return "buffered-bfs"
	case SimpleDFS:
		return "simple-dfs"
	case CachedDFS:
		return "cached-dfs"
	default:
		return "unknown-strategy"
	}
}

// Generator is the pull interface: the search consumes one winning to-column
// at a time and may stop early (DFS early-exit on witness).
type Generator interface {
	// Next returns the next winning to-column, or ok=false once exhausted.
	Next() (automaton.Column, bool)
	// Close releases the generator's goroutine. Safe to call after
	// exhaustion; mandatory before abandoning a generator early.
	Close()
}

// New starts a step-game invocation StepGame(c, [], v, g0, []) and returns a
// lazy pull generator over its winning to-columns.
//
// The generator body runs on its own goroutine, blocked on a channel send
// between yields — the Go equivalent of the source's Python generator
// function. Because the consumer (oneshot.Search) always pulls synchronously
// (one Next() at a time, Close() before starting the next generator), at most
// one goroutine ever touches cache at once: the single-threaded, synchronous
// semantics of the original are preserved even though the implementation
// uses a goroutine to get suspend-at-yield-point behavior without deep
// recursion on the caller's own stack.
func New(strategy Strategy, t *automaton.Automaton, cache *stepcache.Cache, ignoreAmbiguous bool, c automaton.Column, v alphabet.Symbol, g0 GameState) Generator {
	g := &gen{
		out:  make(chan automaton.Column),
		stop: make(chan struct{}),
	}
	go g.run(strategy, t, cache, ignoreAmbiguous, c, v, g0)
	return g
}

type gen struct {
	out       chan automaton.Column
	stop      chan struct{}
	closeOnce sync.Once
}

func (g *gen) run(strategy Strategy, t *automaton.Automaton, cache *stepcache.Cache, ignoreAmbiguous bool, c automaton.Column, v alphabet.Symbol, g0 GameState) {
	defer close(g.out)
	visited := make([]automaton.Column, 0)
	play(playCtx{
		strategy:        strategy,
		t:               t,
		cache:           cache,
		ignoreAmbiguous: ignoreAmbiguous,
		out:             g.out,
		stop:            g.stop,
	}, c, nil, v, g0, &visited)
}

func (g *gen) Next() (automaton.Column, bool) {
	col, ok := <-g.out
	return col, ok
}

func (g *gen) Close() {
	g.closeOnce.Do(func() { close(g.stop) })
	for range g.out {
		// drain so the goroutine's send unblocks and it can exit
	}
}

// playCtx bundles per-invocation configuration threaded through every
// recursive call, standing in for the Python method's implicit `self`.
type playCtx struct {
	strategy        Strategy
	t               *automaton.Automaton
	cache           *stepcache.Cache
	ignoreAmbiguous bool
	out             chan<- automaton.Column
	stop            <-chan struct{}
}

// send delivers a winning column to the consumer, or reports false if the
// generator was closed early.
func send(out chan<- automaton.Column, stop <-chan struct{}, col automaton.Column) bool {
	select {
	case out <- col:
		return true
	case <-stop:
		return false
	}
}

type markKey struct {
	l int
	i alphabet.Bitmap
	d string
}

// play is the single recursive core shared by all three strategies,
// implementing the win condition, expansion step, early-return, and cache
// consult/populate. Returns false once the caller has closed the generator,
// so every recursion level can unwind promptly.
func play(ctx playCtx, c1 automaton.Column, d automaton.Column, v alphabet.Symbol, gs GameState, visited *[]automaton.Column) bool {
	if containsColumn(*visited, d) {
		return true
	}

	useCache := ctx.strategy != SimpleDFS
	var key stepcache.Key
	if useCache {
		key = stepcache.NewKey(c1, gs.L, gs.I, v, d)
		if hit, ok := ctx.cache.Get(key); ok {
			for _, h := range hit {
				if !send(ctx.out, ctx.stop, h) {
					return false
				}
			}
			return true
		}
	}

	if gs.L == len(c1) && gs.I.Absent(v) {
		*visited = append(*visited, d)
		if !send(ctx.out, ctx.stop, d) {
			return false
		}
	}

	hi := gs.L + 1
	if hi > len(c1) {
		hi = len(c1)
	}
	prefix := c1[:hi]
	priorPrefix := c1[:gs.L]

	type candidate struct {
		d2 automaton.Column
		gs GameState
	}
	var candidates []candidate

	var nextMarked map[markKey]bool
	if ctx.ignoreAmbiguous {
		nextMarked = make(map[markKey]bool)
	}

	for _, q := range prefix {
		for _, tr := range ctx.t.TransitionsOf(q) {
			x := ctx.t.Codec.X(tr.Label)
			y := ctx.t.Codec.Y(tr.Label)
			if !gs.I.Absent(y) {
				continue
			}
			p := tr.Target

			reused := d.Contains(p)
			d2 := d
			if !reused {
				d2 = d.Append(p)
				if containsColumn(*visited, d2) {
					continue
				}
			}

			lNext := gs.L
			if !containsState(priorPrefix, q) {
				lNext++
			}
			dpNext := gs.Dp
			if !reused {
				dpNext++
			}
			gs2 := GameState{L: lNext, I: gs.I.Refine(x), Dp: dpNext}
			if gs2.Equal(gs) {
				continue
			}

			if ctx.ignoreAmbiguous {
				mk := markKey{l: gs2.L, i: gs.I, d: d2.Key()}
				if nextMarked[mk] {
					continue
				}
				nextMarked[mk] = true
			}

			if ctx.strategy == BufferedBFS {
				candidates = append(candidates, candidate{d2: d2, gs: gs2})
				continue
			}
			if !play(ctx, c1, d2, v, gs2, visited) {
				return false
			}
		}
	}

	if ctx.strategy == BufferedBFS {
		for _, cd := range candidates {
			if !play(ctx, c1, cd.d2, v, cd.gs, visited) {
				return false
			}
		}
	}

	if useCache {
		ctx.cache.Put(key, *visited)
	}
	return true
}

func containsColumn(cols []automaton.Column, target automaton.Column) bool {
	for _, c := range cols {
		if c.Equal(target) {
			return true
		}
	}
	return false
}

func containsState(col automaton.Column, q automaton.State) bool {
	return col.Contains(q)
}
