// Package oneshot implements the on-the-fly safety search: a BFS or DFS
// exploration of I×B × ColumnAutomaton, driven by the lazily-materialized
// step game of package stepgame, terminating on an accepting joint state.
package oneshot

import (
	"context"
	"fmt"

	"github.com/coregx/rtverify/alphabet"
	"github.com/coregx/rtverify/automaton"
	"github.com/coregx/rtverify/stepcache"
	"github.com/coregx/rtverify/stepgame"
)

// Order selects the joint-state exploration order.
type Order int

const (
	DFS Order = iota
	BFS
)

func (o Order) String() string {
	switch o {
	case DFS:
		return "dfs"
	case BFS:
		return "bfs"
	default:
		return "unknown-order"
	}
}

// Outcome is a terminal (or transient) state of the search's state machine
//. Idle and Running are never observed by a
// caller of Run, which blocks until a terminal outcome.
type Outcome int

const (
	Idle Outcome = iota
	Running
	Found
	Exhausted
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	case TimedOut:
		return "timed_out"
	default:
		return "unknown-outcome"
	}
}

// Witness is a joint state (q_IxB, c) that is final in I×B and whose every
// column member is final in T — a proof that the property is violated.
type Witness struct {
	JointState automaton.State
	Column     automaton.Column
}

// Counters reports exploration statistics.
type Counters struct {
	ExploredStates      int
	ExploredTransitions int
	CacheHits           int
}

// Result is the outcome of one Run, carrying the terminal state, the witness
// (if any), and final counters.
type Result struct {
	Outcome  Outcome
	Witness  *Witness
	Counters Counters
}

// Search holds the immutable configuration of one Oneshot invocation: the
// I×B automaton, the transition transducer T, the generator strategy, the
// exploration order, and the ignore_ambiguous flag.
type Search struct {
	ixb             *automaton.Automaton
	t               *automaton.Automaton
	strategy        stepgame.Strategy
	order           Order
	ignoreAmbiguous bool
}

// NewSearch builds a Search over the pairing ixb and transducer t.
func NewSearch(ixb, t *automaton.Automaton, strategy stepgame.Strategy, order Order, ignoreAmbiguous bool) *Search {
	return &Search{ixb: ixb, t: t, strategy: strategy, order: order, ignoreAmbiguous: ignoreAmbiguous}
}

// WithRestrictedAlphabet returns a Search in restricted-alphabet mode
// (min_sigma_disprove): T is replaced by T.Restrict(IxB's used symbol
// sets) before the search begins. The witness obtained under this
// restriction is a valid disproof; absence of a witness does not imply the
// property holds.
func (s *Search) WithRestrictedAlphabet() *Search {
	return &Search{
		ixb:             s.ixb,
		t:               s.t.Restrict(s.ixb.OriginSymbols, s.ixb.TargetSymbols),
		strategy:        s.strategy,
		order:           s.order,
		ignoreAmbiguous: s.ignoreAmbiguous,
	}
}

// Run executes the search to a terminal outcome: Found, Exhausted, or
// TimedOut if ctx is cancelled before either is reached. An accepting joint
// initial state is reported as Found without exploring any transition.
func (s *Search) Run(ctx context.Context) Result {
	cache := stepcache.New()
	ib0 := s.ixb.Initial()[0]
	c0 := automaton.Column{s.t.Initial()[0]}

	visited := map[string]bool{visitKey(ib0, c0): true}
	counters := &Counters{}

	// The joint initial state is itself a witness when it is accepting.
	if s.isWitness(ib0, c0) {
		return Result{Outcome: Found, Witness: &Witness{JointState: ib0, Column: c0.Clone()}, Counters: *counters}
	}

	var witness *Witness
	var timedOut bool

	switch s.order {
	case DFS:
		witness, timedOut = s.dfs(ctx, ib0, c0, visited, cache, counters)
	case BFS:
		witness, timedOut = s.bfs(ctx, ib0, c0, visited, cache, counters)
	default:
		panic(fmt.Sprintf("oneshot: invalid Order %d", s.order))
	}

	counters.CacheHits = cache.Hits()

	outcome := Exhausted
	switch {
	case timedOut:
		outcome = TimedOut
	case witness != nil:
		outcome = Found
	}
	return Result{Outcome: outcome, Witness: witness, Counters: *counters}
}

// dfs recurses depth-first over joint states, returning the first witness
// found (or nil on exhaustion) and whether ctx was cancelled along the way.
func (s *Search) dfs(ctx context.Context, ib automaton.State, c automaton.Column, visited map[string]bool, cache *stepcache.Cache, counters *Counters) (*Witness, bool) {
	if ctx.Err() != nil {
		return nil, true
	}
	for _, tr := range s.ixb.TransitionsOf(ib) {
		gen := s.stepGameFor(tr.Label, cache, c)
		for {
			if ctx.Err() != nil {
				gen.Close()
				return nil, true
			}
			d, ok := gen.Next()
			if !ok {
				break
			}
			counters.ExploredTransitions++
			assertNoDuplicateState(d)

			key := visitKey(tr.Target, d)
			if visited[key] {
				continue
			}
			visited[key] = true
			counters.ExploredStates++

			if s.isWitness(tr.Target, d) {
				gen.Close()
				return &Witness{JointState: tr.Target, Column: d.Clone()}, false
			}
			w, timedOut := s.dfs(ctx, tr.Target, d, visited, cache, counters)
			if timedOut {
				gen.Close()
				return nil, true
			}
			if w != nil {
				gen.Close()
				return w, false
			}
		}
		gen.Close()
	}
	return nil, false
}

// bfs explores joint states breadth-first via an explicit FIFO work set,
// returning the first witness found.
func (s *Search) bfs(ctx context.Context, ib0 automaton.State, c0 automaton.Column, visited map[string]bool, cache *stepcache.Cache, counters *Counters) (*Witness, bool) {
	type item struct {
		ib automaton.State
		c  automaton.Column
	}
	workSet := []item{{ib0, c0}}

	for len(workSet) > 0 {
		if ctx.Err() != nil {
			return nil, true
		}
		cur := workSet[0]
		workSet = workSet[1:]

		for _, tr := range s.ixb.TransitionsOf(cur.ib) {
			gen := s.stepGameFor(tr.Label, cache, cur.c)
			for {
				if ctx.Err() != nil {
					gen.Close()
					return nil, true
				}
				d, ok := gen.Next()
				if !ok {
					break
				}
				counters.ExploredTransitions++
				assertNoDuplicateState(d)

				key := visitKey(tr.Target, d)
				if visited[key] {
					continue
				}
				visited[key] = true
				counters.ExploredStates++

				if s.isWitness(tr.Target, d) {
					gen.Close()
					return &Witness{JointState: tr.Target, Column: d.Clone()}, false
				}
				workSet = append(workSet, item{tr.Target, d.Clone()})
			}
			gen.Close()
		}
	}
	return nil, false
}

// stepGameFor starts the step game for one I×B transition: u is the symbol
// "to remove", v is the symbol consumed from T.
func (s *Search) stepGameFor(label alphabet.Label, cache *stepcache.Cache, c automaton.Column) stepgame.Generator {
	codec := s.ixb.Codec
	u := codec.Y(label)
	v := codec.X(label)
	g0 := stepgame.GameState{L: 0, I: s.t.Codec.FullSigma().Refine(u), Dp: 0}
	return stepgame.New(s.strategy, s.t, cache, s.ignoreAmbiguous, c, v, g0)
}

// isWitness reports whether (ibSucc, d) is an accepting joint state: ibSucc
// is final in I×B and every state in d is final in T.
func (s *Search) isWitness(ibSucc automaton.State, d automaton.Column) bool {
	if !s.ixb.IsFinal(ibSucc) {
		return false
	}
	for _, q := range d {
		if !s.t.IsFinal(q) {
			return false
		}
	}
	return true
}

func visitKey(ib automaton.State, c automaton.Column) string {
	return fmt.Sprintf("%d#%s", ib, c.Key())
}

// assertNoDuplicateState enforces the column invariant that columns never
// contain duplicate states, against whatever stepgame.Generator just
// yielded — a violation here means the generator's Append-suppresses-
// duplicates contract broke, a bug rather than a reachable input condition.
func assertNoDuplicateState(c automaton.Column) {
	seen := make(map[automaton.State]bool, len(c))
	for _, q := range c {
		if seen[q] {
			invariantf("column %v contains duplicate state %d", c, q)
		}
		seen[q] = true
	}
}
