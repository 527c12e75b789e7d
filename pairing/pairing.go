// Package pairing builds the synchronous product I×B of two plain automata
// into a transducer, used to seed the intersection search of oneshot.Search.
package pairing

import (
	"github.com/coregx/rtverify/alphabet"
	"github.com/coregx/rtverify/automaton"
)

// PlainTransition is a non-transducer (origin, symbol, target) triple, the
// shape I and B transitions take before pairing.
type PlainTransition struct {
	Origin automaton.State
	Symbol alphabet.Symbol
	Target automaton.State
}

// Plain is a finite automaton in the non-transducer (state,symbol,state)
// shape consumed by Build.
type Plain struct {
	Initial     automaton.State
	Final       map[automaton.State]bool
	Transitions []PlainTransition
}

// Build computes the reachable-pairs product AxB over codec: a transducer
// whose states are pairs (qA, qB) reachable by BFS from (q0A, q0B). For every
// pair popped from the queue, every (qA,x,pA) in a and (qB,y,pB) in b sharing
// that origin pair contributes a transition ((qA,qB), Pack(x,y), (pA,pB)),
// deduplicated on successor identity under that label. A pair
// is final iff both components are final in their respective automaton.
func Build(codec *alphabet.Codec, a, b Plain) *automaton.Automaton {
	out := automaton.New(codec)
	namer := automaton.NewNamer()

	byOriginA := indexByOrigin(a.Transitions)
	byOriginB := indexByOrigin(b.Transitions)

	type pair struct{ qa, qb automaton.State }

	start := pair{a.Initial, b.Initial}
	startID, _ := namer.StateFor(automaton.PairKey(start.qa, start.qb))
	out.AddInitial(startID)

	queue := []pair{start}
	visited := map[pair]bool{start: true}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		qID, _ := namer.StateFor(automaton.PairKey(p.qa, p.qb))
		if a.Final[p.qa] && b.Final[p.qb] {
			out.AddFinal(qID)
		}

		for _, ta := range byOriginA[p.qa] {
			for _, tb := range byOriginB[p.qb] {
				label := codec.Pack(ta.Symbol, tb.Symbol)
				succ := pair{ta.Target, tb.Target}
				succID, _ := namer.StateFor(automaton.PairKey(succ.qa, succ.qb))

				if !out.HasSuccessor(qID, label, succID) {
					out.AddTransition(qID, label, succID)
				}
				if !visited[succ] {
					visited[succ] = true
					queue = append(queue, succ)
				}
			}
		}
	}
	return out
}

func indexByOrigin(ts []PlainTransition) map[automaton.State][]PlainTransition {
	out := make(map[automaton.State][]PlainTransition)
	for _, t := range ts {
		out[t.Origin] = append(out[t.Origin], t)
	}
	return out
}
