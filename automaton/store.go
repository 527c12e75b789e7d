// Package automaton implements the transducer/automaton value type of an RTS:
// an indexed transition relation, initial/final sets, and alphabet restriction.
package automaton

import "github.com/coregx/rtverify/alphabet"

// State is a state identifier. States are small, stable integers for the
// lifetime of a verification run — nothing is renumbered mid-search.
type State uint32

// edge is one (label, target) transition stored under an origin.
type edge struct {
	label  alphabet.Label
	target State
}

// Store is the indexed transition relation: origin -> (label -> []target).
//
// Add is idempotent only at the (origin,label,target) triple level if the
// caller deduplicates — the Store itself appends unconditionally.
// TransitionsOf yields (label, target) pairs in insertion order.
type Store struct {
	byOrigin map[State][]edge
}

// NewStore returns an empty transition store.
func NewStore() *Store {
	return &Store{byOrigin: make(map[State][]edge)}
}

// Add records a transition (origin, label, target). Callers that need
// deduplication (e.g. pairing's successor-identity check) must check first.
func (s *Store) Add(origin State, label alphabet.Label, target State) {
	s.byOrigin[origin] = append(s.byOrigin[origin], edge{label: label, target: target})
}

// TransitionsOf yields (label, target) pairs for the given origin, in the
// order they were added.
func (s *Store) TransitionsOf(origin State) []struct {
	Label  alphabet.Label
	Target State
} {
	edges := s.byOrigin[origin]
	out := make([]struct {
		Label  alphabet.Label
		Target State
	}, len(edges))
	for i, e := range edges {
		out[i].Label = e.label
		out[i].Target = e.target
	}
	return out
}

// SuccessorsOf returns every target reachable from origin via label.
func (s *Store) SuccessorsOf(origin State, label alphabet.Label) []State {
	var out []State
	for _, e := range s.byOrigin[origin] {
		if e.label == label {
			out = append(out, e.target)
		}
	}
	return out
}

// HasSuccessor reports whether target is reachable from origin via label —
// the dedup check pairing.Build needs without allocating a slice.
func (s *Store) HasSuccessor(origin State, label alphabet.Label, target State) bool {
	for _, e := range s.byOrigin[origin] {
		if e.label == label && e.target == target {
			return true
		}
	}
	return false
}

// States iterates every origin state that has at least one outgoing edge.
func (s *Store) States() []State {
	out := make([]State, 0, len(s.byOrigin))
	for q := range s.byOrigin {
		out = append(out, q)
	}
	return out
}
