package automaton

import "github.com/coregx/rtverify/alphabet"

// Automaton is a transducer/automaton value: a tuple <Q, q0-set, F, delta>
// carrying the alphabet codec it was built with, plus the used-origin-symbol
// and used-target-symbol sets needed for alphabet restriction.
type Automaton struct {
	Codec *alphabet.Codec

	initial []State
	final   map[State]bool
	store   *Store

	// OriginSymbols / TargetSymbols accumulate x(label)/y(label) for every
	// transition ever added: for every transition (q, (x,y), p), the
	// origin-symbol set gains x and the target-symbol set gains y.
	OriginSymbols alphabet.Bitmap
	TargetSymbols alphabet.Bitmap
}

// New returns an empty automaton over codec.
func New(codec *alphabet.Codec) *Automaton {
	return &Automaton{
		Codec: codec,
		final: make(map[State]bool),
		store: NewStore(),
	}
}

// AddInitial adds q to the initial-state set.
func (a *Automaton) AddInitial(q State) {
	a.initial = append(a.initial, q)
}

// Initial returns the initial-state set.
func (a *Automaton) Initial() []State {
	return a.initial
}

// AddFinal adds q to the final-state set.
func (a *Automaton) AddFinal(q State) {
	a.final[q] = true
}

// IsFinal reports whether q is a final state.
func (a *Automaton) IsFinal(q State) bool {
	return a.final[q]
}

// FinalStates returns every final state.
func (a *Automaton) FinalStates() []State {
	out := make([]State, 0, len(a.final))
	for q := range a.final {
		out = append(out, q)
	}
	return out
}

// AddTransition adds (origin, label, target) and updates the used-symbol sets.
func (a *Automaton) AddTransition(origin State, label alphabet.Label, target State) {
	a.store.Add(origin, label, target)
	a.OriginSymbols = a.OriginSymbols | (1 << uint(a.Codec.X(label)))
	a.TargetSymbols = a.TargetSymbols | (1 << uint(a.Codec.Y(label)))
}

// SuccessorsOf returns every target reachable from origin via label.
func (a *Automaton) SuccessorsOf(origin State, label alphabet.Label) []State {
	return a.store.SuccessorsOf(origin, label)
}

// HasSuccessor reports whether (origin,label,target) is already present.
func (a *Automaton) HasSuccessor(origin State, label alphabet.Label, target State) bool {
	return a.store.HasSuccessor(origin, label, target)
}

// TransitionsOf yields (label, target) pairs for origin in insertion order.
func (a *Automaton) TransitionsOf(origin State) []struct {
	Label  alphabet.Label
	Target State
} {
	return a.store.TransitionsOf(origin)
}

// States iterates every state with at least one outgoing transition.
func (a *Automaton) States() []State {
	return a.store.States()
}
