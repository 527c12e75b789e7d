package automaton

import "github.com/coregx/rtverify/alphabet"

// Restrict returns a new automaton containing exactly the transitions
// (q, l, p) of a with x(l) in originSyms and y(l) in targetSyms.
//
// The copy's initial set equals a's; a state p is final in the copy iff it is
// final in a and is reached by at least one retained transition.
//
// Restrict is idempotent: restricting an already-restricted automaton by the
// same symbol sets changes nothing, because every surviving transition
// already satisfies the predicate.
func (a *Automaton) Restrict(originSyms, targetSyms alphabet.Bitmap) *Automaton {
	out := New(a.Codec)
	out.initial = append([]State(nil), a.initial...)

	for _, q := range a.States() {
		for _, tr := range a.TransitionsOf(q) {
			x := a.Codec.X(tr.Label)
			y := a.Codec.Y(tr.Label)
			if originSyms.Contains(x) && targetSyms.Contains(y) {
				out.AddTransition(q, tr.Label, tr.Target)
				if a.IsFinal(tr.Target) {
					out.AddFinal(tr.Target)
				}
			}
		}
	}
	return out
}
