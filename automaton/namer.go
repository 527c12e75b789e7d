package automaton

// Namer assigns stable, sequential State ids to reachable columns/pairs keyed
// by their Key() string, used by pairing.Build and Automaton.ToDFA to turn a
// column-hash identity into an actual automaton State. Ids are stable for the
// lifetime of the Namer.
type Namer struct {
	ids  map[string]State
	next State
}

// NewNamer returns an empty Namer.
func NewNamer() *Namer {
	return &Namer{ids: make(map[string]State)}
}

// StateFor returns the State assigned to key, allocating a fresh one on first
// use. The second return reports whether key had already been assigned.
func (n *Namer) StateFor(key string) (State, bool) {
	if s, ok := n.ids[key]; ok {
		return s, true
	}
	s := n.next
	n.ids[key] = s
	n.next++
	return s, false
}

// Reverse returns the State-to-key mapping, for diagnostics and DOT dumps
// that want to render a node by its original column identity rather than its
// synthetic sequential id.
func (n *Namer) Reverse() map[State]string {
	out := make(map[State]string, len(n.ids))
	for key, s := range n.ids {
		out[s] = key
	}
	return out
}
