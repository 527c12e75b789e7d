// Package bench loads the JSON benchmark format: an alphabet, an
// initial-configuration automaton I, a transition transducer T, and a named
// set of safety-property automata B, plus the RTS.build_transducer /
// parse_transition_regex_dfa / RTS.build_IxB_transducer ports that turn that
// JSON shape into the alphabet/automaton/pairing types the searcher consumes.
package bench

// TransitionSpec is one JSON transition entry: an origin state name, a
// regex-over-symbol-strings "letter", and a target state name.
type TransitionSpec struct {
	Origin string `json:"origin"`
	Letter string `json:"letter"`
	Target string `json:"target"`
}

// AutomatonSpec mirrors one JSON automaton object (used for "initial", the
// shared "transducer", and each entry of "properties").
type AutomatonSpec struct {
	States          []string         `json:"states"`
	InitialState    string           `json:"initialState"`
	AcceptingStates []string         `json:"acceptingStates"`
	Transitions     []TransitionSpec `json:"transitions"`
}

// Benchmark is the parsed top-level JSON document.
type Benchmark struct {
	Alphabet   []string                 `json:"alphabet"`
	Initial    AutomatonSpec            `json:"initial"`
	Transducer AutomatonSpec            `json:"transducer"`
	Properties map[string]AutomatonSpec `json:"properties"`
}
