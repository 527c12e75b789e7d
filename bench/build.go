package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/coregx/coregex/meta"
	"github.com/coregx/rtverify/alphabet"
	"github.com/coregx/rtverify/automaton"
	"github.com/coregx/rtverify/internal/conv"
	"github.com/coregx/rtverify/pairing"
)

// LoadBenchmark reads and parses a benchmark JSON document from path.
func LoadBenchmark(path string) (*Benchmark, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputError{Kind: MalformedJSON, Path: path, Message: "cannot read benchmark file", Cause: err}
	}
	var b Benchmark
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, &InputError{Kind: MalformedJSON, Path: path, Message: "cannot parse benchmark JSON", Cause: err}
	}
	return &b, nil
}

// ParseStateID parses a state name of the form "q<i>" into a numeric
// automaton.State, mirroring the source's int(name[1:]) but reporting a
// BadStateName InputError instead of crashing on a malformed name.
func ParseStateID(path, name string) (automaton.State, error) {
	if len(name) < 2 || name[0] != 'q' {
		return 0, &InputError{Kind: BadStateName, Path: path, Message: fmt.Sprintf("state name %q is not of the form q<i>", name)}
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 0 {
		return 0, &InputError{Kind: BadStateName, Path: path, Message: fmt.Sprintf("state name %q is not of the form q<i>", name), Cause: err}
	}
	return automaton.State(conv.IntToUint32(n)), nil
}

// compileLetter compiles a JSON "letter" field into the coregex meta-engine,
// anchored at the start of the string to mirror Python's re.match
// (match-at-start, not full-string) semantics used throughout
// Automata.py's parse_transition_regex*.
func compileLetter(path, letter string) (*meta.Engine, error) {
	engine, err := meta.Compile("^(?:" + letter + ")")
	if err != nil {
		return nil, &InputError{Kind: BadRegex, Path: path, Message: fmt.Sprintf("invalid letter regex %q", letter), Cause: err}
	}
	return engine, nil
}

// BuildTransducer ports RTS.build_transducer: it constructs a transducer over
// codec from spec. When idTransducer is true, each transition's letter regex
// is matched against individual symbols and produces an identity pair (s,s);
// LoadRTS does not use this mode (it builds I and every B with BuildPlain).
// When false, the regex is
// matched against every "x,y" pair in Sigma x Sigma — used to build the
// shared transition transducer T from its general (x,y) letter field.
func BuildTransducer(path string, spec AutomatonSpec, codec *alphabet.Codec, idTransducer bool) (*automaton.Automaton, error) {
	a := automaton.New(codec)

	initial, err := ParseStateID(path, spec.InitialState)
	if err != nil {
		return nil, err
	}
	a.AddInitial(initial)

	for _, name := range spec.AcceptingStates {
		q, err := ParseStateID(path, name)
		if err != nil {
			return nil, err
		}
		a.AddFinal(q)
	}

	for _, t := range spec.Transitions {
		origin, err := ParseStateID(path, t.Origin)
		if err != nil {
			return nil, err
		}
		target, err := ParseStateID(path, t.Target)
		if err != nil {
			return nil, err
		}
		engine, err := compileLetter(path, t.Letter)
		if err != nil {
			return nil, err
		}

		matched := false
		if idTransducer {
			for _, s := range codec.Symbols() {
				if engine.IsMatch([]byte(codec.Decode(s))) {
					matched = true
					a.AddTransition(origin, codec.Pack(s, s), target)
				}
			}
		} else {
			for _, x := range codec.Symbols() {
				for _, y := range codec.Symbols() {
					pairStr := codec.Decode(x) + "," + codec.Decode(y)
					if engine.IsMatch([]byte(pairStr)) {
						matched = true
						a.AddTransition(origin, codec.Pack(x, y), target)
					}
				}
			}
		}
		if !matched {
			return nil, &InputError{Kind: UnknownSymbol, Path: path, Message: fmt.Sprintf("letter %q matches no symbol of Sigma", t.Letter)}
		}
	}
	return a, nil
}

// BuildPlain ports parse_transition_regex_dfa + the surrounding DFA assembly
// in RTS.build_IxB_transducer: letters are matched against individual
// symbols (never pairs), producing a plain (state, symbol, state) automaton
// suitable for pairing.Build.
func BuildPlain(path string, spec AutomatonSpec, codec *alphabet.Codec) (pairing.Plain, error) {
	initial, err := ParseStateID(path, spec.InitialState)
	if err != nil {
		return pairing.Plain{}, err
	}

	final := make(map[automaton.State]bool, len(spec.AcceptingStates))
	for _, name := range spec.AcceptingStates {
		q, err := ParseStateID(path, name)
		if err != nil {
			return pairing.Plain{}, err
		}
		final[q] = true
	}

	var transitions []pairing.PlainTransition
	for _, t := range spec.Transitions {
		origin, err := ParseStateID(path, t.Origin)
		if err != nil {
			return pairing.Plain{}, err
		}
		target, err := ParseStateID(path, t.Target)
		if err != nil {
			return pairing.Plain{}, err
		}
		engine, err := compileLetter(path, t.Letter)
		if err != nil {
			return pairing.Plain{}, err
		}

		matched := false
		for _, s := range codec.Symbols() {
			if engine.IsMatch([]byte(codec.Decode(s))) {
				matched = true
				transitions = append(transitions, pairing.PlainTransition{Origin: origin, Symbol: s, Target: target})
			}
		}
		if !matched {
			return pairing.Plain{}, &InputError{Kind: UnknownSymbol, Path: path, Message: fmt.Sprintf("letter %q matches no symbol of Sigma", t.Letter)}
		}
	}

	return pairing.Plain{Initial: initial, Final: final, Transitions: transitions}, nil
}

// RTS is a loaded Regular Transition System: the alphabet codec, the shared
// transition transducer T, and one I×B pairing per named property, built
// eagerly at load time.
type RTS struct {
	Path  string
	Codec *alphabet.Codec
	T     *automaton.Automaton

	ixb map[string]*automaton.Automaton
}

// LoadRTS loads, lints, and fully builds an RTS from a benchmark JSON file.
func LoadRTS(path string) (*RTS, error) {
	b, err := LoadBenchmark(path)
	if err != nil {
		return nil, err
	}
	if err := lintBenchmark(path, b); err != nil {
		return nil, err
	}

	codec, err := alphabet.NewCodec(b.Alphabet)
	if err != nil {
		return nil, &InputError{Kind: MalformedJSON, Path: path, Message: "alphabet too large", Cause: err}
	}

	t, err := BuildTransducer(path, b.Transducer, codec, false)
	if err != nil {
		return nil, err
	}

	iPlain, err := BuildPlain(path, b.Initial, codec)
	if err != nil {
		return nil, err
	}

	ixb := make(map[string]*automaton.Automaton, len(b.Properties))
	for name, propSpec := range b.Properties {
		bPlain, err := BuildPlain(path, propSpec, codec)
		if err != nil {
			return nil, err
		}
		ixb[name] = pairing.Build(codec, iPlain, bPlain)
	}

	return &RTS{Path: path, Codec: codec, T: t, ixb: ixb}, nil
}

// Property returns the I×B pairing transducer for a named safety property.
func (r *RTS) Property(name string) (*automaton.Automaton, error) {
	ixb, ok := r.ixb[name]
	if !ok {
		return nil, &InputError{Kind: UnknownProperty, Path: r.Path, Message: fmt.Sprintf("unknown property %q (known: %s)", name, strings.Join(r.PropertyNames(), ", "))}
	}
	return ixb, nil
}

// PropertyNames lists every property name the RTS was built with.
func (r *RTS) PropertyNames() []string {
	out := make([]string, 0, len(r.ixb))
	for name := range r.ixb {
		out = append(out, name)
	}
	return out
}
