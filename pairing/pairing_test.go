package pairing

import (
	"testing"

	"github.com/coregx/rtverify/alphabet"
	"github.com/coregx/rtverify/automaton"
)

func TestBuildPairsReachableStatesOnly(t *testing.T) {
	codec, _ := alphabet.NewCodec([]string{"a", "b"})

	a := Plain{
		Initial: 0,
		Final:   map[automaton.State]bool{1: true},
		Transitions: []PlainTransition{
			{Origin: 0, Symbol: 0, Target: 1},
		},
	}
	b := Plain{
		Initial: 0,
		Final:   map[automaton.State]bool{1: true},
		Transitions: []PlainTransition{
			{Origin: 0, Symbol: 1, Target: 1},
		},
	}

	ixb := Build(codec, a, b)

	if len(ixb.Initial()) != 1 {
		t.Fatalf("IxB should have exactly one initial state")
	}
	start := ixb.Initial()[0]
	trs := ixb.TransitionsOf(start)
	if len(trs) != 1 {
		t.Fatalf("IxB start state should have exactly 1 transition, got %d", len(trs))
	}
	label := trs[0].Label
	if codec.X(label) != 0 || codec.Y(label) != 1 {
		t.Errorf("IxB transition label = (%d,%d), want (0,1)", codec.X(label), codec.Y(label))
	}
	if !ixb.IsFinal(trs[0].Target) {
		t.Error("successor pair (1,1) should be final: both components are final")
	}
}

func TestBuildDeduplicatesOnSuccessorIdentity(t *testing.T) {
	codec, _ := alphabet.NewCodec([]string{"a"})

	a := Plain{
		Initial: 0,
		Final:   map[automaton.State]bool{},
		Transitions: []PlainTransition{
			{Origin: 0, Symbol: 0, Target: 1},
			{Origin: 0, Symbol: 0, Target: 1}, // duplicate origin transition
		},
	}
	b := Plain{
		Initial: 0,
		Final:   map[automaton.State]bool{},
		Transitions: []PlainTransition{
			{Origin: 0, Symbol: 0, Target: 1},
		},
	}

	ixb := Build(codec, a, b)
	start := ixb.Initial()[0]
	trs := ixb.TransitionsOf(start)
	if len(trs) != 1 {
		t.Fatalf("Build should dedup repeated (origin,label,target) triples, got %d transitions", len(trs))
	}
}

func TestBuildFinalRequiresBothComponents(t *testing.T) {
	codec, _ := alphabet.NewCodec([]string{"a"})

	a := Plain{Initial: 0, Final: map[automaton.State]bool{0: true}}
	b := Plain{Initial: 0, Final: map[automaton.State]bool{}}

	ixb := Build(codec, a, b)
	start := ixb.Initial()[0]
	if ixb.IsFinal(start) {
		t.Error("pair should not be final when only one component is final")
	}
}
