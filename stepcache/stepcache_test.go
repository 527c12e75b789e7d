package stepcache

import (
	"testing"

	"github.com/coregx/rtverify/automaton"
)

func TestGetMissThenHit(t *testing.T) {
	cache := New()
	key := NewKey(automaton.Column{0, 1}, 1, 0b101, 2, automaton.Column{3})

	if _, ok := cache.Get(key); ok {
		t.Fatal("Get on empty cache should miss")
	}
	if cache.Hits() != 0 {
		t.Fatalf("Hits()=%d after a miss, want 0", cache.Hits())
	}

	winners := []automaton.Column{{3}, {3, 4}}
	cache.Put(key, winners)

	got, ok := cache.Get(key)
	if !ok {
		t.Fatal("Get should hit after Put")
	}
	if len(got) != 2 || !got[0].Equal(automaton.Column{3}) || !got[1].Equal(automaton.Column{3, 4}) {
		t.Errorf("Get returned %v, want %v", got, winners)
	}
	if cache.Hits() != 1 {
		t.Fatalf("Hits()=%d after one hit, want 1", cache.Hits())
	}
}

func TestKeyExcludesDp(t *testing.T) {
	cache := New()
	key := NewKey(automaton.Column{0}, 0, 0b1, 0, nil)
	cache.Put(key, []automaton.Column{{1}})

	// Dp is not part of Key at all - the same (c,l,I,v,d) must hit
	// regardless of what d' would have been during the call that built it.
	again := NewKey(automaton.Column{0}, 0, 0b1, 0, nil)
	if _, ok := cache.Get(again); !ok {
		t.Error("identical (c,l,I,v,d) must hit the cache")
	}
}

func TestPutCopiesSlice(t *testing.T) {
	cache := New()
	key := NewKey(automaton.Column{0}, 0, 0, 0, nil)
	winners := []automaton.Column{{1}}
	cache.Put(key, winners)

	winners[0] = automaton.Column{99}
	got, _ := cache.Get(key)
	if got[0].Equal(automaton.Column{99}) {
		t.Error("Put must copy the winner slice, not alias the caller's backing array")
	}
}
