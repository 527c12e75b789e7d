// Package stepcache memoizes partial step-game results keyed by
// (column, game-state cursor+separator, removed-symbol, partial-next-column).
package stepcache

import (
	"github.com/coregx/rtverify/alphabet"
	"github.com/coregx/rtverify/automaton"
)

// Key identifies one memoized step-game invocation.
//
// Only the L (cursor) and I (separator) components of the game state
// participate — Dp (the append counter) is deliberately omitted: branching
// from a given (c, l, I, v, d) does not depend on d' once d itself is fixed,
// so reusing a cached winner list under a key that ignores d' remains sound.
// If a future change makes branching depend on d', d' must enter this key.
type Key struct {
	C string // automaton.Column(c).Key()
	L int
	I alphabet.Bitmap
	V alphabet.Symbol
	D string // automaton.Column(d).Key()
}

// NewKey builds a Key from its column/game-state components.
func NewKey(c automaton.Column, l int, i alphabet.Bitmap, v alphabet.Symbol, d automaton.Column) Key {
	return Key{C: c.Key(), L: l, I: i, V: v, D: d.Key()}
}

// Cache is the memoization table of one Oneshot invocation. It lives for the
// duration of a single search.
type Cache struct {
	entries map[Key][]automaton.Column
	hits    int
}

// New returns an empty StepCache.
func New() *Cache {
	return &Cache{entries: make(map[Key][]automaton.Column)}
}

// Get returns the memoized winner list for key, if present (a cache hit).
func (c *Cache) Get(key Key) ([]automaton.Column, bool) {
	v, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return v, ok
}

// Put stores the complete winner list produced by the recursive call that
// established key contains the complete set of winning continuations d_final
// seen along the recursive call that produced it").
func (c *Cache) Put(key Key, winners []automaton.Column) {
	stored := make([]automaton.Column, len(winners))
	copy(stored, winners)
	c.entries[key] = stored
}

// Hits returns the number of cache hits observed so far.
func (c *Cache) Hits() int {
	return c.hits
}

// Len returns the number of memoized entries, for diagnostics/tests.
func (c *Cache) Len() int {
	return len(c.entries)
}
