package automaton

import (
	"strconv"
	"strings"
)

// Column is an ordered sequence of T-states representing a candidate joint
// location in the inductive separator transducer. Columns never contain
// duplicate states — Append is a no-op if the state is already present.
type Column []State

// Contains reports whether q already occurs in the column.
func (c Column) Contains(q State) bool {
	for _, s := range c {
		if s == q {
			return true
		}
	}
	return false
}

// Append returns c with q appended, unless q is already present, in which
// case c is returned unchanged.
func (c Column) Append(q State) Column {
	if c.Contains(q) {
		return c
	}
	out := make(Column, len(c), len(c)+1)
	copy(out, c)
	return append(out, q)
}

// Equal reports whether c and other are equal as sequences: same length,
// same states, in the same order.
func (c Column) Equal(other Column) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of c.
func (c Column) Clone() Column {
	out := make(Column, len(c))
	copy(out, c)
	return out
}

// Key produces the column's hash identity: an injective encoding of the
// ordered state sequence.
//
// The original's state+1 decimal-string concatenation ("hash_state") collides
// once state ids exceed one digit: [1,23] and [12,3] both stringify to "123".
// This encoding instead separates each element with a byte ('|') that never
// occurs in a decimal integer, making it genuinely injective over any
// sequence of State values.
func (c Column) Key() string {
	var b strings.Builder
	for _, s := range c {
		b.WriteString(strconv.FormatUint(uint64(s)+1, 10))
		b.WriteByte('|')
	}
	return b.String()
}

// PairKey is the column-hash identity of a two-element (qA, qB) pair, used by
// pairing.Build to name reachable state pairs.
func PairKey(qA, qB State) string {
	return Column{qA, qB}.Key()
}
