package bpe

import (
	"iter"
	"math/bits"
)

// Sequence is the mutable symbol buffer the merge engine rewrites.
//
// It holds one slot per input byte. A merge overwrites the left slot of each
// matched pair and erases the right one; slots are never shifted except by
// Compact. Erasure is recorded in a side bitset so every Symbol value,
// including raw byte 0, stays a legitimate live value.
//
// Memory layout:
//   - slots:  symbol per position, meaningless where erased
//   - erased: one bit per slot, set when the slot was consumed by a merge
//   - live:   number of clear bits, kept in step with erase/Compact
type Sequence struct {
	slots  []Symbol
	erased []uint64
	live   int
}

// NewSequence returns a Sequence holding one raw-byte symbol per input byte.
func NewSequence(input []byte) *Sequence {
	s := &Sequence{
		slots:  make([]Symbol, len(input)),
		erased: make([]uint64, wordsFor(len(input))),
		live:   len(input),
	}
	for i, b := range input {
		s.slots[i] = Symbol(b)
	}
	return s
}

func wordsFor(n int) int { return (n + 63) >> 6 }

// Len returns the number of live symbols.
func (s *Sequence) Len() int { return s.live }

// RawLen returns the number of slots, erased ones included.
func (s *Sequence) RawLen() int { return len(s.slots) }

// At returns the symbol stored at slot i. The result is only meaningful when
// the slot is live.
func (s *Sequence) At(i int) Symbol { return s.slots[i] }

// IsErased reports whether slot i was consumed by a merge.
func (s *Sequence) IsErased(i int) bool {
	return s.erased[i>>6]&(1<<(uint(i)&63)) != 0
}

func (s *Sequence) set(i int, sym Symbol) { s.slots[i] = sym }

func (s *Sequence) erase(i int) {
	w, m := i>>6, uint64(1)<<(uint(i)&63)
	if s.erased[w]&m == 0 {
		s.erased[w] |= m
		s.live--
	}
}

// nextLive returns the first live slot at or after i, or RawLen() if none.
// Whole words of erased slots are skipped at once.
func (s *Sequence) nextLive(i int) int {
	n := len(s.slots)
	for i < n {
		w := i >> 6
		free := ^s.erased[w] >> (uint(i) & 63)
		if free != 0 {
			i += bits.TrailingZeros64(free)
			if i >= n {
				return n
			}
			return i
		}
		i = (w + 1) << 6
	}
	return n
}

// prevLive returns the last live slot strictly before i, or -1 if none.
func (s *Sequence) prevLive(i int) int {
	for j := i - 1; j >= 0; j-- {
		if !s.IsErased(j) {
			return j
		}
	}
	return -1
}

// Compact rebuilds the sequence in place without erased slots. The raw
// length shrinks to the live count; relative order is preserved.
func (s *Sequence) Compact() {
	dst := 0
	for i := range s.slots {
		if !s.IsErased(i) {
			s.slots[dst] = s.slots[i]
			dst++
		}
	}
	s.slots = s.slots[:dst]
	s.erased = s.erased[:wordsFor(dst)]
	clear(s.erased)
	s.live = dst
}

// Symbols yields the live symbols in sequence order.
func (s *Sequence) Symbols() iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		w := newLiveWalker(s)
		for {
			pos, ok := w.next()
			if !ok || !yield(s.slots[pos]) {
				return
			}
		}
	}
}

// Live returns a copy of the live symbols in sequence order.
func (s *Sequence) Live() []Symbol {
	out := make([]Symbol, 0, s.live)
	for sym := range s.Symbols() {
		out = append(out, sym)
	}
	return out
}
