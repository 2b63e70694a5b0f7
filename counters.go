package bpe

// pairCounts tracks how often each adjacent live pair occurs in a Sequence.
//
// It is built once with a full pass and afterwards kept current by the
// merge engine through shift, two calls per rewritten occurrence. Entries are
// never removed: a pair that has been merged away is pinned to zero with zero
// so it stays addressable.
type pairCounts struct {
	counts map[Pair]int
}

// buildPairCounts counts every adjacent live pair of s in one pass.
func buildPairCounts(s *Sequence) *pairCounts {
	c := &pairCounts{counts: make(map[Pair]int)}
	pairs := newPairWalker(s)
	for {
		a, b, ok := pairs.next()
		if !ok {
			break
		}
		c.counts[Pair{s.At(a), s.At(b)}]++
	}
	return c
}

// shift moves one occurrence from pair `from` to pair `to`. It records that
// one neighbour of a merged occurrence changed its symbol.
func (c *pairCounts) shift(from, to Pair) {
	c.counts[from]--
	c.counts[to]++
}

// zero pins p to a count of exactly zero.
func (c *pairCounts) zero(p Pair) { c.counts[p] = 0 }

// mostFrequent scans every entry and returns the pair with the highest count,
// that count, and the sum of all counts. Among pairs tied at the highest count
// the smallest under Pair ordering wins, so the result never depends on map
// iteration order. An empty table yields a zero Pair and zero counts.
func (c *pairCounts) mostFrequent() (best Pair, bestN int, total int) {
	found := false
	for p, n := range c.counts {
		total += n
		if !found || n > bestN || (n == bestN && p.Less(best)) {
			best, bestN, found = p, n, true
		}
	}
	return best, bestN, total
}
