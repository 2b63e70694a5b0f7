package bpe

// Core constants for the merge engine
const (
	symbolBase = 256     // First code for merged symbols (0-255 are raw bytes)
	symbolMax  = 1 << 16 // Size of the 16-bit symbol space
	maxMerges  = symbolMax - symbolBase

	// defaultCompactRatio is roughly 1/sqrt(2). When the live pair count falls
	// below this share of the raw sequence length the sequence is rebuilt.
	defaultCompactRatio = 0.707

	defaultMaxSteps        = 65000
	defaultCheckpointEvery = 1000
	defaultProgressEvery   = 100
	defaultChunkSize       = 1000000 // symbols per write batch
)

// Symbol identifies either a raw byte (0-255) or a merged unit (256 and up).
type Symbol uint16

// IsByte reports whether s denotes a single raw byte.
func (s Symbol) IsByte() bool { return s < symbolBase }

// Pair is an ordered pair of adjacent live symbols.
//
// Pairs are totally ordered by First, then Second. The ordering is the
// tie-break key when several pairs share the highest count.
type Pair struct {
	First  Symbol
	Second Symbol
}

// Less reports whether p sorts before q.
func (p Pair) Less(q Pair) bool {
	if p.First != q.First {
		return p.First < q.First
	}
	return p.Second < q.Second
}

// Compare returns -1, 0 or +1 depending on whether p sorts before, equal to or
// after q. It is suitable for slices.SortFunc.
func (p Pair) Compare(q Pair) int {
	switch {
	case p.Less(q):
		return -1
	case q.Less(p):
		return 1
	default:
		return 0
	}
}
