package bpe

// liveWalker walks the live slot indices of a Sequence front to back.
// It is single pass: once exhausted it stays exhausted.
type liveWalker struct {
	seq *Sequence
	pos int // next live slot, or RawLen() when done
}

func newLiveWalker(s *Sequence) liveWalker {
	return liveWalker{seq: s, pos: s.nextLive(0)}
}

func (w *liveWalker) next() (int, bool) {
	if w.pos >= w.seq.RawLen() {
		return 0, false
	}
	p := w.pos
	w.pos = w.seq.nextLive(p + 1)
	return p, true
}

// pairWalker yields consecutive live positions two at a time, keeping the
// next two live positions buffered so the merge engine can learn the right
// neighbour of a rewritten pair without scanning again.
type pairWalker struct {
	live   liveWalker
	p1, p2 int
	has1   bool
	has2   bool
}

func newPairWalker(s *Sequence) *pairWalker {
	w := &pairWalker{live: newLiveWalker(s)}
	w.p1, w.has1 = w.live.next()
	w.p2, w.has2 = w.live.next()
	return w
}

// next returns the buffered pair of positions and slides the window by one
// live position. It returns false when fewer than two live positions remain.
func (w *pairWalker) next() (int, int, bool) {
	if !w.has1 || !w.has2 {
		return 0, 0, false
	}
	a, b := w.p1, w.p2
	w.slide()
	return a, b, true
}

func (w *pairWalker) slide() {
	w.p1, w.has1 = w.p2, w.has2
	w.p2, w.has2 = w.live.next()
}

// afterReplace must be called right after the pair last returned by next was
// rewritten: pos now holds the merged symbol and the slot after it is erased.
// The window slides past the erased slot, so scanning resumes strictly after
// the consumed pair.
//
// It returns the live position before pos (found by walking back over erased
// slots) and the buffered live position after the merged pair.
func (w *pairWalker) afterReplace(pos int) (prev int, hasPrev bool, next int, hasNext bool) {
	w.slide()
	prev = w.live.seq.prevLive(pos)
	return prev, prev >= 0, w.p1, w.has1
}
