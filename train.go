package bpe

import (
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"
)

// Observation describes one merge. It is handed to the observer on the
// progress cadence and has no influence on training.
type Observation struct {
	Step   int    // 1-based merge index
	Count  int    // occurrences of Pair when it was selected
	Pair   Pair   // the merged pair
	Symbol Symbol // the symbol that replaced it
}

// Stats summarizes the state of a Trainer.
type Stats struct {
	Steps             int // merges performed
	Live              int // live symbols in the sequence
	Raw               int // slots in the sequence, erased ones included
	Compactions       int
	FailedCheckpoints int // periodic checkpoints that returned an error
	Entries           int // dictionary entries, byte symbols included
}

// Option configures a Trainer.
type Option func(*Trainer)

// WithObserver replaces the default progress logger. A nil fn disables
// progress reporting.
func WithObserver(fn func(Observation)) Option {
	return func(t *Trainer) { t.observe = fn }
}

// Trainer owns all state of one vocabulary build: the sequence, the pair
// table, the dictionary and the id and step counters. It is not safe for
// concurrent use.
type Trainer struct {
	cfg    Config
	log    logger.Logger
	seq    *Sequence
	counts *pairCounts
	dict   *Dictionary

	next  Symbol // next symbol to assign
	steps int

	compactions       int
	failedCheckpoints int
	observe           func(Observation)
}

// NewTrainer validates cfg and prepares a Trainer over input. The pair table
// is built here with one full pass; afterwards it is only updated
// incrementally.
func NewTrainer(cfg Config, log logger.Logger, input []byte, opts ...Option) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seq := NewSequence(input)
	t := &Trainer{
		cfg:    cfg,
		log:    log,
		seq:    seq,
		counts: buildPairCounts(seq),
		dict:   NewDictionary(),
		next:   symbolBase,
	}
	t.observe = t.logProgress
	for _, o := range opts {
		o(t)
	}
	return t, nil
}

func (t *Trainer) logProgress(o Observation) {
	t.log.Infof("step %d: n=%d %d,%d -> %d", o.Step, o.Count, o.Pair.First, o.Pair.Second, o.Symbol)
}

// Sequence returns the sequence being rewritten.
func (t *Trainer) Sequence() *Sequence { return t.seq }

// Dictionary returns the dictionary built so far.
func (t *Trainer) Dictionary() *Dictionary { return t.dict }

// Stats returns counters describing the run so far.
func (t *Trainer) Stats() Stats {
	return Stats{
		Steps:             t.steps,
		Live:              t.seq.Len(),
		Raw:               t.seq.RawLen(),
		Compactions:       t.compactions,
		FailedCheckpoints: t.failedCheckpoints,
		Entries:           t.dict.Len(),
	}
}

// Step performs one merge and reports whether training should stop. It stops
// without touching any state when no pair occurs at least twice or when the
// symbol space is used up.
func (t *Trainer) Step() (stop bool) {
	best, n, total := t.counts.mostFrequent()
	if n < 2 || t.steps >= maxMerges {
		return true
	}

	if float64(total) < float64(t.seq.RawLen())*t.cfg.CompactRatio {
		raw := t.seq.RawLen()
		t.seq.Compact()
		t.compactions++
		t.log.Debugf("compact: raw %d -> %d", raw, t.seq.RawLen())
	}

	sym := t.next
	t.next++

	t.replace(best, sym)
	t.counts.zero(best)
	t.dict.insert(sym, best)
	t.steps++

	if t.observe != nil && t.cfg.ProgressEvery > 0 && t.steps%t.cfg.ProgressEvery == 0 {
		t.observe(Observation{Step: t.steps, Count: n, Pair: best, Symbol: sym})
	}
	return false
}

// replace rewrites every leftmost, non-overlapping occurrence of old with sym
// in a single pass. For each occurrence the pair table receives exactly two
// updates: the left neighbour's pair moves from (left, old.First) to
// (left, sym) and the right neighbour's from (old.Second, right) to
// (sym, right). The occurrence itself is not counted down; the caller pins
// old to zero afterwards.
func (t *Trainer) replace(old Pair, sym Symbol) {
	s := t.seq
	pairs := newPairWalker(s)
	for {
		a, b, ok := pairs.next()
		if !ok {
			return
		}
		if (Pair{s.At(a), s.At(b)}) != old {
			continue
		}
		s.set(a, sym)
		s.erase(b)
		prev, hasPrev, next, hasNext := pairs.afterReplace(a)
		if hasPrev {
			left := s.At(prev)
			t.counts.shift(Pair{left, old.First}, Pair{left, sym})
		}
		if hasNext {
			right := s.At(next)
			t.counts.shift(Pair{old.Second, right}, Pair{sym, right})
		}
	}
}

// Run drives training until Step asks to stop or MaxSteps merges have been
// made. Every CheckpointEvery merges the sequence is handed to cp; failures
// there are logged and training continues. A final checkpoint is always
// written, and its failure is returned wrapped in ErrCheckpointFailed.
func (t *Trainer) Run(cp Checkpointer) error {
	for t.steps < t.cfg.MaxSteps {
		if t.Step() {
			break
		}
		if t.steps%t.cfg.CheckpointEvery == 0 {
			if err := cp.Checkpoint(t.seq); err != nil {
				t.failedCheckpoints++
				t.log.Infof("checkpoint at step %d failed: %v", t.steps, err)
			}
		}
	}
	if err := cp.Checkpoint(t.seq); err != nil {
		return fmt.Errorf("%w: final checkpoint at step %d: %w", ErrCheckpointFailed, t.steps, err)
	}
	return nil
}
