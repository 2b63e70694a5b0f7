// Package bpe builds byte-pair-encoding vocabularies from raw byte streams.
//
// # Overview
//
// Byte pair encoding repeatedly finds the most frequent pair of adjacent
// symbols, replaces every occurrence with a new symbol and records what the
// new symbol expands to. Symbols 0-255 stand for single bytes; merged symbols
// are numbered from 256 upward in the order they are created. Training stops
// once no pair occurs twice or the step budget runs out.
//
// The result is two artifacts:
//   - the rewritten token stream (one uint16 per token, native byte order)
//   - the Dictionary mapping every symbol back to its bytes
//
// # Incremental Training
//
// A naive trainer re-counts all pairs after every merge, which costs
// O(steps × length). This package counts once and then maintains the pair
// table incrementally: rewriting an occurrence of (a, b) at positions i, i+1
// only changes the pairs formed with the live neighbours on either side, so
// each occurrence costs two table updates.
//
// Consumed slots are not removed from the Sequence. They are marked erased
// and skipped by the walkers; once erased slots make up too much of the
// buffer (see Config.CompactRatio) the Sequence is compacted in place.
//
// Selection is deterministic: among pairs tied at the highest count the one
// with the smallest (First, Second) wins, so identical inputs always produce
// identical vocabularies and token streams.
//
// # Basic Usage
//
//	logger.New("INFO")
//	defer logger.OnExit()
//
//	tr, err := bpe.NewTrainer(bpe.DefaultConfig(), logger.Sugar, input)
//	if err != nil {
//	    return err
//	}
//	if err := tr.Run(bpe.NewFileCheckpointer(path, 0)); err != nil {
//	    return err
//	}
//
//	// Expand the tokens back to the input
//	original, _ := tr.Dictionary().Expand(tr.Sequence().Live())
//
// # Merge Semantics
//
// Occurrences are matched leftmost first and never overlap: in "aaa" the pair
// (a, a) is merged once, giving "Xa".
//
// Byte 0 is an ordinary symbol. Erasure is tracked separately from slot
// contents, so inputs containing zero bytes round-trip.
package bpe
