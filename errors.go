package bpe

import "errors"

var (
	// ErrInputUnavailable indicates the input could not be opened or read.
	ErrInputUnavailable = errors.New("bpe: input unavailable")
	// ErrCheckpointFailed indicates a token checkpoint could not be persisted.
	ErrCheckpointFailed = errors.New("bpe: checkpoint write failed")
	// ErrInvalidConfig indicates a Config value outside its permitted range.
	ErrInvalidConfig = errors.New("bpe: invalid config")
	// ErrBadDictionary indicates a serialized dictionary is malformed or of an
	// unsupported version.
	ErrBadDictionary = errors.New("bpe: bad dictionary")
)
