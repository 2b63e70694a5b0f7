package bpe

import "fmt"

// Config controls a training run. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// MaxSteps bounds the number of merges. It may not exceed the number of
	// symbols left in the 16-bit space above the byte symbols.
	MaxSteps int
	// CheckpointEvery requests a checkpoint after every n merges.
	CheckpointEvery int
	// ProgressEvery emits an Observation on every n-th step. Zero disables
	// progress reporting.
	ProgressEvery int
	// CompactRatio triggers compaction when the live pair count drops below
	// this share of the raw sequence length. Must lie in (0, 1].
	CompactRatio float64
	// ChunkSize is the number of symbols buffered per write when emitting a
	// token stream.
	ChunkSize int
}

// DefaultConfig returns the settings used by the bpe command.
func DefaultConfig() Config {
	return Config{
		MaxSteps:        defaultMaxSteps,
		CheckpointEvery: defaultCheckpointEvery,
		ProgressEvery:   defaultProgressEvery,
		CompactRatio:    defaultCompactRatio,
		ChunkSize:       defaultChunkSize,
	}
}

// Validate reports the first out of range field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.MaxSteps < 0 || c.MaxSteps > maxMerges:
		return fmt.Errorf("%w: max steps %d not in [0, %d]", ErrInvalidConfig, c.MaxSteps, maxMerges)
	case c.CheckpointEvery <= 0:
		return fmt.Errorf("%w: checkpoint interval %d must be positive", ErrInvalidConfig, c.CheckpointEvery)
	case c.ProgressEvery < 0:
		return fmt.Errorf("%w: progress interval %d is negative", ErrInvalidConfig, c.ProgressEvery)
	case !(c.CompactRatio > 0 && c.CompactRatio <= 1):
		return fmt.Errorf("%w: compact ratio %v not in (0, 1]", ErrInvalidConfig, c.CompactRatio)
	case c.ChunkSize <= 0:
		return fmt.Errorf("%w: chunk size %d must be positive", ErrInvalidConfig, c.ChunkSize)
	}
	return nil
}
