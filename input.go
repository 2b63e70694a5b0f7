package bpe

import (
	"bytes"
	"fmt"
	"os"
)

// ReadInput loads the whole file at path. Any failure to open or read it is
// reported as ErrInputUnavailable.
func ReadInput(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if info, err := f.Stat(); err == nil && info.Size() > 0 {
		buf.Grow(int(info.Size()) + bytes.MinRead)
	}
	if _, err := buf.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInputUnavailable, path, err)
	}
	return buf.Bytes(), nil
}
