package bpe

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
)

// TokenFileExt is appended to the input path to name the token output file.
const TokenFileExt = ".rtok"

// DictionaryFileExt is appended to the input path to name the dictionary file.
const DictionaryFileExt = ".rdict"

// Checkpointer persists the live symbols of a Sequence.
type Checkpointer interface {
	Checkpoint(seq *Sequence) error
}

// CheckpointFunc adapts a function to the Checkpointer interface.
type CheckpointFunc func(seq *Sequence) error

// Checkpoint calls f(seq).
func (f CheckpointFunc) Checkpoint(seq *Sequence) error { return f(seq) }

// TokenWriter encodes live symbols as a flat array of 16-bit values in native
// byte order, with no header or trailer. Output is staged through a buffer of
// a fixed number of symbols so memory stays bounded by the buffer, not by the
// sequence.
type TokenWriter struct {
	w   io.Writer
	buf []byte
}

// NewTokenWriter returns a TokenWriter that buffers chunkSize symbols at a
// time. A non-positive chunkSize selects the default.
func NewTokenWriter(w io.Writer, chunkSize int) *TokenWriter {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &TokenWriter{w: w, buf: make([]byte, 0, 2*chunkSize)}
}

// WriteSequence writes every live symbol of seq in order and returns the
// number of bytes written.
func (tw *TokenWriter) WriteSequence(seq *Sequence) (int64, error) {
	var n int64
	buf := tw.buf[:0]
	for sym := range seq.Symbols() {
		buf = binary.NativeEndian.AppendUint16(buf, uint16(sym))
		if len(buf) == cap(buf) {
			nn, err := tw.w.Write(buf)
			n += int64(nn)
			if err != nil {
				return n, err
			}
			buf = buf[:0]
		}
	}
	if len(buf) > 0 {
		nn, err := tw.w.Write(buf)
		n += int64(nn)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// FileCheckpointer writes the token stream to a file. Each checkpoint goes to
// a temporary file in the same directory which is synced and then renamed
// over Path, so a failed checkpoint leaves the previous one intact.
type FileCheckpointer struct {
	Path      string
	ChunkSize int
}

// NewFileCheckpointer returns a FileCheckpointer writing inputPath+TokenFileExt.
func NewFileCheckpointer(inputPath string, chunkSize int) *FileCheckpointer {
	return &FileCheckpointer{Path: inputPath + TokenFileExt, ChunkSize: chunkSize}
}

// Checkpoint implements Checkpointer.
func (fc *FileCheckpointer) Checkpoint(seq *Sequence) error {
	return writeFileAtomic(fc.Path, func(w io.Writer) error {
		_, err := NewTokenWriter(w, fc.ChunkSize).WriteSequence(seq)
		return err
	})
}

// WriteDictionaryFile stores d at path using the same replace-on-success
// discipline as FileCheckpointer.
func WriteDictionaryFile(path string, d *Dictionary) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		_, err := d.WriteTo(w)
		return err
	})
}

func writeFileAtomic(path string, fill func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if err = fill(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
