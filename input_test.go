package bpe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in")
	want := []byte("hello\x00world")
	require.NoError(t, os.WriteFile(path, want, 0o644))
	got, err := ReadInput(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	got, err = ReadInput(empty)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadInputMissing(t *testing.T) {
	_, err := ReadInput(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, ErrInputUnavailable)
	require.ErrorIs(t, err, os.ErrNotExist)
}
