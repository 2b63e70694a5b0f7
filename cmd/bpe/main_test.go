package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/axiomhq/bpe"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsDefaults(t *testing.T) {
	opts, err := parseArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultInput, opts.input)
	assert.Equal(t, bpe.DefaultConfig(), opts.cfg)
	assert.False(t, opts.dict)
	assert.Equal(t, "INFO", opts.logLevel)
}

func TestParseArgsFlags(t *testing.T) {
	opts, err := parseArgs([]string{"-steps", "10", "-checkpoint-every", "2", "-compact-ratio", "0.5", "-dict", "corpus.txt"})
	require.NoError(t, err)
	assert.Equal(t, "corpus.txt", opts.input)
	assert.Equal(t, 10, opts.cfg.MaxSteps)
	assert.Equal(t, 2, opts.cfg.CheckpointEvery)
	assert.Equal(t, 0.5, opts.cfg.CompactRatio)
	assert.True(t, opts.dict)
}

func TestParseArgsRejects(t *testing.T) {
	_, err := parseArgs([]string{"a", "b"})
	require.Error(t, err)
	_, err = parseArgs([]string{"-compact-ratio", "2", "a"})
	require.ErrorIs(t, err, bpe.ErrInvalidConfig)
}

func TestRun(t *testing.T) {
	logger.New("NOOP")
	defer logger.OnExit()

	input := filepath.Join(t.TempDir(), "abab")
	require.NoError(t, os.WriteFile(input, []byte("ABABABAB"), 0o644))
	opts, err := parseArgs([]string{"-dict", input})
	require.NoError(t, err)
	require.NoError(t, run(opts, logger.Sugar))

	out, err := os.ReadFile(input + bpe.TokenFileExt)
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, uint16(257), binary.NativeEndian.Uint16(out[0:]))
	assert.Equal(t, uint16(257), binary.NativeEndian.Uint16(out[2:]))

	f, err := os.Open(input + bpe.DictionaryFileExt)
	require.NoError(t, err)
	defer f.Close()
	var d bpe.Dictionary
	_, err = d.ReadFrom(f)
	require.NoError(t, err)
	exp, ok := d.Lookup(257)
	require.True(t, ok)
	assert.Equal(t, []byte("ABAB"), exp)
}

func TestRunMissingInput(t *testing.T) {
	logger.New("NOOP")
	defer logger.OnExit()

	opts, err := parseArgs([]string{filepath.Join(t.TempDir(), "missing")})
	require.NoError(t, err)
	err = run(opts, logger.Sugar)
	require.ErrorIs(t, err, bpe.ErrInputUnavailable)
	_, statErr := os.Stat(opts.input + bpe.TokenFileExt)
	assert.True(t, os.IsNotExist(statErr), "no output before input is read")
}
