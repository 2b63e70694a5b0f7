// Command bpe builds a byte-pair-encoding vocabulary for a file.
//
// Usage:
//
//	bpe [flags] [input-file]
//
// The token stream is written to input-file.rtok as native-endian uint16
// values, replaced every -checkpoint-every merges and once more at the end.
// With -dict the dictionary is also written to input-file.rdict as CBOR.
// The input defaults to "enw3".
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/axiomhq/bpe"
	"github.com/datatrails/go-datatrails-common/logger"
)

const defaultInput = "enw3"

type options struct {
	input    string
	cfg      bpe.Config
	dict     bool
	logLevel string
}

func parseArgs(args []string) (options, error) {
	opts := options{cfg: bpe.DefaultConfig()}
	fs := flag.NewFlagSet("bpe", flag.ContinueOnError)
	fs.IntVar(&opts.cfg.MaxSteps, "steps", opts.cfg.MaxSteps, "maximum number of `merges`")
	fs.IntVar(&opts.cfg.CheckpointEvery, "checkpoint-every", opts.cfg.CheckpointEvery, "write the token file every `n` merges")
	fs.IntVar(&opts.cfg.ProgressEvery, "progress-every", opts.cfg.ProgressEvery, "log progress every `n` merges (0 disables)")
	fs.Float64Var(&opts.cfg.CompactRatio, "compact-ratio", opts.cfg.CompactRatio, "compact when live pairs fall below this `ratio` of slots")
	fs.IntVar(&opts.cfg.ChunkSize, "chunk", opts.cfg.ChunkSize, "`symbols` buffered per write")
	fs.BoolVar(&opts.dict, "dict", false, "also write the dictionary to input-file"+bpe.DictionaryFileExt)
	fs.StringVar(&opts.logLevel, "log-level", "INFO", "log `level`")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	switch fs.NArg() {
	case 0:
		opts.input = defaultInput
	case 1:
		opts.input = fs.Arg(0)
	default:
		fs.Usage()
		return opts, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}
	return opts, opts.cfg.Validate()
}

func run(opts options, log logger.Logger) error {
	input, err := bpe.ReadInput(opts.input)
	if err != nil {
		return err
	}
	log.Infof("read %d bytes from %s", len(input), opts.input)

	tr, err := bpe.NewTrainer(opts.cfg, log, input)
	if err != nil {
		return err
	}
	if err := tr.Run(bpe.NewFileCheckpointer(opts.input, opts.cfg.ChunkSize)); err != nil {
		return err
	}
	if opts.dict {
		if err := bpe.WriteDictionaryFile(opts.input+bpe.DictionaryFileExt, tr.Dictionary()); err != nil {
			return err
		}
	}

	st := tr.Stats()
	log.Infof("%d merges, %d compactions, %d failed checkpoints", st.Steps, st.Compactions, st.FailedCheckpoints)
	log.Infof("%d code units = %d bytes, originally %d", st.Live, 2*st.Live, len(input))
	log.Infof("%d dictionary entries", st.Entries)
	return nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger.New(opts.logLevel)
	log := logger.Sugar.WithServiceName("bpe")
	err = run(opts, log)
	if err != nil {
		log.Errorf("%v", err)
	}
	logger.OnExit()
	if err != nil {
		os.Exit(1)
	}
}
