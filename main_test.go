package bpe

import (
	"fmt"
	"os"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
)

func TestMain(m *testing.M) {
	logger.New("NOOP")
	code := m.Run()
	logger.OnExit()
	os.Exit(code)
}

func testLogger() logger.Logger { return logger.Sugar.WithServiceName("bpe-test") }

// captureLogger records Infof lines and forwards everything else.
type captureLogger struct {
	logger.Logger
	infos []string
}

func (c *captureLogger) Infof(format string, args ...any) {
	c.infos = append(c.infos, fmt.Sprintf(format, args...))
}

// symbols converts raw values to a Symbol slice.
func symbols(vals ...int) []Symbol {
	out := make([]Symbol, len(vals))
	for i, v := range vals {
		out[i] = Symbol(v)
	}
	return out
}
