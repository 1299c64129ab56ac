package repl

import (
	"io"

	"github.com/oarkflow/log"
)

// NewLogger builds the front-end logger: leveled, human-readable lines
// on w.  level is one of debug, info, warn or error.
func NewLogger(level string, w io.Writer) *log.Logger {

	return &log.Logger{
		Level:  log.ParseLevel(level),
		Writer: &log.ConsoleWriter{Writer: w},
	}
}
