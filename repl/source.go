package repl

import (
	"io"

	"github.com/garyluck/minibasic/basic"
)

//
// A LineSource is where the command loop reads from.  The terminal
// front-end implements it with line editing and history; scripts and
// tests use a plain reader.  Prompt returns io.EOF once there is no
// more input
//

type LineSource interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
}

// ReaderSource reads commands from any io.Reader.  It is also the
// program's INPUT channel, so commands and INPUT data share one buffer
// and are consumed in order.
type ReaderSource struct {
	basic.LineReader
	echo io.Writer
}

// NewReaderSource reads lines from r.  If echo is not nil, prompts are
// written to it.
func NewReaderSource(r io.Reader, echo io.Writer) *ReaderSource {
	return &ReaderSource{LineReader: basic.NewLineReader(r), echo: echo}
}

func (rs *ReaderSource) Prompt(prompt string) (string, error) {

	if rs.echo != nil && prompt != "" {
		io.WriteString(rs.echo, prompt)
	}

	return rs.ReadLine()
}

func (rs *ReaderSource) AppendHistory(string) {}
