package repl

import (
	"fmt"
	"io"

	"github.com/danswartzendruber/liner"
	"github.com/garyluck/minibasic/basic"
)

// maxLineLen bounds a line typed at the terminal.
const maxLineLen = 4096

//
// Terminal is the interactive front-end.  It holds two Liner instances,
// one for commands (with a scrollback history) and one for INPUT
// statements (without).  They are created and closed in LIFO order,
// since Close restores the terminal to the state it found it in: the
// terminal goes normal => raw => raw on the way in, and must go
// raw => raw => normal on the way out
//

type Terminal struct {
	commands *liner.State
	input    *liner.State
}

func NewTerminal() *Terminal {

	t := &Terminal{}

	t.commands = newLiner()
	t.input = newLiner()

	return t
}

func newLiner() *liner.State {

	l := liner.NewLiner()

	l.SetMultiLineMode(false)

	return l
}

// Close restores the terminal.  It is safe to call more than once.
func (t *Terminal) Close() {

	closeLiner(&t.input)
	closeLiner(&t.commands)
}

func closeLiner(l **liner.State) {

	if *l != nil {
		(*l).Close()
		*l = nil
	}
}

// Prompt reads a command.  ^C at the prompt just abandons the line.
func (t *Terminal) Prompt(prompt string) (string, error) {

	s, err := t.commands.Prompt(prompt)

	switch {
	case err == liner.ErrPromptAborted:
		return "", nil

	case err != nil:
		return "", readError(err)
	}

	return s, nil
}

func (t *Terminal) AppendHistory(line string) {
	t.commands.AppendHistory(line)
}

//
// PromptLine reads one INPUT response, with the prompt drawn by the
// line editor so that it survives the redraw.  Here ^C interrupts the
// running program, the same as ^C while it computes
//

func (t *Terminal) PromptLine(prompt string) (string, error) {

	s, err := t.input.Prompt(prompt)

	switch {
	case err == liner.ErrPromptAborted:
		return "", basic.ErrInterrupted

	case err != nil:
		return "", readError(err)
	}

	if len(s) > maxLineLen {
		return "", fmt.Errorf("input line longer than %d characters", maxLineLen)
	}

	return s, nil
}

func (t *Terminal) ReadLine() (string, error) {
	return t.PromptLine("")
}

func readError(err error) error {

	switch err {
	case io.EOF:
		return io.EOF

	case liner.ErrTimedOut:
		return fmt.Errorf("terminal read timed out")
	}

	return fmt.Errorf("terminal read: %w", err)
}
