package basic

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"strings"
)

// Functions resolves builtin function names.  Lookup is by name,
// case-insensitively.  Call fails when the name is unknown or when the
// function rejects its arguments.
type Functions interface {
	Has(name string) bool
	Call(env Env, name string, args []Value) (Value, error)
}

// Env is what a running program exposes to builtin functions: the
// shared random source (reseeded by RANDOMIZE), the output sink for
// console effects, and the run's context for blocking builtins.
type Env interface {
	Rand() *rand.Rand
	Output() io.Writer
	Context() context.Context
}

// LineReader is the blocking input channel INPUT reads from.  It
// returns io.EOF once the stream is closed.
type LineReader interface {
	ReadLine() (string, error)
}

// PromptReader is implemented by a LineReader that draws its own
// prompt, like a line editor does.  INPUT hands it the prompt instead
// of writing the prompt to the output.
type PromptReader interface {
	PromptLine(prompt string) (string, error)
}

type readerLines struct {
	r *bufio.Reader
}

// NewLineReader adapts an io.Reader, splitting on '\n' and dropping
// the line terminator (including a '\r').
func NewLineReader(r io.Reader) LineReader {
	return &readerLines{r: bufio.NewReader(r)}
}

func (rl *readerLines) ReadLine() (string, error) {

	s, err := rl.r.ReadString('\n')
	if err == io.EOF && s != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}

	return strings.TrimRight(s, "\r\n"), nil
}

// noFunctions is used when a host runs programs without a registry.
type noFunctions struct{}

func (noFunctions) Has(string) bool {
	return false
}

func (noFunctions) Call(_ Env, name string, _ []Value) (Value, error) {
	return Value{}, runtimeErrorf(ErrUnknownFunction, "%s", name)
}
