// Package repl is the interactive minibasic front-end: the command
// loop, program editing by line number, and the session commands
// (RUN, LIST, SAVE and so on).
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"unicode"

	"github.com/garyluck/minibasic/basic"
	"github.com/garyluck/minibasic/config"
	"github.com/oarkflow/log"
)

var errNotSaved = errors.New("Please save the current program first")

const defaultWidth = 80

type Session struct {
	interp   *basic.Interpreter
	src      LineSource
	input    basic.LineReader
	out      io.Writer
	logger   *log.Logger
	prompt   string
	history  bool
	stats    bool
	width    int
	filename string
	exiting  bool
}

type Option func(*Session)

// WithInput sets the channel INPUT statements read from.  By default
// that is the command source itself, when it can serve as one.
func WithInput(input basic.LineReader) Option {
	return func(s *Session) {
		s.input = input
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithConfig applies the prompt, history and statistics settings.
func WithConfig(cfg *config.Config) Option {
	return func(s *Session) {
		s.prompt = cfg.Prompt
		s.history = cfg.History
		s.stats = cfg.Stats
	}
}

// WithWidth sets the screen width used to lay out HELP.
func WithWidth(width int) Option {
	return func(s *Session) {
		if width > 0 {
			s.width = width
		}
	}
}

func New(interp *basic.Interpreter, src LineSource, out io.Writer, opts ...Option) *Session {

	s := &Session{
		interp: interp,
		src:    src,
		out:    out,
		logger: &log.DefaultLogger,
		prompt: config.Defaults().Prompt,
		width:  defaultWidth,
	}

	if lr, ok := src.(basic.LineReader); ok {
		s.input = lr
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Session) Interpreter() *basic.Interpreter {
	return s.interp
}

// Filename is the file the program was last loaded from or saved to.
func (s *Session) Filename() string {
	return s.filename
}

//
// Loop reads and executes lines until EXIT or the end of input.  A
// failed command or a faulted run is reported as "! <message>" and
// the loop carries on
//

func (s *Session) Loop(ctx context.Context) error {

	for !s.exiting {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.src.Prompt(s.prompt)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if s.history {
			s.src.AppendHistory(line)
		}

		if err := s.Execute(ctx, line); err != nil {
			fmt.Fprintf(s.out, "! %s\n", err)
		}
	}

	return nil
}

// Execute handles one line: a numbered line edits the program,
// anything else is a command.
func (s *Session) Execute(ctx context.Context, line string) error {

	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if unicode.IsDigit(rune(line[0])) {
		return s.editLine(line)
	}

	name, arg, _ := strings.Cut(line, " ")
	name = strings.ToUpper(name)
	arg = strings.TrimSpace(arg)

	cmd, ok := lookupCommand(name)
	if !ok {
		return fmt.Errorf("Unknown command %s", name)
	}

	return cmd.run(s, ctx, arg)
}

func (s *Session) editLine(line string) error {

	n, text, err := basic.SplitLine(line)
	if err != nil {
		return err
	}

	if text == "" {
		if !s.interp.Program().Delete(n) {
			return fmt.Errorf("No line %d", n)
		}
		return nil
	}

	return s.interp.Program().Set(n, text)
}

// Exiting reports whether EXIT was accepted.
func (s *Session) Exiting() bool {
	return s.exiting
}

//
// Commands that throw the program away check first, and a modified
// program needs a yes to go ahead
//

func (s *Session) checkModified() error {

	if !s.interp.Program().Modified() {
		return nil
	}

	if !s.promptYesNo("Discard modified program") {
		return errNotSaved
	}

	return nil
}

func (s *Session) promptYesNo(msg string) bool {

	for {
		line, err := s.src.Prompt(fmt.Sprintf("%s (yes/no)? ", msg))
		if err != nil {
			return false
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		default:
			fmt.Fprintln(s.out, "Answer yes or no!")

		case "yes", "y":
			return true

		case "no", "n":
			return false
		}
	}
}

// RunProgram runs the current program once, printing statistics when
// they are enabled.  ^C (SIGINT) interrupts the run.
func (s *Session) RunProgram(ctx context.Context) (basic.Outcome, error) {

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var st *runStats
	if s.stats {
		st = startStats(s.logger)
	}

	o, err := s.interp.Run(ctx, s.input, s.out)

	if st != nil {
		st.print(s.out, o)
	}

	s.logger.Debug().Str("state", o.State.String()).Int("line", o.Line).
		Int("statements", o.Statements).Dur("elapsed", o.Elapsed).Msg("run finished")

	return o, err
}
