package repl

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/garyluck/minibasic/basic"
)

type command struct {
	name    string
	aliases []string
	help    []string
	run     func(s *Session, ctx context.Context, arg string) error
}

var commands []*command

var commandMap map[string]*command

func init() {

	commands = []*command{
		{name: "BYE", aliases: []string{"EXIT", "QUIT"}, run: (*Session).executeBye,
			help: []string{"Exit from minibasic"}},
		{name: "DELETE", run: (*Session).executeDelete,
			help: []string{"Delete a line or a range of lines", "\tdelete 100", "\tdelete 100-200"}},
		{name: "DUMP", run: (*Session).executeDump,
			help: []string{"Dump the parsed form of a line, or the program and variables"}},
		{name: "HELP", run: (*Session).executeHelp,
			help: []string{"List the commands, or describe one"}},
		{name: "LIST", run: (*Session).executeList,
			help: []string{"List the program or a range of lines", "\tlist 100", "\tlist 100-200", "\tlist -200"}},
		{name: "LOAD", aliases: []string{"OLD"}, run: (*Session).executeLoad,
			help: []string{"Load an existing program"}},
		{name: "NEW", run: (*Session).executeNew,
			help: []string{"Erase the current program and variables"}},
		{name: "RUN", run: (*Session).executeRun,
			help: []string{"Execute the current program"}},
		{name: "SAVE", run: (*Session).executeSave,
			help: []string{"Save the current program, optionally specifying a new filename"}},
		{name: "STATS", run: (*Session).executeStats,
			help: []string{"Toggle printing execution statistics when the program stops"}},
		{name: "TRACE", run: (*Session).executeTrace,
			help: []string{"Toggle tracing of line execution or variable changes",
				"\ttrace exec", "\ttrace vars", "\ttrace <variable name>", "\ttrace off"}},
	}

	commandMap = make(map[string]*command)

	for _, c := range commands {
		commandMap[c.name] = c
		for _, a := range c.aliases {
			commandMap[a] = c
		}
	}
}

func lookupCommand(name string) (*command, bool) {

	c, ok := commandMap[strings.ToUpper(name)]

	return c, ok
}

func (s *Session) executeBye(_ context.Context, _ string) error {

	if err := s.checkModified(); err != nil {
		return err
	}

	s.exiting = true

	return nil
}

func (s *Session) executeDelete(_ context.Context, arg string) error {

	if arg == "" {
		return fmt.Errorf("DELETE needs a line or range of lines")
	}

	from, to, err := parseRange(arg)
	if err != nil {
		return err
	}

	prog := s.interp.Program()

	lines := prog.Range(from, to)
	if len(lines) == 0 {
		return fmt.Errorf("No lines in %s", arg)
	}

	for _, l := range lines {
		prog.Delete(l.Number)
	}

	return nil
}

func (s *Session) executeList(_ context.Context, arg string) error {

	from, to := 1, math.MaxInt

	if arg != "" {
		var err error
		if from, to, err = parseRange(arg); err != nil {
			return err
		}
	}

	for _, l := range s.interp.Program().Range(from, to) {
		fmt.Fprintln(s.out, l)
	}

	return nil
}

func (s *Session) executeNew(_ context.Context, _ string) error {

	if err := s.checkModified(); err != nil {
		return err
	}

	s.interp.Reset()
	s.filename = ""

	return nil
}

func (s *Session) executeLoad(_ context.Context, arg string) error {

	if err := s.checkModified(); err != nil {
		return err
	}

	name, err := basic.ProgramFilename(arg)
	if err != nil {
		return err
	}

	p, err := basic.LoadFile(name)
	if err != nil {
		return err
	}

	if p.Len() == 0 {
		fmt.Fprintf(s.out, "File %s is empty?\n", name)
	}

	s.interp.SetProgram(p)
	s.filename = name

	s.logger.Info().Str("file", name).Int("lines", p.Len()).Msg("program loaded")

	return nil
}

//
// 4 cases for SAVE:
//
// No filename given, and a current filename is defined - use that name
// No filename given, and no current filename - error
// A filename was given - save there and make it the current filename
//

func (s *Session) executeSave(_ context.Context, arg string) error {

	name := s.filename

	if arg != "" {
		var err error
		if name, err = basic.ProgramFilename(arg); err != nil {
			return err
		}
	}

	if name == "" {
		return fmt.Errorf("Filename required")
	}

	prog := s.interp.Program()
	if prog.Len() == 0 {
		return basic.ErrNoProgram
	}

	if err := basic.SaveFile(name, prog); err != nil {
		return err
	}

	s.filename = name

	s.logger.Info().Str("file", name).Int("lines", prog.Len()).Msg("program saved")

	return nil
}

func (s *Session) executeRun(ctx context.Context, _ string) error {

	_, err := s.RunProgram(ctx)

	return err
}

func (s *Session) executeStats(_ context.Context, _ string) error {

	s.stats = !s.stats

	fmt.Fprintf(s.out, "Statistics %s\n", switchSetting(s.stats))

	return nil
}

func (s *Session) executeTrace(_ context.Context, arg string) error {

	words := strings.Fields(arg)
	if len(words) == 0 {
		return fmt.Errorf("TRACE needs EXEC, VARS, OFF or a variable name")
	}

	opts := s.interp.Options()

	for _, w := range words {
		switch name := strings.ToUpper(w); name {
		case "EXEC":
			opts.TraceExec = !opts.TraceExec
			fmt.Fprintf(s.out, "toggling traceExec %s\n", switchSetting(opts.TraceExec))

		case "VARS":
			opts.TraceVars = !opts.TraceVars
			fmt.Fprintf(s.out, "toggling traceVars %s\n", switchSetting(opts.TraceVars))

		case "OFF":
			opts.TraceExec = false
			opts.TraceVars = false
			opts.Traced = nil
			fmt.Fprintln(s.out, "Tracing disabled")

		default:
			if !validVariable(name) {
				return fmt.Errorf("%q is not a variable name", w)
			}

			//
			// Tracing specific variables turns off the global
			// variable trace
			//

			opts.TraceVars = false
			opts.Traced = toggled(opts.Traced, name)

			state := "enabled"
			if !opts.Traced[name] {
				state = "disabled"
			}
			fmt.Fprintf(s.out, "Tracing variable %q %s\n", name, state)
		}
	}

	s.interp.SetOptions(opts)

	return nil
}

// toggled copies m with name flipped, so the map handed out by
// Options is never written to.
func toggled(m map[string]bool, name string) map[string]bool {

	n := make(map[string]bool, len(m)+1)
	for k, v := range m {
		if v {
			n[k] = true
		}
	}

	if m[name] {
		delete(n, name)
	} else {
		n[name] = true
	}

	return n
}

func validVariable(name string) bool {

	if name == "" || basic.IsKeyword(name) {
		return false
	}

	for i, c := range name {
		switch {
		case c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '$' || c == '_'):
		default:
			return false
		}
	}

	return true
}

func (s *Session) executeHelp(_ context.Context, arg string) error {

	if arg == "" {
		names := make([]string, len(commands))
		for i, c := range commands {
			names[i] = strings.ToLower(c.name)
		}
		printColumns(s.out, names, s.width)
		return nil
	}

	c, ok := lookupCommand(arg)
	if !ok {
		return fmt.Errorf("No help for %s", arg)
	}

	for _, h := range c.help {
		fmt.Fprintln(s.out, h)
	}

	if len(c.aliases) > 0 {
		fmt.Fprintf(s.out, "\talso: %s\n", strings.ToLower(strings.Join(c.aliases, ", ")))
	}

	return nil
}

// parseRange reads "n", "n-m", "-m" or "n-".
func parseRange(arg string) (int, int, error) {

	lo, hi, isRange := strings.Cut(strings.ReplaceAll(arg, " ", ""), "-")

	from, to := 1, math.MaxInt

	if lo != "" {
		n, err := strconv.Atoi(lo)
		if err != nil || n <= 0 {
			return 0, 0, fmt.Errorf("Illegal line number %q", lo)
		}
		from = n
		if !isRange {
			to = n
		}
	}

	if hi != "" {
		n, err := strconv.Atoi(hi)
		if err != nil || n <= 0 {
			return 0, 0, fmt.Errorf("Illegal line number %q", hi)
		}
		to = n
	}

	if from > to {
		return 0, 0, fmt.Errorf("Illegal range %s", arg)
	}

	return from, to, nil
}

func switchSetting(b bool) string {

	if b {
		return "ON"
	}

	return "OFF"
}
