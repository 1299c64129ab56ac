package repl

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/garyluck/minibasic/basic"
	"github.com/goforj/godump"
)

// dump writes a pretty-printed value to w.
var dump = func(w io.Writer, v any) {
	godump.Fdump(w, v)
}

// LineDump is the parsed form of one program line.
type LineDump struct {
	Line int
	Text string
	Stmt basic.Stmt
}

// VariableDump is the run state left behind by the last run.
type VariableDump struct {
	Scalars map[string]basic.Value
	Arrays  map[string][]int
}

func (s *Session) executeDump(_ context.Context, arg string) error {

	if arg == "" {
		if err := DumpProgram(s.out, s.interp.Program(), s.interp.Functions()); err != nil {
			return err
		}
		dump(s.out, variables(s.interp.Store()))
		return nil
	}

	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return fmt.Errorf("Illegal line number %q", arg)
	}

	text, ok := s.interp.Program().Lookup(n)
	if !ok {
		return fmt.Errorf("No line %d", n)
	}

	stmt, err := basic.ParseLine(text, s.interp.Functions())
	if err != nil {
		return err
	}

	dump(s.out, LineDump{Line: n, Text: text, Stmt: stmt})

	return nil
}

// DumpProgram compiles p and dumps every line's statement tree to w.
func DumpProgram(w io.Writer, p *basic.Program, fns basic.Functions) error {

	if p.Len() == 0 {
		return basic.ErrNoProgram
	}

	code, err := basic.Compile(p.Lines(), fns)
	if err != nil {
		return err
	}

	lines := make([]LineDump, len(code.Lines))
	for i, n := range code.Lines {
		text, _ := p.Lookup(n)
		lines[i] = LineDump{Line: n, Text: text, Stmt: code.Stmts[i]}
	}

	dump(w, lines)

	return nil
}

func variables(store *basic.Store) VariableDump {

	vd := VariableDump{
		Scalars: make(map[string]basic.Value),
		Arrays:  make(map[string][]int),
	}

	for _, name := range store.Scalars() {
		vd.Scalars[name] = store.Get(name)
	}

	for _, name := range store.Arrays() {
		vd.Arrays[name] = store.Array(name).Dims()
	}

	return vd
}

//
// Lay out words in as many columns as fit the screen width, in
// column-major order
//

func printColumns(w io.Writer, words []string, width int) {

	if len(words) == 0 {
		return
	}

	colWidth := 0
	for _, word := range words {
		colWidth = max(colWidth, len(word))
	}
	colWidth += 2

	cols := max(1, width/colWidth)
	rows := (len(words) + cols - 1) / cols

	for r := 0; r < rows; r++ {
		var sb strings.Builder
		for c := 0; c < cols; c++ {
			i := c*rows + r
			if i >= len(words) {
				break
			}
			if c < cols-1 && i+rows < len(words) {
				fmt.Fprintf(&sb, "%-*s", colWidth, words[i])
			} else {
				sb.WriteString(words[i])
			}
		}
		fmt.Fprintln(w, sb.String())
	}
}
