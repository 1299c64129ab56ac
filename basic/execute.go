package basic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	gosubStackMax = 1000
	forStackMax   = 1000
)

// State is how a run terminated.
type State uint8

const (
	StateCompleted State = iota // ran off the end of the program
	StateEnded                  // END or STOP
	StateFaulted
)

var stateNames = [...]string{
	StateCompleted: "completed",
	StateEnded:     "ended",
	StateFaulted:   "faulted",
}

func (s State) String() string {
	return stateNames[s]
}

// Outcome summarizes one run.  Line is the line that was executing when
// the run stopped (0 if no line ran), Statements the number of
// statements executed.
type Outcome struct {
	State      State
	Line       int
	Err        error
	Statements int
	Elapsed    time.Duration
}

// Options are the interpreter's debugging switches.
type Options struct {
	TraceVars   bool            // report every variable change
	TraceExec   bool            // print [n] as each line starts
	Traced      map[string]bool // report changes to these variables only
	InputPrompt bool            // prompt "? NAME = " before INPUT
	MaxSteps    int             // statement budget per run, 0 for none
}

//
// An Interpreter is one BASIC session: the program being edited plus
// the variables, which survive from one RUN to the next until NEW or
// LOAD.  Interpreters share nothing, so a host may run several at once,
// but a single Interpreter runs one program at a time
//

type Interpreter struct {
	prog  *Program
	store *Store
	fns   Functions
	rng   *rand.Rand
	opts  Options
}

func New(fns Functions, opts Options) *Interpreter {

	if fns == nil {
		fns = noFunctions{}
	}

	return &Interpreter{
		prog:  NewProgram(),
		store: NewStore(),
		fns:   fns,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		opts:  opts,
	}
}

func (in *Interpreter) Program() *Program {
	return in.prog
}

func (in *Interpreter) Store() *Store {
	return in.store
}

func (in *Interpreter) Functions() Functions {
	return in.fns
}

func (in *Interpreter) Options() Options {
	return in.opts
}

func (in *Interpreter) SetOptions(opts Options) {
	in.opts = opts
}

// Reset is NEW: it discards the program and all variables.
func (in *Interpreter) Reset() {

	in.prog.Clear()
	in.store.Clear()
}

// SetProgram is LOAD: it installs p and discards all variables.
func (in *Interpreter) SetProgram(p *Program) {

	basicAssert(p != nil, "nil program")

	in.prog = p
	in.store.Clear()
}

// Compiled is a program parsed up front: one statement tree per line,
// in line order, plus an index from line number to position.
type Compiled struct {
	Lines []int
	Stmts []Stmt
	index map[int]int
}

// Compile parses every line.  The first lex or parse error aborts the
// whole program, stamped with its line number.
func Compile(lines []Line, fns Functions) (*Compiled, error) {

	c := &Compiled{
		Lines: make([]int, 0, len(lines)),
		Stmts: make([]Stmt, 0, len(lines)),
		index: make(map[int]int, len(lines)),
	}

	for _, l := range lines {
		stmt, err := ParseLine(l.Text, fns)
		if err != nil {
			return nil, atLine(err, l.Number)
		}

		basicAssert(len(c.Lines) == 0 || l.Number > c.Lines[len(c.Lines)-1],
			"program lines out of order")

		c.index[l.Number] = len(c.Lines)
		c.Lines = append(c.Lines, l.Number)
		c.Stmts = append(c.Stmts, stmt)
	}

	return c, nil
}

// Lookup returns the statement tree for a line.
func (c *Compiled) Lookup(line int) (Stmt, bool) {

	i, ok := c.index[line]
	if !ok {
		return nil, false
	}

	return c.Stmts[i], true
}

// Run compiles the program and executes it from the lowest line.  The
// returned error is the same as Outcome.Err.
func (in *Interpreter) Run(ctx context.Context, input LineReader, out io.Writer) (Outcome, error) {

	start := time.Now()

	if in.prog.Len() == 0 {
		return Outcome{State: StateFaulted, Err: ErrNoProgram}, ErrNoProgram
	}

	code, err := Compile(in.prog.Lines(), in.fns)
	if err != nil {
		o := Outcome{State: StateFaulted, Line: errorLine(err), Err: err, Elapsed: time.Since(start)}
		return o, err
	}

	rs := &runState{
		interp: in,
		vars:   in.store,
		fns:    in.fns,
		code:   code,
		ctx:    ctx,
		input:  input,
		out:    out,
	}

	o := rs.run()
	o.Elapsed = time.Since(start)

	return o, o.Err
}

// Run executes prog once with a fresh set of variables.
func Run(prog *Program, input LineReader, out io.Writer, fns Functions) (Outcome, error) {

	basicAssert(prog != nil, "nil program")

	in := New(fns, Options{})
	in.prog = prog

	return in.Run(context.Background(), input, out)
}

func errorLine(err error) int {

	var lexErr *LexError
	var parseErr *ParseError
	var rtErr *RuntimeError

	switch {
	case errors.As(err, &lexErr):
		return lexErr.Line
	case errors.As(err, &parseErr):
		return parseErr.Line
	case errors.As(err, &rtErr):
		return rtErr.Line
	}

	return 0
}

//
// Per-run state.  The variables belong to the Interpreter; everything
// else (position, the GOSUB and FOR stacks) lives and dies with the run
//

type forFrame struct {
	name   string
	end    float64
	step   float64
	resume int
}

type runState struct {
	interp *Interpreter
	vars   *Store
	fns    Functions
	code   *Compiled
	ctx    context.Context
	input  LineReader
	out    io.Writer

	pc     int
	steps  int
	gosubs []int
	fors   []forFrame
}

// Env

func (rs *runState) Rand() *rand.Rand {
	return rs.interp.rng
}

func (rs *runState) Output() io.Writer {
	return rs.out
}

func (rs *runState) Context() context.Context {
	return rs.ctx
}

//
// What a statement asks the driving loop to do next
//

type flowKind uint8

const (
	flowNext flowKind = iota
	flowJump
	flowStop
)

type flow struct {
	kind flowKind
	line int
}

var (
	next = flow{kind: flowNext}
	stop = flow{kind: flowStop}
)

func jump(line int) flow {
	return flow{kind: flowJump, line: line}
}

func (rs *runState) run() Outcome {

	var o Outcome

	for rs.pc < len(rs.code.Lines) {
		line := rs.code.Lines[rs.pc]
		o.Line = line

		if err := rs.ctx.Err(); err != nil {
			o.State, o.Err = StateFaulted, atLine(fmt.Errorf("%w: %v", ErrInterrupted, err), line)
			break
		}

		if rs.interp.opts.TraceExec {
			fmt.Fprintf(rs.out, "[%d] ", line)
		}

		f, err := rs.exec(rs.code.Stmts[rs.pc])
		if err != nil {
			o.State, o.Err = StateFaulted, atLine(err, line)
			break
		}

		if f.kind == flowStop {
			o.State = StateEnded
			break
		}

		if f.kind == flowJump {
			target, ok := rs.code.index[f.line]
			if !ok {
				o.State, o.Err = StateFaulted, atLine(runtimeErrorf(ErrNoSuchLine, "%d", f.line), line)
				break
			}
			rs.pc = target
			continue
		}

		rs.pc++
	}

	o.Statements = rs.steps

	return o
}

// nextLine returns the line following the current one, for GOSUB and
// FOR to come back to.
func (rs *runState) nextLine() (int, error) {

	if rs.pc+1 >= len(rs.code.Lines) {
		return 0, ErrLastLine
	}

	return rs.code.Lines[rs.pc+1], nil
}

func (rs *runState) exec(s Stmt) (flow, error) {

	if seq, ok := s.(*Seq); ok {
		for _, s := range seq.Stmts {
			f, err := rs.exec(s)
			if err != nil || f.kind != flowNext {
				return f, err
			}
		}
		return next, nil
	}

	rs.steps++
	if limit := rs.interp.opts.MaxSteps; limit > 0 && rs.steps > limit {
		return next, runtimeErrorf(ErrStepLimit, "%d statements", limit)
	}

	switch s := s.(type) {
	case *Rem:
		return next, nil

	case *Print:
		return next, rs.execPrint(s)

	case *Assign:
		return next, rs.execAssign(s)

	case *Input:
		return next, rs.execInput(s)

	case *If:
		cond, err := rs.eval(s.Cond)
		if err != nil || !cond.Truth() {
			return next, err
		}
		if s.Then == nil {
			return jump(s.Line), nil
		}
		return rs.exec(s.Then)

	case *Goto:
		return jump(s.Line), nil

	case *Gosub:
		resume, err := rs.nextLine()
		if err != nil {
			return next, runtimeErrorf(err, "GOSUB %d", s.Line)
		}
		if len(rs.gosubs) >= gosubStackMax {
			return next, runtimeErrorf(ErrStackOverflow, "GOSUB nested deeper than %d", gosubStackMax)
		}
		rs.gosubs = append(rs.gosubs, resume)
		return jump(s.Line), nil

	case *Return:
		if len(rs.gosubs) == 0 {
			return next, ErrReturnWithoutGosub
		}
		resume := rs.gosubs[len(rs.gosubs)-1]
		rs.gosubs = rs.gosubs[:len(rs.gosubs)-1]
		return jump(resume), nil

	case *For:
		return next, rs.execFor(s)

	case *Next:
		return rs.execNext(s)

	case *Dim:
		return next, rs.execDim(s)

	case *Randomize:
		return next, rs.execRandomize(s)

	case *End:
		return stop, nil

	case *CallStmt:
		_, err := rs.call(s.Call)
		return next, err
	}

	basicAssert(false, fmt.Sprintf("unexpected statement node %T", s))

	return next, nil
}

func (rs *runState) execPrint(s *Print) error {

	var sb strings.Builder

	for i, item := range s.Items {
		v, err := rs.eval(item)
		if err != nil {
			return err
		}

		sb.WriteString(v.AsString())

		if i < len(s.Seps) && s.Seps[i] == ',' {
			sb.WriteByte(' ')
		}
	}

	sb.WriteByte('\n')

	_, err := io.WriteString(rs.out, sb.String())

	return err
}

func (rs *runState) execAssign(s *Assign) error {

	v, err := rs.eval(s.Expr)
	if err != nil {
		return err
	}

	return rs.assign(s.Target, v)
}

func (rs *runState) assign(target LValue, v Value) error {

	if len(target.Index) == 0 {
		rs.setScalar(target.Name, v)
		return nil
	}

	idx, err := rs.evalIndex(target.Index)
	if err != nil {
		return err
	}

	old, err := rs.vars.Elem(target.Name, idx)
	if err != nil {
		return err
	}

	if err := rs.vars.SetElem(target.Name, idx, v); err != nil {
		return err
	}

	if rs.tracing(target.Name) {
		nv, _ := rs.vars.Elem(target.Name, idx)
		rs.traceVar(target.Name+"("+joinInts(idx)+")", old, nv)
	}

	return nil
}

func (rs *runState) setScalar(name string, v Value) {

	if rs.tracing(name) {
		rs.traceVar(name, rs.vars.Get(name), v)
	}

	rs.vars.Set(name, v)
}

func (rs *runState) tracing(name string) bool {

	opts := &rs.interp.opts

	return opts.TraceVars || opts.Traced[name]
}

func (rs *runState) traceVar(name string, oval, nval Value) {
	fmt.Fprintf(rs.out, "Variable %s changed from %s to %s\n", name, oval, nval)
}

func (rs *runState) execInput(s *Input) error {

	var prompt string
	if rs.interp.opts.InputPrompt {
		prompt = fmt.Sprintf("? %s = ", s.Name)
	}

	pr, drawsPrompt := rs.input.(PromptReader)
	if !drawsPrompt {
		io.WriteString(rs.out, prompt)
	}

	var text string
	var err error

	switch {
	case rs.input == nil:
		err = io.EOF
	case drawsPrompt:
		text, err = pr.PromptLine(prompt)
	default:
		text, err = rs.input.ReadLine()
	}

	isString := strings.HasSuffix(s.Name, "$")

	//
	// A closed input leaves string variables empty; numeric variables
	// have no value to take, so that is a fault
	//

	if errors.Is(err, io.EOF) {
		if !isString {
			return ErrEndOfInput
		}
		text, err = "", nil
	}
	if err != nil {
		return err
	}

	if isString {
		rs.setScalar(s.Name, String(text))
		return nil
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return runtimeErrorf(ErrIllegalNumber, "%q for %s", text, s.Name)
	}

	rs.setScalar(s.Name, Number(f))

	return nil
}

func (rs *runState) evalNumber(e Expr, what string) (float64, error) {

	v, err := rs.eval(e)
	if err != nil {
		return 0, err
	}

	if v.IsString() {
		return 0, runtimeErrorf(ErrTypeMismatch, "%s must be numeric", what)
	}

	return v.AsNumber(), nil
}

//
// FOR evaluates its bounds once, sets the variable and pushes a frame.
// The body always runs at least once; the test happens at NEXT.  A FOR
// for a variable that already has a frame (the loop was left with a
// GOTO and entered again) discards that frame and any inside it
//

func (rs *runState) execFor(s *For) error {

	start, err := rs.evalNumber(s.Start, "FOR start")
	if err != nil {
		return err
	}

	end, err := rs.evalNumber(s.End, "FOR limit")
	if err != nil {
		return err
	}

	step := 1.0
	if s.Step != nil {
		if step, err = rs.evalNumber(s.Step, "FOR step"); err != nil {
			return err
		}
	}

	resume, err := rs.nextLine()
	if err != nil {
		return runtimeErrorf(err, "FOR %s", s.Var)
	}

	for i := len(rs.fors) - 1; i >= 0; i-- {
		if rs.fors[i].name == s.Var {
			rs.fors = rs.fors[:i]
			break
		}
	}

	if len(rs.fors) >= forStackMax {
		return runtimeErrorf(ErrStackOverflow, "FOR nested deeper than %d", forStackMax)
	}

	rs.setScalar(s.Var, Number(start))

	rs.fors = append(rs.fors, forFrame{name: s.Var, end: end, step: step, resume: resume})

	return nil
}

func (rs *runState) execNext(s *Next) (flow, error) {

	if len(rs.fors) == 0 {
		return next, runtimeErrorf(ErrNextWithoutFor, "NEXT %s", s.Var)
	}

	top := &rs.fors[len(rs.fors)-1]
	if top.name != s.Var {
		return next, runtimeErrorf(ErrNextMismatch, "NEXT %s, expected NEXT %s", s.Var, top.name)
	}

	cur := rs.vars.Get(top.name).AsNumber() + top.step
	rs.setScalar(top.name, Number(cur))

	more := cur <= top.end
	if top.step < 0 {
		more = cur >= top.end
	}

	if more {
		return jump(top.resume), nil
	}

	rs.fors = rs.fors[:len(rs.fors)-1]

	return next, nil
}

func (rs *runState) execDim(s *Dim) error {

	for _, spec := range s.Arrays {
		dims := make([]int, len(spec.Dims))

		for i, e := range spec.Dims {
			f, err := rs.evalNumber(e, "array dimension")
			if err != nil {
				return err
			}
			dims[i] = floorInt(f)
		}

		if err := rs.vars.Dim(spec.Name, dims); err != nil {
			return err
		}
	}

	return nil
}

func (rs *runState) execRandomize(s *Randomize) error {

	if s.Seed == nil {
		rs.interp.rng.Seed(time.Now().UnixNano())
		return nil
	}

	seed, err := rs.evalNumber(s.Seed, "RANDOMIZE seed")
	if err != nil {
		return err
	}

	rs.interp.rng.Seed(int64(seed))

	return nil
}
