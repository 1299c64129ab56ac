package basic

import (
	"strconv"
	"strings"
)

// Parser builds the statement tree for one program line.  It needs
// the function registry to tell a builtin call from an array
// reference, since both are NAME(...).
type Parser struct {
	lx  *Lexer
	fns Functions
}

// ParseLine parses one line's source text.  The whole text must be
// consumed; leftovers are a parse error.
func ParseLine(text string, fns Functions) (Stmt, error) {

	if fns == nil {
		fns = noFunctions{}
	}

	p := &Parser{lx: NewLexer(text), fns: fns}

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	if p.lx.HasMore() {
		return nil, parseErrorf("Unexpected text %q", p.lx.Remaining())
	}

	return stmt, nil
}

//
// Token helpers.  expect and friends turn lexer and parse failures
// into a single error return, so the grammar functions read top-down
//

func (p *Parser) peek() (Token, error) {
	return p.lx.Peek()
}

func (p *Parser) next() (Token, error) {
	return p.lx.Next()
}

// accept consumes the next token if it is s.
func (p *Parser) accept(s string) (bool, error) {

	t, err := p.peek()
	if err != nil {
		return false, err
	}

	if !t.is(s) {
		return false, nil
	}

	_, err = p.next()

	return true, err
}

func (p *Parser) expect(s string) error {

	t, err := p.next()
	if err != nil {
		return err
	}

	if !t.is(s) {
		return parseErrorf("Expected %q, got %s", s, t)
	}

	return nil
}

func (p *Parser) expectIdent() (string, error) {

	t, err := p.next()
	if err != nil {
		return "", err
	}

	if t.Kind != TokIdent {
		return "", parseErrorf("Expected variable, got %s", t)
	}

	return strings.ToUpper(t.Text), nil
}

//
// expectLineNumber reads a jump target: an integer literal, optionally
// negative.  Whether the line exists is only known when the jump is
// taken, so GOTO 0 parses and faults at run time
//

func (p *Parser) expectLineNumber() (int, error) {

	neg, err := p.accept("-")
	if err != nil {
		return 0, err
	}

	t, err := p.next()
	if err != nil {
		return 0, err
	}

	n, ok := lineNumber(t)
	if !ok {
		return 0, parseErrorf("Expected line number, got %s", t)
	}

	if neg {
		n = -n
	}

	return n, nil
}

func lineNumber(t Token) (int, bool) {

	if t.Kind != TokNumber {
		return 0, false
	}

	n, err := strconv.Atoi(t.Text)
	if err != nil {
		return 0, false
	}

	return n, true
}

// atStatementEnd is true at end of line or before a ':' separator.
func (p *Parser) atStatementEnd() (bool, error) {

	t, err := p.peek()
	if err != nil {
		return false, err
	}

	return t.Kind == TokEOF || t.is(":"), nil
}

//
// Statements
//

func (p *Parser) parseStatement() (Stmt, error) {

	first, err := p.parseSingleStatement()
	if err != nil {
		return nil, err
	}

	stmts := []Stmt{first}

	for {
		ok, err := p.accept(":")
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		s, err := p.parseSingleStatement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, s)
	}

	if len(stmts) == 1 {
		return first, nil
	}

	return &Seq{Stmts: stmts}, nil
}

func (p *Parser) parseSingleStatement() (Stmt, error) {

	t, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch t.Kind {
	case TokEOF:
		return &Rem{}, nil

	case TokPunct:
		if t.is(":") {
			return &Rem{}, nil
		}
		fallthrough

	case TokNumber, TokString:
		return nil, parseErrorf("Unknown statement %s", t)
	}

	keyword := strings.ToUpper(t.Text)

	if keyword == "REM" {
		p.next()
		return &Rem{Text: strings.TrimSpace(p.lx.SkipRest())}, nil
	}

	if parse, ok := statementParsers[keyword]; ok {
		p.next()
		return parse(p, keyword)
	}

	//
	// Not a keyword: either a builtin called for its side effects, or
	// an assignment without LET
	//

	name := keyword
	p.next()

	la, err := p.peek()
	if err != nil {
		return nil, err
	}

	if la.is("(") && p.fns.Has(name) {
		call, err := p.parseCallArgs(name)
		if err != nil {
			return nil, err
		}
		return &CallStmt{Call: call}, nil
	}

	return p.parseAssignmentTo(name)
}

type statementParser func(p *Parser, keyword string) (Stmt, error)

var statementParsers map[string]statementParser

func init() {

	statementParsers = map[string]statementParser{
		"PRINT":     (*Parser).parsePrint,
		"LET":       (*Parser).parseLet,
		"INPUT":     (*Parser).parseInput,
		"IF":        (*Parser).parseIf,
		"GOTO":      (*Parser).parseGoto,
		"GOSUB":     (*Parser).parseGosub,
		"RETURN":    (*Parser).parseReturn,
		"FOR":       (*Parser).parseFor,
		"NEXT":      (*Parser).parseNext,
		"DIM":       (*Parser).parseDim,
		"RANDOMIZE": (*Parser).parseRandomize,
		"END":       (*Parser).parseEnd,
		"STOP":      (*Parser).parseEnd,
	}
}

// IsKeyword reports whether name starts a statement.
func IsKeyword(name string) bool {

	name = strings.ToUpper(name)
	_, ok := statementParsers[name]

	return ok || name == "REM"
}

func (p *Parser) parsePrint(string) (Stmt, error) {

	stmt := &Print{}

	// A bare PRINT just ends the output line

	end, err := p.atStatementEnd()
	if err != nil || end {
		return stmt, err
	}

	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Items = append(stmt.Items, e)

		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if !t.is(";") && !t.is(",") {
			return stmt, nil
		}

		p.next()
		stmt.Seps = append(stmt.Seps, t.Text[0])
	}
}

func (p *Parser) parseLet(string) (Stmt, error) {

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	return p.parseAssignmentTo(name)
}

// parseAssignmentTo parses the rest of an assignment whose target
// name has already been consumed.
func (p *Parser) parseAssignmentTo(name string) (Stmt, error) {

	target := LValue{Name: name}

	la, err := p.peek()
	if err != nil {
		return nil, err
	}

	if la.is("(") {
		p.next()
		if target.Index, err = p.parseExprList(")"); err != nil {
			return nil, err
		}
	}

	if err := p.expect("="); err != nil {
		return nil, err
	}

	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Assign{Target: target, Expr: rhs}, nil
}

func (p *Parser) parseInput(string) (Stmt, error) {

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	return &Input{Name: name}, nil
}

func (p *Parser) parseIf(string) (Stmt, error) {

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.expect("THEN"); err != nil {
		return nil, err
	}

	t, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch {
	case t.Kind == TokEOF:
		return nil, parseErrorf("IF ... THEN without target")

	case t.Kind == TokNumber, t.is("-"):
		line, err := p.expectLineNumber()
		if err != nil {
			return nil, err
		}
		return &If{Cond: cond, Line: line}, nil
	}

	//
	// Exactly one statement follows THEN.  Anything after a ':' is the
	// next statement of the line and runs whatever the condition was
	//

	inner, err := p.parseSingleStatement()
	if err != nil {
		return nil, err
	}

	return &If{Cond: cond, Then: inner}, nil
}

func (p *Parser) parseGoto(string) (Stmt, error) {

	line, err := p.expectLineNumber()
	if err != nil {
		return nil, err
	}

	return &Goto{Line: line}, nil
}

func (p *Parser) parseGosub(string) (Stmt, error) {

	line, err := p.expectLineNumber()
	if err != nil {
		return nil, err
	}

	return &Gosub{Line: line}, nil
}

func (p *Parser) parseReturn(string) (Stmt, error) {
	return &Return{}, nil
}

func (p *Parser) parseFor(string) (Stmt, error) {

	var err error

	stmt := &For{}

	if stmt.Var, err = p.expectIdent(); err != nil {
		return nil, err
	}

	if err = p.expect("="); err != nil {
		return nil, err
	}

	if stmt.Start, err = p.parseExpr(); err != nil {
		return nil, err
	}

	if err = p.expect("TO"); err != nil {
		return nil, err
	}

	if stmt.End, err = p.parseExpr(); err != nil {
		return nil, err
	}

	step, err := p.accept("STEP")
	if err != nil {
		return nil, err
	}

	if step {
		if stmt.Step, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}

	return stmt, nil
}

func (p *Parser) parseNext(string) (Stmt, error) {

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	return &Next{Var: name}, nil
}

func (p *Parser) parseDim(string) (Stmt, error) {

	stmt := &Dim{}

	for {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}

		if err := p.expect("("); err != nil {
			return nil, err
		}

		dims, err := p.parseExprList(")")
		if err != nil {
			return nil, err
		}

		stmt.Arrays = append(stmt.Arrays, DimSpec{Name: name, Dims: dims})

		more, err := p.accept(",")
		if err != nil {
			return nil, err
		}
		if !more {
			return stmt, nil
		}
	}
}

func (p *Parser) parseRandomize(string) (Stmt, error) {

	end, err := p.atStatementEnd()
	if err != nil {
		return nil, err
	}

	if end {
		return &Randomize{}, nil
	}

	seed, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Randomize{Seed: seed}, nil
}

func (p *Parser) parseEnd(keyword string) (Stmt, error) {
	return &End{Keyword: keyword}, nil
}

//
// Expressions, lowest precedence first:
//
//	relational  (at most one, no chaining)
//	additive    + -
//	term        * /
//	unary       + -
//	primary
//

func (p *Parser) parseExpr() (Expr, error) {

	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	t, err := p.peek()
	if err != nil {
		return nil, err
	}

	if t.Kind != TokPunct || !isRelop(t.Text) {
		return left, nil
	}

	p.next()

	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	return &Compare{Op: t.Text, L: left, R: right}, nil
}

func isRelop(s string) bool {

	switch s {
	case "=", "<>", "<", "<=", ">", ">=":
		return true
	}

	return false
}

func (p *Parser) parseAdditive() (Expr, error) {
	return p.parseBinary(p.parseTerm, "+", "-")
}

func (p *Parser) parseTerm() (Expr, error) {
	return p.parseBinary(p.parseUnary, "*", "/")
}

// parseBinary parses a left-associative chain of the given operators.
func (p *Parser) parseBinary(operand func() (Expr, error), ops ...string) (Expr, error) {

	e, err := operand()
	if err != nil {
		return nil, err
	}

	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}

		if t.Kind != TokPunct || (t.Text != ops[0] && t.Text != ops[1]) {
			return e, nil
		}

		p.next()

		r, err := operand()
		if err != nil {
			return nil, err
		}

		e = &Binary{Op: t.Text, L: e, R: r}
	}
}

func (p *Parser) parseUnary() (Expr, error) {

	t, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch {
	case t.is("+"):
		p.next()
		return p.parseUnary()

	case t.is("-"):
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Neg{X: x}, nil
	}

	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {

	t, err := p.next()
	if err != nil {
		return nil, err
	}

	switch t.Kind {
	case TokEOF:
		return nil, parseErrorf("Unexpected end of expression")

	case TokNumber:
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, parseErrorf("Illegal number %q", t.Text)
		}
		return &NumberLit{Value: f}, nil

	case TokString:
		return &StringLit{Value: t.Text}, nil

	case TokIdent:
		return p.parseName(strings.ToUpper(t.Text))
	}

	if t.is("(") {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return e, nil
	}

	return nil, parseErrorf("Unexpected %s", t)
}

// parseName handles an identifier in an expression: a builtin call, an
// array element or a plain variable.
func (p *Parser) parseName(name string) (Expr, error) {

	la, err := p.peek()
	if err != nil {
		return nil, err
	}

	if !la.is("(") {
		return &VarRef{Name: name}, nil
	}

	if p.fns.Has(name) {
		return p.parseCallArgs(name)
	}

	p.next()

	idx, err := p.parseExprList(")")
	if err != nil {
		return nil, err
	}

	return &ArrayRef{Name: name, Index: idx}, nil
}

// parseCallArgs parses '(' [expr {, expr}] ')' after a function name.
func (p *Parser) parseCallArgs(name string) (*Call, error) {

	if err := p.expect("("); err != nil {
		return nil, err
	}

	call := &Call{Name: name}

	closed, err := p.accept(")")
	if err != nil || closed {
		return call, err
	}

	if call.Args, err = p.parseExprList(")"); err != nil {
		return nil, err
	}

	return call, nil
}

// parseExprList parses one or more comma separated expressions and the
// closing token.
func (p *Parser) parseExprList(closer string) ([]Expr, error) {

	var list []Expr

	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list = append(list, e)

		t, err := p.next()
		if err != nil {
			return nil, err
		}

		switch {
		case t.is(","):
			continue
		case t.is(closer):
			return list, nil
		}

		return nil, parseErrorf("Expected %q or \",\", got %s", closer, t)
	}
}
