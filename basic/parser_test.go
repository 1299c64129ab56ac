package basic

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// testFunctions knows a handful of builtins, enough to exercise call
// parsing and the registry contract.
type testFunctions struct {
	calls []string
}

func (f *testFunctions) Has(name string) bool {

	switch strings.ToUpper(name) {
	case "VAL", "TWICE", "NOTE", "ZERO":
		return true
	}

	return false
}

func (f *testFunctions) Call(env Env, name string, args []Value) (Value, error) {

	switch strings.ToUpper(name) {
	case "VAL":
		if len(args) != 1 {
			return Value{}, ErrBadArgument
		}
		return Number(String(args[0].AsString()).AsNumber()), nil

	case "TWICE":
		if len(args) != 1 {
			return Value{}, ErrBadArgument
		}
		return Number(2 * args[0].AsNumber()), nil

	case "NOTE":
		var parts []string
		for _, a := range args {
			parts = append(parts, a.AsString())
		}
		f.calls = append(f.calls, strings.Join(parts, ","))
		return Value{}, nil

	case "ZERO":
		return Number(0), nil
	}

	return Value{}, runtimeErrorf(ErrUnknownFunction, "%s", name)
}

func mustParse(t *testing.T, src string) Stmt {

	t.Helper()

	stmt, err := ParseLine(src, &testFunctions{})
	if err != nil {
		t.Fatalf("ParseLine(%q): %v", src, err)
	}

	return stmt
}

func num(f float64) Expr {
	return &NumberLit{Value: f}
}

func TestParseStatements(t *testing.T) {

	tests := []struct {
		src  string
		want Stmt
	}{
		{"REM anything \"goes", &Rem{Text: `anything "goes`}},
		{"", &Rem{}},
		{"PRINT", &Print{}},
		{"print 1; \"A\", x", &Print{
			Items: []Expr{num(1), &StringLit{Value: "A"}, &VarRef{Name: "X"}},
			Seps:  []byte{';', ','},
		}},
		{"LET A = 1", &Assign{Target: LValue{Name: "A"}, Expr: num(1)}},
		{"A(1,2) = 3", &Assign{
			Target: LValue{Name: "A", Index: []Expr{num(1), num(2)}},
			Expr:   num(3),
		}},
		{"INPUT n$", &Input{Name: "N$"}},
		{"IF X THEN 100", &If{Cond: &VarRef{Name: "X"}, Line: 100}},
		{"IF X = 1 THEN PRINT", &If{
			Cond: &Compare{Op: "=", L: &VarRef{Name: "X"}, R: num(1)},
			Then: &Print{},
		}},
		{"GOTO 20", &Goto{Line: 20}},
		{"GOSUB 30", &Gosub{Line: 30}},
		{"GOTO 0", &Goto{Line: 0}},
		{"GOSUB -5", &Gosub{Line: -5}},
		{"IF X THEN 0", &If{Cond: &VarRef{Name: "X"}, Line: 0}},
		{"RETURN", &Return{}},
		{"FOR I = 1 TO 10", &For{Var: "I", Start: num(1), End: num(10)}},
		{"FOR I = 5 TO 1 STEP -1", &For{Var: "I", Start: num(5), End: num(1), Step: &Neg{X: num(1)}}},
		{"NEXT I", &Next{Var: "I"}},
		{"DIM A(3,3), B$(2)", &Dim{Arrays: []DimSpec{
			{Name: "A", Dims: []Expr{num(3), num(3)}},
			{Name: "B$", Dims: []Expr{num(2)}},
		}}},
		{"RANDOMIZE", &Randomize{}},
		{"RANDOMIZE 42", &Randomize{Seed: num(42)}},
		{"END", &End{Keyword: "END"}},
		{"stop", &End{Keyword: "STOP"}},
		{"NOTE(1, 2)", &CallStmt{Call: &Call{Name: "NOTE", Args: []Expr{num(1), num(2)}}}},
		{"A = ZERO()", &Assign{Target: LValue{Name: "A"}, Expr: &Call{Name: "ZERO"}}},
		{"A = 1 : B = 2", &Seq{Stmts: []Stmt{
			&Assign{Target: LValue{Name: "A"}, Expr: num(1)},
			&Assign{Target: LValue{Name: "B"}, Expr: num(2)},
		}}},
	}

	for _, tt := range tests {
		got := mustParse(t, tt.src)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseLine(%q):\n got %#v\nwant %#v", tt.src, got, tt.want)
		}
	}
}

func TestParsePrecedence(t *testing.T) {

	// 1 + 2 * 3 - 4 = 3  parses as ((1 + (2*3)) - 4) = 3

	stmt := mustParse(t, "A = 1 + 2 * 3 - 4 = 3")

	want := &Assign{
		Target: LValue{Name: "A"},
		Expr: &Compare{
			Op: "=",
			L: &Binary{
				Op: "-",
				L:  &Binary{Op: "+", L: num(1), R: &Binary{Op: "*", L: num(2), R: num(3)}},
				R:  num(4),
			},
			R: num(3),
		},
	}

	if !reflect.DeepEqual(stmt, want) {
		t.Errorf("got %#v", stmt)
	}
}

func TestParseSubtractionIsNotSignFolding(t *testing.T) {

	stmt := mustParse(t, "A = 3-4")

	want := &Assign{Target: LValue{Name: "A"}, Expr: &Binary{Op: "-", L: num(3), R: num(4)}}

	if !reflect.DeepEqual(stmt, want) {
		t.Errorf("got %#v", stmt)
	}
}

func TestParseCallVersusArray(t *testing.T) {

	stmt := mustParse(t, "A = TWICE(B(1))")

	want := &Assign{
		Target: LValue{Name: "A"},
		Expr:   &Call{Name: "TWICE", Args: []Expr{&ArrayRef{Name: "B", Index: []Expr{num(1)}}}},
	}

	if !reflect.DeepEqual(stmt, want) {
		t.Errorf("got %#v", stmt)
	}
}

func TestParseIdempotent(t *testing.T) {

	const src = `FOR I = 1 TO N STEP 2 : PRINT "I="; I, A(I) : NEXT I`

	if a, b := mustParse(t, src), mustParse(t, src); !reflect.DeepEqual(a, b) {
		t.Errorf("two parses differ:\n%#v\n%#v", a, b)
	}
}

func TestParseErrors(t *testing.T) {

	tests := []string{
		"10",
		`"HELLO"`,
		"PRINT 1;",
		"PRINT 1 2",
		"LET = 1",
		"A 1",
		"IF X THEN",
		"IF X 100",
		"GOTO",
		"GOTO X",
		"GOTO 1.5",
		"GOTO -",
		"IF X THEN -Y",
		"FOR I = 1 10",
		"FOR = 1 TO 2",
		"DIM A",
		"DIM A(1",
		"A = (1 + 2",
		"A = 1 < 2 < 3",
		"A = B(1,)",
		"NEXT",
		"INPUT",
		"RETURN 10",
	}

	for _, src := range tests {
		_, err := ParseLine(src, &testFunctions{})

		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("ParseLine(%q): got %v, want a ParseError", src, err)
		}
	}
}

func TestParseLexErrorsSurface(t *testing.T) {

	_, err := ParseLine(`PRINT "ABC`, nil)

	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Errorf("got %v, want a LexError", err)
	}
}

func TestIsKeyword(t *testing.T) {

	for _, kw := range []string{"print", "REM", "Goto", "STOP"} {
		if !IsKeyword(kw) {
			t.Errorf("IsKeyword(%q) is false", kw)
		}
	}

	if IsKeyword("PRINTER") {
		t.Error("IsKeyword(PRINTER) is true")
	}
}
