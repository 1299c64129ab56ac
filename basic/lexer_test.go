package basic

import (
	"errors"
	"testing"
)

func lexAll(t *testing.T, src string) []Token {

	t.Helper()

	var toks []Token

	lx := NewLexer(src)
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("lexing %q: %v", src, err)
		}
		if tok.Kind == TokEOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestLexerTokens(t *testing.T) {

	tests := []struct {
		src  string
		want []string
	}{
		{`PRINT "HI"`, []string{"PRINT", `"HI"`}},
		{`A$="SAY ""HI"""`, []string{"A$", "=", `"SAY ""HI"""`}},
		{`IF A<>B THEN 10`, []string{"IF", "A", "<>", "B", "THEN", "10"}},
		{`X<=1:Y>=2`, []string{"X", "<=", "1", ":", "Y", ">=", "2"}},
		{`a < b > c`, []string{"a", "<", "b", ">", "c"}},
		{`1.5 .25 7.`, []string{"1.5", ".25", "7."}},
		{`3-4`, []string{"3", "-", "4"}},
		{`X-1`, []string{"X", "-", "1"}},
		{`(2)-1`, []string{"(", "2", ")", "-", "1"}},
		{`A=-1`, []string{"A", "=", "-1"}},
		{`F(-2,+3)`, []string{"F", "(", "-2", ",", "+3", ")"}},
		{`-5`, []string{"-5"}},
		{`STEP -1`, []string{"STEP", "-", "1"}},
		{`A_1$ B2`, []string{"A_1$", "B2"}},
		{`  `, nil},
	}

	for _, tt := range tests {
		toks := lexAll(t, tt.src)

		if len(toks) != len(tt.want) {
			t.Errorf("%q: got %d tokens %v, want %v", tt.src, len(toks), toks, tt.want)
			continue
		}

		for i, tok := range toks {
			if tok.String() != tt.want[i] {
				t.Errorf("%q: token %d is %q, want %q", tt.src, i, tok.String(), tt.want[i])
			}
		}
	}
}

func TestLexerStringUnquoting(t *testing.T) {

	toks := lexAll(t, `"A ""B"" C"`)

	if len(toks) != 1 || toks[0].Kind != TokString {
		t.Fatalf("got %v, want one string token", toks)
	}

	if toks[0].Text != `A "B" C` {
		t.Errorf("got %q", toks[0].Text)
	}
}

func TestLexerErrors(t *testing.T) {

	tests := []struct {
		src string
		pos int
	}{
		{`PRINT "ABC`, 6},
		{`A = 1 # 2`, 6},
		{`?`, 0},
	}

	for _, tt := range tests {
		lx := NewLexer(tt.src)

		var err error
		for err == nil {
			var tok Token
			tok, err = lx.Next()
			if err == nil && tok.Kind == TokEOF {
				break
			}
		}

		var lexErr *LexError
		if !errors.As(err, &lexErr) {
			t.Errorf("%q: got %v, want a LexError", tt.src, err)
			continue
		}

		if lexErr.Pos != tt.pos {
			t.Errorf("%q: error at %d, want %d", tt.src, lexErr.Pos, tt.pos)
		}
	}
}

func TestLexerPeek(t *testing.T) {

	lx := NewLexer("A B")

	p1, _ := lx.Peek()
	p2, _ := lx.Peek()
	n1, _ := lx.Next()

	if p1 != p2 || p1 != n1 || n1.Text != "A" {
		t.Errorf("peek/next disagree: %v %v %v", p1, p2, n1)
	}

	if !lx.HasMore() {
		t.Error("HasMore is false with B still pending")
	}

	lx.Next()

	if lx.HasMore() {
		t.Error("HasMore is true at end of line")
	}
}
