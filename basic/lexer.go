package basic

import (
	"strings"
	"unicode"
)

// TokenKind classifies a lexeme.
type TokenKind uint8

const (
	TokEOF TokenKind = iota
	TokNumber
	TokString
	TokIdent
	TokPunct
)

var tokenKindNames = [...]string{
	TokEOF:    "end of line",
	TokNumber: "number",
	TokString: "string",
	TokIdent:  "identifier",
	TokPunct:  "operator",
}

func (k TokenKind) String() string {
	return tokenKindNames[k]
}

// Token is one lexeme.  For strings Text holds the unquoted contents,
// for everything else the source spelling.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

func (t Token) String() string {

	switch t.Kind {
	case TokEOF:
		return "end of line"
	case TokString:
		return `"` + strings.ReplaceAll(t.Text, `"`, `""`) + `"`
	}

	return t.Text
}

// is reports whether t is the given punctuation or (case-insensitive)
// keyword.
func (t Token) is(s string) bool {

	switch t.Kind {
	case TokPunct:
		return t.Text == s
	case TokIdent:
		return strings.EqualFold(t.Text, s)
	}

	return false
}

//
// Lexer hands out the tokens of one source line on demand, with one
// token of lookahead.  Lexing is lazy, so a bad character late in a
// line is only reported once the parser gets that far
//

type Lexer struct {
	src    []rune
	pos    int
	peeked *Token
	prev   Token
	err    error
}

func NewLexer(line string) *Lexer {
	return &Lexer{src: []rune(line), prev: Token{Kind: TokEOF}}
}

func (l *Lexer) Peek() (Token, error) {

	if l.peeked == nil {
		t, err := l.scan()
		if err != nil {
			return Token{}, err
		}
		l.peeked = &t
	}

	return *l.peeked, nil
}

func (l *Lexer) Next() (Token, error) {

	if l.peeked != nil {
		t := *l.peeked
		l.peeked = nil
		return t, nil
	}

	return l.scan()
}

// HasMore reports whether any non-blank input remains.
func (l *Lexer) HasMore() bool {

	if l.peeked != nil {
		return l.peeked.Kind != TokEOF
	}

	l.skipSpace()

	return l.pos < len(l.src)
}

// Remaining returns the unconsumed source text, for error messages.
func (l *Lexer) Remaining() string {

	if l.peeked != nil {
		if l.peeked.Kind == TokEOF {
			return ""
		}
		return string(l.src[l.peeked.Pos:])
	}

	l.skipSpace()

	return string(l.src[l.pos:])
}

// SkipRest consumes the rest of the line without lexing it (REM text
// may contain anything, including unbalanced quotes).
func (l *Lexer) SkipRest() string {

	rest := l.Remaining()

	l.peeked = nil
	l.pos = len(l.src)

	return rest
}

func (l *Lexer) skipSpace() {

	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) at(i int) rune {

	if i < len(l.src) {
		return l.src[i]
	}

	return 0
}

func (l *Lexer) scan() (Token, error) {

	if l.err != nil {
		return Token{}, l.err
	}

	t, err := l.scanToken()
	if err != nil {
		l.err = err
		return Token{}, err
	}

	l.prev = t

	return t, nil
}

func (l *Lexer) scanToken() (Token, error) {

	l.skipSpace()

	start := l.pos
	if start >= len(l.src) {
		return Token{Kind: TokEOF, Pos: start}, nil
	}

	c := l.src[start]

	switch {
	case c == '"':
		return l.scanString()

	case isDigit(c), c == '.' && isDigit(l.at(start+1)):
		return l.scanNumber(start), nil

	case (c == '+' || c == '-') && l.signStartsNumber():
		l.pos++
		return l.scanNumber(start), nil

	case unicode.IsLetter(c):
		l.pos++
		for l.pos < len(l.src) && isIdentRune(l.src[l.pos]) {
			l.pos++
		}
		return Token{Kind: TokIdent, Text: string(l.src[start:l.pos]), Pos: start}, nil
	}

	//
	// Relational operators are matched greedily before falling back
	// to single character punctuation
	//

	if start+1 < len(l.src) {
		switch two := string(l.src[start : start+2]); two {
		case "<>", "<=", ">=":
			l.pos += 2
			return Token{Kind: TokPunct, Text: two, Pos: start}, nil
		}
	}

	if strings.ContainsRune("+-*/()=,;:<>", c) {
		l.pos++
		return Token{Kind: TokPunct, Text: string(c), Pos: start}, nil
	}

	return Token{}, &LexError{Pos: start, Msg: "Unexpected character " + quoteRune(c)}
}

//
// A sign directly in front of a digit is folded into the literal, but
// only where an operand may start.  Right after something that ends an
// operand (number, string, name or ')') it has to be the binary
// operator, otherwise '3-4' would come out as the two literals 3 and -4
//

func (l *Lexer) signStartsNumber() bool {

	next := l.at(l.pos + 1)
	if !isDigit(next) && !(next == '.' && isDigit(l.at(l.pos+2))) {
		return false
	}

	switch l.prev.Kind {
	case TokNumber, TokString, TokIdent:
		return false
	case TokPunct:
		return l.prev.Text != ")"
	}

	return true
}

func (l *Lexer) scanNumber(start int) Token {

	dot := false

	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isDigit(c) {
			l.pos++
			continue
		}
		if c == '.' && !dot {
			dot = true
			l.pos++
			continue
		}
		break
	}

	return Token{Kind: TokNumber, Text: string(l.src[start:l.pos]), Pos: start}
}

func (l *Lexer) scanString() (Token, error) {

	var sb strings.Builder

	start := l.pos
	l.pos++ // opening quote

	for l.pos < len(l.src) {
		c := l.src[l.pos]
		l.pos++

		if c != '"' {
			sb.WriteRune(c)
			continue
		}

		// A doubled quote is an embedded quote

		if l.at(l.pos) == '"' {
			sb.WriteRune('"')
			l.pos++
			continue
		}

		return Token{Kind: TokString, Text: sb.String(), Pos: start}, nil
	}

	return Token{}, &LexError{Pos: start, Msg: "Unterminated string literal"}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '$' || c == '_'
}

func quoteRune(c rune) string {
	return "'" + string(c) + "'"
}
