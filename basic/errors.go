package basic

import (
	"errors"
	"fmt"
)

//
// Manifest constants for the interpreter error messages.  Every
// runtime fault the engine can raise has one of these as its root,
// so hosts can test for a specific fault with errors.Is
//

const (
	EDIVISIONBYZERO     = "Division by 0"
	ETYPEMISMATCH       = "Data type error"
	ESUBSCRIPTERROR     = "Subscript out of range"
	EUNDIMENSIONED      = "Array not dimensioned"
	EBADDIMENSION       = "Array dimension must be > 0"
	ENOSUCHLINE         = "Jump to nonexistent line"
	ENEXTWITHOUTFOR     = "NEXT without FOR"
	ENEXTMISMATCH       = "NEXT variable does not match FOR"
	ERETURNWITHOUTGOSUB = "RETURN without GOSUB"
	ELASTLINE           = "Statement not allowed on last line"
	EILLEGALNUMBER      = "Illegal number"
	EENDOFINPUT         = "End of input"
	EUNKNOWNFUNCTION    = "Unknown function"
	EBADARGUMENT        = "Illegal argument"
	EINTERRUPTED        = "Interrupted"
	ESTEPLIMIT          = "Statement limit exceeded"
	ENOPROGRAM          = "No program loaded"
	EILLEGALLINENUMBER  = "Illegal line number"
	ESTACKOVERFLOW      = "Stack overflow"
)

var (
	ErrDivisionByZero     = errors.New(EDIVISIONBYZERO)
	ErrTypeMismatch       = errors.New(ETYPEMISMATCH)
	ErrSubscriptRange     = errors.New(ESUBSCRIPTERROR)
	ErrUndimensioned      = errors.New(EUNDIMENSIONED)
	ErrBadDimension       = errors.New(EBADDIMENSION)
	ErrNoSuchLine         = errors.New(ENOSUCHLINE)
	ErrNextWithoutFor     = errors.New(ENEXTWITHOUTFOR)
	ErrNextMismatch       = errors.New(ENEXTMISMATCH)
	ErrReturnWithoutGosub = errors.New(ERETURNWITHOUTGOSUB)
	ErrLastLine           = errors.New(ELASTLINE)
	ErrIllegalNumber      = errors.New(EILLEGALNUMBER)
	ErrEndOfInput         = errors.New(EENDOFINPUT)
	ErrUnknownFunction    = errors.New(EUNKNOWNFUNCTION)
	ErrBadArgument        = errors.New(EBADARGUMENT)
	ErrInterrupted        = errors.New(EINTERRUPTED)
	ErrStepLimit          = errors.New(ESTEPLIMIT)
	ErrNoProgram          = errors.New(ENOPROGRAM)
	ErrIllegalLineNumber  = errors.New(EILLEGALLINENUMBER)
	ErrStackOverflow      = errors.New(ESTACKOVERFLOW)
)

// LexError reports a character the tokenizer cannot handle, or an
// unterminated string literal.
type LexError struct {
	Line int
	Pos  int
	Msg  string
}

func (e *LexError) Error() string {
	return withLine(e.Line, fmt.Sprintf("%s at column %d", e.Msg, e.Pos+1))
}

// ParseError reports a malformed statement.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return withLine(e.Line, e.Msg)
}

// RuntimeError is a fault raised while a statement executes.  Err is
// one of the Err* sentinels (possibly wrapped with more detail).
type RuntimeError struct {
	Line int
	Err  error
}

func (e *RuntimeError) Error() string {
	return withLine(e.Line, e.Err.Error())
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func withLine(line int, msg string) string {

	if line == 0 {
		return msg
	}

	return fmt.Sprintf("line %d: %s", line, msg)
}

//
// Helpers for raising faults.  runtimeErrorf wraps one of the
// sentinels with extra detail, so that errors.Is still works while
// the message names the offending variable, index, etc
//

func runtimeErrorf(sentinel error, format string, args ...any) error {

	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

func parseErrorf(format string, args ...any) error {

	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// atLine stamps the originating line number onto an error raised while
// parsing or executing that line.  Non-interpreter errors (from a
// builtin, or the input channel) become RuntimeErrors.
func atLine(err error, line int) error {

	var lexErr *LexError
	var parseErr *ParseError
	var rtErr *RuntimeError

	switch {
	case errors.As(err, &lexErr):
		if lexErr.Line == 0 {
			lexErr.Line = line
		}
		return lexErr

	case errors.As(err, &parseErr):
		if parseErr.Line == 0 {
			parseErr.Line = line
		}
		return parseErr

	case errors.As(err, &rtErr):
		if rtErr.Line == 0 {
			rtErr.Line = line
		}
		return rtErr
	}

	return &RuntimeError{Line: line, Err: err}
}

//
// Internal consistency checks.  A failure here is an interpreter bug,
// not something a BASIC program can provoke
//

func basicAssert(chk bool, msg string) {

	if !chk {
		panic("minibasic: internal error: " + msg)
	}
}
