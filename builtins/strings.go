package builtins

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/garyluck/minibasic/basic"
)

//
// String positions are 1-based and count characters, not bytes
//

var stringFuncs = map[string]Func{
	"STR$":   fnStr,
	"VAL":    fnVal,
	"LEN":    fnLen,
	"LEFT$":  fnLeft,
	"RIGHT$": fnRight,
	"MID$":   fnMid,
	"INSTR":  fnInstr,
	"CHR$":   fnChr,
	"ASC":    fnAsc,
	"UCASE$": caseMapper("UCASE$", func() cases.Caser { return cases.Upper(language.Und) }),
	"LCASE$": caseMapper("LCASE$", func() cases.Caser { return cases.Lower(language.Und) }),
}

func fnStr(_ basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("STR$", args, 1, 1); err != nil {
		return basic.Value{}, err
	}

	return basic.String(args[0].AsString()), nil
}

// VAL reads a string as a number; anything unparsable is 0.
func fnVal(_ basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("VAL", args, 1, 1); err != nil {
		return basic.Value{}, err
	}

	return basic.Number(basic.String(args[0].AsString()).AsNumber()), nil
}

func fnLen(_ basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("LEN", args, 1, 1); err != nil {
		return basic.Value{}, err
	}

	return basic.Number(float64(utf8.RuneCountInString(args[0].AsString()))), nil
}

func fnLeft(_ basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("LEFT$", args, 2, 2); err != nil {
		return basic.Value{}, err
	}

	s := []rune(args[0].AsString())
	n := clamp(intArg(args[1]), 0, len(s))

	return basic.String(string(s[:n])), nil
}

func fnRight(_ basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("RIGHT$", args, 2, 2); err != nil {
		return basic.Value{}, err
	}

	s := []rune(args[0].AsString())
	n := clamp(intArg(args[1]), 0, len(s))

	return basic.String(string(s[len(s)-n:])), nil
}

// MID$(s, start[, len]) clamps both start and length to the string.
func fnMid(_ basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("MID$", args, 2, 3); err != nil {
		return basic.Value{}, err
	}

	s := []rune(args[0].AsString())
	start := max(intArg(args[1]), 1)

	n := len(s)
	if len(args) == 3 {
		n = intArg(args[2])
	}

	if n <= 0 || start > len(s) {
		return basic.String(""), nil
	}

	begin := start - 1
	end := begin + min(n, len(s)-begin)

	return basic.String(string(s[begin:end])), nil
}

//
// INSTR(s, sub) or INSTR(start, s, sub): the 1-based position of sub
// in s at or after start, 0 if there is none.  An empty sub matches at
// start as long as start is within one past the end
//

func fnInstr(_ basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("INSTR", args, 2, 3); err != nil {
		return basic.Value{}, err
	}

	start := 1
	if len(args) == 3 {
		start = max(intArg(args[0]), 1)
		args = args[1:]
	}

	s := []rune(args[0].AsString())
	sub := args[1].AsString()

	if sub == "" {
		if start <= len(s)+1 {
			return basic.Number(float64(start)), nil
		}
		return basic.Number(0), nil
	}

	if start > len(s) {
		return basic.Number(0), nil
	}

	tail := string(s[start-1:])

	i := strings.Index(tail, sub)
	if i < 0 {
		return basic.Number(0), nil
	}

	pos := start + utf8.RuneCountInString(tail[:i])

	return basic.Number(float64(pos)), nil
}

// CHR$ clamps its argument to 0..255.
func fnChr(_ basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("CHR$", args, 1, 1); err != nil {
		return basic.Value{}, err
	}

	return basic.String(string(rune(clamp(intArg(args[0]), 0, 255)))), nil
}

func fnAsc(_ basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("ASC", args, 1, 1); err != nil {
		return basic.Value{}, err
	}

	s := args[0].AsString()
	if s == "" {
		return basic.Value{}, badArgument("ASC", "empty string")
	}

	r, _ := utf8.DecodeRuneInString(s)

	return basic.Number(float64(r & 0xFF)), nil
}

// caseMapper builds UCASE$/LCASE$.  A Caser keeps state, so each call
// gets a fresh one.
func caseMapper(name string, caser func() cases.Caser) Func {

	return func(_ basic.Env, args []basic.Value) (basic.Value, error) {

		if err := arity(name, args, 1, 1); err != nil {
			return basic.Value{}, err
		}

		c := caser()

		return basic.String(c.String(args[0].AsString())), nil
	}
}

func clamp(n, lo, hi int) int {
	return min(max(n, lo), hi)
}
