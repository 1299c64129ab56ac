package basic

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNumber Kind = iota
	KindString
)

// Value is an immutable BASIC value: either a number or a string.
// The zero Value is the number 0, which is also what an unset
// variable reads as.
type Value struct {
	kind Kind
	num  float64
	str  string
}

func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Bool maps a Go truth value onto BASIC's 1/0.
func Bool(b bool) Value {

	if b {
		return Number(1)
	}

	return Number(0)
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsString() bool {
	return v.kind == KindString
}

// AsNumber returns the numeric value; a string is parsed as a float
// and reads as 0 when it does not parse.
func (v Value) AsNumber() float64 {

	if v.kind == KindNumber {
		return v.num
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
	if err != nil {
		return 0
	}

	return f
}

// AsString renders numbers in their canonical decimal form.
func (v Value) AsString() string {

	if v.kind == KindString {
		return v.str
	}

	return FormatNumber(v.num)
}

// Truth is BASIC truthiness: nonzero numbers and nonempty strings.
func (v Value) Truth() bool {

	if v.kind == KindString {
		return v.str != ""
	}

	return v.num != 0
}

func (v Value) String() string {

	if v.kind == KindString {
		return strconv.Quote(v.str)
	}

	return FormatNumber(v.num)
}

//
// Numbers print in plain decimal, with no trailing ".0" on integral
// values.  Very large and very small magnitudes use exponent form
//

func FormatNumber(f float64) string {

	if f == 0 {
		return "0" // also folds -0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	if a := math.Abs(f); a >= 1e21 || a < 1e-6 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	return strings.TrimSuffix(strconv.FormatFloat(f, 'f', -1, 64), ".0")
}
