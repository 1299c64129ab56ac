package basic

import (
	"math"
	"testing"
)

func TestFormatNumber(t *testing.T) {

	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{7, "7"},
		{-3, "-3"},
		{12.5, "12.5"},
		{0.1, "0.1"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1e-7, "1e-07"},
		{math.Inf(1), "+Inf"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValueCoercion(t *testing.T) {

	tests := []struct {
		v     Value
		num   float64
		str   string
		truth bool
	}{
		{Value{}, 0, "0", false},
		{Number(2.5), 2.5, "2.5", true},
		{String("12.5"), 12.5, "12.5", true},
		{String(" 3 "), 3, " 3 ", true},
		{String("abc"), 0, "abc", true},
		{String(""), 0, "", false},
	}

	for _, tt := range tests {
		if got := tt.v.AsNumber(); got != tt.num {
			t.Errorf("%v.AsNumber() = %v, want %v", tt.v, got, tt.num)
		}
		if got := tt.v.AsString(); got != tt.str {
			t.Errorf("%v.AsString() = %q, want %q", tt.v, got, tt.str)
		}
		if got := tt.v.Truth(); got != tt.truth {
			t.Errorf("%v.Truth() = %v, want %v", tt.v, got, tt.truth)
		}
	}
}

func TestValueKinds(t *testing.T) {

	if Number(1).IsString() || !String("").IsString() {
		t.Error("IsString mismatch")
	}

	if Bool(true) != Number(1) || Bool(false) != Number(0) {
		t.Error("Bool does not map onto 1/0")
	}

	if String("x").String() != `"x"` {
		t.Errorf("String() = %s", String("x").String())
	}
}
