package builtins

import (
	"math"

	"github.com/garyluck/minibasic/basic"
)

var mathFuncs = map[string]Func{
	"RND": fnRnd,
	"INT": unary("INT", math.Floor),
	"ABS": unary("ABS", math.Abs),
	"SGN": unary("SGN", sign),
	"SQR": fnSqr,
	"SIN": unary("SIN", math.Sin),
	"COS": unary("COS", math.Cos),
	"TAN": unary("TAN", math.Tan),
	"ATN": unary("ATN", math.Atan),
	"EXP": unary("EXP", math.Exp),
	"LOG": fnLog,
	"POW": fnPow,
	"MOD": fnMod,
}

func sign(x float64) float64 {

	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}

	return 0
}

//
// RND() is a fraction in [0,1), RND(n) an integer 1..n and RND(a,b) an
// integer between a and b inclusive, in either order
//

func fnRnd(env basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("RND", args, 0, 2); err != nil {
		return basic.Value{}, err
	}

	rng := env.Rand()

	switch len(args) {
	case 0:
		return basic.Number(rng.Float64()), nil

	case 1:
		n := intArg(args[0])
		if n <= 0 {
			return basic.Value{}, badArgument("RND", "limit must be > 0, got %d", n)
		}
		return basic.Number(float64(1 + rng.Intn(n))), nil
	}

	lo, hi := intArg(args[0]), intArg(args[1])
	if lo > hi {
		lo, hi = hi, lo
	}

	return basic.Number(float64(lo + rng.Intn(hi-lo+1))), nil
}

func fnSqr(_ basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("SQR", args, 1, 1); err != nil {
		return basic.Value{}, err
	}

	x := args[0].AsNumber()
	if x < 0 {
		return basic.Value{}, badArgument("SQR", "negative argument %s", basic.FormatNumber(x))
	}

	return basic.Number(math.Sqrt(x)), nil
}

// LOG is the natural logarithm.
func fnLog(_ basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("LOG", args, 1, 1); err != nil {
		return basic.Value{}, err
	}

	x := args[0].AsNumber()
	if x <= 0 {
		return basic.Value{}, badArgument("LOG", "argument must be > 0, got %s", basic.FormatNumber(x))
	}

	return basic.Number(math.Log(x)), nil
}

func fnPow(_ basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("POW", args, 2, 2); err != nil {
		return basic.Value{}, err
	}

	return basic.Number(math.Pow(args[0].AsNumber(), args[1].AsNumber())), nil
}

// MOD is floored: the result takes the sign of the divisor.
func fnMod(_ basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("MOD", args, 2, 2); err != nil {
		return basic.Value{}, err
	}

	a, b := args[0].AsNumber(), args[1].AsNumber()
	if b == 0 {
		return basic.Value{}, basic.ErrDivisionByZero
	}

	return basic.Number(a - math.Floor(a/b)*b), nil
}
