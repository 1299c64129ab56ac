package basic

import (
	"fmt"
	"math"
	"strings"
)

//
// Expression evaluation.  Every node is a pure function of the run
// state: it may read variables, index arrays and call builtins, but it
// never transfers control
//

func (rs *runState) eval(e Expr) (Value, error) {

	switch e := e.(type) {
	case *NumberLit:
		return Number(e.Value), nil

	case *StringLit:
		return String(e.Value), nil

	case *VarRef:
		return rs.vars.Get(e.Name), nil

	case *ArrayRef:
		idx, err := rs.evalIndex(e.Index)
		if err != nil {
			return Value{}, err
		}
		return rs.vars.Elem(e.Name, idx)

	case *Call:
		return rs.call(e)

	case *Neg:
		v, err := rs.eval(e.X)
		if err != nil {
			return Value{}, err
		}
		if v.IsString() {
			return Value{}, runtimeErrorf(ErrTypeMismatch, "cannot negate a string")
		}
		return Number(-v.AsNumber()), nil

	case *Binary:
		l, err := rs.eval(e.L)
		if err != nil {
			return Value{}, err
		}
		r, err := rs.eval(e.R)
		if err != nil {
			return Value{}, err
		}
		return arith(e.Op, l, r)

	case *Compare:
		l, err := rs.eval(e.L)
		if err != nil {
			return Value{}, err
		}
		r, err := rs.eval(e.R)
		if err != nil {
			return Value{}, err
		}
		return compare(e.Op, l, r), nil
	}

	basicAssert(false, fmt.Sprintf("unexpected expression node %T", e))

	return Value{}, nil
}

func (rs *runState) evalIndex(exprs []Expr) ([]int, error) {

	idx := make([]int, len(exprs))

	for i, e := range exprs {
		v, err := rs.eval(e)
		if err != nil {
			return nil, err
		}
		if idx[i], err = toIndex(v); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

func (rs *runState) evalArgs(exprs []Expr) ([]Value, error) {

	args := make([]Value, len(exprs))

	for i, e := range exprs {
		v, err := rs.eval(e)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	return args, nil
}

func (rs *runState) call(c *Call) (Value, error) {

	args, err := rs.evalArgs(c.Args)
	if err != nil {
		return Value{}, err
	}

	return rs.fns.Call(rs, c.Name, args)
}

//
// '+' concatenates as soon as either side is a string.  The other
// operators are numeric only
//

func arith(op string, l, r Value) (Value, error) {

	if op == "+" {
		if l.IsString() || r.IsString() {
			return String(l.AsString() + r.AsString()), nil
		}
		return Number(l.AsNumber() + r.AsNumber()), nil
	}

	if l.IsString() || r.IsString() {
		return Value{}, runtimeErrorf(ErrTypeMismatch, "string operand for '%s'", op)
	}

	a, b := l.AsNumber(), r.AsNumber()

	switch op {
	case "-":
		return Number(a - b), nil

	case "*":
		return Number(a * b), nil

	case "/":
		if b == 0 {
			return Value{}, ErrDivisionByZero
		}
		return Number(a / b), nil
	}

	basicAssert(false, "unexpected operator "+op)

	return Value{}, nil
}

func compare(op string, l, r Value) Value {

	var cmp int

	if l.IsString() || r.IsString() {
		cmp = strings.Compare(l.AsString(), r.AsString())
	} else {
		a, b := l.AsNumber(), r.AsNumber()
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		case a != b:
			// NaN compares unequal to everything
			return Bool(op == "<>")
		}
	}

	switch op {
	case "=":
		return Bool(cmp == 0)
	case "<>":
		return Bool(cmp != 0)
	case "<":
		return Bool(cmp < 0)
	case "<=":
		return Bool(cmp <= 0)
	case ">":
		return Bool(cmp > 0)
	case ">=":
		return Bool(cmp >= 0)
	}

	basicAssert(false, "unexpected relational operator "+op)

	return Value{}
}

// floorInt converts a FOR/DIM style numeric argument to an int.
func floorInt(f float64) int {

	f = math.Floor(f)

	switch {
	case math.IsNaN(f):
		return 0
	case f > math.MaxInt32:
		return math.MaxInt32
	case f < math.MinInt32:
		return math.MinInt32
	}

	return int(f)
}
