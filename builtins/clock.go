package builtins

import (
	"time"

	"github.com/garyluck/minibasic/basic"
)

// now is replaced in tests.
var now = time.Now

var clockFuncs = map[string]Func{
	"TIME$": clockString("TIME$", "15:04:05"),
	"DATE$": clockString("DATE$", "2006-01-02"),
	"TIMER": fnTimer,
	"CPU":   fnCPU,
}

func clockString(name, layout string) Func {

	return func(_ basic.Env, args []basic.Value) (basic.Value, error) {

		if err := arity(name, args, 0, 0); err != nil {
			return basic.Value{}, err
		}

		return basic.String(now().Format(layout)), nil
	}
}

// TIMER is the number of seconds since local midnight.
func fnTimer(_ basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("TIMER", args, 0, 0); err != nil {
		return basic.Value{}, err
	}

	t := now()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())

	return basic.Number(t.Sub(midnight).Seconds()), nil
}

// CPU is the user plus system time the process has used, in seconds.
func fnCPU(_ basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("CPU", args, 0, 0); err != nil {
		return basic.Value{}, err
	}

	user, sys, err := CPUTimes()
	if err != nil {
		return basic.Value{}, err
	}

	return basic.Number((user + sys).Seconds()), nil
}
