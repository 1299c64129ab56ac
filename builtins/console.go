package builtins

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/garyluck/minibasic/basic"
)

const (
	ansiClear = "\x1b[2J\x1b[H"
	bell      = "\a"

	maxPause = 24 * time.Hour
)

var consoleFuncs = map[string]Func{
	"CLS":   emitter("CLS", ansiClear),
	"BEEP":  emitter("BEEP", bell),
	"PAUSE": fnPause,
}

// emitter builds a no-argument builtin that writes a fixed control
// sequence to the program's output.
func emitter(name, seq string) Func {

	return func(env basic.Env, args []basic.Value) (basic.Value, error) {

		if err := arity(name, args, 0, 0); err != nil {
			return basic.Value{}, err
		}

		if _, err := io.WriteString(env.Output(), seq); err != nil {
			return basic.Value{}, err
		}

		return basic.Number(0), nil
	}
}

//
// PAUSE(sec) blocks the program.  Negative delays do not wait.  The
// wait ends early, with an interrupt, when the run is cancelled
//

func fnPause(env basic.Env, args []basic.Value) (basic.Value, error) {

	if err := arity("PAUSE", args, 1, 1); err != nil {
		return basic.Value{}, err
	}

	secs := math.Max(0, args[0].AsNumber())
	if secs > maxPause.Seconds() {
		return basic.Value{}, badArgument("PAUSE", "delay longer than %s", maxPause)
	}

	d := time.Duration(math.Round(secs*1000)) * time.Millisecond
	if d == 0 {
		return basic.Number(0), nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	ctx := env.Context()

	select {
	case <-t.C:
		return basic.Number(0), nil
	case <-ctx.Done():
		return basic.Value{}, fmt.Errorf("%w: %v", basic.ErrInterrupted, ctx.Err())
	}
}
