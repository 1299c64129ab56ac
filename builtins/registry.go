// Package builtins is the standard function library for minibasic
// programs: math, strings, random numbers, console effects and the
// clock.
package builtins

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/garyluck/minibasic/basic"
)

// Func is the body of a builtin.  It validates its own arguments.
type Func func(env basic.Env, args []basic.Value) (basic.Value, error)

// Registry maps upper-cased function names to their bodies.  It
// satisfies basic.Functions and is safe for concurrent use, so one
// registry can serve several interpreters.
type Registry struct {
	mu  sync.RWMutex
	fns map[string]Func
}

func New() *Registry {
	return &Registry{fns: make(map[string]Func)}
}

// Default returns a registry holding every builtin in this package.
func Default() *Registry {

	r := New()

	for _, group := range []map[string]Func{mathFuncs, stringFuncs, consoleFuncs, clockFuncs} {
		for name, fn := range group {
			if err := r.Register(name, fn); err != nil {
				panic(err)
			}
		}
	}

	return r
}

// Register adds fn under name.  Names must be unique and must not
// collide with a statement keyword, since the parser would never see
// them as calls.
func (r *Registry) Register(name string, fn Func) error {

	name = strings.ToUpper(strings.TrimSpace(name))

	switch {
	case name == "":
		return fmt.Errorf("builtin with empty name")
	case fn == nil:
		return fmt.Errorf("builtin %s has no body", name)
	case basic.IsKeyword(name):
		return fmt.Errorf("builtin %s collides with a statement keyword", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.fns[name]; dup {
		return fmt.Errorf("builtin %s already registered", name)
	}

	r.fns[name] = fn

	return nil
}

func (r *Registry) lookup(name string) (Func, bool) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.fns[strings.ToUpper(name)]

	return fn, ok
}

func (r *Registry) Has(name string) bool {

	_, ok := r.lookup(name)

	return ok
}

func (r *Registry) Call(env basic.Env, name string, args []basic.Value) (basic.Value, error) {

	fn, ok := r.lookup(name)
	if !ok {
		return basic.Value{}, fmt.Errorf("%w: %s", basic.ErrUnknownFunction, strings.ToUpper(name))
	}

	return fn(env, args)
}

// Names lists the registered functions, sorted.
func (r *Registry) Names() []string {

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.fns))
	for name := range r.fns {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

//
// Argument helpers shared by the function bodies
//

func badArgument(name, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", basic.ErrBadArgument, name, fmt.Sprintf(format, args...))
}

// arity checks that len(args) is between lo and hi inclusive.
func arity(name string, args []basic.Value, lo, hi int) error {

	n := len(args)
	if n >= lo && n <= hi {
		return nil
	}

	switch {
	case lo == hi:
		return badArgument(name, "expects %d %s, got %d", lo, plural("argument", lo), n)
	default:
		return badArgument(name, "expects %d to %d arguments, got %d", lo, hi, n)
	}
}

func plural(s string, n int) string {

	if n == 1 {
		return s
	}

	return s + "s"
}

// intArg floors a numeric argument, clamping it to the int32 range.
func intArg(v basic.Value) int {

	f := v.AsNumber()

	switch {
	case math.IsNaN(f):
		return 0
	case f >= 1<<31-1:
		return 1<<31 - 1
	case f <= -1<<31:
		return -1 << 31
	}

	return int(math.Floor(f))
}

// unary wraps a float64 -> float64 function as a one argument builtin.
func unary(name string, fn func(float64) float64) Func {

	return func(_ basic.Env, args []basic.Value) (basic.Value, error) {

		if err := arity(name, args, 1, 1); err != nil {
			return basic.Value{}, err
		}

		return basic.Number(fn(args[0].AsNumber())), nil
	}
}
