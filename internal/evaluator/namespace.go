package evaluator

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

// Func is a callable entry in a Namespace.
type Func struct {
	Name    string
	MinArgs int
	// MaxArgs is -1 for variadic functions.
	MaxArgs int
	Fn      func(args []float64) (float64, error)
}

func (f *Func) checkArity(n int) error {
	switch {
	case f.MinArgs == f.MaxArgs && n != f.MinArgs:
		return evalErrorf("%s() takes exactly %d argument%s (%d given)", f.Name, f.MinArgs, plural(f.MinArgs), n)
	case n < f.MinArgs:
		return evalErrorf("%s() takes at least %d argument%s (%d given)", f.Name, f.MinArgs, plural(f.MinArgs), n)
	case f.MaxArgs >= 0 && n > f.MaxArgs:
		return evalErrorf("%s() takes at most %d argument%s (%d given)", f.Name, f.MaxArgs, plural(f.MaxArgs), n)
	}
	return nil
}

// call runs Fn and turns a NaN from non-NaN input into a domain error and an
// infinity from finite input into a range error.
func (f *Func) call(args []float64) (float64, error) {
	r, err := f.Fn(args)
	if err != nil {
		var ee *EvalError
		if errors.Is(err, ErrDivisionByZero) || errors.As(err, &ee) {
			return 0, err
		}
		return 0, &EvalError{Err: fmt.Errorf("%s: %w", f.Name, err)}
	}
	if math.IsNaN(r) && !slices.ContainsFunc(args, math.IsNaN) {
		return 0, &EvalError{Err: fmt.Errorf("%s: %w", f.Name, ErrDomain)}
	}
	if math.IsInf(r, 0) && !slices.ContainsFunc(args, isNotFinite) {
		return 0, &EvalError{Err: fmt.Errorf("%s: %w", f.Name, ErrRange)}
	}
	return r, nil
}

func isNotFinite(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Namespace is the allow-list of names an expression may reference.
type Namespace struct {
	funcs  map[string]*Func
	consts map[string]float64
}

// safeBuiltins are callable from every namespace.
var safeBuiltins = map[string]*Func{
	"abs":   {Name: "abs", MinArgs: 1, MaxArgs: 1, Fn: unary(math.Abs)},
	"round": {Name: "round", MinArgs: 1, MaxArgs: 2, Fn: roundHalfEven},
}

// mathNamespace is built once and never mutated; NewNamespace copies it.
var mathNamespace = newMathNamespace()

// NewNamespace returns the allow-list for one evaluation. In Degrees mode
// sin, cos and tan take degrees and asin, acos and atan return degrees.
func NewNamespace(mode AngleMode) *Namespace {
	ns := &Namespace{
		funcs:  maps.Clone(mathNamespace.funcs),
		consts: mathNamespace.consts,
	}
	for _, name := range []string{"sin", "cos", "tan"} {
		ns.funcs[name] = forwardTrig(mathNamespace.funcs[name], mode)
	}
	for _, name := range []string{"asin", "acos", "atan"} {
		ns.funcs[name] = inverseTrig(mathNamespace.funcs[name], mode)
	}
	return ns
}

func forwardTrig(f *Func, mode AngleMode) *Func {
	if mode != Degrees {
		return f
	}
	return &Func{Name: f.Name, MinArgs: 1, MaxArgs: 1, Fn: func(args []float64) (float64, error) {
		return f.Fn([]float64{toRadians(args[0])})
	}}
}

func inverseTrig(f *Func, mode AngleMode) *Func {
	if mode != Degrees {
		return f
	}
	return &Func{Name: f.Name, MinArgs: 1, MaxArgs: 1, Fn: func(args []float64) (float64, error) {
		r, err := f.Fn(args)
		if err != nil {
			return 0, err
		}
		return toDegrees(r), nil
	}}
}

func toRadians(x float64) float64 { return x * (math.Pi / 180) }
func toDegrees(x float64) float64 { return x * (180 / math.Pi) }

// Func returns the function bound to name. Namespace entries shadow the safe
// builtins.
func (ns *Namespace) Func(name string) (*Func, bool) {
	if f, ok := ns.funcs[name]; ok {
		return f, true
	}
	f, ok := safeBuiltins[name]
	return f, ok
}

// Const returns the value of the constant bound to name.
func (ns *Namespace) Const(name string) (float64, bool) {
	v, ok := ns.consts[name]
	return v, ok
}

// Allowed reports whether name may appear in an expression.
func (ns *Namespace) Allowed(name string) bool {
	_, isFunc := ns.Func(name)
	_, isConst := ns.Const(name)
	return isFunc || isConst
}

// Functions lists every callable name, safe builtins included, sorted.
func (ns *Namespace) Functions() []string {
	names := slices.Collect(maps.Keys(ns.funcs))
	for name := range safeBuiltins {
		if _, ok := ns.funcs[name]; !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Constants lists every constant name, sorted.
func (ns *Namespace) Constants() []string {
	return slices.Sorted(maps.Keys(ns.consts))
}
