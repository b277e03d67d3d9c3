package evaluator

import (
	"errors"
	"fmt"
	"math"
)

// Expr is a validated expression ready to evaluate. Every name it references
// has already been checked against its namespace.
type Expr struct {
	source     string
	normalized string
	mode       AngleMode
	root       node
}

// Parse normalizes expression, resolves its names against the namespace for
// mode and returns the parsed form. Nothing is evaluated.
func Parse(expression string, mode AngleMode) (*Expr, error) {
	return ParseWith(expression, mode, NewNamespace(mode))
}

// ParseWith is Parse with a caller-supplied namespace.
func ParseWith(expression string, mode AngleMode, ns *Namespace) (*Expr, error) {
	normalized := Normalize(expression)
	root, err := parse(normalized, ns)
	if err != nil {
		return nil, err
	}
	return &Expr{
		source:     expression,
		normalized: normalized,
		mode:       mode,
		root:       root,
	}, nil
}

func (e *Expr) Source() string { return e.source }

// Normalized is the canonical text the parser read.
func (e *Expr) Normalized() string { return e.normalized }

func (e *Expr) AngleMode() AngleMode { return e.mode }

// Eval computes the expression. A result that is not a finite number is an
// EvalError.
func (e *Expr) Eval() (Result, error) {
	v, err := e.root.eval()
	if err != nil {
		var ee *EvalError
		if errors.Is(err, ErrDivisionByZero) || errors.As(err, &ee) {
			return Result{}, err
		}
		return Result{}, &EvalError{Err: err}
	}
	if math.IsNaN(v) {
		return Result{}, &EvalError{Err: fmt.Errorf("result is not a number: %w", ErrDomain)}
	}
	if math.IsInf(v, 0) {
		return Result{}, &EvalError{Err: fmt.Errorf("result is infinite: %w", ErrRange)}
	}
	return Result{Value: v}, nil
}

// Evaluate parses and evaluates expression in one step.
func Evaluate(expression string, mode AngleMode) (Result, error) {
	e, err := Parse(expression, mode)
	if err != nil {
		return Result{}, err
	}
	return e.Eval()
}
