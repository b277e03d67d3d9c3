package evaluator

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned for division, floor division or modulo by
// zero, and for zero raised to a negative power.
var ErrDivisionByZero = errors.New("division by zero")

// Causes carried by an EvalError when a math function leaves its domain or
// overflows.
var (
	ErrDomain = errors.New("math domain error")
	ErrRange  = errors.New("math range error")
)

// UnknownIdentifierError reports a name that is neither in the namespace nor
// one of the safe builtins.
type UnknownIdentifierError struct {
	Name string
	// Pos is the byte offset of the name in the normalized expression.
	Pos int
}

func (err *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("use of %q not allowed", err.Name)
}

// SyntaxError reports normalized text that is not a well-formed expression.
type SyntaxError struct {
	Pos int
	Msg string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at column %d: %s", err.Pos+1, err.Msg)
}

// EvalError wraps any other failure: domain and range errors, misuse of a
// function or constant, wrong argument counts.
type EvalError struct {
	Err error
}

func (err *EvalError) Error() string {
	return "evaluation error: " + err.Err.Error()
}

func (err *EvalError) Unwrap() error {
	return err.Err
}

// Kind discriminates evaluator failures.
type Kind int

const (
	KindNone Kind = iota
	KindUnknownIdentifier
	KindDivisionByZero
	KindSyntax
	KindEvaluation
)

func (k Kind) String() string {
	switch k {
	case KindUnknownIdentifier:
		return "unknown_identifier"
	case KindDivisionByZero:
		return "division_by_zero"
	case KindSyntax:
		return "syntax_error"
	case KindEvaluation:
		return "evaluation_error"
	}
	return "none"
}

// KindOf classifies err. Errors that did not come from the evaluator are
// KindEvaluation; a nil error is KindNone.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var (
		unknown *UnknownIdentifierError
		syntax  *SyntaxError
	)
	switch {
	case errors.Is(err, ErrDivisionByZero):
		return KindDivisionByZero
	case errors.As(err, &unknown):
		return KindUnknownIdentifier
	case errors.As(err, &syntax):
		return KindSyntax
	}
	return KindEvaluation
}

func evalErrorf(format string, args ...any) error {
	return &EvalError{Err: fmt.Errorf(format, args...)}
}
