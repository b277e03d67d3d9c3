// Package evaluator turns calculator notation into a number.
//
// Input such as "2×sin(30)+50%" is first normalized into canonical operators
// (×→*, ÷→/, ^→**, π→pi, percent literals into divisions by 100), then parsed
// by a small closed grammar. Every name in the expression is resolved against
// an allow-list Namespace while parsing, so an expression that mentions an
// unknown name is rejected before any part of it is evaluated. Malformed input
// is reported as a SyntaxError ahead of any name problem.
//
// Failures are typed: UnknownIdentifierError, SyntaxError, EvalError and the
// ErrDivisionByZero sentinel. KindOf maps any of them to a Kind for callers
// that need a discriminant (HTTP status codes, metric attributes).
package evaluator
