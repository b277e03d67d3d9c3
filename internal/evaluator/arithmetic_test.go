package evaluator

import (
	"strconv"
	"testing"

	"github.com/expr-lang/expr"
)

func formatOperand(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if x < 0 {
		return "(" + s + ")"
	}
	return s
}

func toFloat(t *testing.T, v any) float64 {
	t.Helper()
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	}
	t.Fatalf("unexpected oracle result type %T", v)
	return 0
}

// Binary arithmetic on literals agrees with expr-lang evaluating the same
// operation in canonical syntax.
func TestBinaryArithmeticMatchesOracle(t *testing.T) {
	operands := []float64{0, 1, -1, 2, 7, -13, 0.5, 3.25, -0.125, 1e6, 123456.789}
	ops := []struct {
		display   string
		canonical string
	}{
		{display: "+", canonical: "+"},
		{display: "-", canonical: "-"},
		{display: "×", canonical: "*"},
		{display: "÷", canonical: "/"},
	}

	for _, a := range operands {
		for _, b := range operands {
			for _, op := range ops {
				if op.canonical == "/" && b == 0 {
					continue
				}
				ours := formatOperand(a) + op.display + formatOperand(b)
				theirs := formatOperand(a) + " " + op.canonical + " " + formatOperand(b)

				t.Run(ours, func(t *testing.T) {
					want, err := expr.Eval(theirs, nil)
					if err != nil {
						t.Fatalf("oracle failed on %q: %v", theirs, err)
					}
					got := mustEvaluate(t, ours, Radians)
					if w := toFloat(t, want); !approxEqual(got, w) {
						t.Fatalf("%q: expected %v, got %v", ours, w, got)
					}
				})
			}
		}
	}
}
