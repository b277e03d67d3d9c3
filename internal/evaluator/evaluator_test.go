package evaluator

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func approxEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func mustEvaluate(t *testing.T, expression string, mode AngleMode) float64 {
	t.Helper()
	r, err := Evaluate(expression, mode)
	if err != nil {
		t.Fatalf("Evaluate(%q, %s): unexpected error: %v", expression, mode, err)
	}
	return r.Value
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{expr: "1+2", want: 3},
		{expr: "7-10", want: -3},
		{expr: "6×7", want: 42},
		{expr: "1÷4", want: 0.25},
		{expr: "2^10", want: 1024},
		{expr: "2**3**2", want: 512},
		{expr: "-2**2", want: -4},
		{expr: "2**-1", want: 0.5},
		{expr: "(-2)**2", want: 4},
		{expr: "1+2*3", want: 7},
		{expr: "(1+2)*3", want: 9},
		{expr: "--3", want: 3},
		{expr: "+4", want: 4},
		{expr: "7//2", want: 3},
		{expr: "-7//2", want: -4},
		{expr: "(7)%3", want: 1},
		{expr: "(-7)%3", want: 2},
		{expr: "(7)%-3", want: -2},
		{expr: "50%2", want: 1},
		{expr: "50%", want: 0.5},
		{expr: "200×10%", want: 20},
		{expr: ".5+5.", want: 5.5},
		{expr: "1e3", want: 1000},
		{expr: "2.5E-1", want: 0.25},
		{expr: "π", want: math.Pi},
		{expr: "2*e", want: 2 * math.E},
		{expr: "tau/2", want: math.Pi},
		{expr: "sqrt(16)", want: 4},
		{expr: "ln(e)", want: 1},
		{expr: "ln(8, 2)", want: 3},
		{expr: "log(1000)", want: 3},
		{expr: "log2(8)", want: 3},
		{expr: "fact(5)", want: 120},
		{expr: "factorial(0)", want: 1},
		{expr: "gamma(5)", want: 24},
		{expr: "comb(5, 2)", want: 10},
		{expr: "perm(5, 2)", want: 20},
		{expr: "perm(4)", want: 24},
		{expr: "gcd(12, 18, 27)", want: 3},
		{expr: "lcm(4, 6)", want: 12},
		{expr: "isqrt(17)", want: 4},
		{expr: "isqrt(10**20)", want: 1e10},
		{expr: "isqrt(2**52+1)", want: 67108864},
		{expr: "isqrt(10**40)", want: 1e20},
		{expr: "isqrt(1e300)", want: 1e150},
		{expr: "isqrt(2**106+12345)", want: 1 << 53},
		{expr: "hypot(3, 4)", want: 5},
		{expr: "pow(2, 0.5)", want: math.Sqrt2},
		{expr: "abs(-3.5)", want: 3.5},
		{expr: "round(2.5)", want: 2},
		{expr: "round(3.5)", want: 4},
		{expr: "round(3.14159, 2)", want: 3.14},
		{expr: "floor(-1.5) + ceil(1.2)", want: 0},
		{expr: "fmod(7, 3)", want: 1},
		{expr: "isnan(nan)", want: 1},
		{expr: "isclose(0.1+0.2, 0.3)", want: 1},
		{expr: "degrees(pi)", want: 180},
		{expr: " 1 +\t2 ", want: 3},
	}

	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			got := mustEvaluate(t, tc.expr, Radians)
			if !approxEqual(got, tc.want) {
				t.Fatalf("Evaluate(%q): expected %v, got %v", tc.expr, tc.want, got)
			}
		})
	}
}

func TestEvaluateAngleModes(t *testing.T) {
	tests := []struct {
		expr string
		mode AngleMode
		want float64
	}{
		{expr: "sin(90)", mode: Degrees, want: 1},
		{expr: "sin(90)", mode: Radians, want: math.Sin(90)},
		{expr: "cos(180)", mode: Degrees, want: -1},
		{expr: "tan(45)", mode: Degrees, want: 1},
		{expr: "asin(1)", mode: Degrees, want: 90},
		{expr: "asin(1)", mode: Radians, want: math.Pi / 2},
		{expr: "acos(0)", mode: Degrees, want: 90},
		{expr: "atan(1)", mode: Degrees, want: 45},
		{expr: "sin(π/2)", mode: Radians, want: 1},
		// atan2 and the hyperbolic functions ignore the angle mode.
		{expr: "atan2(1, 1)", mode: Degrees, want: math.Pi / 4},
		{expr: "sinh(0)", mode: Degrees, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.mode.String()+"/"+tc.expr, func(t *testing.T) {
			got := mustEvaluate(t, tc.expr, tc.mode)
			if !approxEqual(got, tc.want) {
				t.Fatalf("Evaluate(%q, %s): expected %v, got %v", tc.expr, tc.mode, tc.want, got)
			}
		})
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	for _, expr := range []string{"1/0", "1÷0", "5//0", "(5)%0", "0**-1", "1/(2-2)", "ln(5, 1)"} {
		t.Run(expr, func(t *testing.T) {
			_, err := Evaluate(expr, Radians)
			if !errors.Is(err, ErrDivisionByZero) {
				t.Fatalf("expected ErrDivisionByZero, got %v", err)
			}
			if KindOf(err) != KindDivisionByZero {
				t.Fatalf("expected kind %s, got %s", KindDivisionByZero, KindOf(err))
			}
		})
	}
}

func TestEvaluateUnknownIdentifier(t *testing.T) {
	tests := []struct {
		expr string
		name string
	}{
		{expr: "foo(1)", name: "foo"},
		{expr: "x + 1", name: "x"},
		{expr: "__import__(1)", name: "__import__"},
		{expr: "open", name: "open"},
		{expr: "sqrt(4) + eval(1)", name: "eval"},
	}

	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			_, err := Evaluate(tc.expr, Radians)
			var unknown *UnknownIdentifierError
			if !errors.As(err, &unknown) {
				t.Fatalf("expected UnknownIdentifierError, got %v", err)
			}
			if unknown.Name != tc.name {
				t.Fatalf("expected name %q, got %q", tc.name, unknown.Name)
			}
		})
	}
}

// An unknown name is reported even when evaluating the rest of the
// expression would fail first.
func TestUnknownIdentifierRejectedBeforeEvaluation(t *testing.T) {
	_, err := Evaluate("1/0 + foo(2)", Radians)
	if KindOf(err) != KindUnknownIdentifier {
		t.Fatalf("expected kind %s, got %v", KindUnknownIdentifier, err)
	}
}

// The whole input must be well formed before any name is judged; among name
// problems an unknown identifier wins over misuse of a known one.
func TestErrorPrecedence(t *testing.T) {
	tests := []struct {
		expr string
		want Kind
	}{
		{expr: "foo(1", want: KindSyntax},
		{expr: "foo(1) +", want: KindSyntax},
		{expr: "x 2", want: KindSyntax},
		{expr: "sqrt + (1", want: KindSyntax},
		{expr: "sin(1, 2) + foo", want: KindUnknownIdentifier},
		{expr: "pi(2) + foo(1)", want: KindUnknownIdentifier},
		{expr: "foo(sqrt)", want: KindUnknownIdentifier},
		{expr: "sin(1, 2) + pi(2)", want: KindEvaluation},
	}

	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			_, err := Evaluate(tc.expr, Radians)
			if got := KindOf(err); got != tc.want {
				t.Fatalf("expected kind %s, got %s (%v)", tc.want, got, err)
			}
		})
	}
}

func TestEvaluateSyntaxErrors(t *testing.T) {
	for _, expr := range []string{"", "   ", "1+", "(1+2", "1+2)", "2 3", "sin(1,", "1 $ 2", "*3", "()", "2e", "1..2"} {
		t.Run(expr, func(t *testing.T) {
			_, err := Evaluate(expr, Radians)
			var syntax *SyntaxError
			if !errors.As(err, &syntax) {
				t.Fatalf("expected SyntaxError, got %v", err)
			}
		})
	}
}

func TestEvaluateEvaluationErrors(t *testing.T) {
	tests := []struct {
		expr  string
		cause error
	}{
		{expr: "sqrt(-1)", cause: ErrDomain},
		{expr: "ln(0)", cause: ErrDomain},
		{expr: "log(-10)", cause: ErrDomain},
		{expr: "asin(2)", cause: ErrDomain},
		{expr: "(-8)**(1/3)", cause: ErrDomain},
		{expr: "exp(1000)", cause: ErrRange},
		{expr: "10**400", cause: ErrRange},
		{expr: "fact(171)", cause: ErrRange},
		{expr: "inf", cause: ErrRange},
		{expr: "nan", cause: ErrDomain},
		{expr: "fact(2.5)"},
		{expr: "fact(-1)"},
		{expr: "sin(1, 2)"},
		{expr: "atan2(1)"},
		{expr: "pi(2)"},
		{expr: "sqrt"},
	}

	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			_, err := Evaluate(tc.expr, Radians)
			var ee *EvalError
			if !errors.As(err, &ee) {
				t.Fatalf("expected EvalError, got %v", err)
			}
			if KindOf(err) != KindEvaluation {
				t.Fatalf("expected kind %s, got %s", KindEvaluation, KindOf(err))
			}
			if tc.cause != nil && !errors.Is(err, tc.cause) {
				t.Fatalf("expected cause %v, got %v", tc.cause, err)
			}
		})
	}
}

func TestParseKeepsNormalizedText(t *testing.T) {
	e, err := Parse("50%×2^3", Degrees)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := e.Normalized(), "(50/100)*2**3"; got != want {
		t.Fatalf("expected normalized %q, got %q", want, got)
	}
	if e.Source() != "50%×2^3" {
		t.Fatalf("expected source to be preserved, got %q", e.Source())
	}
	if e.AngleMode() != Degrees {
		t.Fatalf("expected angle mode %s, got %s", Degrees, e.AngleMode())
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{err: nil, want: KindNone},
		{err: ErrDivisionByZero, want: KindDivisionByZero},
		{err: &UnknownIdentifierError{Name: "x"}, want: KindUnknownIdentifier},
		{err: &SyntaxError{Msg: "bad"}, want: KindSyntax},
		{err: &EvalError{Err: ErrDomain}, want: KindEvaluation},
		{err: errors.New("other"), want: KindEvaluation},
	}

	for _, tc := range tests {
		t.Run(tc.want.String(), func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Fatalf("KindOf(%v): expected %s, got %s", tc.err, tc.want, got)
			}
		})
	}
}

func TestParseAngleMode(t *testing.T) {
	tests := []struct {
		in      string
		want    AngleMode
		wantErr bool
	}{
		{in: "", want: Radians},
		{in: "rad", want: Radians},
		{in: "Radians", want: Radians},
		{in: "deg", want: Degrees},
		{in: "DEGREES", want: Degrees},
		{in: "grad", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAngleMode(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
