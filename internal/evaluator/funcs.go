package evaluator

import (
	"fmt"
	"math"
)

func unary(f func(float64) float64) func([]float64) (float64, error) {
	return func(args []float64) (float64, error) {
		return f(args[0]), nil
	}
}

func binary(f func(float64, float64) float64) func([]float64) (float64, error) {
	return func(args []float64) (float64, error) {
		return f(args[0], args[1]), nil
	}
}

func predicate(f func(float64) bool) func([]float64) (float64, error) {
	return func(args []float64) (float64, error) {
		return boolToFloat(f(args[0])), nil
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// positiveLog guards the logarithms: the math library reports log(0) as a
// domain error rather than -inf.
func positiveLog(f func(float64) float64) func([]float64) (float64, error) {
	return func(args []float64) (float64, error) {
		if args[0] <= 0 {
			return 0, ErrDomain
		}
		return f(args[0]), nil
	}
}

func fn(name string, minArgs, maxArgs int, f func([]float64) (float64, error)) *Func {
	return &Func{Name: name, MinArgs: minArgs, MaxArgs: maxArgs, Fn: f}
}

func newMathNamespace() *Namespace {
	funcs := []*Func{
		// Trigonometry, always in radians here; NewNamespace wraps them for
		// degree mode.
		fn("sin", 1, 1, unary(math.Sin)),
		fn("cos", 1, 1, unary(math.Cos)),
		fn("tan", 1, 1, unary(math.Tan)),
		fn("asin", 1, 1, unary(math.Asin)),
		fn("acos", 1, 1, unary(math.Acos)),
		fn("atan", 1, 1, unary(math.Atan)),
		fn("atan2", 2, 2, binary(math.Atan2)),
		fn("sinh", 1, 1, unary(math.Sinh)),
		fn("cosh", 1, 1, unary(math.Cosh)),
		fn("tanh", 1, 1, unary(math.Tanh)),
		fn("asinh", 1, 1, unary(math.Asinh)),
		fn("acosh", 1, 1, unary(math.Acosh)),
		fn("atanh", 1, 1, unary(math.Atanh)),
		fn("degrees", 1, 1, unary(toDegrees)),
		fn("radians", 1, 1, unary(toRadians)),

		// Exponentials and logarithms.
		fn("exp", 1, 1, unary(math.Exp)),
		fn("exp2", 1, 1, unary(math.Exp2)),
		fn("expm1", 1, 1, unary(math.Expm1)),
		fn("ln", 1, 2, logBase),
		fn("log", 1, 1, positiveLog(math.Log10)),
		fn("log10", 1, 1, positiveLog(math.Log10)),
		fn("log2", 1, 1, positiveLog(math.Log2)),
		fn("log1p", 1, 1, func(args []float64) (float64, error) {
			if args[0] <= -1 {
				return 0, ErrDomain
			}
			return math.Log1p(args[0]), nil
		}),

		// Powers and roots.
		fn("pow", 2, 2, mathPow),
		fn("sqrt", 1, 1, unary(math.Sqrt)),
		fn("cbrt", 1, 1, unary(math.Cbrt)),
		fn("isqrt", 1, 1, isqrt),
		fn("hypot", 0, -1, func(args []float64) (float64, error) {
			h := 0.0
			for _, x := range args {
				h = math.Hypot(h, x)
			}
			return h, nil
		}),

		// Rounding and sign.
		fn("ceil", 1, 1, unary(math.Ceil)),
		fn("floor", 1, 1, unary(math.Floor)),
		fn("trunc", 1, 1, unary(math.Trunc)),
		fn("fabs", 1, 1, unary(math.Abs)),
		fn("copysign", 2, 2, binary(math.Copysign)),
		fn("fmod", 2, 2, binary(math.Mod)),
		fn("remainder", 2, 2, binary(math.Remainder)),
		fn("ldexp", 2, 2, ldexp),
		fn("nextafter", 2, 2, binary(math.Nextafter)),
		fn("ulp", 1, 1, unary(ulp)),

		// Number theory. fact is the calculator's spelling of factorial.
		fn("factorial", 1, 1, factorial),
		fn("fact", 1, 1, factorial),
		fn("comb", 2, 2, comb),
		fn("perm", 1, 2, perm),
		fn("gcd", 0, -1, gcd),
		fn("lcm", 0, -1, lcm),

		// Special functions.
		fn("erf", 1, 1, unary(math.Erf)),
		fn("erfc", 1, 1, unary(math.Erfc)),
		fn("gamma", 1, 1, gamma),
		fn("lgamma", 1, 1, func(args []float64) (float64, error) {
			if isNonPositiveInteger(args[0]) {
				return 0, ErrDomain
			}
			v, _ := math.Lgamma(args[0])
			return v, nil
		}),

		// Predicates answer 1 or 0.
		fn("isclose", 2, 2, func(args []float64) (float64, error) {
			return boolToFloat(isClose(args[0], args[1])), nil
		}),
		fn("isfinite", 1, 1, predicate(func(x float64) bool { return !isNotFinite(x) })),
		fn("isinf", 1, 1, predicate(func(x float64) bool { return math.IsInf(x, 0) })),
		fn("isnan", 1, 1, predicate(math.IsNaN)),
	}

	ns := &Namespace{
		funcs: make(map[string]*Func, len(funcs)),
		consts: map[string]float64{
			"pi":  math.Pi,
			"e":   math.E,
			"tau": 2 * math.Pi,
			"inf": math.Inf(1),
			"nan": math.NaN(),
		},
	}
	for _, f := range funcs {
		ns.funcs[f.Name] = f
	}
	return ns
}

func logBase(args []float64) (float64, error) {
	if args[0] <= 0 {
		return 0, ErrDomain
	}
	if len(args) == 1 {
		return math.Log(args[0]), nil
	}
	if args[1] <= 0 {
		return 0, ErrDomain
	}
	d := math.Log(args[1])
	if d == 0 {
		return 0, ErrDivisionByZero
	}
	return math.Log(args[0]) / d, nil
}

func mathPow(args []float64) (float64, error) {
	x, y := args[0], args[1]
	if x == 0 && y < 0 {
		return 0, ErrDomain
	}
	if x < 0 && !math.IsInf(x, 0) && !math.IsInf(y, 0) && y != math.Trunc(y) {
		return 0, ErrDomain
	}
	return math.Pow(x, y), nil
}

func gamma(args []float64) (float64, error) {
	if isNonPositiveInteger(args[0]) {
		return 0, ErrDomain
	}
	return math.Gamma(args[0]), nil
}

func isNonPositiveInteger(x float64) bool {
	return x <= 0 && x == math.Trunc(x) && !math.IsInf(x, 0)
}

func ulp(x float64) float64 {
	x = math.Abs(x)
	if isNotFinite(x) {
		return x
	}
	return math.Nextafter(x, math.Inf(1)) - x
}

func isClose(a, b float64) bool {
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

func roundHalfEven(args []float64) (float64, error) {
	x := args[0]
	if len(args) == 1 {
		return math.RoundToEven(x), nil
	}
	digits, err := integral("round", args[1])
	if err != nil {
		return 0, err
	}
	if isNotFinite(x) {
		return x, nil
	}
	p := math.Pow(10, digits)
	if math.IsInf(p, 0) || math.IsInf(x*p, 0) {
		return x, nil
	}
	if p == 0 {
		return 0 * x, nil
	}
	return math.RoundToEven(x*p) / p, nil
}

func ldexp(args []float64) (float64, error) {
	e, err := integral("ldexp", args[1])
	if err != nil {
		return 0, err
	}
	e = math.Max(math.Min(e, 1<<20), -(1 << 20))
	return math.Ldexp(args[0], int(e)), nil
}

// integral returns x if it is a whole number.
func integral(name string, x float64) (float64, error) {
	if isNotFinite(x) || x != math.Trunc(x) {
		return 0, fmt.Errorf("%s() only accepts integral values", name)
	}
	return x, nil
}

// natural returns x if it is a non-negative whole number.
func natural(name string, x float64) (float64, error) {
	n, err := integral(name, x)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%s() not defined for negative values", name)
	}
	return n, nil
}

// maxFactorial is the largest n whose factorial fits in a float64.
const maxFactorial = 170

func factorial(args []float64) (float64, error) {
	n, err := natural("factorial", args[0])
	if err != nil {
		return 0, err
	}
	if n > maxFactorial {
		return math.Inf(1), nil
	}
	r := 1.0
	for i := 2.0; i <= n; i++ {
		r *= i
	}
	return r, nil
}

func comb(args []float64) (float64, error) {
	n, err := natural("comb", args[0])
	if err != nil {
		return 0, err
	}
	k, err := natural("comb", args[1])
	if err != nil {
		return 0, err
	}
	if k > n {
		return 0, nil
	}
	k = math.Min(k, n-k)
	r := 1.0
	for i := 1.0; i <= k && !math.IsInf(r, 0); i++ {
		r = r * (n - k + i) / i
	}
	return math.Round(r), nil
}

func perm(args []float64) (float64, error) {
	if len(args) == 1 {
		return factorial(args)
	}
	n, err := natural("perm", args[0])
	if err != nil {
		return 0, err
	}
	k, err := natural("perm", args[1])
	if err != nil {
		return 0, err
	}
	if k > n {
		return 0, nil
	}
	r := 1.0
	for i := 0.0; i < k && !math.IsInf(r, 0); i++ {
		r *= n - i
	}
	return r, nil
}

// maxExactInt is 2^53, the bound below which float64 holds every integer.
const maxExactInt = 1 << 53

func isqrt(args []float64) (float64, error) {
	n, err := natural("isqrt", args[0])
	if err != nil {
		return 0, err
	}
	r := math.Floor(math.Sqrt(n))
	// Above 2^53 neither n nor r±1 is exact, so floor(sqrt) is as close as
	// float64 gets and stepping r would not terminate.
	if n >= maxExactInt {
		return r, nil
	}
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r, nil
}

func gcd(args []float64) (float64, error) {
	g := 0.0
	for _, x := range args {
		n, err := integral("gcd", x)
		if err != nil {
			return 0, err
		}
		g = gcd2(g, math.Abs(n))
	}
	return g, nil
}

func gcd2(a, b float64) float64 {
	for b != 0 {
		a, b = b, math.Mod(a, b)
	}
	return a
}

func lcm(args []float64) (float64, error) {
	l := 1.0
	for _, x := range args {
		n, err := integral("lcm", x)
		if err != nil {
			return 0, err
		}
		n = math.Abs(n)
		if n == 0 || l == 0 {
			l = 0
			continue
		}
		l = l / gcd2(l, n) * n
	}
	return l, nil
}
