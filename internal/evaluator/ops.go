package evaluator

import "math"

func applyBinary(op string, x, y float64) (float64, error) {
	switch op {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/":
		if y == 0 {
			return 0, ErrDivisionByZero
		}
		return x / y, nil
	case "//":
		if y == 0 {
			return 0, ErrDivisionByZero
		}
		return math.Floor(x / y), nil
	case "%":
		if y == 0 {
			return 0, ErrDivisionByZero
		}
		return floorMod(x, y), nil
	case "**":
		return power(x, y)
	}
	return 0, evalErrorf("unknown operator %q", op)
}

// floorMod is modulo with the sign of the divisor: -7 % 3 == 2.
func floorMod(x, y float64) float64 {
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r
}

func power(x, y float64) (float64, error) {
	if x == 0 && y < 0 {
		return 0, ErrDivisionByZero
	}
	if x < 0 && !math.IsInf(x, 0) && y != math.Trunc(y) {
		return 0, evalErrorf("negative number cannot be raised to a fractional power: %w", ErrDomain)
	}
	r := math.Pow(x, y)
	if math.IsInf(r, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
		return 0, &EvalError{Err: ErrRange}
	}
	return r, nil
}
