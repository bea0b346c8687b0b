package ops

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Built-in scalar operators. The safe_* family clamps its domain by
// returning NaN instead of panicking or raising floating-point traps,
// so a search loop can feed them arbitrary trees; the evaluator's
// completeness flag picks the NaN up.

func Neg[T constraints.Float](x T) T { return -x }

func Abs[T constraints.Float](x T) T {
	return T(math.Abs(float64(x)))
}

func Sin[T constraints.Float](x T) T { return T(math.Sin(float64(x))) }

func Cos[T constraints.Float](x T) T { return T(math.Cos(float64(x))) }

func Tan[T constraints.Float](x T) T { return T(math.Tan(float64(x))) }

func Exp[T constraints.Float](x T) T { return T(math.Exp(float64(x))) }

// SafeLog returns NaN for x <= 0.
func SafeLog[T constraints.Float](x T) T {
	if x <= 0 {
		return T(math.NaN())
	}
	return T(math.Log(float64(x)))
}

// SafeLog2 returns NaN for x <= 0.
func SafeLog2[T constraints.Float](x T) T {
	if x <= 0 {
		return T(math.NaN())
	}
	return T(math.Log2(float64(x)))
}

// SafeLog10 returns NaN for x <= 0.
func SafeLog10[T constraints.Float](x T) T {
	if x <= 0 {
		return T(math.NaN())
	}
	return T(math.Log10(float64(x)))
}

// SafeLog1p returns NaN for x <= -1.
func SafeLog1p[T constraints.Float](x T) T {
	if x <= -1 {
		return T(math.NaN())
	}
	return T(math.Log1p(float64(x)))
}

// SafeSqrt returns NaN for x < 0.
func SafeSqrt[T constraints.Float](x T) T {
	if x < 0 {
		return T(math.NaN())
	}
	return T(math.Sqrt(float64(x)))
}

// SafeAcosh returns NaN for x < 1.
func SafeAcosh[T constraints.Float](x T) T {
	if x < 1 {
		return T(math.NaN())
	}
	return T(math.Acosh(float64(x)))
}

func Add[T constraints.Float](x, y T) T { return x + y }

func Sub[T constraints.Float](x, y T) T { return x - y }

func Mul[T constraints.Float](x, y T) T { return x * y }

// Div is plain IEEE division; x/0 yields ±Inf or NaN and is caught by
// the evaluator's output scan.
func Div[T constraints.Float](x, y T) T { return x / y }

// SafePow returns NaN for 0 raised to a negative power; negative bases
// with non-integer exponents already yield NaN from math.Pow.
func SafePow[T constraints.Float](x, y T) T {
	if x == 0 && y < 0 {
		return T(math.NaN())
	}
	return T(math.Pow(float64(x), float64(y)))
}
