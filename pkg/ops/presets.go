package ops

import "golang.org/x/exp/constraints"

// Registry presets, smallest to largest. A search loop picks one as its
// operator alphabet; library users building trees by hand usually
// construct their own Set instead.

// Conservative is the basic arithmetic alphabet: + - * / and negation.
func Conservative[T constraints.Float]() *Set[T] {
	return NewSet(
		[]UnaryOp[T]{
			{Name: "neg", Fn: Neg[T]},
		},
		[]BinaryOp[T]{
			{Name: "+", Fn: Add[T]},
			{Name: "-", Fn: Sub[T]},
			{Name: "*", Fn: Mul[T]},
			{Name: "/", Fn: Div[T]},
		},
		false,
	)
}

// Moderate adds trig, exponentials and the safe logarithm and square
// root.
func Moderate[T constraints.Float]() *Set[T] {
	return NewSet(
		[]UnaryOp[T]{
			{Name: "neg", Fn: Neg[T]},
			{Name: "cos", Fn: Cos[T]},
			{Name: "sin", Fn: Sin[T]},
			{Name: "exp", Fn: Exp[T]},
			{Name: "safe_log", Fn: SafeLog[T]},
			{Name: "safe_sqrt", Fn: SafeSqrt[T]},
			{Name: "abs", Fn: Abs[T]},
		},
		[]BinaryOp[T]{
			{Name: "+", Fn: Add[T]},
			{Name: "-", Fn: Sub[T]},
			{Name: "*", Fn: Mul[T]},
			{Name: "/", Fn: Div[T]},
		},
		false,
	)
}

// KitchenSink is the full built-in alphabet.
func KitchenSink[T constraints.Float]() *Set[T] {
	return NewSet(
		[]UnaryOp[T]{
			{Name: "neg", Fn: Neg[T]},
			{Name: "cos", Fn: Cos[T]},
			{Name: "sin", Fn: Sin[T]},
			{Name: "tan", Fn: Tan[T]},
			{Name: "exp", Fn: Exp[T]},
			{Name: "abs", Fn: Abs[T]},
			{Name: "safe_log", Fn: SafeLog[T]},
			{Name: "safe_log2", Fn: SafeLog2[T]},
			{Name: "safe_log10", Fn: SafeLog10[T]},
			{Name: "safe_log1p", Fn: SafeLog1p[T]},
			{Name: "safe_sqrt", Fn: SafeSqrt[T]},
			{Name: "safe_acosh", Fn: SafeAcosh[T]},
		},
		[]BinaryOp[T]{
			{Name: "+", Fn: Add[T]},
			{Name: "-", Fn: Sub[T]},
			{Name: "*", Fn: Mul[T]},
			{Name: "/", Fn: Div[T]},
			{Name: "safe_pow", Fn: SafePow[T]},
		},
		false,
	)
}
