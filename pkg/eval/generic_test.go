package eval

import (
	"testing"

	"github.com/cockroachdb/apd"
	"github.com/stretchr/testify/require"

	"github.com/EverettGrethel/dynexpr/pkg/expr"
	"github.com/EverettGrethel/dynexpr/pkg/ops"
)

// TestEvalGenericStrings covers the string seed scenario: unary
// prepends "Hello ", binary concatenates.
func TestEvalGenericStrings(t *testing.T) {
	set := ops.NewSet(
		[]ops.UnaryOp[string]{{Name: "hello", Fn: func(s string) string { return "Hello " + s }}},
		[]ops.BinaryOp[string]{{Name: "*", Fn: func(a, b string) string { return a + b }}},
		false,
	)

	// x1 * " World!"
	tree := expr.Binary(1, expr.Var[string](1), expr.Const(" World!"))
	x := []string{"Hello", "Me?"}

	out, ok, err := EvalGeneric(tree, x, set, true)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Hello World!", out)

	greeting, ok, err := EvalGeneric(expr.Unary(1, expr.Var[string](2)), x, set, true)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Hello Me?", greeting)
}

// TestEvalGenericVectors: with T = []float64 a feature leaf selects a
// whole row of the matrix and operators compose over vectors.
func TestEvalGenericVectors(t *testing.T) {
	vadd := func(a, b []float64) []float64 {
		out := make([]float64, len(a))
		for i := range a {
			out[i] = a[i] + b[i]
		}
		return out
	}
	set := ops.NewSet(nil, []ops.BinaryOp[[]float64]{{Name: "+", Fn: vadd}}, false)

	tree := expr.Binary(1, expr.Var[[]float64](1), expr.Var[[]float64](2))
	x := [][]float64{{1, 2}, {3, 4}}

	out, ok, err := EvalGeneric(tree, x, set, true)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []float64{4, 6}, out)
}

// TestEvalGenericDecimals: arbitrary-precision decimals as the element
// type.
func TestEvalGenericDecimals(t *testing.T) {
	ctx := apd.BaseContext.WithPrecision(20)
	add := func(a, b *apd.Decimal) *apd.Decimal {
		r := new(apd.Decimal)
		ctx.Add(r, a, b)
		return r
	}
	mul := func(a, b *apd.Decimal) *apd.Decimal {
		r := new(apd.Decimal)
		ctx.Mul(r, a, b)
		return r
	}
	set := ops.NewSet(nil, []ops.BinaryOp[*apd.Decimal]{
		{Name: "+", Fn: add},
		{Name: "*", Fn: mul},
	}, false)

	// (x1 + 2.5) * 4
	tree := expr.Binary(2,
		expr.Binary(1, expr.Var[*apd.Decimal](1), expr.Const(apd.New(25, -1))),
		expr.Const(apd.New(4, 0)))
	x := []*apd.Decimal{apd.New(15, -1)} // 1.5

	out, ok, err := EvalGeneric(tree, x, set, true)
	require.NoError(t, err)
	require.True(t, ok)
	require.Zero(t, out.Cmp(apd.New(16, 0)), "got %s", out)
}

func TestEvalGenericErrors(t *testing.T) {
	set := ops.NewSet(
		nil,
		[]ops.BinaryOp[string]{{Name: "concat", Fn: func(a, b string) string { return a + b }}},
		false,
	)
	// Feature 5 does not exist in a 1-element input.
	tree := expr.Binary(1, expr.Var[string](5), expr.Const("!"))
	x := []string{"only"}

	_, ok, err := EvalGeneric(tree, x, set, true)
	require.False(t, ok)
	require.ErrorIs(t, err, ErrOperator)
	require.Contains(t, err.Error(), "x5", "error names the rendered tree")

	_, ok, err = EvalGeneric(tree, x, set, false)
	require.False(t, ok)
	require.NoError(t, err)
}
