package eval

import (
	"golang.org/x/exp/constraints"

	"github.com/EverettGrethel/dynexpr/pkg/expr"
	"github.com/EverettGrethel/dynexpr/pkg/ops"
)

// EvalScalar evaluates a variable-free tree to a single scalar. It
// returns ok=false on any non-finite intermediate, or when the tree
// contains a variable leaf after all.
func EvalScalar[T constraints.Float](t *expr.Node[T], set *ops.Set[T]) (T, bool) {
	switch t.Degree {
	case 0:
		if !t.Constant {
			var zero T
			return zero, false
		}
		return t.Val, finite(t.Val)
	case 1:
		v, ok := EvalScalar(t.Left, set)
		if !ok {
			var zero T
			return zero, false
		}
		r := set.Unary(t.Op).Fn(v)
		return r, finite(r)
	default:
		l, ok := EvalScalar(t.Left, set)
		if !ok {
			var zero T
			return zero, false
		}
		r, ok := EvalScalar(t.Right, set)
		if !ok {
			var zero T
			return zero, false
		}
		v := set.Binary(t.Op).Fn(l, r)
		return v, finite(v)
	}
}
