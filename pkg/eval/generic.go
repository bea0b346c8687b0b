package eval

import (
	"errors"
	"fmt"

	"github.com/EverettGrethel/dynexpr/pkg/expr"
	"github.com/EverettGrethel/dynexpr/pkg/ops"
	"github.com/EverettGrethel/dynexpr/pkg/render"
)

// ErrOperator wraps a failure inside an operator during generic
// evaluation.
var ErrOperator = errors.New("eval: operator failure")

// EvalGeneric evaluates a tree of an arbitrary element type: strings,
// slices, decimals, domain objects. Feature leaves select along the
// first axis of x, so with T = []float64 and x holding rows, a feature
// yields a whole row and operators compose over vectors.
//
// There is no finiteness tracking and no structural specialization. A
// panic inside an operator (or a feature index outside x) is recovered:
// with throwErrors it is returned as an error naming the rendered tree,
// otherwise it folds into ok=false.
func EvalGeneric[T any](tree *expr.Node[T], x []T, set *ops.Set[T], throwErrors bool) (out T, ok bool, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var zero T
		out, ok = zero, false
		if throwErrors {
			err = fmt.Errorf("%w: %v (tree: %s)", ErrOperator, r, render.Render(tree, set, nil))
		}
	}()
	out = evalGeneric(tree, x, set)
	return out, true, nil
}

func evalGeneric[T any](n *expr.Node[T], x []T, set *ops.Set[T]) T {
	switch n.Degree {
	case 0:
		if n.Constant {
			return n.Val
		}
		return x[n.Feature-1]
	case 1:
		return set.Unary(n.Op).Fn(evalGeneric(n.Left, x, set))
	default:
		return set.Binary(n.Op).Fn(evalGeneric(n.Left, x, set), evalGeneric(n.Right, x, set))
	}
}
