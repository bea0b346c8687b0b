package search

import (
	"github.com/EverettGrethel/dynexpr/pkg/eval"
	"github.com/EverettGrethel/dynexpr/pkg/expr"
	"github.com/EverettGrethel/dynexpr/pkg/ops"
)

// FoldConstants returns a tree in which every variable-free subtree
// with a finite scalar value is collapsed to a single constant leaf.
// Subtrees whose scalar evaluation fails are left as they are.
func FoldConstants(tree *expr.Node[float64], set *ops.Set[float64]) *expr.Node[float64] {
	if !expr.ContainsVar(tree) {
		if v, ok := eval.EvalScalar(tree, set); ok {
			return expr.Const(v)
		}
		return tree
	}
	switch tree.Degree {
	case 1:
		return expr.Unary(tree.Op, FoldConstants(tree.Left, set))
	case 2:
		return expr.Binary(tree.Op, FoldConstants(tree.Left, set), FoldConstants(tree.Right, set))
	default:
		return tree
	}
}
