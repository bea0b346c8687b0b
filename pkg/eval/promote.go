package eval

import (
	"log/slog"

	"github.com/EverettGrethel/dynexpr/pkg/expr"
	"github.com/EverettGrethel/dynexpr/pkg/ops"
)

// EvalPromoted evaluates a float32 tree against float64 data by
// promoting the tree's constants to float64 first. The promotion is
// legal but usually unintended in a hot search loop, so it logs a
// warning each time.
func EvalPromoted(tree *expr.Node[float32], x [][]float64, set *ops.Set[float64]) ([]float64, bool) {
	slog.Warn("eval: promoting float32 tree to float64 to match input data")
	t64 := expr.Convert(tree, func(v float32) float64 { return float64(v) })
	return Eval(t64, x, set)
}
