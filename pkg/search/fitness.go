package search

import (
	"math"

	"github.com/EverettGrethel/dynexpr/pkg/eval"
	"github.com/EverettGrethel/dynexpr/pkg/expr"
	"github.com/EverettGrethel/dynexpr/pkg/ops"
)

// Score is the fitness of a candidate tree against a dataset. Combined
// is what the engine maximizes: negative mean squared error minus a
// parsimony penalty per node.
type Score struct {
	MSE      float64
	Size     int
	Combined float64
	OK       bool
}

// WorstScore returns the score assigned to invalid candidates.
func WorstScore() Score {
	return Score{MSE: math.Inf(1), Combined: -1e18}
}

// ScoreTree evaluates tree over the dataset and scores it. Candidates
// whose evaluation is incomplete, and candidates that do not depend on
// any feature, get the worst score.
func ScoreTree(tree *expr.Node[float64], ds *Dataset, set *ops.Set[float64], parsimony float64) Score {
	if !expr.ContainsVar(tree) {
		return WorstScore()
	}
	out, complete := eval.Eval(tree, ds.Inputs, set)
	if !complete {
		return WorstScore()
	}
	var sse float64
	for j, y := range ds.Target {
		d := out[j] - y
		sse += d * d
	}
	mse := sse / float64(ds.Samples())
	if math.IsNaN(mse) || math.IsInf(mse, 0) {
		return WorstScore()
	}
	size := expr.Count(tree)
	return Score{
		MSE:      mse,
		Size:     size,
		Combined: -mse - parsimony*float64(size),
		OK:       true,
	}
}
