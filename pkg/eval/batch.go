package eval

import (
	"runtime"

	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"

	"github.com/EverettGrethel/dynexpr/pkg/expr"
	"github.com/EverettGrethel/dynexpr/pkg/ops"
)

// EvalMany evaluates a batch of trees against one input matrix with at
// most workers goroutines (GOMAXPROCS when workers <= 0). Each tree
// gets its own result vector and completeness flag. The trees and the
// registry must not be mutated while the batch runs.
func EvalMany[T constraints.Float](trees []*expr.Node[T], x [][]T, set *ops.Set[T], workers int) ([][]T, []bool) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	outs := make([][]T, len(trees))
	oks := make([]bool, len(trees))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, t := range trees {
		i, t := i, t
		g.Go(func() error {
			outs[i], oks[i] = Eval(t, x, set)
			return nil
		})
	}
	g.Wait()

	return outs, oks
}
