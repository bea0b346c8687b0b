package search

import (
	"math/rand"

	"github.com/EverettGrethel/dynexpr/pkg/expr"
	"github.com/EverettGrethel/dynexpr/pkg/ops"
)

// Sampler produces random building blocks for a given registry:
// leaves, operator indices, and whole trees.
type Sampler struct {
	Set        *ops.Set[float64]
	Features   int     // number of feature rows in the dataset
	ConstRange float64 // constants drawn uniformly from [-ConstRange, ConstRange]
}

// Leaf returns a random leaf: a variable with probability 0.4, a
// constant otherwise.
func (s *Sampler) Leaf(rng *rand.Rand) *expr.Node[float64] {
	if s.Features > 0 && rng.Float64() < 0.4 {
		return expr.Var[float64](rng.Intn(s.Features) + 1)
	}
	return expr.Const((rng.Float64()*2 - 1) * s.ConstRange)
}

// UnaryOp returns a random 1-based unary operator index.
func (s *Sampler) UnaryOp(rng *rand.Rand) int {
	return rng.Intn(s.Set.NumUnary()) + 1
}

// BinaryOp returns a random 1-based binary operator index.
func (s *Sampler) BinaryOp(rng *rand.Rand) int {
	return rng.Intn(s.Set.NumBinary()) + 1
}

// Tree returns a random tree of at most maxDepth levels, biased toward
// leaves at shallow depths to keep trees small.
func (s *Sampler) Tree(rng *rand.Rand, maxDepth int) *expr.Node[float64] {
	if maxDepth <= 1 {
		return s.Leaf(rng)
	}
	r := rng.Float64()
	switch {
	case r < 0.4:
		return s.Leaf(rng)
	case r < 0.6 && s.Set.NumUnary() > 0:
		return expr.Unary(s.UnaryOp(rng), s.Tree(rng, maxDepth-1))
	default:
		return expr.Binary(s.BinaryOp(rng), s.Tree(rng, maxDepth-1), s.Tree(rng, maxDepth-1))
	}
}
