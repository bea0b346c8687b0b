package search

import (
	"math/rand"

	"github.com/EverettGrethel/dynexpr/pkg/expr"
)

// MutationKind identifies a kind of mutation.
type MutationKind int

const (
	MutPoint   MutationKind = iota // replace a node's operator or leaf content
	MutSubtree                     // replace a random subtree with a new random tree
	MutHoist                       // replace the tree with one of its subtrees
	MutConst                       // perturb a constant value
	MutGrow                        // wrap a node in a new operation
	MutShrink                      // replace a node with one of its children
)

const maxMutationDepth = 4

// Mutate applies one random mutation to the tree in place.
func Mutate(root *expr.Node[float64], s *Sampler, rng *rand.Rand) {
	switch MutationKind(rng.Intn(6)) {
	case MutPoint:
		pointMutate(root, s, rng)
	case MutSubtree:
		subtreeMutate(root, s, rng)
	case MutHoist:
		hoistMutate(root, rng)
	case MutConst:
		constPerturb(root, s, rng)
	case MutGrow:
		growMutate(root, s, rng)
	case MutShrink:
		shrinkMutate(root, rng)
	}
}

// pointMutate replaces a random node's operator, keeping its children,
// or swaps a leaf for a fresh one.
func pointMutate(root *expr.Node[float64], s *Sampler, rng *rand.Rand) {
	nodes := expr.Collect(root)
	target := nodes[rng.Intn(len(nodes))]
	switch target.Degree {
	case 0:
		target.Set(s.Leaf(rng))
	case 1:
		target.Op = s.UnaryOp(rng)
	default:
		target.Op = s.BinaryOp(rng)
	}
}

// subtreeMutate replaces a random subtree with a new random tree.
func subtreeMutate(root *expr.Node[float64], s *Sampler, rng *rand.Rand) {
	nodes := expr.Collect(root)
	nodes[rng.Intn(len(nodes))].Set(s.Tree(rng, maxMutationDepth))
}

// hoistMutate replaces the tree with a copy of one of its subtrees.
func hoistMutate(root *expr.Node[float64], rng *rand.Rand) {
	nodes := expr.Collect(root)
	if len(nodes) <= 1 {
		return
	}
	root.Set(nodes[rng.Intn(len(nodes))].Copy())
}

// constPerturb nudges a random constant by up to ±30%, or by an
// absolute step when the constant is near zero.
func constPerturb(root *expr.Node[float64], s *Sampler, rng *rand.Rand) {
	consts := expr.Filter(root, (*expr.Node[float64]).IsConst)
	if len(consts) == 0 {
		return
	}
	target := consts[rng.Intn(len(consts))]
	if target.Val > -0.1 && target.Val < 0.1 {
		target.Val += (rng.Float64()*2 - 1) * 0.1 * s.ConstRange
		return
	}
	target.Val *= 1 + (rng.Float64()*2-1)*0.3
}

// growMutate wraps a random node in a new unary or binary operation.
func growMutate(root *expr.Node[float64], s *Sampler, rng *rand.Rand) {
	nodes := expr.Collect(root)
	target := nodes[rng.Intn(len(nodes))]
	old := *target

	if s.Set.NumUnary() > 0 && rng.Float64() < 0.5 {
		target.Set(expr.Unary(s.UnaryOp(rng), &old))
		return
	}
	if rng.Float64() < 0.5 {
		target.Set(expr.Binary(s.BinaryOp(rng), &old, s.Leaf(rng)))
	} else {
		target.Set(expr.Binary(s.BinaryOp(rng), s.Leaf(rng), &old))
	}
}

// shrinkMutate replaces a non-leaf node with one of its children.
func shrinkMutate(root *expr.Node[float64], rng *rand.Rand) {
	nodes := expr.Collect(root)
	target := nodes[rng.Intn(len(nodes))]
	switch target.Degree {
	case 1:
		target.Set(target.Left)
	case 2:
		if rng.Float64() < 0.5 {
			target.Set(target.Left)
		} else {
			target.Set(target.Right)
		}
	}
}
