package search

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EverettGrethel/dynexpr/pkg/expr"
	"github.com/EverettGrethel/dynexpr/pkg/ops"
)

func testSampler() *Sampler {
	return &Sampler{Set: ops.Moderate[float64](), Features: 3, ConstRange: 5}
}

// wellFormed checks the structural invariants of a tree against the
// sampler's registry.
func wellFormed(t *testing.T, root *expr.Node[float64], s *Sampler) {
	t.Helper()
	for _, n := range expr.Collect(root) {
		switch n.Degree {
		case 0:
			if !n.Constant {
				require.GreaterOrEqual(t, n.Feature, 1)
				require.LessOrEqual(t, n.Feature, s.Features)
			}
		case 1:
			require.NotNil(t, n.Left)
			require.GreaterOrEqual(t, n.Op, 1)
			require.LessOrEqual(t, n.Op, s.Set.NumUnary())
		case 2:
			require.NotNil(t, n.Left)
			require.NotNil(t, n.Right)
			require.GreaterOrEqual(t, n.Op, 1)
			require.LessOrEqual(t, n.Op, s.Set.NumBinary())
		default:
			t.Fatalf("impossible degree %d", n.Degree)
		}
	}
}

func TestSamplerTrees(t *testing.T) {
	s := testSampler()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		tree := s.Tree(rng, 4)
		wellFormed(t, tree, s)
		require.LessOrEqual(t, depth(tree), 4)
	}
}

func depth(n *expr.Node[float64]) int {
	return expr.Fold(n, func(*expr.Node[float64]) int { return 1 },
		func(p int, cs ...int) int {
			deepest := 0
			for _, c := range cs {
				if c > deepest {
					deepest = c
				}
			}
			return p + deepest
		})
}

func TestMutateKeepsTreesWellFormed(t *testing.T) {
	s := testSampler()
	rng := rand.New(rand.NewSource(11))
	tree := s.Tree(rng, 4)
	for i := 0; i < 500; i++ {
		Mutate(tree, s, rng)
		wellFormed(t, tree, s)
	}
}

func TestFoldConstants(t *testing.T) {
	set := ops.Conservative[float64]()
	// (2 + 3) * x1
	tree := expr.Binary(3,
		expr.Binary(1, expr.Const(2.0), expr.Const(3.0)),
		expr.Var[float64](1))

	folded := FoldConstants(tree, set)
	require.Equal(t, 3, expr.Count(folded))
	require.True(t, folded.Left.IsConst())
	require.Equal(t, 5.0, folded.Left.Val)

	// A failing constant subtree is left alone: 1/0.
	bad := expr.Binary(3,
		expr.Binary(4, expr.Const(1.0), expr.Const(0.0)),
		expr.Var[float64](1))
	require.Equal(t, 5, expr.Count(FoldConstants(bad, set)))
}

func TestScoreTree(t *testing.T) {
	set := ops.Conservative[float64]()
	ds := &Dataset{
		Inputs: [][]float64{{1, 2, 3, 4}},
		Target: []float64{2, 4, 6, 8},
	}

	// Exact model: x1 + x1.
	exact := expr.Binary(1, expr.Var[float64](1), expr.Var[float64](1))
	s := ScoreTree(exact, ds, set, 1e-4)
	require.True(t, s.OK)
	require.InDelta(t, 0, s.MSE, 1e-15)
	require.Equal(t, 3, s.Size)

	// Constant models are rejected.
	require.Equal(t, WorstScore(), ScoreTree(expr.Const(2.0), ds, set, 1e-4))

	// Incomplete evaluation is rejected: 1 / (x1 - x1).
	div := expr.Binary(4,
		expr.Const(1.0),
		expr.Binary(2, expr.Var[float64](1), expr.Var[float64](1)))
	require.Equal(t, WorstScore(), ScoreTree(div, ds, set, 1e-4))
}

func TestEngineRecoversIdentity(t *testing.T) {
	if testing.Short() {
		t.Skip("search loop")
	}
	// Target is simply x1: the initial random population almost surely
	// contains it, and hill-climbing must keep it as the best model.
	ds := &Dataset{
		Inputs: [][]float64{make([]float64, 64), make([]float64, 64)},
		Target: make([]float64, 64),
	}
	rng := rand.New(rand.NewSource(3))
	for j := 0; j < 64; j++ {
		ds.Inputs[0][j] = rng.Float64()*4 - 2
		ds.Inputs[1][j] = rng.Float64()*4 - 2
		ds.Target[j] = ds.Inputs[0][j]
	}

	cfg := DefaultConfig()
	cfg.Population = 200
	cfg.Generations = 100
	cfg.Seed = 17
	cfg.Workers = 2
	cfg.Verbose = false

	e, err := New(cfg, ops.Conservative[float64]())
	require.NoError(t, err)

	res := e.Run(ds)
	require.NotNil(t, res.Best)
	require.True(t, res.Score.OK)
	require.Less(t, res.Score.MSE, 1e-6)
	require.False(t, math.IsNaN(res.Score.Combined))
}

func TestEngineConfigValidation(t *testing.T) {
	set := ops.Conservative[float64]()

	bad := DefaultConfig()
	bad.Population = 0
	_, err := New(bad, set)
	require.ErrorIs(t, err, ErrConfig)

	bad = DefaultConfig()
	bad.Generations = 0
	_, err = New(bad, set)
	require.ErrorIs(t, err, ErrConfig)

	empty := ops.NewSet[float64](nil, nil, false)
	_, err = New(DefaultConfig(), empty)
	require.ErrorIs(t, err, ErrConfig)
}
