package search

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/EverettGrethel/dynexpr/pkg/expr"
	"github.com/EverettGrethel/dynexpr/pkg/ops"
	"github.com/EverettGrethel/dynexpr/pkg/render"
)

// ErrConfig reports an invalid engine configuration.
var ErrConfig = errors.New("search: invalid config")

// Config holds all parameters for a search run.
type Config struct {
	Population      int
	Generations     int
	MaxDepth        int
	MaxNodes        int     // candidates above this size are replaced with random ones
	Parsimony       float64 // per-node fitness penalty
	ConstRange      float64
	Seed            int64 // 0 picks a random seed
	Workers         int   // 0 uses GOMAXPROCS
	StagnationLimit int   // generations without improvement before the run stops; 0 disables the cutoff
	InjectionRate   float64
	Verbose         bool
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Population:      200,
		Generations:     400,
		MaxDepth:        4,
		MaxNodes:        25,
		Parsimony:       1e-4,
		ConstRange:      5,
		Workers:         runtime.GOMAXPROCS(0),
		StagnationLimit: 60,
		InjectionRate:   0.05,
	}
}

// Result is the outcome of a search run.
type Result struct {
	Best        *expr.Node[float64]
	Score       Score
	Generations int
}

// Engine runs hill-climbing symbolic regression: each generation every
// candidate is copied, mutated and constant-folded, and the better of
// parent and child survives. A fraction of the worst candidates is
// replaced with fresh random trees each generation to escape local
// optima.
type Engine struct {
	cfg Config
	set *ops.Set[float64]
	rng *rand.Rand
}

// New creates an engine over the given registry.
func New(cfg Config, set *ops.Set[float64]) (*Engine, error) {
	if cfg.Population < 1 {
		return nil, fmt.Errorf("%w: population %d", ErrConfig, cfg.Population)
	}
	if cfg.Generations < 1 {
		return nil, fmt.Errorf("%w: generations %d", ErrConfig, cfg.Generations)
	}
	if cfg.MaxDepth < 1 {
		return nil, fmt.Errorf("%w: max depth %d", ErrConfig, cfg.MaxDepth)
	}
	if set.NumBinary() == 0 {
		return nil, fmt.Errorf("%w: registry has no binary operators", ErrConfig)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Engine{
		cfg: cfg,
		set: set,
		rng: rand.New(rand.NewSource(seed)),
	}, nil
}

// Run executes the search against the dataset.
func (e *Engine) Run(ds *Dataset) Result {
	sampler := &Sampler{Set: e.set, Features: ds.Features(), ConstRange: e.cfg.ConstRange}

	pop := make([]*expr.Node[float64], e.cfg.Population)
	for i := range pop {
		pop[i] = sampler.Tree(e.rng, e.cfg.MaxDepth)
	}
	scores := e.scorePopulation(pop, ds)

	best, bestScore := e.findBest(pop, scores, nil, WorstScore())
	if best == nil {
		best, bestScore = pop[0].Copy(), scores[0]
	}
	sinceImprovement := 0
	gens := 0

	for g := 0; g < e.cfg.Generations; g++ {
		gens++

		children := make([]*expr.Node[float64], len(pop))
		for i := range pop {
			child := pop[i].Copy()
			Mutate(child, sampler, e.rng)
			child = FoldConstants(child, e.set)
			if e.cfg.MaxNodes > 0 && expr.Count(child) > e.cfg.MaxNodes {
				child = sampler.Tree(e.rng, e.cfg.MaxDepth)
			}
			children[i] = child
		}
		childScores := e.scorePopulation(children, ds)

		for i := range pop {
			if childScores[i].Combined > scores[i].Combined {
				pop[i], scores[i] = children[i], childScores[i]
			}
		}

		prevBest := bestScore
		best, bestScore = e.findBest(pop, scores, best, bestScore)
		if bestScore.Combined > prevBest.Combined {
			sinceImprovement = 0
			if e.cfg.Verbose {
				slog.Info("new best",
					"gen", g,
					"mse", bestScore.MSE,
					"size", bestScore.Size,
					"expr", render.Render(best, e.set, nil))
			}
		} else {
			sinceImprovement++
		}

		e.inject(pop, scores, sampler)

		if e.cfg.StagnationLimit > 0 && sinceImprovement >= e.cfg.StagnationLimit {
			if e.cfg.Verbose {
				slog.Info("stagnated", "gen", g, "since_improvement", sinceImprovement)
			}
			break
		}
	}

	return Result{Best: best, Score: bestScore, Generations: gens}
}

func (e *Engine) findBest(pop []*expr.Node[float64], scores []Score, best *expr.Node[float64], bestScore Score) (*expr.Node[float64], Score) {
	for i, s := range scores {
		if s.Combined > bestScore.Combined {
			best = pop[i].Copy()
			bestScore = s
		}
	}
	return best, bestScore
}

// inject replaces the worst candidates with fresh random trees.
func (e *Engine) inject(pop []*expr.Node[float64], scores []Score, sampler *Sampler) {
	n := int(float64(len(pop)) * e.cfg.InjectionRate)
	if n < 1 {
		n = 1
	}
	idx := make([]int, len(pop))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return scores[idx[a]].Combined < scores[idx[b]].Combined
	})
	for i := 0; i < n && i < len(pop); i++ {
		pop[idx[i]] = sampler.Tree(e.rng, e.cfg.MaxDepth)
		scores[idx[i]] = WorstScore()
	}
}

// scorePopulation scores all candidates in parallel.
func (e *Engine) scorePopulation(pop []*expr.Node[float64], ds *Dataset) []Score {
	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	scores := make([]Score, len(pop))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, tree := range pop {
		i, tree := i, tree
		g.Go(func() error {
			scores[i] = ScoreTree(tree, ds, e.set, e.cfg.Parsimony)
			return nil
		})
	}
	g.Wait()

	return scores
}
