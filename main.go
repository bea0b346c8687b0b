// Command dynexpr-demo recovers a hidden formula from synthetic data:
// it samples y = x1*cos(x2 - 0.5) + x3 over random inputs and runs the
// hill-climbing search over the moderate operator alphabet.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/EverettGrethel/dynexpr/pkg/ops"
	"github.com/EverettGrethel/dynexpr/pkg/render"
	"github.com/EverettGrethel/dynexpr/pkg/search"
)

func main() {
	cfg := search.DefaultConfig()
	samples := 256
	noise := 0.0

	flag.IntVar(&cfg.Population, "population", cfg.Population, "population size")
	flag.IntVar(&cfg.Generations, "generations", cfg.Generations, "number of generations")
	flag.IntVar(&cfg.MaxDepth, "maxdepth", cfg.MaxDepth, "max depth of random trees")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel workers")
	flag.IntVar(&cfg.StagnationLimit, "stagnation", cfg.StagnationLimit, "generations without improvement before stopping")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log progress per improvement")
	flag.IntVar(&samples, "samples", samples, "number of dataset samples")
	flag.Float64Var(&noise, "noise", noise, "gaussian noise added to the target")
	flag.Parse()

	rng := rand.New(rand.NewSource(1))
	ds := synthesize(samples, noise, rng)
	set := ops.Moderate[float64]()

	e, err := search.New(cfg, set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	res := e.Run(ds)

	fmt.Printf("best:        %s\n", render.Render(res.Best, set, nil))
	fmt.Printf("mse:         %g\n", res.Score.MSE)
	fmt.Printf("size:        %d nodes\n", res.Score.Size)
	fmt.Printf("generations: %d\n", res.Generations)
}

// synthesize builds a dataset from the hidden formula
// y = x1*cos(x2 - 0.5) + x3 with inputs drawn from [-3, 3).
func synthesize(samples int, noise float64, rng *rand.Rand) *search.Dataset {
	const features = 3
	inputs := make([][]float64, features)
	for i := range inputs {
		inputs[i] = make([]float64, samples)
		for j := range inputs[i] {
			inputs[i][j] = rng.Float64()*6 - 3
		}
	}
	target := make([]float64, samples)
	for j := range target {
		target[j] = inputs[0][j]*math.Cos(inputs[1][j]-0.5) + inputs[2][j]
		if noise > 0 {
			target[j] += rng.NormFloat64() * noise
		}
	}
	return &search.Dataset{Inputs: inputs, Target: target}
}
