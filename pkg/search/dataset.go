// Package search implements the canonical consumer of the expression
// core: a symbolic-regression loop that generates random trees over a
// registry, mutates them in place, scores them against a dataset, and
// hill-climbs toward lower error.
package search

// Dataset pairs an input matrix (feature rows, sample columns) with a
// target vector, one element per sample column.
type Dataset struct {
	Inputs [][]float64
	Target []float64
}

// Samples returns the number of sample columns.
func (d *Dataset) Samples() int { return len(d.Target) }

// Features returns the number of feature rows.
func (d *Dataset) Features() int { return len(d.Inputs) }
