// Package opt defines the common interface every solver family in this
// module implements, so the benchmark harness (and the CLI) can run
// ACO, GA, SA, TS, and PSO interchangeably.
package opt

import (
	"context"
	"time"

	"github.com/r3b0rn/pfspwt/internal/flowshop"
)

// Optimizer solves one Instance and returns a Result.
type Optimizer interface {
	Solve(ctx context.Context, inst *flowshop.Instance) (Result, error)
}

// Result reports the best permutation found and how the run spent its
// budget. WeightedTardiness is the primary PFSP-WT objective; Makespan is
// carried alongside it so every solver family's output can be compared on
// both measures.
type Result struct {
	Permutation       flowshop.Permutation
	Makespan          int
	WeightedTardiness float64
	Evaluations       int
	Iterations        int
	Duration          time.Duration
	Meta              map[string]any
}
