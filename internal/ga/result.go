package ga

import (
	"github.com/r3b0rn/pfspwt/internal/flowshop"
	"github.com/r3b0rn/pfspwt/internal/opt"
)

// ToOptResult wraps the best permutation found, re-deriving its makespan
// from eval so the report carries both objectives even though the search
// itself only tracks weighted tardiness.
func ToOptResult(eval *flowshop.Evaluator, bestPerm []int, bestWT float64, evals, gens int, meta map[string]any) opt.Result {
	permCopy := make([]int, len(bestPerm))
	copy(permCopy, bestPerm)
	return opt.Result{
		Permutation:       permCopy,
		Makespan:          eval.MustMakespan(permCopy),
		WeightedTardiness: bestWT,
		Evaluations:       evals,
		Iterations:        gens,
		Meta:              meta,
	}
}
