package aco

import (
	"math/rand"

	"github.com/r3b0rn/pfspwt/internal/flowshop"
)

// Policy is the pheromone-update strategy the base loop is generic over.
// MMAS and PACO are its two implementations; the loop itself never
// inspects which one it holds.
type Policy interface {
	// PheromonesAreIndividual reports whether every ant deposits pheromone
	// immediately after its own construction (PACO) or only the iteration's
	// best ant deposits, once, at the end of the iteration (MMAS).
	PheromonesAreIndividual() bool

	// InitPheromones seeds the pheromone matrix from the initial best
	// permutation and objective (post NEH + local search).
	InitPheromones(best flowshop.Permutation, bestObj flowshop.Objective)

	// UpdatePheromones applies the policy's evaporate-then-deposit rule for
	// one ant's result. best is the current global best-so-far, needed by
	// PACO's distance-to-best deposition term.
	UpdatePheromones(ant flowshop.Permutation, obj flowshop.Objective, best flowshop.Permutation)

	// UpdateParameters refreshes any derived bounds (MMAS's tau_max/tau_min)
	// from the current best-so-far objective. Called once per outer
	// iteration, and once more at initialization.
	UpdateParameters(bestObj flowshop.Objective)

	// CreateSolution constructs one ant using the current pheromone matrix
	// and the global best-so-far (used as the candidate-ordering seed).
	CreateSolution(rng *rand.Rand, best flowshop.Permutation) (flowshop.Permutation, error)
}

// clampZ guards against a feasible schedule with zero weighted tardiness,
// which would otherwise make a 1/Z deposit or bound undefined.
func clampZ(z float64) float64 {
	if z <= 0 {
		return 1
	}
	return z
}

// sampleCumulative draws an index from weights proportional to their
// values via cumulative-probability search. Falls back to uniform choice
// over [0,len(weights)) when the weight sum is non-positive.
func sampleCumulative(rng *rand.Rand, weights []float64) int {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return rng.Intn(len(weights))
	}
	r := rng.Float64() * sum
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return i
		}
	}
	return len(weights) - 1
}

// argmax returns the index of the largest weight, earliest on ties.
func argmax(weights []float64) int {
	best := 0
	for i := 1; i < len(weights); i++ {
		if weights[i] > weights[best] {
			best = i
		}
	}
	return best
}
