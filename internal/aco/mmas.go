package aco

import (
	"math/rand"

	"github.com/r3b0rn/pfspwt/internal/flowshop"
)

// MMAS implements the Min-Max Ant System pheromone policy. Pheromone is not
// individual: only the iteration-best ant deposits, once per outer
// iteration, and every entry of tau is clipped to [tauMin,tauMax] after
// every update.
type MMAS struct {
	n   int
	rho float64

	tau            []float64 // n*n, row-major: tau[i*n+k]
	tauMax, tauMin float64

	// scratch, reused across CreateSolution calls
	remaining []int
	probBuf   []float64
}

// NewMMAS constructs an MMAS policy for n jobs with persistence rho.
func NewMMAS(n int, rho float64) *MMAS {
	return &MMAS{
		n:         n,
		rho:       rho,
		tau:       make([]float64, n*n),
		remaining: make([]int, 0, n),
		probBuf:   make([]float64, 0, 5),
	}
}

func (m *MMAS) idx(i, k int) int { return i*m.n + k }

// PheromonesAreIndividual is false: MMAS deposits only the iteration best.
func (m *MMAS) PheromonesAreIndividual() bool { return false }

// InitPheromones sets tau[i,k] = tau_max everywhere.
func (m *MMAS) InitPheromones(best flowshop.Permutation, bestObj flowshop.Objective) {
	m.UpdateParameters(bestObj)
	for i := range m.tau {
		m.tau[i] = m.tauMax
	}
}

// UpdateParameters recomputes tau_max = 1/((1-rho)*Zbest), tau_min = tau_max/5,
// clamping Zbest away from zero.
func (m *MMAS) UpdateParameters(bestObj flowshop.Objective) {
	z := clampZ(bestObj.WT)
	m.tauMax = 1.0 / ((1 - m.rho) * z)
	m.tauMin = m.tauMax / 5
}

// UpdatePheromones evaporates the whole matrix by rho, deposits 1/Z(ant)
// along ant's path, then clips every entry into [tauMin,tauMax]. Called
// with the iteration's best ant only.
func (m *MMAS) UpdatePheromones(ant flowshop.Permutation, obj flowshop.Objective, _ flowshop.Permutation) {
	for i := range m.tau {
		m.tau[i] *= m.rho
	}
	dep := 1.0 / clampZ(obj.WT)
	for k, job := range ant {
		m.tau[m.idx(job, k)] += dep
	}
	for i := range m.tau {
		if m.tau[i] < m.tauMin {
			m.tau[i] = m.tauMin
		} else if m.tau[i] > m.tauMax {
			m.tau[i] = m.tauMax
		}
	}
}

// CreateSolution builds one ant by repeatedly picking, at each position,
// either the best-tau candidate or a weighted-random pick among the top-5
// not-yet-placed jobs ordered as they appear in the current global best.
func (m *MMAS) CreateSolution(rng *rand.Rand, best flowshop.Permutation) (flowshop.Permutation, error) {
	n := m.n

	m.remaining = m.remaining[:0]
	m.remaining = append(m.remaining, best...)

	out := make(flowshop.Permutation, n)
	greedyThreshold := float64(n-4) / float64(n)

	for k := 0; k < n; k++ {
		u := rng.Float64()

		var chosenPos int
		if u < greedyThreshold {
			chosenPos = m.argmaxTau(m.remaining, k)
		} else {
			window := m.remaining
			if len(window) > 5 {
				window = window[:5]
			}
			m.probBuf = m.probBuf[:0]
			for _, c := range window {
				m.probBuf = append(m.probBuf, m.tau[m.idx(c, k)])
			}
			chosenPos = sampleCumulative(rng, m.probBuf)
		}

		job := m.remaining[chosenPos]
		out[k] = job
		m.remaining = append(m.remaining[:chosenPos], m.remaining[chosenPos+1:]...)
	}

	if !flowshop.IsPermutation(out, n) {
		return best.Clone(), nil
	}
	return out, nil
}

// argmaxTau returns the index within candidates of the entry maximizing
// tau[c,k], earliest on ties.
func (m *MMAS) argmaxTau(candidates []int, k int) int {
	best := 0
	bestVal := m.tau[m.idx(candidates[0], k)]
	for i := 1; i < len(candidates); i++ {
		v := m.tau[m.idx(candidates[i], k)]
		if v > bestVal {
			bestVal = v
			best = i
		}
	}
	return best
}
