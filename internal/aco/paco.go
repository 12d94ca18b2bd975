package aco

import (
	"math"
	"math/rand"

	"github.com/r3b0rn/pfspwt/internal/flowshop"
)

// PACO implements the Rajendran-Ziegler pheromone policy: pheromone is
// individual (every ant deposits right after construction), construction is
// frozen to the NEH seed sequence, and deposition is a distance-to-best-
// weighted update restricted to a window around each job's current
// position.
type PACO struct {
	n   int
	rho float64

	tau []float64 // n*n, row-major: tau[i*n+k]

	// seed is the NEH permutation construction is frozen to (spec: "The
	// seed permutation used for construction is frozen to the NEH result").
	seed flowshop.Permutation

	// scratch, reused across calls
	window     []int
	posAnt     []int
	posBest    []int
	cumBuf     []float64
}

// NewPACO constructs a PACO policy for n jobs with persistence rho.
func NewPACO(n int, rho float64) *PACO {
	return &PACO{
		n:       n,
		rho:     rho,
		tau:     make([]float64, n*n),
		window:  make([]int, 0, 5),
		posAnt:  make([]int, n),
		posBest: make([]int, n),
		cumBuf:  make([]float64, 0, 5),
	}
}

func (p *PACO) idx(i, k int) int { return i*p.n + k }

// PheromonesAreIndividual is true: PACO deposits per-ant.
func (p *PACO) PheromonesAreIndividual() bool { return true }

// InitPheromones sets tau[i,k] = 1/Zbest, then dampens entries far from the
// job's position in the best (NEH) sequence, and freezes the seed sequence
// used for every future construction.
func (p *PACO) InitPheromones(best flowshop.Permutation, bestObj flowshop.Objective) {
	p.seed = best.Clone()

	z := clampZ(bestObj.WT)
	base := 1.0 / z
	for i := range p.tau {
		p.tau[i] = base
	}

	invertInto(best, p.posBest)
	n := p.n
	quarter := float64(n) / 4
	half := float64(n) / 2
	for i := 0; i < n; i++ {
		pos := p.posBest[i]
		for k := 0; k < n; k++ {
			diff := math.Abs(float64(pos-k)) + 1
			if diff > quarter {
				p.tau[p.idx(i, k)] /= 2
				if diff > half {
					p.tau[p.idx(i, k)] /= 2
				}
			}
		}
	}
}

// UpdateParameters is a no-op: PACO has no evolving bounds.
func (p *PACO) UpdateParameters(_ flowshop.Objective) {}

// UpdatePheromones evaporates by rho, then deposits along a window around
// each job's position in ant, weighted by its distance from the job's
// position in the global best.
func (p *PACO) UpdatePheromones(ant flowshop.Permutation, obj flowshop.Objective, best flowshop.Permutation) {
	n := p.n
	for i := range p.tau {
		p.tau[i] *= p.rho
	}

	invertInto(ant, p.posAnt)
	invertInto(best, p.posBest)

	bound := 1
	if n > 40 {
		bound = 2
	}
	z := clampZ(obj.WT)

	for i := 0; i < n; i++ {
		pos := p.posAnt[i]
		lo, hi := pos-bound, pos+bound
		if lo < 0 {
			lo = 0
		}
		if hi > n-1 {
			hi = n - 1
		}
		for k := lo; k <= hi; k++ {
			dist := math.Abs(float64(p.posBest[i]-k)) + 1
			p.tau[p.idx(i, k)] += 1.0 / (z * math.Sqrt(dist))
		}
	}
}

// CreateSolution builds one ant from the cumulative matrix T[i,k] =
// sum_{k'<=k} tau[i,k'], choosing among the first (up to) 5 not-yet-placed
// jobs of the frozen seed sequence at every position. The best parameter is
// only consulted as the fallback when construction fails to produce a valid
// permutation.
func (p *PACO) CreateSolution(rng *rand.Rand, best flowshop.Permutation) (flowshop.Permutation, error) {
	n := p.n

	p.window = p.window[:0]
	seedPtr := 0
	for seedPtr < len(p.seed) && len(p.window) < 5 {
		p.window = append(p.window, p.seed[seedPtr])
		seedPtr++
	}

	out := make(flowshop.Permutation, n)

	for k := 0; k < n; k++ {
		u := rng.Float64()

		var chosen int
		switch {
		case u <= 0.4:
			chosen = 0
		case u <= 0.8:
			chosen = p.argmaxCumAt(p.window, k)
		default:
			p.cumBuf = p.cumBuf[:0]
			for _, c := range p.window {
				p.cumBuf = append(p.cumBuf, p.cumulativeAt(c, k))
			}
			chosen = sampleCumulative(rng, p.cumBuf)
		}

		job := p.window[chosen]
		out[k] = job
		p.window = append(p.window[:chosen], p.window[chosen+1:]...)
		if seedPtr < len(p.seed) {
			p.window = append(p.window, p.seed[seedPtr])
			seedPtr++
		}
	}

	if !flowshop.IsPermutation(out, n) {
		return best.Clone(), nil
	}
	return out, nil
}

// cumulativeAt returns T[job,k] = sum_{k'<=k} tau[job,k'].
func (p *PACO) cumulativeAt(job, k int) float64 {
	sum := 0.0
	base := job * p.n
	for kp := 0; kp <= k; kp++ {
		sum += p.tau[base+kp]
	}
	return sum
}

func (p *PACO) argmaxCumAt(candidates []int, k int) int {
	best := 0
	bestVal := p.cumulativeAt(candidates[0], k)
	for i := 1; i < len(candidates); i++ {
		v := p.cumulativeAt(candidates[i], k)
		if v > bestVal {
			bestVal = v
			best = i
		}
	}
	return best
}

// invertInto writes into pos the inverse of perm: pos[perm[k]] = k.
func invertInto(perm flowshop.Permutation, pos []int) {
	for k, job := range perm {
		pos[job] = k
	}
}
