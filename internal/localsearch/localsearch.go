// Package localsearch implements three best-improvement neighborhoods:
// adjacent swap, pairwise interchange, and insertion. Each scans its full
// neighborhood, applies the single strictly-improving move with the lowest
// weighted tardiness (earliest-scanned on ties), and reports whether it
// improved — fail-soft, never an error, when nothing does.
package localsearch

import (
	"github.com/r3b0rn/pfspwt/internal/flowshop"
)

// Kind names a neighborhood, used to select one from configuration.
type Kind string

const (
	None        Kind = "none"
	Swap        Kind = "swap"
	Interchange Kind = "interchange"
	Insertion   Kind = "insertion"
)

// Search is a single best-improvement neighborhood move.
type Search func(inst *flowshop.Instance, eval *flowshop.Evaluator, perm flowshop.Permutation) (flowshop.Permutation, bool)

// For resolves a Kind to its Search function. Unknown kinds and None both
// resolve to a no-op search that reports no improvement, so callers can
// treat "no local search configured" uniformly.
func For(kind Kind) Search {
	switch kind {
	case Swap:
		return SwapSearch
	case Interchange:
		return InterchangeSearch
	case Insertion:
		return InsertionSearch
	default:
		return noopSearch
	}
}

func noopSearch(_ *flowshop.Instance, _ *flowshop.Evaluator, perm flowshop.Permutation) (flowshop.Permutation, bool) {
	return perm, false
}

// Rounds applies search to perm up to maxRounds times, stopping early the
// first round that does not improve.
func Rounds(search Search, inst *flowshop.Instance, eval *flowshop.Evaluator, perm flowshop.Permutation, maxRounds int) flowshop.Permutation {
	cur := perm
	for r := 0; r < maxRounds; r++ {
		next, improved := search(inst, eval, cur)
		if !improved {
			break
		}
		cur = next
	}
	return cur
}

// SwapSearch scans the N-1 adjacent-swap candidates (i, i+1).
func SwapSearch(inst *flowshop.Instance, eval *flowshop.Evaluator, perm flowshop.Permutation) (flowshop.Permutation, bool) {
	n := len(perm)
	incumbentWT := eval.MustWeightedTardiness(perm)

	bestWT := incumbentWT
	bestI := -1
	cand := perm.Clone()

	for i := 0; i < n-1; i++ {
		cand[i], cand[i+1] = cand[i+1], cand[i]
		wt := eval.MustWeightedTardiness(cand)
		if wt < bestWT {
			bestWT = wt
			bestI = i
		}
		cand[i], cand[i+1] = cand[i+1], cand[i] // revert
	}

	if bestI < 0 {
		return perm, false
	}
	out := perm.Clone()
	out[bestI], out[bestI+1] = out[bestI+1], out[bestI]
	return out, true
}

// InterchangeSearch scans every unordered pair (i, j), 0 <= j < i < N,
// exchanging the jobs at those positions. This is a genuine pairwise
// exchange over the full N*(N-1)/2 candidate set, distinct from the
// adjacent-only SwapSearch.
func InterchangeSearch(inst *flowshop.Instance, eval *flowshop.Evaluator, perm flowshop.Permutation) (flowshop.Permutation, bool) {
	n := len(perm)
	incumbentWT := eval.MustWeightedTardiness(perm)

	bestWT := incumbentWT
	bestI, bestJ := -1, -1
	cand := perm.Clone()

	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			cand[i], cand[j] = cand[j], cand[i]
			wt := eval.MustWeightedTardiness(cand)
			if wt < bestWT {
				bestWT = wt
				bestI, bestJ = i, j
			}
			cand[i], cand[j] = cand[j], cand[i] // revert
		}
	}

	if bestI < 0 {
		return perm, false
	}
	out := perm.Clone()
	out[bestI], out[bestJ] = out[bestJ], out[bestI]
	return out, true
}

// InsertionSearch scans every ordered pair (i, j) with j < i, removing the
// job at position i and re-inserting it at position j, shifting the
// intermediate jobs right.
func InsertionSearch(inst *flowshop.Instance, eval *flowshop.Evaluator, perm flowshop.Permutation) (flowshop.Permutation, bool) {
	n := len(perm)
	incumbentWT := eval.MustWeightedTardiness(perm)

	bestWT := incumbentWT
	bestI, bestJ := -1, -1
	cand := make(flowshop.Permutation, n)

	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			applyInsertion(perm, cand, i, j)
			wt := eval.MustWeightedTardiness(cand)
			if wt < bestWT {
				bestWT = wt
				bestI, bestJ = i, j
			}
		}
	}

	if bestI < 0 {
		return perm, false
	}
	out := make(flowshop.Permutation, n)
	applyInsertion(perm, out, bestI, bestJ)
	return out, true
}

// applyInsertion writes into out the result of removing src[i] and
// re-inserting it at position j (j < i), recomputed from scratch every call
// so correctness never depends on incremental bookkeeping.
func applyInsertion(src, out flowshop.Permutation, i, j int) {
	job := src[i]
	copy(out[:j], src[:j])
	out[j] = job
	copy(out[j+1:i+1], src[j:i])
	copy(out[i+1:], src[i+1:])
}
