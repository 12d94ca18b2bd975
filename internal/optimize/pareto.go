package optimize

import (
	"github.com/r3b0rn/pfspwt/internal/flowshop"
)

// ParetoEntry is one non-dominated (WT, Cmax) point and the permutation that
// achieved it.
type ParetoEntry struct {
	Obj  flowshop.Objective
	Perm flowshop.Permutation
}

// Dominates reports whether a is at least as good as b on both objectives
// and strictly better on at least one: (wt_a <= wt_b && m_a <= m_b) &&
// (wt_a < wt_b || m_a < m_b).
func Dominates(a, b flowshop.Objective) bool {
	return a.WT <= b.WT && a.Cmax <= b.Cmax && (a.WT < b.WT || a.Cmax < b.Cmax)
}

// ParetoOptimizer shares the stopping-condition logic of Optimizer but
// tracks a Pareto set instead of a single best-so-far. The set is keyed by
// (WT,Cmax): two permutations achieving the same pair collapse to one
// entry, the latest overwriting the earlier.
type ParetoOptimizer struct {
	Optimizer

	set []ParetoEntry
}

// NewPareto constructs a ParetoOptimizer bound by cfg.
func NewPareto(cfg Config) *ParetoOptimizer {
	return &ParetoOptimizer{Optimizer: Optimizer{cfg: cfg}}
}

// Start resets counters, history, and the Pareto set.
func (o *ParetoOptimizer) Start() {
	o.Optimizer.Start()
	o.set = o.set[:0]
}

// EvaluateResult reports what Evaluate did to the Pareto set.
type EvaluateResult struct {
	// Entered is true when the candidate was not discarded, i.e. no
	// existing incumbent dominates it.
	Entered bool
	// EvictedAny is true when admitting the candidate evicted at least one
	// previously non-dominated incumbent.
	EvictedAny bool
}

// Evaluate applies the dominance rule: a candidate dominated by any existing
// incumbent is discarded outright; otherwise every incumbent it dominates is
// evicted, any incumbent at the exact same (WT,Cmax) point is replaced, and
// the candidate is inserted. Stagnation resets whenever the candidate enters
// the set, independent of whether an eviction or replacement also occurred.
func (o *ParetoOptimizer) Evaluate(obj flowshop.Objective, perm flowshop.Permutation) EvaluateResult {
	o.history = append(o.history, obj)

	for _, e := range o.set {
		if Dominates(e.Obj, obj) {
			o.stagnation++
			return EvaluateResult{}
		}
	}

	kept := make([]ParetoEntry, 0, len(o.set)+1)
	evictedAny := false
	for _, e := range o.set {
		if e.Obj == obj || Dominates(obj, e.Obj) {
			evictedAny = evictedAny || Dominates(obj, e.Obj)
			continue
		}
		kept = append(kept, e)
	}
	kept = append(kept, ParetoEntry{Obj: obj, Perm: perm.Clone()})
	o.set = kept
	o.stagnation = 0

	return EvaluateResult{Entered: true, EvictedAny: evictedAny}
}

// Set returns a snapshot of the current Pareto set.
func (o *ParetoOptimizer) Set() []ParetoEntry {
	out := make([]ParetoEntry, len(o.set))
	copy(out, o.set)
	return out
}
