// Package optimize implements run-budget tracking and best-so-far
// bookkeeping shared by every solver family, in both single-objective and
// bi-objective (Pareto) form.
package optimize

import (
	"math/rand"
	"time"

	"github.com/r3b0rn/pfspwt/internal/flowshop"
)

// Config bounds a run. Zero-value fields mean "no bound": no time bound, no
// early-stopping bound, unbounded iterations.
type Config struct {
	MaxTime       time.Duration
	EarlyStopping int
	MaxIterations int
	Seed          int64
}

// Optimizer is the single-objective tracker: strict-< best-so-far, history,
// and the three stopping conditions (time / stagnation / iteration count).
type Optimizer struct {
	cfg Config
	rng *rand.Rand

	startTime  time.Time
	iter       int
	stagnation int
	running    bool

	history     []flowshop.Objective
	hasBest     bool
	bestObj     flowshop.Objective
	bestPerm    flowshop.Permutation
}

// New constructs an Optimizer bound by cfg.
func New(cfg Config) *Optimizer {
	return &Optimizer{cfg: cfg}
}

// Start reseeds the RNG from cfg.Seed (a zero seed included), records the
// wall-clock origin, and clears history and counters.
func (o *Optimizer) Start() {
	o.rng = rand.New(rand.NewSource(o.cfg.Seed))
	o.startTime = time.Now()
	o.iter = 0
	o.stagnation = 0
	o.running = true
	o.history = o.history[:0]
	o.hasBest = false
	o.bestObj = flowshop.Objective{}
	o.bestPerm = nil
}

// Rng returns the optimizer's RNG, seeded at the last Start call, for
// policies/constructors that need reproducible randomness.
func (o *Optimizer) Rng() *rand.Rand { return o.rng }

// Evaluate appends obj to history and updates best-so-far under strict `<`
// on weighted tardiness. Returns whether this is a new best.
func (o *Optimizer) Evaluate(obj flowshop.Objective, perm flowshop.Permutation) bool {
	o.history = append(o.history, obj)
	improved := !o.hasBest || obj.WT < o.bestObj.WT
	if improved {
		o.hasBest = true
		o.bestObj = obj
		o.bestPerm = perm.Clone()
		o.stagnation = 0
	} else {
		o.stagnation++
	}
	return improved
}

// Step increments the iteration counter. Callers call this once per outer
// iteration, not per ant/particle/individual.
func (o *Optimizer) Step() {
	o.iter++
}

// IsRunning reports whether the run may continue: it returns false as soon
// as any stopping bound has been violated. Once it returns false it latches: later calls never return true again, even if
// the condition that tripped it no longer holds.
func (o *Optimizer) IsRunning() bool {
	if !o.running {
		return false
	}
	if o.cfg.MaxTime > 0 && time.Since(o.startTime) > o.cfg.MaxTime {
		o.running = false
		return false
	}
	if o.cfg.EarlyStopping > 0 && o.stagnation > o.cfg.EarlyStopping {
		o.running = false
		return false
	}
	if o.cfg.MaxIterations > 0 && o.iter >= o.cfg.MaxIterations {
		o.running = false
		return false
	}
	return true
}

// Solutions returns the read-only objective history.
func (o *Optimizer) Solutions() []flowshop.Objective {
	out := make([]flowshop.Objective, len(o.history))
	copy(out, o.history)
	return out
}

// Best returns the best-so-far objective and permutation.
func (o *Optimizer) Best() (flowshop.Objective, flowshop.Permutation) {
	return o.bestObj, o.bestPerm
}

// Iterations returns the current iteration count.
func (o *Optimizer) Iterations() int { return o.iter }

// Stagnation returns the current consecutive-no-improvement count.
func (o *Optimizer) Stagnation() int { return o.stagnation }
