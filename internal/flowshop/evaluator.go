package flowshop

import "fmt"

// Objective is the (weighted tardiness, makespan) pair produced by one
// evaluation. WT drives single-objective search; the pair drives the
// bi-objective Pareto optimizer.
type Objective struct {
	WT   float64
	Cmax int
}

// Evaluator owns the N×M completion scratch buffer for one Instance and
// exposes both objectives without per-call allocation. Not safe for
// concurrent use — callers running ants/particles/individuals in parallel
// must construct one Evaluator per goroutine.
type Evaluator struct {
	inst *Instance
	buf  []int
}

// NewEvaluator validates inst and allocates its scratch buffer once.
func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst, buf: make([]int, CompletionBufferLen(inst.Jobs, inst.Machines))}, nil
}

func (e *Evaluator) checkPerm(perm []int) error {
	if e == nil || e.inst == nil {
		return fmt.Errorf("nil evaluator")
	}
	return ValidatePermutation(perm, e.inst.Jobs)
}

// Makespan computes Cmax(perm), refreshing the completion buffer.
func (e *Evaluator) Makespan(perm []int) (int, error) {
	if err := e.checkPerm(perm); err != nil {
		return 0, err
	}
	FillCompletion(e.inst, perm, e.buf)
	return Makespan(e.inst, perm, e.buf, false), nil
}

// MustMakespan panics on validation failure; used on paths the caller has
// already validated (every permutation produced inside this module).
func (e *Evaluator) MustMakespan(perm []int) int {
	ms, err := e.Makespan(perm)
	if err != nil {
		panic(err)
	}
	return ms
}

// WeightedTardiness computes WT(perm), refreshing the completion buffer.
func (e *Evaluator) WeightedTardiness(perm []int) (float64, error) {
	if err := e.checkPerm(perm); err != nil {
		return 0, err
	}
	FillCompletion(e.inst, perm, e.buf)
	return WeightedTardiness(e.inst, perm, e.buf, false), nil
}

// MustWeightedTardiness panics on validation failure.
func (e *Evaluator) MustWeightedTardiness(perm []int) float64 {
	wt, err := e.WeightedTardiness(perm)
	if err != nil {
		panic(err)
	}
	return wt
}

// Evaluate refreshes the completion buffer once and returns both objectives,
// the form every ACO ant and every optimizer.Evaluate call wants.
func (e *Evaluator) Evaluate(perm []int) (Objective, error) {
	if err := e.checkPerm(perm); err != nil {
		return Objective{}, err
	}
	FillCompletion(e.inst, perm, e.buf)
	return Objective{
		WT:   WeightedTardiness(e.inst, perm, e.buf, false),
		Cmax: Makespan(e.inst, perm, e.buf, false),
	}, nil
}

// MustEvaluate panics on validation failure.
func (e *Evaluator) MustEvaluate(perm []int) Objective {
	obj, err := e.Evaluate(perm)
	if err != nil {
		panic(err)
	}
	return obj
}

// Instance returns the instance this evaluator was built from.
func (e *Evaluator) Instance() *Instance { return e.inst }
