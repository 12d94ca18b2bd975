// Package flowshop holds the immutable problem data, the completion-time
// kernel, and the weighted-tardiness / makespan objectives shared by every
// constructive heuristic, local-search neighborhood, and metaheuristic in
// this module.
package flowshop

import (
	"errors"
	"fmt"
	"math/rand"
)

// Instance is the immutable PFSP-WT problem input: N jobs over M machines,
// processing times, due dates, and tardiness weights. Once validated it is
// read-only and may be shared by many concurrent solvers.
type Instance struct {
	Jobs     int
	Machines int

	// ProcTimes is job-major: ProcTimes[job*Machines+machine].
	ProcTimes []int

	// DueDates[job] and Weights[job] drive the weighted-tardiness objective.
	// Both may be nil, which collapses WeightedTardiness to zero (useful for
	// pure-makespan comparisons against the retargeted metaheuristics).
	DueDates []int
	Weights  []float64
}

// NewInstance validates and returns an Instance.
func NewInstance(jobs, machines int, procTimes []int, dueDates []int, weights []float64) (*Instance, error) {
	inst := &Instance{
		Jobs:      jobs,
		Machines:  machines,
		ProcTimes: procTimes,
		DueDates:  dueDates,
		Weights:   weights,
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// Validate checks every invariant from the data model: n,m >= 1, procTimes
// length n*m with non-negative entries, due dates and weights length n.
func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Jobs <= 0 {
		return fmt.Errorf("jobs must be > 0 (got %d)", inst.Jobs)
	}
	if inst.Machines <= 0 {
		return fmt.Errorf("machines must be > 0 (got %d)", inst.Machines)
	}
	if len(inst.ProcTimes) != inst.Jobs*inst.Machines {
		return fmt.Errorf("procTimes length must be jobs*machines=%d (got %d)", inst.Jobs*inst.Machines, len(inst.ProcTimes))
	}
	for i, v := range inst.ProcTimes {
		if v < 0 {
			return fmt.Errorf("procTimes[%d] must be >= 0 (got %d)", i, v)
		}
	}
	if inst.DueDates != nil && len(inst.DueDates) != inst.Jobs {
		return fmt.Errorf("dueDates length must be jobs=%d (got %d)", inst.Jobs, len(inst.DueDates))
	}
	if inst.Weights != nil && len(inst.Weights) != inst.Jobs {
		return fmt.Errorf("weights length must be jobs=%d (got %d)", inst.Jobs, len(inst.Weights))
	}
	for i, w := range inst.Weights {
		if w < 0 {
			return fmt.Errorf("weights[%d] must be >= 0 (got %f)", i, w)
		}
	}
	return nil
}

// Time returns the processing time of job on machine.
func (inst *Instance) Time(job, machine int) int {
	return inst.ProcTimes[job*inst.Machines+machine]
}

// DueDate returns job's due date, or 0 if the instance carries none.
func (inst *Instance) DueDate(job int) int {
	if inst.DueDates == nil {
		return 0
	}
	return inst.DueDates[job]
}

// Weight returns job's tardiness weight, or 0 if the instance carries none.
func (inst *Instance) Weight(job int) float64 {
	if inst.Weights == nil {
		return 0
	}
	return inst.Weights[job]
}

// RandomInstance builds a random Taillard-shaped instance with due dates
// spread around the mean processing time (common slack-factor construction
// in PFSP-WT literature) and weights drawn from {1,2,4}.
func RandomInstance(jobs, machines, minTime, maxTime int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("rng must not be nil")
	}
	if minTime < 0 || maxTime < 0 || maxTime < minTime {
		panic("invalid time bounds")
	}
	pt := make([]int, jobs*machines)
	span := maxTime - minTime + 1
	rowSum := make([]int, jobs)
	for j := 0; j < jobs; j++ {
		sum := 0
		for m := 0; m < machines; m++ {
			v := minTime
			if span > 1 {
				v += rng.Intn(span)
			}
			pt[j*machines+m] = v
			sum += v
		}
		rowSum[j] = sum
	}

	totalProc := 0
	for _, s := range rowSum {
		totalProc += s
	}
	meanProc := totalProc / jobs

	due := make([]int, jobs)
	weights := make([]float64, jobs)
	weightChoices := []float64{1, 2, 4}
	for j := 0; j < jobs; j++ {
		slack := rng.Intn(meanProc + 1)
		due[j] = rowSum[j] + slack
		weights[j] = weightChoices[rng.Intn(len(weightChoices))]
	}

	inst, err := NewInstance(jobs, machines, pt, due, weights)
	if err != nil {
		panic(err)
	}
	return inst
}
