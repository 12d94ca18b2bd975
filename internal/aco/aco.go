// Package aco implements the ant-colony-optimization base loop generic over
// a pheromone Policy (MMAS or PACO), seeded by NEH and refined by the
// configured local-search neighborhood.
package aco

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/r3b0rn/pfspwt/internal/flowshop"
	"github.com/r3b0rn/pfspwt/internal/localsearch"
	"github.com/r3b0rn/pfspwt/internal/neh"
	"github.com/r3b0rn/pfspwt/internal/opt"
	"github.com/r3b0rn/pfspwt/internal/optimize"
)

// Method names the pheromone policy to run.
type Method string

const (
	MMASMethod  Method = "MMAS"
	MMMASMethod Method = "M-MMAS"
	PACOMethod  Method = "PACO"
)

// Solver is the ACO base loop: it holds the configuration and the RNG; each
// Solve call builds its own pheromone policy, optimizer, and best-so-far
// permutation, and drives construct -> local-search -> update each step.
type Solver struct {
	Cfg Config
	Rng *rand.Rand

	log *logrus.Entry
}

// New returns a validated ACO solver.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("rng must not be nil")
	}
	return &Solver{Cfg: cfg, Rng: rng, log: logrus.WithField("component", "aco")}, nil
}

// newPolicy constructs the configured pheromone policy for n jobs.
func (s *Solver) newPolicy(n int) (Policy, error) {
	switch s.Cfg.Method {
	case MMASMethod, MMMASMethod, "":
		return NewMMAS(n, s.Cfg.Rho), nil
	case PACOMethod:
		return NewPACO(n, s.Cfg.Rho), nil
	default:
		return nil, fmt.Errorf("unknown ACO method %q", s.Cfg.Method)
	}
}

// Solve runs the ACO loop to completion, returning the best-so-far solution
// and a wall-clock/iteration budget report.
func (s *Solver) Solve(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("rng must not be nil")
	}

	n := inst.Jobs
	eval, err := flowshop.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	policy, err := s.newPolicy(n)
	if err != nil {
		return opt.Result{}, err
	}

	search := localsearch.For(s.Cfg.LocalSearch)

	nAnts := s.Cfg.Ants
	if nAnts < 1 {
		nAnts = 1
	}
	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerJob * n
	}

	optCfg := optimize.Config{
		MaxTime:       s.Cfg.MaxTime,
		EarlyStopping: s.Cfg.EarlyStopping,
		MaxIterations: maxIter,
		Seed:          s.Rng.Int63(),
	}
	tracker := optimize.New(optCfg)
	tracker.Start()

	// Step 1-2 of initialize(): NEH seed, first evaluation, first best.
	seedPerm, err := neh.Seed(inst)
	if err != nil {
		return opt.Result{}, err
	}
	seedObj := eval.MustEvaluate(seedPerm)
	tracker.Evaluate(seedObj, seedPerm)
	bestObj, bestPerm := tracker.Best()

	// Step 3: local search on the seed.
	improvedPerm := localsearch.Rounds(search, inst, eval, seedPerm, 3)
	improvedObj := eval.MustEvaluate(improvedPerm)
	if tracker.Evaluate(improvedObj, improvedPerm) {
		bestObj, bestPerm = tracker.Best()
	}

	// Step 4: policy parameters then pheromone init, both driven by Zbest.
	policy.UpdateParameters(bestObj)
	policy.InitPheromones(bestPerm, bestObj)

	evals := 2
	ants := make([]flowshop.Permutation, 0, nAnts)
	antObjs := make([]flowshop.Objective, 0, nAnts)

	for tracker.IsRunning() {
		if err := ctx.Err(); err != nil {
			return s.result(bestPerm, bestObj, evals, tracker, start, map[string]any{"stopped": "context"}), err
		}

		ants = ants[:0]
		antObjs = antObjs[:0]

		for k := 0; k < nAnts; k++ {
			ant, cerr := policy.CreateSolution(s.Rng, bestPerm)
			if cerr != nil {
				return opt.Result{}, cerr
			}
			ant = localsearch.Rounds(search, inst, eval, ant, 3)

			obj := eval.MustEvaluate(ant)
			evals++

			if policy.PheromonesAreIndividual() {
				policy.UpdatePheromones(ant, obj, bestPerm)
			}

			ants = append(ants, ant)
			antObjs = append(antObjs, obj)

			if tracker.Evaluate(obj, ant) {
				bestObj, bestPerm = tracker.Best()
			}

			if !tracker.IsRunning() || ctx.Err() != nil {
				break
			}
		}

		if len(ants) == 0 {
			break
		}

		bestStepIdx := 0
		for i := 1; i < len(antObjs); i++ {
			if antObjs[i].WT < antObjs[bestStepIdx].WT {
				bestStepIdx = i
			}
		}

		if !policy.PheromonesAreIndividual() {
			policy.UpdatePheromones(ants[bestStepIdx], antObjs[bestStepIdx], bestPerm)
		}
		policy.UpdateParameters(bestObj)

		tracker.Step()

		s.log.WithFields(logrus.Fields{
			"iteration": tracker.Iterations(),
			"best_wt":   bestObj.WT,
			"best_cmax": bestObj.Cmax,
		}).Debug("aco iteration complete")
	}

	return s.result(bestPerm, bestObj, evals, tracker, start, map[string]any{
		"method":       string(s.Cfg.Method),
		"ants":         nAnts,
		"rho":          s.Cfg.Rho,
		"local_search": string(s.Cfg.LocalSearch),
	}), nil
}

func (s *Solver) result(perm flowshop.Permutation, obj flowshop.Objective, evals int, tracker *optimize.Optimizer, start time.Time, meta map[string]any) opt.Result {
	return opt.Result{
		Permutation:       perm,
		Makespan:          obj.Cmax,
		WeightedTardiness: obj.WT,
		Evaluations:       evals,
		Iterations:        tracker.Iterations(),
		Duration:          time.Since(start),
		Meta:              meta,
	}
}
