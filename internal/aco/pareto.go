package aco

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/r3b0rn/pfspwt/internal/flowshop"
	"github.com/r3b0rn/pfspwt/internal/localsearch"
	"github.com/r3b0rn/pfspwt/internal/neh"
	"github.com/r3b0rn/pfspwt/internal/optimize"
)

// ParetoResult reports the non-dominated (weighted-tardiness, makespan)
// front discovered by SolvePareto, alongside the same budget accounting as
// opt.Result.
type ParetoResult struct {
	Front       []optimize.ParetoEntry
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}

// SolvePareto runs the same construct/local-search/update loop as Solve, but
// tracks the bi-objective (WT, Cmax) Pareto front instead of a single
// best-so-far scalar. Pheromone policies are still defined in terms of a
// single reference permutation, so a by-WT scalar best is tracked alongside
// the front purely to steer construction and deposition.
func (s *Solver) SolvePareto(ctx context.Context, inst *flowshop.Instance) (ParetoResult, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return ParetoResult{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return ParetoResult{}, err
	}
	if s.Rng == nil {
		return ParetoResult{}, fmt.Errorf("rng must not be nil")
	}

	n := inst.Jobs
	eval, err := flowshop.NewEvaluator(inst)
	if err != nil {
		return ParetoResult{}, err
	}

	policy, err := s.newPolicy(n)
	if err != nil {
		return ParetoResult{}, err
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
	tracker := optimize.NewPareto(optCfg)
	tracker.Start()

	// bestObj/bestPerm track the scalar (by-WT) reference permutation that
	// steers pheromone updates; this is tracked by hand rather than via
	// tracker.Best() because ParetoOptimizer.Evaluate maintains the Pareto
	// set, not the embedded Optimizer's single-best bookkeeping.
	seedPerm, err := neh.Seed(inst)
	if err != nil {
		return ParetoResult{}, err
	}
	seedObj := eval.MustEvaluate(seedPerm)
	tracker.Evaluate(seedObj, seedPerm)
	bestObj, bestPerm := seedObj, seedPerm

	improvedPerm := localsearch.Rounds(search, inst, eval, seedPerm, 3)
	improvedObj := eval.MustEvaluate(improvedPerm)
	tracker.Evaluate(improvedObj, improvedPerm)
	if improvedObj.WT < bestObj.WT {
		bestObj, bestPerm = improvedObj, improvedPerm
	}

	policy.UpdateParameters(bestObj)
	policy.InitPheromones(bestPerm, bestObj)

	evals := 2
	ants := make([]flowshop.Permutation, 0, nAnts)
	antObjs := make([]flowshop.Objective, 0, nAnts)

	for tracker.IsRunning() {
		if err := ctx.Err(); err != nil {
			return s.paretoResult(tracker, evals, start, map[string]any{"stopped": "context"}), err
		}

		ants = ants[:0]
		antObjs = antObjs[:0]

		for k := 0; k < nAnts; k++ {
			ant, cerr := policy.CreateSolution(s.Rng, bestPerm)
			if cerr != nil {
				return ParetoResult{}, cerr
			}
			ant = localsearch.Rounds(search, inst, eval, ant, 3)

			obj := eval.MustEvaluate(ant)
			evals++

			if policy.PheromonesAreIndividual() {
				policy.UpdatePheromones(ant, obj, bestPerm)
			}

			ants = append(ants, ant)
			antObjs = append(antObjs, obj)

			tracker.Evaluate(obj, ant)
			if obj.WT < bestObj.WT {
				bestObj, bestPerm = obj, ant
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
			"iteration":  tracker.Iterations(),
			"front_size": len(tracker.Set()),
		}).Debug("aco pareto iteration complete")
	}

	return s.paretoResult(tracker, evals, start, map[string]any{
		"method":       string(s.Cfg.Method),
		"ants":         nAnts,
		"rho":          s.Cfg.Rho,
		"local_search": string(s.Cfg.LocalSearch),
	}), nil
}

func (s *Solver) paretoResult(tracker *optimize.ParetoOptimizer, evals int, start time.Time, meta map[string]any) ParetoResult {
	return ParetoResult{
		Front:       tracker.Set(),
		Evaluations: evals,
		Iterations:  tracker.Iterations(),
		Duration:    time.Since(start),
		Meta:        meta,
	}
}
