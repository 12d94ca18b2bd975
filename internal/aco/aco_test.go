package aco_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/r3b0rn/pfspwt/internal/aco"
	"github.com/r3b0rn/pfspwt/internal/flowshop"
	"github.com/r3b0rn/pfspwt/internal/localsearch"
	"github.com/r3b0rn/pfspwt/internal/neh"
)

type ACOSuite struct {
	suite.Suite
}

func (s *ACOSuite) smallInstance() *flowshop.Instance {
	return flowshop.RandomInstance(8, 4, 1, 20, rand.New(rand.NewSource(7)))
}

func (s *ACOSuite) TestConfig_ValidateRejectsBadValues() {
	cfg := aco.DefaultConfigFor(aco.MMASMethod)
	require.NoError(s.T(), cfg.Validate())

	bad := cfg
	bad.Ants = 0
	require.Error(s.T(), bad.Validate())

	bad = cfg
	bad.Rho = 1.5
	require.Error(s.T(), bad.Validate())

	bad = cfg
	bad.Iterations = 0
	bad.IterationsPerJob = 0
	require.Error(s.T(), bad.Validate())

	bad = cfg
	bad.LocalSearch = "bogus"
	require.Error(s.T(), bad.Validate())
}

func (s *ACOSuite) TestDefaultConfigFor_PerMethodDefaults() {
	mmas := aco.DefaultConfigFor(aco.MMASMethod)
	require.Equal(s.T(), 22, mmas.Ants)
	require.InDelta(s.T(), 0.23, mmas.Rho, 1e-9)

	mmmas := aco.DefaultConfigFor(aco.MMMASMethod)
	require.Equal(s.T(), 34, mmmas.Ants)
	require.InDelta(s.T(), 0.3, mmmas.Rho, 1e-9)

	paco := aco.DefaultConfigFor(aco.PACOMethod)
	require.Equal(s.T(), 50, paco.Ants)
	require.InDelta(s.T(), 0.4, paco.Rho, 1e-9)
}

func (s *ACOSuite) TestSolve_MMAS_ProducesValidImprovingPermutation() {
	inst := s.smallInstance()
	cfg := aco.DefaultConfigFor(aco.MMASMethod)
	cfg.IterationsPerJob = 3
	cfg.LocalSearch = localsearch.Insertion

	solver, err := aco.New(cfg, rand.New(rand.NewSource(1)))
	require.NoError(s.T(), err)

	res, err := solver.Solve(context.Background(), inst)
	require.NoError(s.T(), err)
	require.NoError(s.T(), flowshop.ValidatePermutation(res.Permutation, inst.Jobs))

	eval, err := flowshop.NewEvaluator(inst)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), eval.MustWeightedTardiness(res.Permutation), res.WeightedTardiness, 1e-9)
	require.Equal(s.T(), eval.MustMakespan(res.Permutation), res.Makespan)

	seed, err := neh.Seed(inst)
	require.NoError(s.T(), err)
	require.LessOrEqual(s.T(), res.WeightedTardiness, eval.MustWeightedTardiness(seed))
}

func (s *ACOSuite) TestSolve_PACO_ProducesValidPermutation() {
	inst := s.smallInstance()
	cfg := aco.DefaultConfigFor(aco.PACOMethod)
	cfg.IterationsPerJob = 3
	cfg.Ants = 6

	solver, err := aco.New(cfg, rand.New(rand.NewSource(2)))
	require.NoError(s.T(), err)

	res, err := solver.Solve(context.Background(), inst)
	require.NoError(s.T(), err)
	require.NoError(s.T(), flowshop.ValidatePermutation(res.Permutation, inst.Jobs))
}

func (s *ACOSuite) TestSolve_IsDeterministicForFixedSeed() {
	inst := s.smallInstance()
	cfg := aco.DefaultConfigFor(aco.MMASMethod)
	cfg.IterationsPerJob = 3

	solverA, err := aco.New(cfg, rand.New(rand.NewSource(99)))
	require.NoError(s.T(), err)
	resA, err := solverA.Solve(context.Background(), inst)
	require.NoError(s.T(), err)

	solverB, err := aco.New(cfg, rand.New(rand.NewSource(99)))
	require.NoError(s.T(), err)
	resB, err := solverB.Solve(context.Background(), inst)
	require.NoError(s.T(), err)

	require.Equal(s.T(), resA.Permutation, resB.Permutation)
	require.Equal(s.T(), resA.WeightedTardiness, resB.WeightedTardiness)
}

func (s *ACOSuite) TestSolvePareto_ProducesNonDominatedFront() {
	inst := s.smallInstance()
	cfg := aco.DefaultConfigFor(aco.MMASMethod)
	cfg.IterationsPerJob = 3

	solver, err := aco.New(cfg, rand.New(rand.NewSource(3)))
	require.NoError(s.T(), err)

	res, err := solver.SolvePareto(context.Background(), inst)
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), res.Front)

	for _, e := range res.Front {
		require.NoError(s.T(), flowshop.ValidatePermutation(e.Perm, inst.Jobs))
	}
	// No entry in the returned front may dominate another: the set must
	// already be pruned to mutually non-dominated points.
	for i, a := range res.Front {
		for j, b := range res.Front {
			if i == j {
				continue
			}
			require.False(s.T(), a.Obj.WT <= b.Obj.WT && a.Obj.Cmax <= b.Obj.Cmax && (a.Obj.WT < b.Obj.WT || a.Obj.Cmax < b.Obj.Cmax))
		}
	}
}

func (s *ACOSuite) TestMMAS_CreateSolutionAfterUpdateIsPermutation() {
	n := 6
	m := aco.NewMMAS(n, 0.3)
	best := flowshop.Permutation{0, 1, 2, 3, 4, 5}
	m.InitPheromones(best, flowshop.Objective{WT: 10, Cmax: 20})

	m.UpdatePheromones(best, flowshop.Objective{WT: 5, Cmax: 15}, best)

	rng := rand.New(rand.NewSource(11))
	ant, err := m.CreateSolution(rng, best)
	require.NoError(s.T(), err)
	require.NoError(s.T(), flowshop.ValidatePermutation(ant, n))
}

func (s *ACOSuite) TestPACO_CreateSolutionIsPermutation() {
	n := 5
	p := aco.NewPACO(n, 0.4)
	seed := flowshop.Permutation{4, 3, 2, 1, 0}
	p.InitPheromones(seed, flowshop.Objective{WT: 3, Cmax: 8})

	rng := rand.New(rand.NewSource(5))
	ant, err := p.CreateSolution(rng, seed)
	require.NoError(s.T(), err)
	require.NoError(s.T(), flowshop.ValidatePermutation(ant, n))
}

func TestACOSuite(t *testing.T) {
	suite.Run(t, new(ACOSuite))
}
