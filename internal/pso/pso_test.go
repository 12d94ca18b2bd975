package pso_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/r3b0rn/pfspwt/internal/flowshop"
	"github.com/r3b0rn/pfspwt/internal/pso"
)

type PSOSuite struct {
	suite.Suite
}

func (s *PSOSuite) TestSolve_ProducesValidPermutationWithConsistentObjectives() {
	inst := flowshop.RandomInstance(10, 3, 1, 20, rand.New(rand.NewSource(8)))

	cfg := pso.DefaultConfig()
	cfg.Particles = 10
	cfg.IterationsPerJob = 5

	solver, err := pso.New(cfg, rand.New(rand.NewSource(8)))
	require.NoError(s.T(), err)

	res, err := solver.Solve(context.Background(), inst)
	require.NoError(s.T(), err)
	require.NoError(s.T(), flowshop.ValidatePermutation(res.Permutation, inst.Jobs))

	eval, err := flowshop.NewEvaluator(inst)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), eval.MustWeightedTardiness(res.Permutation), res.WeightedTardiness, 1e-9)
	require.Equal(s.T(), eval.MustMakespan(res.Permutation), res.Makespan)
}

func (s *PSOSuite) TestConfig_ValidateRejectsBadValues() {
	cfg := pso.DefaultConfig()
	require.NoError(s.T(), cfg.Validate())

	bad := cfg
	bad.Particles = 0
	require.Error(s.T(), bad.Validate())

	bad = cfg
	bad.C1 = -1
	require.Error(s.T(), bad.Validate())

	bad = cfg
	bad.PosMin = 1
	bad.PosMax = 0
	require.Error(s.T(), bad.Validate())
}

func TestPSOSuite(t *testing.T) {
	suite.Run(t, new(PSOSuite))
}
