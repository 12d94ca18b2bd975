package ga_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/r3b0rn/pfspwt/internal/flowshop"
	"github.com/r3b0rn/pfspwt/internal/ga"
)

type GASuite struct {
	suite.Suite
}

func (s *GASuite) TestSolve_ProducesValidPermutationWithConsistentObjectives() {
	inst := flowshop.RandomInstance(10, 3, 1, 20, rand.New(rand.NewSource(4)))

	cfg := ga.DefaultConfig()
	cfg.Population = 12
	cfg.Generations = 5

	solver, err := ga.New(cfg, rand.New(rand.NewSource(4)))
	require.NoError(s.T(), err)

	res, err := solver.Solve(context.Background(), inst)
	require.NoError(s.T(), err)
	require.NoError(s.T(), flowshop.ValidatePermutation(res.Permutation, inst.Jobs))

	eval, err := flowshop.NewEvaluator(inst)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), eval.MustWeightedTardiness(res.Permutation), res.WeightedTardiness, 1e-9)
	require.Equal(s.T(), eval.MustMakespan(res.Permutation), res.Makespan)
}

func (s *GASuite) TestConfig_ValidateRejectsBadValues() {
	cfg := ga.DefaultConfig()
	require.NoError(s.T(), cfg.Validate())

	bad := cfg
	bad.Population = 1
	require.Error(s.T(), bad.Validate())

	bad = cfg
	bad.Elite = cfg.Population
	require.Error(s.T(), bad.Validate())

	bad = cfg
	bad.CrossoverRate = 1.5
	require.Error(s.T(), bad.Validate())
}

func TestGASuite(t *testing.T) {
	suite.Run(t, new(GASuite))
}
