package ts_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/r3b0rn/pfspwt/internal/flowshop"
	"github.com/r3b0rn/pfspwt/internal/ts"
)

type TSSuite struct {
	suite.Suite
}

func (s *TSSuite) TestSolve_ProducesValidPermutationWithConsistentObjectives() {
	inst := flowshop.RandomInstance(10, 3, 1, 20, rand.New(rand.NewSource(6)))

	cfg := ts.DefaultConfig()
	cfg.IterationsPerJob = 5
	cfg.NeighborsPerIter = 15

	solver, err := ts.New(cfg, rand.New(rand.NewSource(6)))
	require.NoError(s.T(), err)

	res, err := solver.Solve(context.Background(), inst)
	require.NoError(s.T(), err)
	require.NoError(s.T(), flowshop.ValidatePermutation(res.Permutation, inst.Jobs))

	eval, err := flowshop.NewEvaluator(inst)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), eval.MustWeightedTardiness(res.Permutation), res.WeightedTardiness, 1e-9)
	require.Equal(s.T(), eval.MustMakespan(res.Permutation), res.Makespan)
}

func (s *TSSuite) TestConfig_ValidateRejectsBadValues() {
	cfg := ts.DefaultConfig()
	require.NoError(s.T(), cfg.Validate())

	bad := cfg
	bad.TabuTenure = 0
	require.Error(s.T(), bad.Validate())

	bad = cfg
	bad.NeighborsPerIter = 0
	require.Error(s.T(), bad.Validate())

	bad = cfg
	bad.Neighborhood = "bogus"
	require.Error(s.T(), bad.Validate())
}

func TestTSSuite(t *testing.T) {
	suite.Run(t, new(TSSuite))
}
