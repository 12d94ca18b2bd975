package neh_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/r3b0rn/pfspwt/internal/flowshop"
	"github.com/r3b0rn/pfspwt/internal/neh"
)

type NEHSuite struct {
	suite.Suite
}

func (s *NEHSuite) TestSeed_SingleMachinePrefixSumDueDates_YieldsIdentity() {
	// M=1, due dates equal to the processing-time prefix sums for the
	// identity ordering: sorting by due date recovers the identity order,
	// and since that order is already optimal on a single machine, every
	// insertion trial keeps each job where the due-date sort placed it.
	proc := []int{3, 1, 4, 1, 5}
	due := make([]int, len(proc))
	running := 0
	for i, p := range proc {
		running += p
		due[i] = running
	}
	// Unit weights: with nil weights every trial would score zero and the
	// earliest-position tie-break would reverse the order.
	weights := []float64{1, 1, 1, 1, 1}
	inst, err := flowshop.NewInstance(len(proc), 1, proc, due, weights)
	require.NoError(s.T(), err)

	perm, err := neh.Seed(inst)
	require.NoError(s.T(), err)
	require.Equal(s.T(), flowshop.Permutation{0, 1, 2, 3, 4}, perm)
}

func (s *NEHSuite) TestSeed_ValidPermutationAcrossSizes() {
	for _, n := range []int{1, 2, 5, 20} {
		inst := flowshop.RandomInstance(n, 3, 1, 30, rand.New(rand.NewSource(int64(n))))
		perm, err := neh.Seed(inst)
		require.NoError(s.T(), err)
		require.NoError(s.T(), flowshop.ValidatePermutation(perm, n))
	}
}

func (s *NEHSuite) TestSeed_SingleJob() {
	inst, err := flowshop.NewInstance(1, 2, []int{3, 4}, []int{1}, []float64{2})
	require.NoError(s.T(), err)
	perm, err := neh.Seed(inst)
	require.NoError(s.T(), err)
	require.Equal(s.T(), flowshop.Permutation{0}, perm)
}

func TestNEHSuite(t *testing.T) {
	suite.Run(t, new(NEHSuite))
}
