package flowshop_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/r3b0rn/pfspwt/internal/flowshop"
)

type FlowShopSuite struct {
	suite.Suite
}

func (s *FlowShopSuite) TestCompletionMatrix_KnownInstance() {
	// 3 jobs, 2 machines; processing times chosen so the recurrence is easy
	// to hand-check.
	inst, err := flowshop.NewInstance(3, 2,
		[]int{2, 3, 4, 1, 1, 5},
		nil, nil,
	)
	require.NoError(s.T(), err)

	perm := []int{0, 1, 2}
	buf := make([]int, flowshop.CompletionBufferLen(3, 2))
	flowshop.FillCompletion(inst, perm, buf)

	// C[0,0] = p(job0, m0) = 2
	require.Equal(s.T(), 2, flowshop.CompletionAt(buf, 2, 0, 0))
	// C[0,1] = C[0,0] + p(job0, m1) = 2+3 = 5
	require.Equal(s.T(), 5, flowshop.CompletionAt(buf, 2, 0, 1))
	// C[1,0] = C[0,0] + p(job1, m0) = 2+4 = 6
	require.Equal(s.T(), 6, flowshop.CompletionAt(buf, 2, 1, 0))
	// C[1,1] = max(C[1,0], C[0,1]) + p(job1, m1) = max(6,5)+1 = 7
	require.Equal(s.T(), 7, flowshop.CompletionAt(buf, 2, 1, 1))
	// C[2,0] = C[1,0] + p(job2, m0) = 6+1 = 7
	require.Equal(s.T(), 7, flowshop.CompletionAt(buf, 2, 2, 0))
	// C[2,1] = max(C[2,0], C[1,1]) + p(job2, m1) = max(7,7)+5 = 12
	require.Equal(s.T(), 12, flowshop.CompletionAt(buf, 2, 2, 1))

	require.Equal(s.T(), 12, flowshop.Makespan(inst, perm, buf, false))
}

func (s *FlowShopSuite) TestWeightedTardiness_MatchesDefinition() {
	inst, err := flowshop.NewInstance(2, 1,
		[]int{5, 3},
		[]int{4, 10},
		[]float64{2, 1},
	)
	require.NoError(s.T(), err)

	perm := []int{0, 1}
	buf := make([]int, flowshop.CompletionBufferLen(2, 1))
	flowshop.FillCompletion(inst, perm, buf)

	// C[job0]=5 (due 4, tardy by 1, weight 2 -> 2)
	// C[job1]=5+3=8 (due 10, not tardy -> 0)
	require.InDelta(s.T(), 2.0, flowshop.WeightedTardiness(inst, perm, buf, false), 1e-9)
}

func (s *FlowShopSuite) TestBoundary_SingleJob() {
	inst, err := flowshop.NewInstance(1, 3, []int{2, 3, 4}, []int{5}, []float64{7})
	require.NoError(s.T(), err)

	eval, err := flowshop.NewEvaluator(inst)
	require.NoError(s.T(), err)

	obj := eval.MustEvaluate([]int{0})
	require.Equal(s.T(), 9, obj.Cmax)
	// tardiness = max(9-5,0) * 7 = 28
	require.InDelta(s.T(), 28.0, obj.WT, 1e-9)
}

func (s *FlowShopSuite) TestBoundary_SingleMachineIsCumulativeSum() {
	inst, err := flowshop.NewInstance(4, 1, []int{2, 3, 1, 4}, nil, nil)
	require.NoError(s.T(), err)
	eval, err := flowshop.NewEvaluator(inst)
	require.NoError(s.T(), err)

	require.Equal(s.T(), 2+3+1+4, eval.MustMakespan([]int{0, 1, 2, 3}))
}

func (s *FlowShopSuite) TestBoundary_AllWeightsZero() {
	inst, err := flowshop.NewInstance(3, 2,
		[]int{1, 1, 2, 2, 3, 3},
		[]int{0, 0, 0},
		[]float64{0, 0, 0},
	)
	require.NoError(s.T(), err)
	eval, err := flowshop.NewEvaluator(inst)
	require.NoError(s.T(), err)

	require.Zero(s.T(), eval.MustWeightedTardiness([]int{0, 1, 2}))
}

func (s *FlowShopSuite) TestValidate_RejectsBadInput() {
	_, err := flowshop.NewInstance(0, 2, nil, nil, nil)
	require.Error(s.T(), err)

	_, err = flowshop.NewInstance(2, 2, []int{1, 2, 3}, nil, nil)
	require.Error(s.T(), err)

	_, err = flowshop.NewInstance(2, 2, []int{1, 2, 3, 4}, nil, []float64{-1, 0})
	require.Error(s.T(), err)
}

func (s *FlowShopSuite) TestValidatePermutation() {
	require.NoError(s.T(), flowshop.ValidatePermutation([]int{2, 0, 1}, 3))
	require.Error(s.T(), flowshop.ValidatePermutation([]int{0, 0, 1}, 3))
	require.Error(s.T(), flowshop.ValidatePermutation([]int{0, 1}, 3))
	require.True(s.T(), flowshop.IsPermutation([]int{1, 0}, 2))
	require.False(s.T(), flowshop.IsPermutation([]int{1, 1}, 2))
}

func (s *FlowShopSuite) TestRandomInstance_IsDeterministicForFixedSeed() {
	rng1 := rand.New(rand.NewSource(42))
	rng2 := rand.New(rand.NewSource(42))

	a := flowshop.RandomInstance(10, 4, 1, 99, rng1)
	b := flowshop.RandomInstance(10, 4, 1, 99, rng2)

	require.Equal(s.T(), a.ProcTimes, b.ProcTimes)
	require.Equal(s.T(), a.DueDates, b.DueDates)
	require.Equal(s.T(), a.Weights, b.Weights)
}

func TestFlowShopSuite(t *testing.T) {
	suite.Run(t, new(FlowShopSuite))
}
