package bench_test

import (
	"context"
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/r3b0rn/pfspwt/internal/aco"
	"github.com/r3b0rn/pfspwt/internal/bench"
	"github.com/r3b0rn/pfspwt/internal/opt"
)

type BenchSuite struct {
	suite.Suite
}

func (s *BenchSuite) TestCalcIntStats_Basic() {
	st := bench.CalcIntStats([]int{10, 20, 30})
	require.Equal(s.T(), 3, st.N)
	require.Equal(s.T(), 10, st.Best)
	require.InDelta(s.T(), 20.0, st.Mean, 1e-9)
}

func (s *BenchSuite) TestCalcIntStats_EmptyAndSingleton() {
	empty := bench.CalcIntStats(nil)
	require.Equal(s.T(), 0, empty.N)

	single := bench.CalcIntStats([]int{7})
	require.Equal(s.T(), 1, single.N)
	require.Equal(s.T(), 7, single.Best)
	require.Zero(s.T(), single.Std)
}

func (s *BenchSuite) TestCalcFloatStats_Basic() {
	st := bench.CalcFloatStats([]float64{5.5, 2.5, 8.0})
	require.Equal(s.T(), 3, st.N)
	require.InDelta(s.T(), 2.5, st.Best, 1e-9)
}

func (s *BenchSuite) TestRunCase_ProducesRecordMatchingFactoryOutput() {
	algo := bench.Algorithm{
		Name: "aco-mmas",
		Factory: func(seed int64) opt.Optimizer {
			cfg := aco.DefaultConfigFor(aco.MMASMethod)
			cfg.IterationsPerJob = 2
			solver, err := aco.New(cfg, rand.New(rand.NewSource(seed)))
			s.Require().NoError(err)
			return solver
		},
	}

	runner := bench.Runner{Runs: 2, BaseSeed: 1}
	rec, err := runner.RunCase(context.Background(), bench.Case{Jobs: 6, Machines: 3, InstanceSeed: 42}, algo)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "aco-mmas", rec.Algo)
	require.Equal(s.T(), 2, rec.Runs)
	require.GreaterOrEqual(s.T(), rec.WTBest, 0.0)
}

func (s *BenchSuite) TestWriteCSV_RoundTrips() {
	records := []bench.Record{
		{Algo: "x", Jobs: 5, Machines: 2, Runs: 1, MakespanBest: 10, WTBest: 3.5},
	}
	path := filepath.Join(s.T().TempDir(), "out", "results.csv")
	require.NoError(s.T(), bench.WriteCSV(path, records))

	f, err := os.Open(path)
	require.NoError(s.T(), err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(s.T(), err)
	require.Len(s.T(), rows, 2)
	require.Equal(s.T(), "algo", rows[0][0])
	require.Equal(s.T(), "x", rows[1][0])
}

func TestBenchSuite(t *testing.T) {
	suite.Run(t, new(BenchSuite))
}
