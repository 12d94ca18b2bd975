package bench

import "gonum.org/v1/gonum/stat"

// IntStats summarizes a sample of integer-valued runs (makespan).
type IntStats struct {
	N    int
	Best int
	Mean float64
	Std  float64
}

// CalcIntStats converts values to float64 and delegates the mean/stddev
// to gonum/stat, keeping only the best-of-sample reduction by hand since
// gonum has no integer minimum helper.
func CalcIntStats(values []int) IntStats {
	s := IntStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	best := values[0]
	floats := make([]float64, s.N)
	for i, v := range values {
		if v < best {
			best = v
		}
		floats[i] = float64(v)
	}

	s.Best = best
	s.Mean, s.Std = stat.MeanStdDev(floats, nil)
	if s.N < 2 {
		s.Std = 0
	}
	return s
}

// FloatStats summarizes a sample of real-valued runs (weighted tardiness,
// wall-clock milliseconds).
type FloatStats struct {
	N    int
	Best float64
	Mean float64
	Std  float64
}

// CalcFloatStats mirrors CalcIntStats for float64 samples.
func CalcFloatStats(values []float64) FloatStats {
	s := FloatStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	best := values[0]
	for _, v := range values {
		if v < best {
			best = v
		}
	}

	s.Best = best
	s.Mean, s.Std = stat.MeanStdDev(values, nil)
	if s.N < 2 {
		s.Std = 0
	}
	return s
}
