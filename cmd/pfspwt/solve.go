package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/r3b0rn/pfspwt/internal/aco"
	"github.com/r3b0rn/pfspwt/internal/instanceio"
	"github.com/r3b0rn/pfspwt/internal/localsearch"
)

// solveReport is the JSON shape printed by `pfspwt solve`.
type solveReport struct {
	Permutation       []int   `json:"permutation"`
	Makespan          int     `json:"makespan"`
	WeightedTardiness float64 `json:"weighted_tardiness"`
	Evaluations       int     `json:"evaluations"`
	Iterations        int     `json:"iterations"`
	DurationMs        float64 `json:"duration_ms"`
}

// paretoPoint is one front entry printed by `pfspwt solve --pareto`.
type paretoPoint struct {
	Permutation       []int   `json:"permutation"`
	Makespan          int     `json:"makespan"`
	WeightedTardiness float64 `json:"weighted_tardiness"`
}

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <instance-file>",
		Short: "Solve one PFSP-WT instance with the configured ACO policy",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}

	flags := cmd.Flags()
	flags.String("method", "MMAS", "pheromone policy: MMAS | M-MMAS | PACO")
	flags.Int("ants", 0, "ants per iteration (0 = method default)")
	flags.Float64("rho", 0, "evaporation/persistence coefficient (0 = method default)")
	flags.String("local-search", string(localsearch.Insertion), "none | swap | interchange | insertion")
	flags.Int("iterations", 0, "total iterations (0 = iterations-per-job * jobs)")
	flags.Int("iterations-per-job", 0, "iterations per job, used when --iterations=0 (0 = method default)")
	flags.Duration("max-time", 30*time.Second, "wall-clock budget (0 = unbounded)")
	flags.Int("early-stopping", 0, "stop after this many stagnant iterations (0 = unbounded)")
	flags.Int64("seed", 1, "RNG seed")
	flags.Bool("pareto", false, "track the bi-objective (WT, Cmax) Pareto front instead of a single best")

	for _, name := range []string{"method", "ants", "rho", "local-search", "iterations", "iterations-per-job", "max-time", "early-stopping", "seed", "pareto"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	inst, err := instanceio.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("parsing instance: %w", err)
	}

	method := aco.Method(viper.GetString("method"))
	cfg := aco.DefaultConfigFor(method)
	if v := viper.GetInt("ants"); v > 0 {
		cfg.Ants = v
	}
	if v := viper.GetFloat64("rho"); v > 0 {
		cfg.Rho = v
	}
	if v := viper.GetString("local-search"); v != "" {
		cfg.LocalSearch = localsearch.Kind(v)
	}
	cfg.Iterations = viper.GetInt("iterations")
	if v := viper.GetInt("iterations-per-job"); v > 0 {
		cfg.IterationsPerJob = v
	}
	cfg.MaxTime = viper.GetDuration("max-time")
	cfg.EarlyStopping = viper.GetInt("early-stopping")

	solver, err := aco.New(cfg, rand.New(rand.NewSource(viper.GetInt64("seed"))))
	if err != nil {
		return fmt.Errorf("configuring solver: %w", err)
	}

	ctx := context.Background()

	if viper.GetBool("pareto") {
		res, err := solver.SolvePareto(ctx, inst)
		if err != nil {
			return fmt.Errorf("solving: %w", err)
		}
		front := make([]paretoPoint, len(res.Front))
		for i, e := range res.Front {
			front[i] = paretoPoint{
				Permutation:       e.Perm,
				Makespan:          e.Obj.Cmax,
				WeightedTardiness: e.Obj.WT,
			}
		}
		return json.NewEncoder(os.Stdout).Encode(front)
	}

	res, err := solver.Solve(ctx, inst)
	if err != nil {
		return fmt.Errorf("solving: %w", err)
	}

	report := solveReport{
		Permutation:       res.Permutation,
		Makespan:          res.Makespan,
		WeightedTardiness: res.WeightedTardiness,
		Evaluations:       res.Evaluations,
		Iterations:        res.Iterations,
		DurationMs:        float64(res.Duration) / float64(time.Millisecond),
	}
	return json.NewEncoder(os.Stdout).Encode(report)
}
