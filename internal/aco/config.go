package aco

import (
	"fmt"
	"time"

	"github.com/r3b0rn/pfspwt/internal/localsearch"
)

// Config configures one ACO run: which pheromone policy, how many ants, the
// stopping bounds, and the local-search neighborhood applied to every ant.
type Config struct {
	Method Method

	Iterations       int
	IterationsPerJob int

	Ants int

	Rho float64

	LocalSearch localsearch.Kind

	MaxTime       time.Duration
	EarlyStopping int
}

// DefaultConfig returns MMAS's defaults: 22 ants, rho=0.23.
func DefaultConfig() Config {
	return Config{
		Method:           MMASMethod,
		Iterations:       0,
		IterationsPerJob: 120,
		Ants:             22,
		Rho:              0.23,
		LocalSearch:      localsearch.Insertion,
	}
}

// DefaultConfigFor returns the per-method defaults: MMAS (22 ants, rho=0.23),
// M-MMAS (34, 0.3), PACO (50, 0.4).
func DefaultConfigFor(method Method) Config {
	cfg := DefaultConfig()
	cfg.Method = method
	switch method {
	case MMMASMethod:
		cfg.Ants = 34
		cfg.Rho = 0.3
	case PACOMethod:
		cfg.Ants = 50
		cfg.Rho = 0.4
	}
	return cfg
}

// Validate rejects non-positive ants, rho outside (0,1), and unknown
// local-search or method names.
func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerJob <= 0 {
		return fmt.Errorf("iterations or iterationsPerJob must be > 0")
	}
	if c.Ants <= 0 {
		return fmt.Errorf("ants must be > 0 (got %d)", c.Ants)
	}
	if c.Rho <= 0 || c.Rho >= 1 {
		return fmt.Errorf("rho must be in (0,1) (got %f)", c.Rho)
	}
	switch c.LocalSearch {
	case localsearch.None, localsearch.Swap, localsearch.Interchange, localsearch.Insertion, "":
		// ok
	default:
		return fmt.Errorf("unknown local search %q", c.LocalSearch)
	}
	switch c.Method {
	case MMASMethod, MMMASMethod, PACOMethod, "":
		// ok
	default:
		return fmt.Errorf("unknown ACO method %q", c.Method)
	}
	if c.EarlyStopping < 0 {
		return fmt.Errorf("earlyStopping must be >= 0 (got %d)", c.EarlyStopping)
	}
	if c.MaxTime < 0 {
		return fmt.Errorf("maxTime must be >= 0 (got %s)", c.MaxTime)
	}
	return nil
}
