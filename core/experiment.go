package core

import (
	"context"
	"fmt"
	"log/slog"
)

// Experiment is one policy evaluated over several independent runs
type Experiment struct {
	Name   string
	Policy PolicyConstructor
}

type DataSet interface{}

// RunContext describes a finished run handed to the analyzers
type RunContext struct {
	Context    context.Context
	Experiment string
	Run        int
	Seed       uint64
	Rounds     int

	// Err is set when the run was aborted
	Err error
}

type Analyzer interface {
	Analyze(*RunContext, *Agent)
	DataSet() DataSet
	Reset()
}

type AnalyzerConstructor interface {
	// new analyzer based on experiment name and worker id
	NewAnalyzer(string, int) Analyzer
}

type Comparator interface {
	Compare([]string, []DataSet) error
}

type ComparatorConstructor interface {
	NewComparator() Comparator
}

type RunConfig struct {
	Runs        int
	Rounds      int
	Seed        uint64
	Parallelism int
	RecordTrace bool
}

func (r *RunConfig) Validate() error {
	if r.Runs < 1 {
		return fmt.Errorf("%w: runs must be at least 1, got %d", ErrInvalidArgument, r.Runs)
	}
	if r.Rounds < 0 {
		return fmt.Errorf("%w: rounds must be non-negative, got %d", ErrInvalidArgument, r.Rounds)
	}
	if r.Parallelism < 1 {
		return fmt.Errorf("%w: parallelism must be at least 1, got %d", ErrInvalidArgument, r.Parallelism)
	}
	return nil
}

// SeedFor returns the seed of the given run. Every experiment uses the same
// seed for the same run so that all policies face the same environment.
func (r *RunConfig) SeedFor(run int) uint64 {
	return r.Seed + uint64(run)
}

// Comparison evaluates several policies on environments built by the same constructor
type Comparison struct {
	Environment EnvironmentConstructor
	Experiments []*Experiment
	Analyzers   map[string]AnalyzerConstructor
	Comparators map[string]ComparatorConstructor

	Logger *slog.Logger
}

func NewComparison(env EnvironmentConstructor) *Comparison {
	return &Comparison{
		Environment: env,
		Experiments: make([]*Experiment, 0),
		Analyzers:   make(map[string]AnalyzerConstructor),
		Comparators: make(map[string]ComparatorConstructor),
		Logger:      slog.Default(),
	}
}

func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

func (c *Comparison) AddAnalysis(name string, a AnalyzerConstructor, cmp ComparatorConstructor) {
	c.Analyzers[name] = a
	c.Comparators[name] = cmp
}
