package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/zeu5/bandits/util"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoExperiments = errors.New("no experiments to run")
)

type experimentRunContext struct {
	ctx       context.Context
	env       EnvironmentConstructor
	analyzers map[string]Analyzer
	output    *util.ParallelOutput
	logger    *slog.Logger

	*RunConfig
}

type ExperimentResult struct {
	CompletedRuns int
	TotalRuns     int
	TotalRounds   int

	Error    error
	Datasets map[string]DataSet
}

func (r *ExperimentResult) IsError() bool {
	return r.Error != nil
}

func (e *Experiment) run(ctx *experimentRunContext) *ExperimentResult {
	result := &ExperimentResult{
		Datasets: make(map[string]DataSet),
	}
	logger := ctx.logger.With(slog.String("experiment", e.Name))
	for _, a := range ctx.analyzers {
		a.Reset()
	}

RunLoop:
	for run := 0; run < ctx.Runs; run++ {
		select {
		case <-ctx.ctx.Done():
			result.Error = ctx.ctx.Err()
			break RunLoop
		default:
		}
		if ctx.output != nil {
			ctx.output.TrySet(fmt.Sprintf(
				"Experiment: %s, Run %d/%d, Rounds: %d",
				e.Name, run+1, ctx.Runs, result.TotalRounds,
			))
		}

		seed := ctx.SeedFor(run)
		rCtx := &RunContext{
			Context:    ctx.ctx,
			Experiment: e.Name,
			Run:        run,
			Seed:       seed,
			Rounds:     ctx.Rounds,
		}
		agent, err := e.newAgent(ctx, seed, logger)
		if err != nil {
			// construction errors are the same for every run
			result.Error = err
			break RunLoop
		}
		rCtx.Err = agent.Run(ctx.Rounds)

		result.TotalRuns++
		result.TotalRounds += agent.Rounds()
		if rCtx.Err == nil {
			result.CompletedRuns++
		}
		for _, a := range ctx.analyzers {
			a.Analyze(rCtx, agent)
		}
		if rCtx.Err != nil {
			logger.Error("run aborted", slog.Int("run", run), slog.String("error", rCtx.Err.Error()))
			result.Error = rCtx.Err
			break RunLoop
		}
	}

	for name, a := range ctx.analyzers {
		result.Datasets[name] = a.DataSet()
	}
	if ctx.output != nil {
		status := "done"
		if result.Error != nil {
			status = "error: " + result.Error.Error()
		}
		ctx.output.Set(fmt.Sprintf(
			"Experiment: %s, Runs: %d/%d, Rounds: %d, %s",
			e.Name, result.CompletedRuns, ctx.Runs, result.TotalRounds, status,
		))
	}
	return result
}

// newAgent builds a fresh environment and policy sharing one random source
// seeded for the run. The environment draws first.
func (e *Experiment) newAgent(ctx *experimentRunContext, seed uint64, logger *slog.Logger) (*Agent, error) {
	src := NewRandomSource(seed)
	env, err := ctx.env.NewEnvironment(src)
	if err != nil {
		return nil, fmt.Errorf("creating environment: %w", err)
	}
	policy, err := e.Policy.NewPolicy(env.NumArms(), src)
	if err != nil {
		return nil, fmt.Errorf("creating policy %s: %w", e.Name, err)
	}
	return NewAgentWithConfig(env, policy, &AgentConfig{
		Logger:      logger,
		RecordTrace: ctx.RecordTrace,
	})
}

// Run evaluates every experiment, at most rConfig.Parallelism at a time, and
// hands the analyzer datasets to the comparators. The printer is optional.
func (c *Comparison) Run(ctx context.Context, rConfig *RunConfig, printer *util.TerminalPrinter) (map[string]*ExperimentResult, error) {
	if err := rConfig.Validate(); err != nil {
		return nil, err
	}
	if len(c.Experiments) == 0 {
		return nil, ErrNoExperiments
	}
	if c.Environment == nil {
		return nil, fmt.Errorf("%w: comparison has no environment", ErrInvalidArgument)
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	outputs := make([]*util.ParallelOutput, len(c.Experiments))
	if printer != nil {
		for i := range c.Experiments {
			outputs[i] = printer.NewOutput()
		}
		printer.Start(ctx)
		defer printer.Stop()
	}

	results := make(map[string]*ExperimentResult)
	mtx := new(sync.Mutex)

	g := new(errgroup.Group)
	g.SetLimit(rConfig.Parallelism)
	for i, e := range c.Experiments {
		i, e := i, e
		g.Go(func() error {
			eCtx := &experimentRunContext{
				ctx:       ctx,
				env:       c.Environment,
				analyzers: make(map[string]Analyzer),
				output:    outputs[i],
				logger:    logger,
				RunConfig: rConfig,
			}
			for name, aC := range c.Analyzers {
				eCtx.analyzers[name] = aC.NewAnalyzer(e.Name, i)
			}
			logger.Info("starting experiment", slog.String("experiment", e.Name), slog.Int("runs", rConfig.Runs), slog.Int("rounds", rConfig.Rounds))
			result := e.run(eCtx)
			logger.Info("finished experiment",
				slog.String("experiment", e.Name),
				slog.Int("completed_runs", result.CompletedRuns),
				slog.Bool("error", result.IsError()),
			)

			mtx.Lock()
			results[e.Name] = result
			mtx.Unlock()
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}

	// Gather datasets to run comparisons
	experimentNames := make([]string, 0, len(results))
	for name := range results {
		experimentNames = append(experimentNames, name)
	}
	sort.Strings(experimentNames)

	var errs []error
	for name, cC := range c.Comparators {
		datasets := make([]DataSet, len(experimentNames))
		for i, exp := range experimentNames {
			result := results[exp]
			if result.IsError() {
				datasets[i] = nil
			} else {
				datasets[i] = result.Datasets[name]
			}
		}
		if err := cC.NewComparator().Compare(experimentNames, datasets); err != nil {
			logger.Error("comparison failed", slog.String("analysis", name), slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("comparing %s: %w", name, err))
		}
	}
	return results, errors.Join(errs...)
}
