package core

import (
	"fmt"
	"log/slog"

	"github.com/zeu5/bandits/util"
)

// AgentConfig configures an Agent. The zero value is usable.
type AgentConfig struct {
	// Logger for debug output. If nil, slog.Default() is used.
	Logger *slog.Logger
	// RecordTrace keeps every played round in a Trace
	RecordTrace bool
}

// Agent drives the choose, observe, update cycle of a policy against an
// environment and keeps the pull counts and regret of the run.
//
// An Agent is not safe for concurrent use.
type Agent struct {
	env    *Environment
	policy Policy

	pulls            []int
	rounds           int
	cumulativeRegret float64
	regretHistory    []float64

	trace  *Trace
	logger *slog.Logger
	err    error
}

func NewAgent(env *Environment, policy Policy) (*Agent, error) {
	return NewAgentWithConfig(env, policy, nil)
}

func NewAgentWithConfig(env *Environment, policy Policy, config *AgentConfig) (*Agent, error) {
	if env == nil {
		return nil, fmt.Errorf("%w: nil environment", ErrInvalidArgument)
	}
	if policy == nil {
		return nil, fmt.Errorf("%w: nil policy", ErrInvalidArgument)
	}
	if config == nil {
		config = &AgentConfig{}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &Agent{
		env:           env,
		policy:        policy,
		pulls:         make([]int, env.NumArms()),
		regretHistory: []float64{0},
		logger:        logger.With(slog.String("policy", policy.Name())),
	}
	if config.RecordTrace {
		a.trace = NewTrace()
	}
	return a, nil
}

// Run plays numIterations rounds. It stops at the first error; a contract
// violation leaves the agent unusable.
func (a *Agent) Run(numIterations int) error {
	if numIterations < 0 {
		return fmt.Errorf("%w: number of iterations must be non-negative, got %d", ErrInvalidArgument, numIterations)
	}
	if a.err != nil {
		return a.err
	}
	a.logger.Debug("starting run",
		slog.Int("iterations", numIterations),
		slog.Int("arms", a.env.NumArms()),
	)
	for i := 0; i < numIterations; i++ {
		if err := a.Step(); err != nil {
			a.logger.Error("run aborted", slog.Int("round", a.rounds+1), slog.String("error", err.Error()))
			return err
		}
	}
	a.logger.Debug("run finished",
		slog.Int("rounds", a.rounds),
		slog.Float64("cumulative_regret", a.cumulativeRegret),
	)
	return nil
}

// Step plays a single round.
func (a *Agent) Step() error {
	if a.err != nil {
		return a.err
	}
	sCtx := NewStepContext(a.rounds+1, a.pulls)

	arm := a.policy.ChooseArm(sCtx)
	if arm < 0 || arm >= len(a.pulls) {
		a.err = fmt.Errorf("%w: %s chose arm %d in round %d, valid range is [0,%d)",
			ErrContractViolation, a.policy.Name(), arm, sCtx.Round, len(a.pulls))
		return a.err
	}
	reward, err := a.env.Reward(arm)
	if err != nil {
		return err
	}

	a.pulls[arm]++
	a.policy.UpdateBelief(sCtx, arm, reward)

	regret := a.env.BestProbability() - a.env.Probability(arm)
	a.cumulativeRegret += regret
	a.regretHistory = append(a.regretHistory, a.cumulativeRegret)
	a.rounds++

	if a.trace != nil {
		a.trace.AddStep(&Step{
			Round:  sCtx.Round,
			Arm:    arm,
			Reward: reward,
			Regret: regret,
		})
	}
	return nil
}

func (a *Agent) PullCounts() []int {
	return util.CopyIntSlice(a.pulls)
}

func (a *Agent) CumulativeRegret() float64 {
	return a.cumulativeRegret
}

func (a *Agent) RegretHistory() []float64 {
	return util.CopyFloatSlice(a.regretHistory)
}

// Rounds is the number of rounds played so far
func (a *Agent) Rounds() int {
	return a.rounds
}

func (a *Agent) Policy() Policy {
	return a.policy
}

func (a *Agent) Environment() *Environment {
	return a.env
}

// Trace is nil unless the agent was configured with RecordTrace
func (a *Agent) Trace() *Trace {
	return a.trace
}

// Err returns the contract violation that aborted the agent, if any
func (a *Agent) Err() error {
	return a.err
}
