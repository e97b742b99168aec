package core

import (
	"fmt"
	"math"
)

// Environment is a stationary Bernoulli bandit. The success probabilities
// are fixed at construction and only ever read afterwards.
type Environment struct {
	probabilities []float64
	best          float64
	bestArm       int

	rand RandomSource
}

// NewEnvironment creates an environment with numArms arms. When probs is nil
// every arm's probability is drawn uniformly from [0,1) using src.
func NewEnvironment(numArms int, probs []float64, src RandomSource) (*Environment, error) {
	if numArms <= 0 {
		return nil, fmt.Errorf("%w: number of arms must be positive, got %d", ErrInvalidArgument, numArms)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidArgument)
	}

	p := make([]float64, numArms)
	if probs == nil {
		for i := range p {
			p[i] = src.Uniform01()
		}
	} else {
		if len(probs) != numArms {
			return nil, fmt.Errorf("%w: expected %d probabilities, got %d", ErrInvalidArgument, numArms, len(probs))
		}
		for i, v := range probs {
			// written so that NaN fails the check as well
			if !(v >= 0 && v <= 1) {
				return nil, fmt.Errorf("%w: probability of arm %d is %v, outside [0,1]", ErrInvalidArgument, i, v)
			}
			p[i] = v
		}
	}

	best, bestArm := math.Inf(-1), 0
	for i, v := range p {
		if v > best {
			best, bestArm = v, i
		}
	}

	return &Environment{
		probabilities: p,
		best:          best,
		bestArm:       bestArm,
		rand:          src,
	}, nil
}

// Reward pulls the arm once and returns 1 on success, 0 otherwise.
func (e *Environment) Reward(arm int) (int, error) {
	if arm < 0 || arm >= len(e.probabilities) {
		return 0, fmt.Errorf("%w: arm %d out of range [0,%d)", ErrInvalidArgument, arm, len(e.probabilities))
	}
	return e.rand.Bernoulli(e.probabilities[arm]), nil
}

func (e *Environment) NumArms() int {
	return len(e.probabilities)
}

func (e *Environment) BestProbability() float64 {
	return e.best
}

// BestArm is the lowest index among the arms with the best probability
func (e *Environment) BestArm() int {
	return e.bestArm
}

// Probability returns the ground truth of a single arm. Policies must not be
// given access to the environment; this is for regret accounting and analysis.
func (e *Environment) Probability(arm int) float64 {
	return e.probabilities[arm]
}

func (e *Environment) TrueProbabilities() []float64 {
	out := make([]float64, len(e.probabilities))
	copy(out, e.probabilities)
	return out
}

type EnvironmentConstructor interface {
	// NewEnvironment creates a new environment drawing from the given source.
	NewEnvironment(RandomSource) (*Environment, error)
}

// BernoulliEnvConfig builds environments with fixed probabilities, or random
// ones when Probabilities is empty.
type BernoulliEnvConfig struct {
	NumArms       int
	Probabilities []float64
}

var _ EnvironmentConstructor = &BernoulliEnvConfig{}

func (c *BernoulliEnvConfig) NewEnvironment(src RandomSource) (*Environment, error) {
	if len(c.Probabilities) == 0 {
		return NewEnvironment(c.NumArms, nil, src)
	}
	return NewEnvironment(c.NumArms, c.Probabilities, src)
}
