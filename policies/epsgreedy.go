package policies

import (
	"fmt"

	"github.com/zeu5/bandits/core"
)

// EpsilonGreedyPolicy explores a uniformly random arm with probability epsilon
// and otherwise exploits the arm with the highest running mean.
type EpsilonGreedyPolicy struct {
	epsilon   float64
	numArms   int
	estimates *RunningMeans
	rand      core.RandomSource
}

var _ core.Policy = &EpsilonGreedyPolicy{}
var _ core.MeanEstimator = &EpsilonGreedyPolicy{}

func NewEpsilonGreedyPolicy(numArms int, epsilon, initial float64, src core.RandomSource) (*EpsilonGreedyPolicy, error) {
	if err := checkArms(numArms); err != nil {
		return nil, err
	}
	if err := checkInitial(initial); err != nil {
		return nil, err
	}
	if !(epsilon >= 0 && epsilon <= 1) {
		return nil, fmt.Errorf("%w: epsilon must be in [0,1], got %v", core.ErrInvalidArgument, epsilon)
	}
	if err := checkSource(src); err != nil {
		return nil, err
	}
	return &EpsilonGreedyPolicy{
		epsilon:   epsilon,
		numArms:   numArms,
		estimates: NewRunningMeans(numArms, initial),
		rand:      src,
	}, nil
}

func (e *EpsilonGreedyPolicy) Name() string {
	return fmt.Sprintf("EpsilonGreedy(%g)", e.epsilon)
}

func (e *EpsilonGreedyPolicy) Epsilon() float64 {
	return e.epsilon
}

func (e *EpsilonGreedyPolicy) ChooseArm(_ *core.StepContext) int {
	if e.rand.Uniform01() < e.epsilon {
		return e.rand.UniformInt(0, e.numArms)
	}
	return e.estimates.Max()
}

func (e *EpsilonGreedyPolicy) UpdateBelief(step *core.StepContext, arm, reward int) {
	e.estimates.Update(arm, reward, step.Pulls(arm))
}

func (e *EpsilonGreedyPolicy) Estimates() []float64 {
	return e.estimates.Values()
}

type EpsilonGreedyPolicyConstructor struct {
	Epsilon float64
	Initial float64
}

var _ core.PolicyConstructor = &EpsilonGreedyPolicyConstructor{}

func NewEpsilonGreedyPolicyConstructor(epsilon, initial float64) *EpsilonGreedyPolicyConstructor {
	return &EpsilonGreedyPolicyConstructor{
		Epsilon: epsilon,
		Initial: initial,
	}
}

func (e *EpsilonGreedyPolicyConstructor) NewPolicy(numArms int, src core.RandomSource) (core.Policy, error) {
	p, err := NewEpsilonGreedyPolicy(numArms, e.Epsilon, e.Initial, src)
	if err != nil {
		return nil, err
	}
	return p, nil
}
