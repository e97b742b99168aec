package policies

import (
	"github.com/zeu5/bandits/core"
)

// UniformPolicy always pulls the least pulled arm, lowest index first, which
// converges to a round robin over the arms. It estimates every arm's mean but
// never exploits the estimates.
type UniformPolicy struct {
	estimates *RunningMeans
}

var _ core.Policy = &UniformPolicy{}
var _ core.MeanEstimator = &UniformPolicy{}

func NewUniformPolicy(numArms int, initial float64) (*UniformPolicy, error) {
	if err := checkArms(numArms); err != nil {
		return nil, err
	}
	if err := checkInitial(initial); err != nil {
		return nil, err
	}
	return &UniformPolicy{
		estimates: NewRunningMeans(numArms, initial),
	}, nil
}

func (u *UniformPolicy) Name() string { return "Uniform" }

func (u *UniformPolicy) ChooseArm(step *core.StepContext) int {
	best := 0
	for arm := 1; arm < step.NumArms(); arm++ {
		if step.Pulls(arm) < step.Pulls(best) {
			best = arm
		}
	}
	return best
}

func (u *UniformPolicy) UpdateBelief(step *core.StepContext, arm, reward int) {
	u.estimates.Update(arm, reward, step.Pulls(arm))
}

func (u *UniformPolicy) Estimates() []float64 {
	return u.estimates.Values()
}

type UniformPolicyConstructor struct {
	Initial float64
}

var _ core.PolicyConstructor = &UniformPolicyConstructor{}

func NewUniformPolicyConstructor(initial float64) *UniformPolicyConstructor {
	return &UniformPolicyConstructor{
		Initial: initial,
	}
}

func (u *UniformPolicyConstructor) NewPolicy(numArms int, _ core.RandomSource) (core.Policy, error) {
	p, err := NewUniformPolicy(numArms, u.Initial)
	if err != nil {
		return nil, err
	}
	return p, nil
}
