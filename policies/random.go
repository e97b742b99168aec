package policies

import (
	"github.com/zeu5/bandits/core"
)

// RandomPolicy pulls a uniformly random arm every round. It keeps no belief
// and serves as the baseline of a comparison.
type RandomPolicy struct {
	numArms int
	rand    core.RandomSource
}

var _ core.Policy = &RandomPolicy{}

func NewRandomPolicy(numArms int, src core.RandomSource) (*RandomPolicy, error) {
	if err := checkArms(numArms); err != nil {
		return nil, err
	}
	if err := checkSource(src); err != nil {
		return nil, err
	}
	return &RandomPolicy{
		numArms: numArms,
		rand:    src,
	}, nil
}

func (r *RandomPolicy) Name() string { return "Random" }

func (r *RandomPolicy) ChooseArm(_ *core.StepContext) int {
	return r.rand.UniformInt(0, r.numArms)
}

func (r *RandomPolicy) UpdateBelief(_ *core.StepContext, _, _ int) {}

type RandomPolicyConstructor struct{}

var _ core.PolicyConstructor = &RandomPolicyConstructor{}

func (r *RandomPolicyConstructor) NewPolicy(numArms int, src core.RandomSource) (core.Policy, error) {
	p, err := NewRandomPolicy(numArms, src)
	if err != nil {
		return nil, err
	}
	return p, nil
}
