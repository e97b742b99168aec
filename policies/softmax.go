package policies

import (
	"fmt"
	"math"

	"github.com/zeu5/bandits/core"
)

// SoftmaxPolicy picks an arm with probability proportional to
// exp(estimate / temperature). Low temperatures approach greedy selection,
// high temperatures approach uniform selection.
type SoftmaxPolicy struct {
	Temperature float64

	estimates *RunningMeans
	rand      core.RandomSource
}

var _ core.Policy = &SoftmaxPolicy{}
var _ core.MeanEstimator = &SoftmaxPolicy{}

func NewSoftmaxPolicy(numArms int, temperature, initial float64, src core.RandomSource) (*SoftmaxPolicy, error) {
	if err := checkArms(numArms); err != nil {
		return nil, err
	}
	if err := checkInitial(initial); err != nil {
		return nil, err
	}
	if !(temperature > 0) || math.IsInf(temperature, 1) {
		return nil, fmt.Errorf("%w: temperature must be positive and finite, got %v", core.ErrInvalidArgument, temperature)
	}
	if err := checkSource(src); err != nil {
		return nil, err
	}
	return &SoftmaxPolicy{
		Temperature: temperature,
		estimates:   NewRunningMeans(numArms, initial),
		rand:        src,
	}, nil
}

func (s *SoftmaxPolicy) Name() string {
	return fmt.Sprintf("Softmax(%g)", s.Temperature)
}

// Weights returns the selection probability of every arm
func (s *SoftmaxPolicy) Weights() []float64 {
	vals := s.estimates.Values()
	largest := vals[s.estimates.Max()]

	// Normalizing against the largest value keeps exp from overflowing
	sum := float64(0)
	for i := range vals {
		vals[i] = math.Exp((vals[i] - largest) / s.Temperature)
		sum += vals[i]
	}
	for i := range vals {
		vals[i] /= sum
	}
	return vals
}

func (s *SoftmaxPolicy) ChooseArm(_ *core.StepContext) int {
	weights := s.Weights()
	if ws, ok := s.rand.(core.WeightedSampler); ok {
		return ws.Weighted(weights)
	}

	r := s.rand.Uniform01()
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

func (s *SoftmaxPolicy) UpdateBelief(step *core.StepContext, arm, reward int) {
	s.estimates.Update(arm, reward, step.Pulls(arm))
}

func (s *SoftmaxPolicy) Estimates() []float64 {
	return s.estimates.Values()
}

type SoftmaxPolicyConstructor struct {
	Temperature float64
	Initial     float64
}

var _ core.PolicyConstructor = &SoftmaxPolicyConstructor{}

func NewSoftmaxPolicyConstructor(temperature, initial float64) *SoftmaxPolicyConstructor {
	return &SoftmaxPolicyConstructor{
		Temperature: temperature,
		Initial:     initial,
	}
}

func (s *SoftmaxPolicyConstructor) NewPolicy(numArms int, src core.RandomSource) (core.Policy, error) {
	p, err := NewSoftmaxPolicy(numArms, s.Temperature, s.Initial, src)
	if err != nil {
		return nil, err
	}
	return p, nil
}
