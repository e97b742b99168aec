package policies

import (
	"fmt"
	"math"

	"github.com/zeu5/bandits/core"
	"github.com/zeu5/bandits/util"
	"gonum.org/v1/gonum/stat/distuv"
)

// BayesUCBPolicy keeps a Beta posterior per arm and pulls the arm whose
// posterior mean plus sigma standard deviations is the largest.
type BayesUCBPolicy struct {
	sigma  float64
	counts *BetaCounts
}

var _ core.Policy = &BayesUCBPolicy{}
var _ core.BetaPosterior = &BayesUCBPolicy{}

func NewBayesUCBPolicy(numArms int, prior, sigma float64) (*BayesUCBPolicy, error) {
	if err := checkArms(numArms); err != nil {
		return nil, err
	}
	if err := checkPrior(prior); err != nil {
		return nil, err
	}
	if !(sigma >= 0) || math.IsInf(sigma, 1) {
		return nil, fmt.Errorf("%w: sigma must be non-negative and finite, got %v", core.ErrInvalidArgument, sigma)
	}
	return &BayesUCBPolicy{
		sigma:  sigma,
		counts: NewBetaCounts(numArms, prior),
	}, nil
}

func (b *BayesUCBPolicy) Name() string {
	return fmt.Sprintf("BayesUCB(%g)", b.sigma)
}

// Scores returns mean + sigma * stddev of every arm's posterior
func (b *BayesUCBPolicy) Scores() []float64 {
	scores := make([]float64, len(b.counts.successes))
	for arm := range scores {
		s, f := b.counts.Get(arm)
		posterior := distuv.Beta{Alpha: s, Beta: f}
		scores[arm] = posterior.Mean() + b.sigma*posterior.StdDev()
	}
	return scores
}

func (b *BayesUCBPolicy) ChooseArm(_ *core.StepContext) int {
	return util.ArgMax(b.Scores())
}

func (b *BayesUCBPolicy) UpdateBelief(_ *core.StepContext, arm, reward int) {
	b.counts.Update(arm, reward)
}

func (b *BayesUCBPolicy) Posterior() ([]float64, []float64) {
	return b.counts.Values()
}

// ThompsonPolicy draws one sample from every arm's Beta posterior each round
// and pulls the arm with the largest sample.
type ThompsonPolicy struct {
	counts *BetaCounts
	rand   core.RandomSource
}

var _ core.Policy = &ThompsonPolicy{}
var _ core.BetaPosterior = &ThompsonPolicy{}

func NewThompsonPolicy(numArms int, prior float64, src core.RandomSource) (*ThompsonPolicy, error) {
	if err := checkArms(numArms); err != nil {
		return nil, err
	}
	if err := checkPrior(prior); err != nil {
		return nil, err
	}
	if err := checkSource(src); err != nil {
		return nil, err
	}
	return &ThompsonPolicy{
		counts: NewBetaCounts(numArms, prior),
		rand:   src,
	}, nil
}

func (t *ThompsonPolicy) Name() string { return "Thompson" }

func (t *ThompsonPolicy) ChooseArm(_ *core.StepContext) int {
	samples := make([]float64, len(t.counts.successes))
	for arm := range samples {
		s, f := t.counts.Get(arm)
		samples[arm] = t.rand.BetaSample(s, f)
	}
	return util.ArgMax(samples)
}

func (t *ThompsonPolicy) UpdateBelief(_ *core.StepContext, arm, reward int) {
	t.counts.Update(arm, reward)
}

func (t *ThompsonPolicy) Posterior() ([]float64, []float64) {
	return t.counts.Values()
}

type BayesUCBPolicyConstructor struct {
	Prior float64
	Sigma float64
}

var _ core.PolicyConstructor = &BayesUCBPolicyConstructor{}

func NewBayesUCBPolicyConstructor(prior, sigma float64) *BayesUCBPolicyConstructor {
	return &BayesUCBPolicyConstructor{
		Prior: prior,
		Sigma: sigma,
	}
}

func (b *BayesUCBPolicyConstructor) NewPolicy(numArms int, _ core.RandomSource) (core.Policy, error) {
	p, err := NewBayesUCBPolicy(numArms, b.Prior, b.Sigma)
	if err != nil {
		return nil, err
	}
	return p, nil
}

type ThompsonPolicyConstructor struct {
	Prior float64
}

var _ core.PolicyConstructor = &ThompsonPolicyConstructor{}

func NewThompsonPolicyConstructor(prior float64) *ThompsonPolicyConstructor {
	return &ThompsonPolicyConstructor{
		Prior: prior,
	}
}

func (t *ThompsonPolicyConstructor) NewPolicy(numArms int, src core.RandomSource) (core.Policy, error) {
	p, err := NewThompsonPolicy(numArms, t.Prior, src)
	if err != nil {
		return nil, err
	}
	return p, nil
}
