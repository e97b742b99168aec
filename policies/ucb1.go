package policies

import (
	"math"

	"github.com/zeu5/bandits/core"
	"github.com/zeu5/bandits/util"
)

// UCB1Policy pulls the arm maximising
//
//	estimate[a] + sqrt(2 ln(t) / (pulls[a] + 1))
//
// where t is the 1-indexed round about to be played. The +1 keeps the bonus of
// an unpulled arm finite, so unpulled arms are not forced first.
type UCB1Policy struct {
	estimates *RunningMeans
}

var _ core.Policy = &UCB1Policy{}
var _ core.MeanEstimator = &UCB1Policy{}

func NewUCB1Policy(numArms int, initial float64) (*UCB1Policy, error) {
	if err := checkArms(numArms); err != nil {
		return nil, err
	}
	if err := checkInitial(initial); err != nil {
		return nil, err
	}
	return &UCB1Policy{
		estimates: NewRunningMeans(numArms, initial),
	}, nil
}

func (u *UCB1Policy) Name() string { return "UCB1" }

// Scores returns the upper confidence bound of every arm for the step's round
func (u *UCB1Policy) Scores(step *core.StepContext) []float64 {
	logT := math.Log(float64(step.Round))
	scores := make([]float64, step.NumArms())
	for arm := range scores {
		bonus := math.Sqrt(2 * logT / float64(step.Pulls(arm)+1))
		scores[arm] = u.estimates.Get(arm) + bonus
	}
	return scores
}

func (u *UCB1Policy) ChooseArm(step *core.StepContext) int {
	return util.ArgMax(u.Scores(step))
}

func (u *UCB1Policy) UpdateBelief(step *core.StepContext, arm, reward int) {
	u.estimates.Update(arm, reward, step.Pulls(arm))
}

func (u *UCB1Policy) Estimates() []float64 {
	return u.estimates.Values()
}

type UCB1PolicyConstructor struct {
	Initial float64
}

var _ core.PolicyConstructor = &UCB1PolicyConstructor{}

func NewUCB1PolicyConstructor(initial float64) *UCB1PolicyConstructor {
	return &UCB1PolicyConstructor{
		Initial: initial,
	}
}

func (u *UCB1PolicyConstructor) NewPolicy(numArms int, _ core.RandomSource) (core.Policy, error) {
	p, err := NewUCB1Policy(numArms, u.Initial)
	if err != nil {
		return nil, err
	}
	return p, nil
}
