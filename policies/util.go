package policies

import (
	"fmt"
	"math"

	"github.com/zeu5/bandits/core"
	"github.com/zeu5/bandits/util"
)

const (
	// DefaultInitialEstimate is the optimistic starting estimate of every arm
	DefaultInitialEstimate = 1.0
	// DefaultPriorCount is the starting success and failure count of every arm
	DefaultPriorCount = 1.0
	// DefaultSigma is the number of posterior standard deviations added by Bayes-UCB
	DefaultSigma = 3.0
)

func checkArms(numArms int) error {
	if numArms <= 0 {
		return fmt.Errorf("%w: number of arms must be positive, got %d", core.ErrInvalidArgument, numArms)
	}
	return nil
}

func checkInitial(initial float64) error {
	if math.IsNaN(initial) || math.IsInf(initial, 0) {
		return fmt.Errorf("%w: initial estimate must be finite, got %v", core.ErrInvalidArgument, initial)
	}
	return nil
}

func checkSource(src core.RandomSource) error {
	if src == nil {
		return fmt.Errorf("%w: nil random source", core.ErrInvalidArgument)
	}
	return nil
}

// RunningMeans keeps an incremental sample mean per arm
type RunningMeans struct {
	initial float64
	values  []float64
}

func NewRunningMeans(numArms int, initial float64) *RunningMeans {
	m := &RunningMeans{
		initial: initial,
		values:  make([]float64, numArms),
	}
	m.reset()
	return m
}

// Update folds the reward into the arm's mean. count is the arm's pull count
// including the current pull, so it is always positive.
func (m *RunningMeans) Update(arm, reward, count int) {
	m.values[arm] += (float64(reward) - m.values[arm]) / float64(count)
}

func (m *RunningMeans) Get(arm int) float64 {
	return m.values[arm]
}

func (m *RunningMeans) Max() int {
	return util.ArgMax(m.values)
}

func (m *RunningMeans) Values() []float64 {
	return util.CopyFloatSlice(m.values)
}

func (m *RunningMeans) reset() {
	for i := range m.values {
		m.values[i] = m.initial
	}
}

// BetaCounts keeps Beta(successes, failures) shape parameters per arm
type BetaCounts struct {
	prior     float64
	successes []float64
	failures  []float64
}

func NewBetaCounts(numArms int, prior float64) *BetaCounts {
	b := &BetaCounts{
		prior:     prior,
		successes: make([]float64, numArms),
		failures:  make([]float64, numArms),
	}
	b.reset()
	return b
}

func (b *BetaCounts) Update(arm, reward int) {
	b.successes[arm] += float64(reward)
	b.failures[arm] += float64(1 - reward)
}

func (b *BetaCounts) Get(arm int) (float64, float64) {
	return b.successes[arm], b.failures[arm]
}

func (b *BetaCounts) Values() ([]float64, []float64) {
	return util.CopyFloatSlice(b.successes), util.CopyFloatSlice(b.failures)
}

func (b *BetaCounts) reset() {
	for i := range b.successes {
		b.successes[i] = b.prior
		b.failures[i] = b.prior
	}
}

func checkPrior(prior float64) error {
	if !(prior > 0) || math.IsInf(prior, 1) {
		return fmt.Errorf("%w: prior count must be positive and finite, got %v", core.ErrInvalidArgument, prior)
	}
	return nil
}
