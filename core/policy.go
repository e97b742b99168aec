package core

// Policy decides which arm to pull and maintains its own belief about the arms.
// The belief state must be derived only from the rewards passed to UpdateBelief
// and the pull counts visible through the StepContext.
type Policy interface {
	Name() string
	// ChooseArm returns the arm to pull in the round described by the context.
	// It must not change the belief state.
	ChooseArm(*StepContext) int
	// UpdateBelief is called once per round, for the chosen arm only, after
	// the pull count of that arm has been incremented.
	UpdateBelief(*StepContext, int, int)
}

type PolicyConstructor interface {
	NewPolicy(numArms int, src RandomSource) (Policy, error)
}

// MeanEstimator is implemented by policies that keep a running mean estimate per arm.
type MeanEstimator interface {
	Estimates() []float64
}

// BetaPosterior is implemented by policies that keep Beta(successes, failures)
// shape parameters per arm.
type BetaPosterior interface {
	Posterior() ([]float64, []float64)
}

// StepContext describes the round about to be played (or being updated).
// Round is 1-indexed.
type StepContext struct {
	Round int

	pulls []int
}

func NewStepContext(round int, pulls []int) *StepContext {
	return &StepContext{
		Round: round,
		pulls: pulls,
	}
}

// Pulls returns how many times the arm has been pulled so far
func (s *StepContext) Pulls(arm int) int {
	return s.pulls[arm]
}

func (s *StepContext) NumArms() int {
	return len(s.pulls)
}
