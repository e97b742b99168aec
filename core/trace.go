package core

// Step is a single played round
type Step struct {
	Round  int
	Arm    int
	Reward int
	// Regret is the instantaneous regret of the round
	Regret float64
}

type Trace struct {
	steps []*Step
}

func NewTrace() *Trace {
	return &Trace{
		steps: make([]*Step, 0),
	}
}

func (t *Trace) AddStep(s *Step) {
	t.steps = append(t.steps, s)
}

func (t *Trace) Step(i int) *Step {
	return t.steps[i]
}

func (t *Trace) Len() int {
	return len(t.steps)
}

func (t *Trace) Last() *Step {
	if len(t.steps) == 0 {
		return nil
	}
	return t.steps[len(t.steps)-1]
}
