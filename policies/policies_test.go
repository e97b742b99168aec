package policies

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/bandits/core"
)

var testProbabilities = []float64{0.3, 0.5, 0.7}

type namedConstructor struct {
	name        string
	constructor core.PolicyConstructor
}

func allConstructors() []namedConstructor {
	return []namedConstructor{
		{"Random", &RandomPolicyConstructor{}},
		{"Uniform", NewUniformPolicyConstructor(DefaultInitialEstimate)},
		{"EpsilonGreedy", NewEpsilonGreedyPolicyConstructor(0.1, DefaultInitialEstimate)},
		{"Softmax", NewSoftmaxPolicyConstructor(0.1, DefaultInitialEstimate)},
		{"UCB1", NewUCB1PolicyConstructor(DefaultInitialEstimate)},
		{"BayesUCB", NewBayesUCBPolicyConstructor(DefaultPriorCount, DefaultSigma)},
		{"Thompson", NewThompsonPolicyConstructor(DefaultPriorCount)},
	}
}

// newAgent builds the environment before the policy from a single source,
// the way the comparison runner does.
func newAgent(t *testing.T, c core.PolicyConstructor, probs []float64, seed uint64, trace bool) *core.Agent {
	t.Helper()
	src := core.NewRandomSource(seed)
	env, err := core.NewEnvironment(len(probs), probs, src)
	require.NoError(t, err)
	policy, err := c.NewPolicy(env.NumArms(), src)
	require.NoError(t, err)
	agent, err := core.NewAgentWithConfig(env, policy, &core.AgentConfig{RecordTrace: trace})
	require.NoError(t, err)
	return agent
}

func sum(s []int) int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

func belief(p core.Policy) []float64 {
	switch b := p.(type) {
	case core.MeanEstimator:
		return b.Estimates()
	case core.BetaPosterior:
		s, f := b.Posterior()
		return append(s, f...)
	}
	return nil
}

func TestPullCountsSumToRounds(t *testing.T) {
	for _, c := range allConstructors() {
		t.Run(c.name, func(t *testing.T) {
			for _, n := range []int{0, 1, 7, 500} {
				agent := newAgent(t, c.constructor, testProbabilities, 11, false)
				require.NoError(t, agent.Run(n))
				assert.Equal(t, n, sum(agent.PullCounts()))
				assert.Len(t, agent.RegretHistory(), n+1)
			}
		})
	}
}

func TestRegretMonotone(t *testing.T) {
	for _, c := range allConstructors() {
		t.Run(c.name, func(t *testing.T) {
			agent := newAgent(t, c.constructor, testProbabilities, 5, false)
			require.NoError(t, agent.Run(300))

			history := agent.RegretHistory()
			assert.Equal(t, 0.0, history[0])
			for i := 1; i < len(history); i++ {
				assert.GreaterOrEqual(t, history[i], history[i-1])
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	for _, c := range allConstructors() {
		t.Run(c.name, func(t *testing.T) {
			a := newAgent(t, c.constructor, testProbabilities, 99, true)
			b := newAgent(t, c.constructor, testProbabilities, 99, true)

			for round := 0; round < 200; round++ {
				require.NoError(t, a.Step())
				require.NoError(t, b.Step())
				require.Equal(t, belief(a.Policy()), belief(b.Policy()), "round %d", round+1)
			}
			assert.Equal(t, a.PullCounts(), b.PullCounts())
			assert.Equal(t, a.RegretHistory(), b.RegretHistory())
			for i := 0; i < a.Trace().Len(); i++ {
				assert.Equal(t, *a.Trace().Step(i), *b.Trace().Step(i))
			}
		})
	}
}

func TestConstructorValidation(t *testing.T) {
	src := core.NewRandomSource(1)
	tests := []struct {
		name string
		new  func() (core.Policy, error)
	}{
		{"random arms", func() (core.Policy, error) { return NewRandomPolicy(0, src) }},
		{"random source", func() (core.Policy, error) { return NewRandomPolicy(2, nil) }},
		{"uniform arms", func() (core.Policy, error) { return NewUniformPolicy(-1, 1) }},
		{"uniform infinite initial", func() (core.Policy, error) { return NewUniformPolicy(2, math.Inf(1)) }},
		{"epsilon arms", func() (core.Policy, error) { return NewEpsilonGreedyPolicy(0, 0.1, 1, src) }},
		{"epsilon negative", func() (core.Policy, error) { return NewEpsilonGreedyPolicy(2, -0.1, 1, src) }},
		{"epsilon above one", func() (core.Policy, error) { return NewEpsilonGreedyPolicy(2, 1.5, 1, src) }},
		{"epsilon source", func() (core.Policy, error) { return NewEpsilonGreedyPolicy(2, 0.1, 1, nil) }},
		{"epsilon nan", func() (core.Policy, error) { return NewEpsilonGreedyPolicy(2, math.NaN(), 1, src) }},
		{"epsilon nan initial", func() (core.Policy, error) { return NewEpsilonGreedyPolicy(2, 0.1, math.NaN(), src) }},
		{"softmax arms", func() (core.Policy, error) { return NewSoftmaxPolicy(0, 0.1, 1, src) }},
		{"softmax zero temperature", func() (core.Policy, error) { return NewSoftmaxPolicy(2, 0, 1, src) }},
		{"softmax source", func() (core.Policy, error) { return NewSoftmaxPolicy(2, 0.1, 1, nil) }},
		{"softmax infinite temperature", func() (core.Policy, error) { return NewSoftmaxPolicy(2, math.Inf(1), 1, src) }},
		{"softmax negative infinite initial", func() (core.Policy, error) { return NewSoftmaxPolicy(2, 0.1, math.Inf(-1), src) }},
		{"ucb1 arms", func() (core.Policy, error) { return NewUCB1Policy(0, 1) }},
		{"ucb1 infinite initial", func() (core.Policy, error) { return NewUCB1Policy(3, math.Inf(1)) }},
		{"ucb1 nan initial", func() (core.Policy, error) { return NewUCB1Policy(3, math.NaN()) }},
		{"bayes arms", func() (core.Policy, error) { return NewBayesUCBPolicy(0, 1, 3) }},
		{"bayes prior", func() (core.Policy, error) { return NewBayesUCBPolicy(2, 0, 3) }},
		{"bayes sigma", func() (core.Policy, error) { return NewBayesUCBPolicy(2, 1, -1) }},
		{"bayes infinite prior", func() (core.Policy, error) { return NewBayesUCBPolicy(3, math.Inf(1), 3) }},
		{"bayes nan prior", func() (core.Policy, error) { return NewBayesUCBPolicy(3, math.NaN(), 3) }},
		{"bayes infinite sigma", func() (core.Policy, error) { return NewBayesUCBPolicy(3, 1, math.Inf(1)) }},
		{"bayes nan sigma", func() (core.Policy, error) { return NewBayesUCBPolicy(3, 1, math.NaN()) }},
		{"thompson arms", func() (core.Policy, error) { return NewThompsonPolicy(0, 1, src) }},
		{"thompson prior", func() (core.Policy, error) { return NewThompsonPolicy(2, -1, src) }},
		{"thompson source", func() (core.Policy, error) { return NewThompsonPolicy(2, 1, nil) }},
		{"thompson infinite prior", func() (core.Policy, error) { return NewThompsonPolicy(2, math.Inf(1), src) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.new()
			assert.ErrorIs(t, err, core.ErrInvalidArgument)
		})
	}

	for _, c := range allConstructors() {
		t.Run(c.name+" constructor", func(t *testing.T) {
			_, err := c.constructor.NewPolicy(0, src)
			assert.ErrorIs(t, err, core.ErrInvalidArgument)
		})
	}
}

func TestRandomPolicyCoversArms(t *testing.T) {
	agent := newAgent(t, &RandomPolicyConstructor{}, testProbabilities, 3, false)
	require.NoError(t, agent.Run(3000))
	for _, c := range agent.PullCounts() {
		assert.InDelta(t, 1000, c, 150)
	}
}

func TestRunningMeans(t *testing.T) {
	m := NewRunningMeans(2, 1.0)
	assert.Equal(t, []float64{1, 1}, m.Values())

	m.Update(0, 0, 1)
	m.Update(0, 1, 2)
	m.Update(0, 1, 3)
	assert.InDelta(t, 2.0/3.0, m.Get(0), 1e-12)
	assert.Equal(t, 1, m.Max())

	m.reset()
	assert.Equal(t, []float64{1, 1}, m.Values())
}

func TestBetaCounts(t *testing.T) {
	b := NewBetaCounts(2, 1)
	b.Update(1, 1)
	b.Update(1, 0)
	b.Update(1, 1)

	s, f := b.Get(1)
	assert.Equal(t, 3.0, s)
	assert.Equal(t, 2.0, f)

	b.reset()
	succ, fail := b.Values()
	assert.Equal(t, []float64{1, 1}, succ)
	assert.Equal(t, []float64{1, 1}, fail)
}
