package policies

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/bandits/core"
)

func TestSoftmaxWeights(t *testing.T) {
	policy, err := NewSoftmaxPolicy(3, 0.5, 0, core.NewRandomSource(1))
	require.NoError(t, err)

	step := core.NewStepContext(1, []int{1, 1, 1})
	policy.UpdateBelief(step, 0, 1)
	policy.UpdateBelief(step, 1, 0)
	policy.UpdateBelief(step, 2, 1)

	weights := policy.Weights()
	total := 0.0
	for _, w := range weights {
		total += w
	}
	assert.InDelta(t, 1.0, total, 1e-12)

	// estimates are [1, 0, 1]
	z := 2 + math.Exp(-1/0.5)
	assert.InDelta(t, 1/z, weights[0], 1e-12)
	assert.InDelta(t, math.Exp(-2)/z, weights[1], 1e-12)
	assert.InDelta(t, weights[0], weights[2], 1e-12)
}

func TestSoftmaxLargeEstimatesDoNotOverflow(t *testing.T) {
	policy, err := NewSoftmaxPolicy(2, 1e-6, 1, core.NewRandomSource(1))
	require.NoError(t, err)
	for _, w := range policy.Weights() {
		assert.False(t, math.IsNaN(w))
	}
}

func TestSoftmaxSamplers(t *testing.T) {
	sources := []struct {
		name string
		src  core.RandomSource
	}{
		{"weighted", core.NewRandomSource(3)},
		{"fallback", &countingSource{RandomSource: core.NewRandomSource(3)}},
	}
	for _, s := range sources {
		t.Run(s.name, func(t *testing.T) {
			policy, err := NewSoftmaxPolicy(3, 0.25, 0, s.src)
			require.NoError(t, err)
			step := core.NewStepContext(1, []int{1, 1, 1})
			policy.UpdateBelief(step, 2, 1)

			weights := policy.Weights()
			counts := make([]int, 3)
			n := 20000
			for i := 0; i < n; i++ {
				arm := policy.ChooseArm(step)
				require.GreaterOrEqual(t, arm, 0)
				require.Less(t, arm, 3)
				counts[arm]++
			}
			for arm, w := range weights {
				assert.InDelta(t, w, float64(counts[arm])/float64(n), 0.02)
			}
		})
	}
}

func TestSoftmaxExploits(t *testing.T) {
	agent := newAgent(t, NewSoftmaxPolicyConstructor(0.2, DefaultInitialEstimate), testProbabilities, 12, false)
	require.NoError(t, agent.Run(5000))

	pulls := agent.PullCounts()
	assert.Greater(t, pulls[2], pulls[0])
	assert.Greater(t, pulls[2], pulls[1])
	assert.Equal(t, "Softmax(0.2)", agent.Policy().Name())
}
