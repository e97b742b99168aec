package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvironmentValidation(t *testing.T) {
	src := NewRandomSource(1)

	tests := []struct {
		name    string
		numArms int
		probs   []float64
		src     RandomSource
	}{
		{"zero arms", 0, nil, src},
		{"negative arms", -2, nil, src},
		{"nil source", 2, []float64{0.1, 0.2}, nil},
		{"length mismatch", 3, []float64{0.1, 0.2}, src},
		{"above one", 2, []float64{0.1, 1.2}, src},
		{"below zero", 2, []float64{-0.1, 0.2}, src},
		{"nan", 2, []float64{math.NaN(), 0.2}, src},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := NewEnvironment(tt.numArms, tt.probs, tt.src)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Nil(t, env)
		})
	}
}

func TestEnvironmentBest(t *testing.T) {
	env, err := NewEnvironment(4, []float64{0.2, 0.9, 0.4, 0.9}, NewRandomSource(1))
	require.NoError(t, err)

	assert.Equal(t, 4, env.NumArms())
	assert.Equal(t, 0.9, env.BestProbability())
	assert.Equal(t, 1, env.BestArm())
	assert.Equal(t, 0.4, env.Probability(2))
}

func TestEnvironmentCopiesProbabilities(t *testing.T) {
	probs := []float64{0.3, 0.5}
	env, err := NewEnvironment(2, probs, NewRandomSource(1))
	require.NoError(t, err)

	probs[0] = 1
	assert.Equal(t, 0.3, env.Probability(0))

	truth := env.TrueProbabilities()
	truth[1] = 0
	assert.Equal(t, 0.5, env.Probability(1))
}

func TestEnvironmentRandomProbabilities(t *testing.T) {
	a, err := NewEnvironment(5, nil, NewRandomSource(9))
	require.NoError(t, err)
	b, err := NewEnvironment(5, nil, NewRandomSource(9))
	require.NoError(t, err)

	assert.Equal(t, a.TrueProbabilities(), b.TrueProbabilities())
	for _, p := range a.TrueProbabilities() {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.Less(t, p, 1.0)
	}
}

func TestEnvironmentReward(t *testing.T) {
	env, err := NewEnvironment(3, []float64{0.3, 0.5, 0.7}, NewRandomSource(2024))
	require.NoError(t, err)

	successes := 0
	n := 10000
	for i := 0; i < n; i++ {
		r, err := env.Reward(2)
		require.NoError(t, err)
		successes += r
	}
	assert.InDelta(t, 0.7, float64(successes)/float64(n), 0.02)

	_, err = env.Reward(3)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = env.Reward(-1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBernoulliEnvConfig(t *testing.T) {
	fixed := &BernoulliEnvConfig{NumArms: 2, Probabilities: []float64{0.1, 0.6}}
	env, err := fixed.NewEnvironment(NewRandomSource(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.6}, env.TrueProbabilities())

	random := &BernoulliEnvConfig{NumArms: 3}
	env, err = random.NewEnvironment(NewRandomSource(1))
	require.NoError(t, err)
	assert.Equal(t, 3, env.NumArms())

	_, err = (&BernoulliEnvConfig{NumArms: 0}).NewEnvironment(NewRandomSource(1))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
