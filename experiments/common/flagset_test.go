package common

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/bandits/core"
)

func TestDefaultFlagsValid(t *testing.T) {
	flags := DefaultFlags()
	require.NoError(t, flags.Validate())
	assert.Equal(t, DefaultNumArms, flags.NumArms)

	_, err := uuid.Parse(flags.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, DefaultFlags().ID, flags.ID)
}

func TestFlagsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Flags)
	}{
		{"no save path", func(f *Flags) { f.SavePath = "" }},
		{"negative arms", func(f *Flags) { f.NumArms = -1 }},
		{"probability out of range", func(f *Flags) { f.NumArms = 2; f.Probabilities = []float64{0.5, 1.5} }},
		{"probability count", func(f *Flags) { f.NumArms = 3; f.Probabilities = []float64{0.5, 0.5} }},
		{"no runs", func(f *Flags) { f.Runs = 0 }},
		{"negative rounds", func(f *Flags) { f.Rounds = -1 }},
		{"no parallelism", func(f *Flags) { f.Parallelism = 0 }},
		{"epsilon", func(f *Flags) { f.Epsilon = 2 }},
		{"sigma", func(f *Flags) { f.Sigma = -1 }},
		{"prior", func(f *Flags) { f.Prior = 0 }},
		{"temperature", func(f *Flags) { f.Temperature = 0 }},
		{"log level", func(f *Flags) { f.LogLevel = "loud" }},
		{"infinite initial estimate", func(f *Flags) { f.InitialEstimate = math.Inf(1) }},
		{"nan initial estimate", func(f *Flags) { f.InitialEstimate = math.NaN() }},
		{"infinite sigma", func(f *Flags) { f.Sigma = math.Inf(1) }},
		{"infinite prior", func(f *Flags) { f.Prior = math.Inf(1) }},
		{"infinite temperature", func(f *Flags) { f.Temperature = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := DefaultFlags()
			tt.modify(flags)
			assert.ErrorIs(t, flags.Validate(), core.ErrInvalidArgument)
		})
	}

	flags := DefaultFlags()
	flags.NumArms = 2
	flags.Probabilities = []float64{0, 1}
	assert.NoError(t, flags.Validate())
}

func TestFlagsNumArmsFromProbabilities(t *testing.T) {
	flags := DefaultFlags()
	flags.Probabilities = []float64{0.3, 0.5, 0.7}
	require.NoError(t, flags.Validate())
	assert.Equal(t, 3, flags.NumArms)

	// an explicit count must still agree
	flags = DefaultFlags()
	flags.NumArms = 4
	flags.Probabilities = []float64{0.3, 0.5, 0.7}
	assert.ErrorIs(t, flags.Validate(), core.ErrInvalidArgument)
}

func TestFlagsLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	config := `
save_path: out
num_arms: 3
probabilities: [0.3, 0.5, 0.7]
runs: 7
seed: 42
epsilon: 0.2
log_level: debug
`
	require.NoError(t, os.WriteFile(file, []byte(config), 0644))

	flags := DefaultFlags()
	require.NoError(t, flags.Load(file))
	require.NoError(t, flags.Validate())

	assert.Equal(t, "out", flags.SavePath)
	assert.Equal(t, 3, flags.NumArms)
	assert.Equal(t, []float64{0.3, 0.5, 0.7}, flags.Probabilities)
	assert.Equal(t, 7, flags.Runs)
	assert.Equal(t, uint64(42), flags.Seed)
	assert.Equal(t, 0.2, flags.Epsilon)
	assert.Equal(t, "debug", flags.LogLevel)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultFlags().Rounds, flags.Rounds)
	assert.Equal(t, DefaultFlags().Sigma, flags.Sigma)
}

func TestFlagsLoadErrors(t *testing.T) {
	dir := t.TempDir()

	err := DefaultFlags().Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("runs: [1, 2"), 0644))
	assert.ErrorIs(t, DefaultFlags().Load(bad), core.ErrInvalidArgument)
}

func TestFlagsRecord(t *testing.T) {
	flags := DefaultFlags()
	flags.SavePath = filepath.Join(t.TempDir(), "results")
	require.NoError(t, flags.Validate())
	require.NoError(t, flags.Record())

	data, err := os.ReadFile(filepath.Join(flags.SavePath, "config.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), flags.ID)
	assert.Contains(t, string(data), `"num_arms": 10`)
}

func TestFlagsRunConfig(t *testing.T) {
	flags := DefaultFlags()
	flags.Runs = 3
	flags.Rounds = 50
	flags.Seed = 9
	flags.Parallelism = 2

	rc := flags.RunConfig()
	assert.Equal(t, &core.RunConfig{Runs: 3, Rounds: 50, Seed: 9, Parallelism: 2}, rc)

	flags.Debug = true
	assert.True(t, flags.RunConfig().RecordTrace)
}

func TestFlagsEnvironment(t *testing.T) {
	flags := DefaultFlags()
	flags.NumArms = 2
	flags.Probabilities = []float64{0.1, 0.9}

	env, err := flags.Environment().NewEnvironment(core.NewRandomSource(1))
	require.NoError(t, err)
	assert.Equal(t, 1, env.BestArm())

	flags.Probabilities = nil
	env, err = flags.Environment().NewEnvironment(core.NewRandomSource(1))
	require.NoError(t, err)
	assert.Equal(t, 2, env.NumArms())
}
