package common

import (
	"fmt"
	"math"
	"os"
	"path"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/zeu5/bandits/core"
	"github.com/zeu5/bandits/policies"
	"github.com/zeu5/bandits/util"
	"gopkg.in/yaml.v3"
)

type Flags struct {
	// ID identifies the invocation in the recorded config
	ID       string `yaml:"-" json:"id"`
	SavePath string `yaml:"save_path" json:"save_path" validate:"required"`

	EnvFlags    `yaml:",inline"`
	RunFlags    `yaml:",inline"`
	PolicyFlags `yaml:",inline"`

	Parallelism  int    `yaml:"parallelism" json:"parallelism" validate:"gte=1"`
	Debug        bool   `yaml:"debug" json:"debug"`
	RecordTraces bool   `yaml:"record_traces" json:"record_traces"`
	LogLevel     string `yaml:"log_level" json:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogJSON      bool   `yaml:"log_json" json:"log_json"`
	Progress     bool   `yaml:"progress" json:"progress"`
}

// DefaultNumArms is used when neither the arm count nor the probabilities are given
const DefaultNumArms = 10

type EnvFlags struct {
	// NumArms zero means len(Probabilities), or DefaultNumArms without probabilities
	NumArms int `yaml:"num_arms" json:"num_arms" validate:"gte=0"`
	// Probabilities fixes the arm probabilities. When empty every run draws them uniformly.
	Probabilities []float64 `yaml:"probabilities" json:"probabilities" validate:"omitempty,dive,gte=0,lte=1"`
}

type RunFlags struct {
	Runs   int    `yaml:"runs" json:"runs" validate:"gte=1"`
	Rounds int    `yaml:"rounds" json:"rounds" validate:"gte=0"`
	Seed   uint64 `yaml:"seed" json:"seed"`
}

type PolicyFlags struct {
	Epsilon         float64 `yaml:"epsilon" json:"epsilon" validate:"gte=0,lte=1"`
	Sigma           float64 `yaml:"sigma" json:"sigma" validate:"gte=0"`
	InitialEstimate float64 `yaml:"initial_estimate" json:"initial_estimate"`
	Prior           float64 `yaml:"prior" json:"prior" validate:"gt=0"`
	Temperature     float64 `yaml:"temperature" json:"temperature" validate:"gt=0"`
}

func DefaultFlags() *Flags {
	return &Flags{
		ID:       uuid.NewString(),
		SavePath: "results",
		EnvFlags: EnvFlags{
			NumArms:       0,
			Probabilities: nil,
		},
		RunFlags: RunFlags{
			Runs:   100,
			Rounds: 1000,
			Seed:   0,
		},
		PolicyFlags: PolicyFlags{
			Epsilon:         0.1,
			Sigma:           policies.DefaultSigma,
			InitialEstimate: policies.DefaultInitialEstimate,
			Prior:           policies.DefaultPriorCount,
			Temperature:     0.1,
		},
		Parallelism:  4,
		Debug:        false,
		RecordTraces: false,
		LogLevel:     "info",
		LogJSON:      false,
		Progress:     true,
	}
}

var validate = validator.New()

// Load overlays the YAML file at filePath on the flags. Keys missing from the
// file keep their current value.
func (f *Flags) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", filePath, err)
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return fmt.Errorf("%w: parsing config %s: %v", core.ErrInvalidArgument, filePath, err)
	}
	return nil
}

// Validate checks the flags and fills in a zero NumArms
func (f *Flags) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidArgument, err)
	}
	finite := []struct {
		name  string
		value float64
	}{
		{"epsilon", f.Epsilon},
		{"sigma", f.Sigma},
		{"initial_estimate", f.InitialEstimate},
		{"prior", f.Prior},
		{"temperature", f.Temperature},
	}
	for _, v := range finite {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", core.ErrInvalidArgument, v.name, v.value)
		}
	}

	if f.NumArms == 0 {
		f.NumArms = len(f.Probabilities)
		if f.NumArms == 0 {
			f.NumArms = DefaultNumArms
		}
	}
	if len(f.Probabilities) > 0 && len(f.Probabilities) != f.NumArms {
		return fmt.Errorf("%w: %d probabilities given for %d arms", core.ErrInvalidArgument, len(f.Probabilities), f.NumArms)
	}
	return nil
}

// Record writes the flags to <SavePath>/config.json
func (f *Flags) Record() error {
	return util.SaveJson(path.Join(f.SavePath, "config.json"), f)
}

func (f *Flags) RunConfig() *core.RunConfig {
	return &core.RunConfig{
		Runs:        f.Runs,
		Rounds:      f.Rounds,
		Seed:        f.Seed,
		Parallelism: f.Parallelism,
		RecordTrace: f.RecordTraces || f.Debug,
	}
}

func (f *Flags) Environment() *core.BernoulliEnvConfig {
	return &core.BernoulliEnvConfig{
		NumArms:       f.NumArms,
		Probabilities: util.CopyFloatSlice(f.Probabilities),
	}
}
