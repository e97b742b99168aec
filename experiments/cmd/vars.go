package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zeu5/bandits/experiments/common"
)

var (
	flags      *common.Flags = common.DefaultFlags()
	cliFlags   *common.Flags = common.DefaultFlags()
	configPath string
)

func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file, command line flags take precedence")
	cmd.PersistentFlags().StringVar(&cliFlags.SavePath, "save-path", cliFlags.SavePath, "Path to save results")

	cmd.PersistentFlags().IntVar(&cliFlags.NumArms, "num-arms", cliFlags.NumArms, "Number of arms, defaults to the number of probabilities or 10")
	cmd.PersistentFlags().Float64SliceVar(&cliFlags.Probabilities, "probabilities", cliFlags.Probabilities, "Success probability of every arm, random when empty")

	cmd.PersistentFlags().IntVar(&cliFlags.Runs, "runs", cliFlags.Runs, "Number of runs per policy")
	cmd.PersistentFlags().IntVar(&cliFlags.Rounds, "rounds", cliFlags.Rounds, "Number of rounds per run")
	cmd.PersistentFlags().Uint64Var(&cliFlags.Seed, "seed", cliFlags.Seed, "Seed of the first run")
	cmd.PersistentFlags().IntVar(&cliFlags.Parallelism, "parallelism", cliFlags.Parallelism, "Number of policies evaluated in parallel")

	cmd.PersistentFlags().Float64Var(&cliFlags.Epsilon, "epsilon", cliFlags.Epsilon, "Exploration rate of epsilon greedy")
	cmd.PersistentFlags().Float64Var(&cliFlags.Sigma, "sigma", cliFlags.Sigma, "Number of standard deviations added by Bayes-UCB")
	cmd.PersistentFlags().Float64Var(&cliFlags.InitialEstimate, "initial-estimate", cliFlags.InitialEstimate, "Initial mean estimate of every arm")
	cmd.PersistentFlags().Float64Var(&cliFlags.Prior, "prior", cliFlags.Prior, "Initial Beta success and failure counts")
	cmd.PersistentFlags().Float64Var(&cliFlags.Temperature, "temperature", cliFlags.Temperature, "Softmax temperature")

	cmd.PersistentFlags().BoolVar(&cliFlags.Debug, "debug", cliFlags.Debug, "Write the traces of the last runs")
	cmd.PersistentFlags().BoolVar(&cliFlags.RecordTraces, "record-traces", cliFlags.RecordTraces, "Record per round traces and the optimal arm rate")
	cmd.PersistentFlags().StringVar(&cliFlags.LogLevel, "log-level", cliFlags.LogLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&cliFlags.LogJSON, "log-json", cliFlags.LogJSON, "Log in JSON")
	cmd.PersistentFlags().BoolVar(&cliFlags.Progress, "progress", cliFlags.Progress, "Show live progress when attached to a terminal")
}

// UpdateFlags builds the effective flags: defaults, then the config file,
// then every flag set explicitly on the command line.
func UpdateFlags(cmd *cobra.Command) error {
	id := flags.ID
	flags = common.DefaultFlags()
	flags.ID = id
	if configPath != "" {
		if err := flags.Load(configPath); err != nil {
			return err
		}
	}

	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("save-path", func() { flags.SavePath = cliFlags.SavePath })
	set("num-arms", func() { flags.NumArms = cliFlags.NumArms })
	set("probabilities", func() { flags.Probabilities = cliFlags.Probabilities })
	set("runs", func() { flags.Runs = cliFlags.Runs })
	set("rounds", func() { flags.Rounds = cliFlags.Rounds })
	set("seed", func() { flags.Seed = cliFlags.Seed })
	set("parallelism", func() { flags.Parallelism = cliFlags.Parallelism })
	set("epsilon", func() { flags.Epsilon = cliFlags.Epsilon })
	set("sigma", func() { flags.Sigma = cliFlags.Sigma })
	set("initial-estimate", func() { flags.InitialEstimate = cliFlags.InitialEstimate })
	set("prior", func() { flags.Prior = cliFlags.Prior })
	set("temperature", func() { flags.Temperature = cliFlags.Temperature })
	set("debug", func() { flags.Debug = cliFlags.Debug })
	set("record-traces", func() { flags.RecordTraces = cliFlags.RecordTraces })
	set("log-level", func() { flags.LogLevel = cliFlags.LogLevel })
	set("log-json", func() { flags.LogJSON = cliFlags.LogJSON })
	set("progress", func() { flags.Progress = cliFlags.Progress })

	return flags.Validate()
}
