package cmd

import (
	"log/slog"
	"sort"

	"github.com/spf13/cobra"
	"github.com/zeu5/bandits/analysis"
	"github.com/zeu5/bandits/core"
	"github.com/zeu5/bandits/experiments/bernoulli"
)

func CompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare all policies on the same environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := interruptContext()
			defer stop()

			if err := flags.Record(); err != nil {
				return err
			}
			logger := slog.Default().With(slog.String("id", flags.ID))
			cmp := bernoulli.PrepareComparison(flags, logger)

			results, err := cmp.Run(ctx, flags.RunConfig(), progressPrinter())
			logSummary(logger, results)
			return err
		},
	}

	return cmd
}

func logSummary(logger *slog.Logger, results map[string]*core.ExperimentResult) {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		result := results[name]
		attrs := []any{
			slog.String("policy", name),
			slog.Int("completed_runs", result.CompletedRuns),
			slog.Int("rounds", result.TotalRounds),
		}
		if result.IsError() {
			logger.Error("policy failed", append(attrs, slog.String("error", result.Error.Error()))...)
			continue
		}
		if ds, ok := result.Datasets[bernoulli.RegretAnalysis].(*analysis.RegretDataset); ok {
			attrs = append(attrs,
				slog.Float64("mean_regret", ds.FinalMean),
				slog.Float64("regret_stddev", ds.FinalStdDev),
			)
		}
		if ds, ok := result.Datasets[bernoulli.PullsAnalysis].(*analysis.PullsDataset); ok {
			attrs = append(attrs,
				slog.Any("mean_pulls", ds.MeanPulls),
				slog.Float64("best_arm_share", ds.BestArmShare),
			)
		}
		if ds, ok := result.Datasets[bernoulli.BeliefsAnalysis].(*analysis.BeliefDataset); ok && ds.MeanBelief != nil {
			attrs = append(attrs,
				slog.Any("mean_belief", ds.MeanBelief),
				slog.Float64("belief_error", ds.MeanAbsError),
			)
		}
		logger.Info("policy summary", attrs...)
	}
}
