package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/zeu5/bandits/experiments/bernoulli"
)

func RunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <policy>",
		Short: "Run a single policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := interruptContext()
			defer stop()

			logger := slog.Default().With(slog.String("id", flags.ID))
			cmp, err := bernoulli.PrepareSingle(flags, args[0], logger)
			if err != nil {
				return err
			}
			if err := flags.Record(); err != nil {
				return err
			}

			results, err := cmp.Run(ctx, flags.RunConfig(), progressPrinter())
			logSummary(logger, results)
			if err != nil {
				return err
			}
			for _, result := range results {
				if result.IsError() {
					return result.Error
				}
			}
			return nil
		},
	}

	return cmd
}
