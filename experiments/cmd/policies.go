package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeu5/bandits/experiments/bernoulli"
)

func PoliciesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List the available policies",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range bernoulli.PolicyNames {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
