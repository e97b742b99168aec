package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/zeu5/bandits/util"
)

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "bandits",
		Short:        "Simulate and compare Bernoulli multi-armed bandit policies",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := UpdateFlags(cmd); err != nil {
				return err
			}
			level, err := util.ParseLevel(flags.LogLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(util.NewLogger(os.Stderr, level, flags.LogJSON))
			return nil
		},
	}
	AddFlags(cmd)

	cmd.AddCommand(
		CompareCommand(),
		RunCommand(),
		PoliciesCommand(),
	)

	return cmd
}

// interruptContext is cancelled on SIGINT or when stop is called
func interruptContext() (context.Context, func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt) // channel for interrupts from os

	doneCh := make(chan struct{}) // channel for done signal from application

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-sigCh:
			slog.Warn("interrupted, stopping after the current runs")
		case <-doneCh:
		}
		signal.Stop(sigCh)
		cancel()
	}()
	return ctx, func() { close(doneCh) }
}

// progressPrinter returns nil unless progress is enabled and stdout is a terminal
func progressPrinter() *util.TerminalPrinter {
	if !flags.Progress {
		return nil
	}
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil
	}
	return util.NewTerminalPrinter(os.Stdout, 200*time.Millisecond)
}
