package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kickdirtbb/framing/internal/report"
	"github.com/kickdirtbb/framing/pkg/logger"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := &report.Config{}
	var verbose bool

	cmd := &cobra.Command{
		Use:           "framing-report",
		Short:         "Print a ranked catcher framing table for one day",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr())); err != nil {
				return err
			}
			level := "warn"
			if verbose {
				level = "debug"
			}
			return logger.SetLevelString(level)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return report.Run(ctx, cfg, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.BaseURL, "url", report.DefaultBaseURL, "Base URL of the framing service")
	flags.StringVar(&cfg.Date, "date", "", "Game date YYYY-MM-DD (default: server's yesterday)")
	flags.StringVar(&cfg.Sort, "sort", report.SortShadow, "Sort key: shadow, extra, lost or net")
	flags.IntVar(&cfg.Top, "top", report.DefaultTop, "Rows to show, 0 for all")
	flags.DurationVar(&cfg.Timeout, "timeout", report.DefaultTimeout, "HTTP request timeout")
	flags.BoolVar(&cfg.JSON, "json", false, "Print JSON instead of a table")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	return cmd
}
