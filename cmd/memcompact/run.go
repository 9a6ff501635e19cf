package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/garethgeorge/memcompact/internal/runner"
	"github.com/garethgeorge/memcompact/internal/scenario"
	"github.com/spf13/cobra"
)

var (
	parallelism int
	verify      bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().IntVarP(&parallelism, "parallel", "j", 1, "number of scenarios to run at once")
	cmd.Flags().BoolVar(&verify, "verify", false, "check every result against the operation's postconditions")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [scenario-file]",
		Short: "Run a battery of scenarios and print each list before and after",
		Long: `The run command executes scenarios and prints every list before and
after its operation. Without a file the built-in demonstration battery runs.

A scenario file is an INI file with one section per scenario; files ending in
.zst are zstd compressed:

  [two-holes]
  title    = two hole test
  op       = merge
  segments = H:0:10 H:10:12

Example:
  memcompact run
  memcompact run scenarios.ini --verify -j 4`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runScenarios(ctx, cmd.OutOrStdout(), args)
		},
	}
}

func runScenarios(ctx context.Context, out io.Writer, args []string) error {
	scenarios := scenario.Builtin()
	if len(args) == 1 {
		var err error
		scenarios, err = scenario.Load(args[0])
		if err != nil {
			return err
		}
	}
	logger.WithField("scenarios", len(scenarios)).Info("running scenarios")

	reports, err := runner.Run(ctx, scenarios, runner.Options{
		Parallelism: parallelism,
		Verify:      verify,
		ListOptions: listOptions(),
		Logger:      logger,
		Progress:    &runner.LogProgressTracker{Logger: logger},
	})
	if err != nil {
		return err
	}

	for _, r := range reports {
		if err := runner.WriteReport(out, r); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if failed := runner.Violations(reports); len(failed) > 0 {
		for _, r := range failed {
			logger.WithField("scenario", r.Scenario.Name).WithError(r.Violation).Error("verification failed")
		}
		return fmt.Errorf("%d of %d scenarios failed verification: %w", len(failed), len(reports), runner.ErrPostcondition)
	}
	return nil
}
