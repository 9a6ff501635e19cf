package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/garethgeorge/memcompact/internal/memindex"
	"github.com/garethgeorge/memcompact/internal/memlist"
	"github.com/garethgeorge/memcompact/internal/scenario"
	"github.com/spf13/cobra"
)

var inspectAt int64

func init() {
	rootCmd.AddCommand(newOpCmd(scenario.OpCompact, "Move every hole to the end of the list and merge them into one"))
	rootCmd.AddCommand(newOpCmd(scenario.OpMerge, "Merge runs of adjacent holes into single holes"))

	inspectCmd := &cobra.Command{
		Use:   "inspect <segments>...",
		Short: "Print statistics and the address layout of a segment list",
		Long: `The inspect command prints summary statistics for a segment list, any
uncovered address ranges, and optionally the segment covering an address.

Example:
  memcompact inspect H:0:6 P17:6:1 H:7:4
  memcompact inspect "H:0:6,P17:6:1" --at 6`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var at *int64
			if cmd.Flags().Changed("at") {
				at = &inspectAt
			}
			return inspectSegments(cmd.OutOrStdout(), args, at)
		},
	}
	inspectCmd.Flags().Int64Var(&inspectAt, "at", 0, "print the segment covering this address")
	rootCmd.AddCommand(inspectCmd)
}

func newOpCmd(op scenario.Op, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(op) + " <segments>...",
		Short: short,
		Long: fmt.Sprintf(`The %[1]s command builds a list from the given segments, runs %[1]s on it
and prints the list before and after.

Example:
  memcompact %[1]s H:0:6 P17:6:1 H:7:4 P3:11:10`, op),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyOp(cmd.OutOrStdout(), op, args)
		},
	}
}

func parseArgs(args []string) ([]memlist.Segment, error) {
	return scenario.ParseSegments(strings.Join(args, " "))
}

func applyOp(out io.Writer, op scenario.Op, args []string) error {
	segs, err := parseArgs(args)
	if err != nil {
		return err
	}
	s := scenario.Scenario{
		Name:     "command line",
		Title:    fmt.Sprintf("%s %s", op, scenario.FormatSegments(segs)),
		Op:       op,
		Segments: segs,
	}

	l, err := s.Build(listOptions()...)
	if err != nil {
		return err
	}
	defer l.Release()

	before := l.String()
	if err := s.Apply(l); err != nil {
		return err
	}
	logger.WithField("op", op).WithField("segments", l.Len()).Debug("operation applied")

	fmt.Fprintln(out, "Before:")
	fmt.Fprint(out, before)
	fmt.Fprintln(out, "\nAfter:")
	return l.Render(out)
}

func inspectSegments(out io.Writer, args []string, at *int64) error {
	segs, err := parseArgs(args)
	if err != nil {
		return err
	}
	l, err := memlist.FromSegments(segs, listOptions()...)
	if err != nil {
		return err
	}
	defer l.Release()

	x, err := memindex.Build(l)
	if err != nil {
		return err
	}

	stats := l.Stats()
	fmt.Fprintf(out, "Segments:        %d (%d holes, %d processes)\n", stats.Segments, stats.Holes, stats.Processes)
	fmt.Fprintf(out, "Address range:   %s\n", x.Domain)
	fmt.Fprintf(out, "Free space:      %d\n", stats.FreeSpace)
	fmt.Fprintf(out, "Allocated space: %d\n", stats.AllocatedSpace)
	fmt.Fprintf(out, "Largest hole:    %d\n", stats.LargestHole)
	fmt.Fprintf(out, "Fingerprint:     %016x\n", l.Fingerprint())

	if gaps := x.Gaps(); len(gaps) > 0 {
		fmt.Fprintln(out, "Gaps:")
		for _, g := range gaps {
			fmt.Fprintf(out, "  %s\n", g)
		}
	}
	if !x.InListOrder() {
		fmt.Fprintln(out, "Warning: list order does not follow address order")
	}

	if at != nil {
		entry, ok := x.Find(*at)
		if !ok {
			return fmt.Errorf("no segment covers address %d", *at)
		}
		fmt.Fprintf(out, "Address %d: node %d, %s %s\n", *at, entry.Position, entry.Segment, entry.Range)
	}
	return nil
}
