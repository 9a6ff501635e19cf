package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/garethgeorge/memcompact/internal/logging"
	"github.com/garethgeorge/memcompact/internal/memlist"
	"github.com/garethgeorge/memcompact/internal/runner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	exitError             = 1
	exitArenaExhausted    = 2
	exitPostconditionFail = 3
)

var (
	// Global flags
	logLevel    string
	logFormat   string
	logFile     string
	maxSegments int

	logger    = logrus.New()
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "memcompact",
	Short: "Simulate free-block merging and compaction of memory partitions",
	Long: `memcompact models a contiguous address space as an ordered list of
segments, each either a hole or a block owned by a process. It can merge
adjacent holes or compact the space so that every process block sits at the
low end of memory followed by a single hole.

Segments are written as H:base:limit for a hole and P<id>:base:limit for a
process, for example "H:0:6 P17:6:1 H:7:4".`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		closer, err := logging.Configure(logger, logging.Config{
			Level:  logLevel,
			Format: logFormat,
			File:   logFile,
		})
		if err != nil {
			return err
		}
		logCloser = closer
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser == nil {
			return nil
		}
		return logCloser.Close()
	},
}

func init() {
	defaults := logging.DefaultConfig()
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaults.Level, "log level (debug, info, warning, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", defaults.Format, "log format; json or text")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path; empty logs to stderr")
	rootCmd.PersistentFlags().IntVar(&maxSegments, "max-segments", 0, "maximum number of live segments per list (0 = unlimited)")
}

func listOptions() []memlist.Option {
	return []memlist.Option{
		memlist.WithLogger(logger),
		memlist.WithMaxSegments(maxSegments),
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, memlist.ErrArenaExhausted):
		return exitArenaExhausted
	case errors.Is(err, runner.ErrPostcondition):
		return exitPostconditionFail
	default:
		return exitError
	}
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}
