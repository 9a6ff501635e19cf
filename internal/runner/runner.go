package runner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/garethgeorge/memcompact/internal/memlist"
	"github.com/garethgeorge/memcompact/internal/scenario"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultRuleWidth = 32

type Options struct {
	// Parallelism bounds how many scenarios run at once. Zero or less runs them one by one.
	Parallelism int
	// Verify checks each result against the operation's postconditions.
	Verify bool
	// ListOptions are passed to every list the runner builds.
	ListOptions []memlist.Option

	Logger   logrus.FieldLogger
	Progress ProgressTracker
}

// Report is the outcome of one scenario.
type Report struct {
	Scenario scenario.Scenario

	Before      string
	After       string
	BeforeStats memlist.Stats
	AfterStats  memlist.Stats
	// Changed is false when the operation left the list as it was.
	Changed bool
	// Violation is set when verification was requested and failed.
	Violation error
}

// Run executes every scenario on its own list and returns the reports in
// scenario order. Lists are never shared between scenarios, so independent
// scenarios may run in parallel.
func Run(ctx context.Context, scenarios []scenario.Scenario, opts Options) ([]Report, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Progress == nil {
		opts.Progress = NoopProgressTracker{}
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = 1
	}

	opts.Progress.SetMessage("running scenarios")
	opts.Progress.SetTotal(int64(len(scenarios)))
	opts.Progress.SetDone(0)

	reports := make([]Report, len(scenarios))
	var done atomic.Int64

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(parallelism)
	for i, s := range scenarios {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := runOne(s, opts)
			if err != nil {
				return err
			}
			reports[i] = report
			opts.Progress.SetDone(int(done.Add(1)))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		opts.Progress.SetError(err)
		return nil, err
	}
	opts.Progress.MarkFinished()
	return reports, nil
}

func runOne(s scenario.Scenario, opts Options) (Report, error) {
	log := opts.Logger.WithFields(logrus.Fields{
		"scenario": s.Name,
		"op":       s.Op,
	})

	l, err := s.Build(opts.ListOptions...)
	if err != nil {
		return Report{}, err
	}
	defer l.Release()

	report := Report{
		Scenario:    s,
		Before:      l.String(),
		BeforeStats: l.Stats(),
	}
	fingerprint := l.Fingerprint()

	if err := s.Apply(l); err != nil {
		return Report{}, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	report.After = l.String()
	report.AfterStats = l.Stats()
	report.Changed = l.Fingerprint() != fingerprint

	if opts.Verify {
		report.Violation = Verify(s.Op, s.Segments, l)
		if report.Violation != nil {
			log.WithError(report.Violation).Warn("postcondition check failed")
		}
	}

	log.WithFields(logrus.Fields{
		"segments_before": report.BeforeStats.Segments,
		"segments_after":  report.AfterStats.Segments,
		"changed":         report.Changed,
	}).Debug("scenario finished")
	return report, nil
}

// WriteReport prints a banner, the list before the operation and the list
// after it, framed by dashed rules. A scenario heading is printed above the
// title and takes the place of the rule below it. An empty list is printed
// as a blank line.
func WriteReport(w io.Writer, r Report) error {
	title := r.Scenario.Title
	if title == "" {
		title = r.Scenario.Name
	}
	width := r.Scenario.RuleWidth
	if width <= 0 {
		width = defaultRuleWidth
	}
	rule := strings.Repeat("-", width)

	var sb strings.Builder
	if r.Scenario.Heading != "" {
		sb.WriteString("\n" + r.Scenario.Heading + "\n")
		sb.WriteString(rule + "\n")
		sb.WriteString(title + "\n")
	} else {
		sb.WriteString("\n" + title + "\n")
		sb.WriteString(rule + "\n")
	}
	sb.WriteString(listBlock(r.Before))
	sb.WriteString("\n")
	sb.WriteString(listBlock(r.After))
	sb.WriteString(rule + "\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// listBlock stands an empty list in for a blank line.
func listBlock(rendered string) string {
	if rendered == "" {
		return "\n"
	}
	return rendered
}

// Violations returns the reports whose verification failed.
func Violations(reports []Report) []Report {
	var failed []Report
	for _, r := range reports {
		if r.Violation != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
