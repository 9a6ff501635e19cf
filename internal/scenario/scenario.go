package scenario

import (
	"fmt"
	"strings"

	"github.com/garethgeorge/memcompact/internal/memlist"
)

type Op string

const (
	OpCompact Op = "compact"
	OpMerge   Op = "merge"
)

func ParseOp(s string) (Op, error) {
	switch op := Op(strings.ToLower(strings.TrimSpace(s))); op {
	case "", OpCompact:
		return OpCompact, nil
	case OpMerge:
		return OpMerge, nil
	default:
		return "", fmt.Errorf("unknown op %q: %w", s, ErrSyntax)
	}
}

// Scenario is a hand-built segment list and the operation to run on it.
// Heading, if set, opens a new group of reports and is printed above Title.
// RuleWidth is the number of dashes in the report's rules; zero selects the
// default width.
type Scenario struct {
	Name      string
	Title     string
	Heading   string
	RuleWidth int
	Op        Op
	Segments  []memlist.Segment
}

// Build creates the scenario's list by pushing its segments from the last to
// the first.
func (s Scenario) Build(opts ...memlist.Option) (*memlist.List, error) {
	l := memlist.New(append([]memlist.Option{memlist.WithCapacity(len(s.Segments))}, opts...)...)
	for i := len(s.Segments) - 1; i >= 0; i-- {
		if err := l.Push(s.Segments[i]); err != nil {
			l.Release()
			return nil, fmt.Errorf("scenario %s: segment %d: %w", s.Name, i+1, err)
		}
	}
	return l, nil
}

// Apply runs the scenario's operation on l.
func (s Scenario) Apply(l *memlist.List) error {
	switch s.Op {
	case OpMerge:
		return l.MergeFreeBlocks()
	case OpCompact, "":
		return l.Compact()
	default:
		return fmt.Errorf("scenario %s: unknown op %q: %w", s.Name, s.Op, ErrSyntax)
	}
}

func (s Scenario) String() string {
	return fmt.Sprintf("%s (%s): %s", s.Name, s.Op, FormatSegments(s.Segments))
}
