package scenario

import "github.com/garethgeorge/memcompact/internal/memlist"

var (
	hole = memlist.Hole
	proc = memlist.Process
)

// The first two compaction runs print 32-dash rules, every later one 34.
const wideRule = 34

// Builtin returns the demonstration battery: six compaction runs followed by
// five merge runs.
func Builtin() []Scenario {
	return []Scenario{
		{
			Name:  "compact-hole-ends",
			Title: "list starting and ending in Hole",
			Op:    OpCompact,
			Segments: []memlist.Segment{
				{Hole: true, Owner: 1, Base: 0, Limit: 6}, proc(17, 6, 1), hole(7, 4), hole(11, 4), hole(15, 1),
				proc(3, 16, 10), hole(26, 6),
			},
		},
		{
			Name:     "compact-process-start",
			Title:    "list starting with process and ending in Hole",
			Op:       OpCompact,
			Segments: []memlist.Segment{proc(1, 0, 6), proc(2, 6, 1), hole(7, 9), proc(3, 16, 10), hole(26, 6)},
		},
		{
			Name:      "compact-one-process",
			Title:     "One process test",
			RuleWidth: wideRule,
			Op:        OpCompact,
			Segments:  []memlist.Segment{proc(1, 0, 10)},
		},
		{
			Name:      "compact-two-holes",
			Title:     "two hole test",
			RuleWidth: wideRule,
			Op:        OpCompact,
			Segments:  []memlist.Segment{hole(0, 10), hole(10, 12)},
		},
		{
			Name:      "compact-long-hole-start",
			Title:     "list starting with hole test",
			RuleWidth: wideRule,
			Op:        OpCompact,
			Segments: []memlist.Segment{
				hole(0, 10), proc(1, 10, 6), proc(2, 16, 1), hole(17, 1), proc(3, 18, 10), hole(28, 6), hole(34, 1),
				hole(35, 2), proc(4, 37, 9), proc(5, 46, 1), hole(47, 2),
			},
		},
		{
			Name:      "compact-long-process-start",
			Title:     "list starting with process test",
			RuleWidth: wideRule,
			Op:        OpCompact,
			Segments: []memlist.Segment{
				proc(1, 0, 10), proc(2, 10, 6), proc(3, 16, 1), hole(17, 1), proc(4, 18, 10), hole(28, 6), hole(34, 1),
				hole(35, 2), proc(5, 37, 9), proc(6, 46, 1), hole(47, 2),
			},
		},
		{
			Name:      "merge-empty",
			Heading:   "mergeFreeBlocks TESTS BEGIN HERE",
			Title:     "empty list test",
			RuleWidth: wideRule,
			Op:        OpMerge,
		},
		{
			Name:      "merge-two-processes",
			Title:     "two process test",
			RuleWidth: wideRule,
			Op:        OpMerge,
			Segments:  []memlist.Segment{proc(1, 0, 10), proc(2, 10, 12)},
		},
		{
			Name:      "merge-two-holes",
			Title:     "two hole test",
			RuleWidth: wideRule,
			Op:        OpMerge,
			Segments:  []memlist.Segment{hole(0, 10), hole(10, 12)},
		},
		{
			Name:      "merge-long-hole-start",
			Title:     "list starting with hole test",
			RuleWidth: wideRule,
			Op:        OpMerge,
			Segments: []memlist.Segment{
				hole(0, 10), proc(1, 10, 6), proc(2, 16, 1), hole(17, 1), proc(3, 18, 10), hole(28, 6), hole(34, 1),
				hole(35, 2), proc(4, 37, 9), proc(5, 46, 1), hole(47, 2), hole(49, 4),
			},
		},
		{
			Name:      "merge-long-process-start",
			Title:     "list starting with process test",
			RuleWidth: wideRule,
			Op:        OpMerge,
			Segments: []memlist.Segment{
				proc(1, 0, 10), proc(2, 10, 6), proc(3, 16, 1), hole(17, 1), proc(4, 18, 10), hole(28, 6), hole(34, 1),
				hole(35, 2), proc(5, 37, 9), proc(6, 46, 1), hole(47, 2), hole(49, 4),
			},
		},
	}
}
