package runner

import (
	"fmt"
	"slices"

	"github.com/garethgeorge/memcompact/internal/memindex"
	"github.com/garethgeorge/memcompact/internal/memlist"
	"github.com/garethgeorge/memcompact/internal/scenario"
)

var ErrPostcondition = &VerifyError{"postcondition violated"}

type VerifyError struct {
	Msg string
}

func (e *VerifyError) Error() string {
	return e.Msg
}

func (e *VerifyError) Is(target error) bool {
	if targetErr, ok := target.(*VerifyError); ok {
		return e.Msg == targetErr.Msg
	}
	return false
}

// Verify checks the state of l after op was applied to a list holding before.
func Verify(op scenario.Op, before []memlist.Segment, l *memlist.List) error {
	after := l.Segments()
	if total(before) != total(after) {
		return fmt.Errorf("total space changed from %d to %d: %w", total(before), total(after), ErrPostcondition)
	}
	if err := l.Validate(true); err != nil {
		return fmt.Errorf("%v: %w", err, ErrPostcondition)
	}
	for i := 1; i < len(after); i++ {
		if after[i-1].Hole && after[i].Hole {
			return fmt.Errorf("adjacent holes at segments %d and %d: %w", i, i+1, ErrPostcondition)
		}
	}
	if op == scenario.OpMerge {
		return nil
	}

	if !slices.Equal(owners(before), owners(after)) {
		return fmt.Errorf("process order changed from %v to %v: %w", owners(before), owners(after), ErrPostcondition)
	}
	x, err := memindex.Build(l)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrPostcondition)
	}
	if !x.Contiguous() {
		return fmt.Errorf("address range %v has gaps %v: %w", x.Domain, x.Gaps(), ErrPostcondition)
	}
	if !x.InListOrder() {
		return fmt.Errorf("segments are not in address order: %w", ErrPostcondition)
	}
	holes := x.Holes()
	if len(holes) > 1 {
		return fmt.Errorf("%d holes after compaction: %w", len(holes), ErrPostcondition)
	}
	if len(holes) == 1 && holes[0].End != x.Domain.End {
		return fmt.Errorf("hole %v does not end the address range %v: %w", holes[0].Range, x.Domain, ErrPostcondition)
	}
	return nil
}

func total(segs []memlist.Segment) int64 {
	var n int64
	for _, seg := range segs {
		n += seg.Limit
	}
	return n
}

func owners(segs []memlist.Segment) []int {
	var ids []int
	for _, seg := range segs {
		if !seg.Hole {
			ids = append(ids, seg.Owner)
		}
	}
	return ids
}
