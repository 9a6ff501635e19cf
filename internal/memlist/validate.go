package memlist

import (
	"fmt"
	"math"
)

// Validate checks that every segment has a positive limit and a non-negative
// base, and that the address range reached by laying the segments end to end
// from the head's base fits in an int64. If contiguous is set it also checks
// that each segment starts where its predecessor ends.
func (l *List) Validate(contiguous bool) error {
	pos := 0
	var prev Segment
	var extent int64
	for _, seg := range l.All() {
		pos++
		if err := seg.validate(); err != nil {
			return fmt.Errorf("segment %d: %w", pos, err)
		}
		if pos == 1 {
			extent = seg.Base
		}
		if seg.Limit > math.MaxInt64-extent {
			return fmt.Errorf("segment %d: total size overflows the address space: %w", pos, ErrInvalidSegment)
		}
		extent += seg.Limit
		if contiguous && pos > 1 && seg.Base != prev.End() {
			return fmt.Errorf("segment %d: base %d does not follow %v: %w", pos, seg.Base, prev, ErrDiscontiguous)
		}
		prev = seg
	}
	return nil
}
