package memlist

import (
	"fmt"
	"math"
)

// Segment is a contiguous region of the managed address space. It is either a
// hole (free) or a block owned by a process.
type Segment struct {
	// Hole is true if the segment is free.
	Hole bool
	// Owner is the owning process id, ignored for holes.
	Owner int
	// Base is the first address of the segment.
	Base int64
	// Limit is the length of the segment in address units.
	Limit int64
}

// Hole returns a free segment starting at base.
func Hole(base, limit int64) Segment {
	return Segment{Hole: true, Base: base, Limit: limit}
}

// Process returns a segment owned by the process owner.
func Process(owner int, base, limit int64) Segment {
	return Segment{Owner: owner, Base: base, Limit: limit}
}

// End is the first address past the segment.
func (s Segment) End() int64 {
	return s.Base + s.Limit
}

func (s Segment) String() string {
	if s.Hole {
		return fmt.Sprintf("H(base=%d, limit=%d)", s.Base, s.Limit)
	}
	return fmt.Sprintf("P%d(base=%d, limit=%d)", s.Owner, s.Base, s.Limit)
}

func (s Segment) validate() error {
	if s.Limit <= 0 {
		return fmt.Errorf("%v: limit must be positive: %w", s, ErrInvalidSegment)
	}
	if s.Base < 0 {
		return fmt.Errorf("%v: base must not be negative: %w", s, ErrInvalidSegment)
	}
	if s.Limit > math.MaxInt64-s.Base {
		return fmt.Errorf("%v: end address overflows: %w", s, ErrInvalidSegment)
	}
	return nil
}
