package memindex

import "fmt"

// OverlapError reports two segments of a snapshot that claim the same addresses.
type OverlapError struct {
	First, Second Range
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("segment %v overlaps segment %v", e.Second, e.First)
}

var ErrOverlap = &OverlapError{}

func (e *OverlapError) Is(target error) bool {
	_, ok := target.(*OverlapError)
	return ok
}
