package memindex

import "fmt"

var EmptyRange = Range{Start: 0, End: 0}

type Range struct {
	Start int64 // inclusive
	End   int64 // exclusive
}

func (r Range) Size() int64 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

func (r Range) Contains(addr int64) bool {
	return r.Start <= addr && addr < r.End
}

func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

func (r Range) Adjacent(other Range) bool {
	return r.End == other.Start || other.End == r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}
