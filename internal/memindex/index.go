package memindex

import (
	"fmt"
	"iter"

	"github.com/garethgeorge/memcompact/internal/memlist"
	"github.com/google/btree"
)

// Entry is a segment of an indexed list together with the address range it covers.
type Entry struct {
	Range
	// Position of the segment in the list, counted from 1.
	Position int
	Segment  memlist.Segment
}

// Index orders a snapshot of a segment list by base address. It does not
// follow later changes to the list.
type Index struct {
	Domain  Range // smallest range covering every segment
	entries *btree.BTreeG[Entry]
}

// Build indexes every segment of l. Segments must be valid and must not overlap.
func Build(l *memlist.List) (*Index, error) {
	if err := l.Validate(false); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	x := &Index{
		Domain: EmptyRange,
		entries: btree.NewG(32, func(a, b Entry) bool {
			return a.Start < b.Start
		}),
	}
	pos := 0
	for _, seg := range l.All() {
		pos++
		if err := x.insert(Entry{
			Range:    Range{Start: seg.Base, End: seg.End()},
			Position: pos,
			Segment:  seg,
		}); err != nil {
			return nil, fmt.Errorf("build index: segment %d: %w", pos, err)
		}
	}
	return x, nil
}

func (x *Index) insert(e Entry) error {
	// Entries never overlap each other, so only the entry with the greatest
	// start below e.End can overlap e.
	var overlap Entry
	var found bool
	x.entries.DescendLessOrEqual(Entry{Range: Range{Start: e.End - 1}}, func(item Entry) bool {
		if item.Overlaps(e.Range) {
			overlap = item
			found = true
		}
		return false
	})
	if found {
		return &OverlapError{First: overlap.Range, Second: e.Range}
	}

	x.entries.ReplaceOrInsert(e)
	if x.entries.Len() == 1 {
		x.Domain = e.Range
	} else {
		x.Domain.Start = min(x.Domain.Start, e.Start)
		x.Domain.End = max(x.Domain.End, e.End)
	}
	return nil
}

func (x *Index) Len() int {
	return x.entries.Len()
}

// Find returns the segment covering addr.
func (x *Index) Find(addr int64) (Entry, bool) {
	var entry Entry
	var found bool
	x.entries.DescendLessOrEqual(Entry{Range: Range{Start: addr}}, func(item Entry) bool {
		if item.Contains(addr) {
			entry = item
			found = true
		}
		return false
	})
	return entry, found
}

// Gaps returns the address ranges inside Domain that no segment covers.
func (x *Index) Gaps() []Range {
	var gaps []Range
	prev := Range{Start: x.Domain.Start, End: x.Domain.Start}
	x.entries.Ascend(func(item Entry) bool {
		if !prev.Adjacent(item.Range) {
			gaps = append(gaps, Range{Start: prev.End, End: item.Start})
		}
		prev = item.Range
		return true
	})
	return gaps
}

// Contiguous reports whether the segments cover Domain without gaps.
func (x *Index) Contiguous() bool {
	return len(x.Gaps()) == 0
}

// InListOrder reports whether ascending address order matches list order.
func (x *Index) InListOrder() bool {
	inOrder := true
	prev := 0
	x.entries.Ascend(func(item Entry) bool {
		if item.Position < prev {
			inOrder = false
			return false
		}
		prev = item.Position
		return true
	})
	return inOrder
}

// Holes returns the free segments in address order.
func (x *Index) Holes() []Entry {
	var holes []Entry
	for e := range x.Iter() {
		if e.Segment.Hole {
			holes = append(holes, e)
		}
	}
	return holes
}

// Iter returns an iterator over all entries in address order.
func (x *Index) Iter() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		x.entries.Ascend(func(item Entry) bool {
			return yield(item)
		})
	}
}
