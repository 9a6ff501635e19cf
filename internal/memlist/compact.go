package memlist

import "fmt"

// Compact moves every process segment to the low end of the address space,
// keeping their relative order, and coalesces all free space into a single
// hole at the end of the list. Bases are then recomputed from the head's base
// and the segment limits. The input does not need to be contiguous.
func (l *List) Compact() error {
	if err := l.Validate(false); err != nil {
		return fmt.Errorf("compact: %w", err)
	}
	moved := l.shiftFreeCells()
	l.recomputeBases()
	l.log.WithField("moved", moved).Debug("compacted segment list")
	return nil
}

// shiftFreeCells walks the list once. Each hole found is first merged with the
// holes following it and then moved behind the current tail. The segment that
// takes the hole's place inherits its base, which keeps the head's base as the
// anchor of the address range. Holes moved to the tail are reached again at the
// end of the walk, where the first of them absorbs the rest.
func (l *List) shiftFreeCells() int {
	if l.head == NilRef || l.nodes[l.head].next == NilRef {
		return 0
	}
	moved := 0
	tail := l.Tail()
	at := headSlot
	for {
		cur := l.load(at)
		if cur == NilRef {
			return moved
		}
		n := &l.nodes[cur]
		if n.next == NilRef {
			return moved
		}
		if !n.seg.Hole {
			at = slot{owner: cur}
			continue
		}

		l.mergeAt(cur)
		if n.next == NilRef {
			// The hole absorbed everything up to the tail.
			return moved
		}

		succ := n.next
		l.store(at, succ)
		l.nodes[succ].seg.Base = n.seg.Base

		n.next = NilRef
		l.store(slot{owner: tail}, cur)
		tail = cur
		moved++

		at = slot{owner: succ}
	}
}

// recomputeBases makes the list contiguous again, starting from the head's base.
func (l *List) recomputeBases() {
	cur := l.head
	if cur == NilRef {
		return
	}
	for {
		next := l.nodes[cur].next
		if next == NilRef {
			return
		}
		l.nodes[next].seg.Base = l.nodes[cur].seg.End()
		cur = next
	}
}
