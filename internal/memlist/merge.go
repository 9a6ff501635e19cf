package memlist

import "fmt"

// MergeFreeBlocks coalesces every run of adjacent holes into the first hole of
// the run. The survivor keeps its base and grows by the limits of the holes it
// absorbs; absorbed segments are released. The list must be contiguous.
func (l *List) MergeFreeBlocks() error {
	if err := l.Validate(true); err != nil {
		return fmt.Errorf("merge free blocks: %w", err)
	}
	merged := l.mergeFreeBlocks()
	l.log.WithField("merged", merged).Debug("merged free blocks")
	return nil
}

func (l *List) mergeFreeBlocks() int {
	merged := 0
	for cur := l.head; cur != NilRef; cur = l.nodes[cur].next {
		merged += l.mergeAt(cur)
	}
	return merged
}

// mergeAt absorbs the holes directly following cur into cur, if cur is a hole.
// It returns the number of segments absorbed.
func (l *List) mergeAt(cur Ref) int {
	n := &l.nodes[cur]
	if !n.seg.Hole {
		return 0
	}
	merged := 0
	for n.next != NilRef && l.nodes[n.next].seg.Hole {
		absorbed := n.next
		n.seg.Limit += l.nodes[absorbed].seg.Limit
		n.next = l.nodes[absorbed].next
		l.release(absorbed)
		merged++
	}
	return merged
}
