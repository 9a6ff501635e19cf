package memlist

import (
	"fmt"
	"iter"
	"math"

	"github.com/sirupsen/logrus"
)

// Ref addresses a segment node in a List's arena.
type Ref int32

// NilRef is the reference held by the last node of a list and by an empty list's head.
const NilRef Ref = -1

type node struct {
	seg  Segment
	next Ref
	// linked is set while another node's next field holds this node.
	linked bool
	live   bool
}

// slot addresses the link holding a node: the list head when owner is NilRef,
// otherwise the next field of owner.
type slot struct {
	owner Ref
}

var headSlot = slot{owner: NilRef}

type options struct {
	capacity    int
	maxSegments int
	logger      logrus.FieldLogger
}

type Option = func(*options)

// WithCapacity pre-sizes the arena for n segments.
func WithCapacity(n int) func(*options) {
	return func(o *options) {
		o.capacity = n
	}
}

// WithMaxSegments limits the number of live segments the arena will hand out.
// Allocations past the limit fail with ErrArenaExhausted. Zero means unlimited.
func WithMaxSegments(n int) func(*options) {
	return func(o *options) {
		o.maxSegments = n
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger logrus.FieldLogger) func(*options) {
	return func(o *options) {
		o.logger = logger
	}
}

// List is a singly linked sequence of segments stored in an arena and
// addressed by Ref. Each node is owned by exactly one link: the head or its
// predecessor's next field. Absorbed and released nodes return to the arena's
// free slots and are reused by later allocations.
//
// A List is not thread-safe.
type List struct {
	nodes []node
	free  []Ref
	head  Ref
	live  int

	maxSegments int
	log         logrus.FieldLogger
}

func New(opts ...Option) *List {
	o := options{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return &List{
		nodes:       make([]node, 0, o.capacity),
		head:        NilRef,
		maxSegments: o.maxSegments,
		log:         o.logger,
	}
}

// FromSegments builds a list holding segs in order.
func FromSegments(segs []Segment, opts ...Option) (*List, error) {
	l := New(append([]Option{WithCapacity(len(segs))}, opts...)...)
	next := NilRef
	for i := len(segs) - 1; i >= 0; i-- {
		r, err := l.Link(segs[i], next)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i+1, err)
		}
		next = r
	}
	if err := l.SetHead(next); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *List) alloc(seg Segment, next Ref) (Ref, error) {
	if l.maxSegments > 0 && l.live >= l.maxSegments {
		return NilRef, ErrArenaExhausted
	}
	var r Ref
	if n := len(l.free); n > 0 {
		r = l.free[n-1]
		l.free = l.free[:n-1]
	} else {
		if len(l.nodes) >= math.MaxInt32 {
			return NilRef, ErrArenaExhausted
		}
		l.nodes = append(l.nodes, node{})
		r = Ref(len(l.nodes) - 1)
	}
	l.nodes[r] = node{seg: seg, next: next, live: true}
	l.live++
	return r, nil
}

func (l *List) release(r Ref) {
	n := &l.nodes[r]
	if !n.live {
		panic(fmt.Sprintf("memlist: segment %d released twice", r))
	}
	*n = node{next: NilRef}
	l.free = append(l.free, r)
	l.live--
}

func (l *List) valid(r Ref) bool {
	return r >= 0 && int(r) < len(l.nodes) && l.nodes[r].live
}

func (l *List) load(s slot) Ref {
	if s.owner == NilRef {
		return l.head
	}
	return l.nodes[s.owner].next
}

// store moves ownership of r into s.
func (l *List) store(s slot, r Ref) {
	if s.owner == NilRef {
		l.head = r
	} else {
		l.nodes[s.owner].next = r
	}
	if r != NilRef {
		l.nodes[r].linked = s.owner != NilRef
	}
}

// Link creates a segment whose successor is next and returns its reference.
// Ownership of next moves to the new segment, so next must not already be
// linked behind another segment. Lists can be built tail first by passing
// NilRef for the last segment and then each returned Ref to its predecessor.
func (l *List) Link(seg Segment, next Ref) (Ref, error) {
	if next != NilRef {
		if !l.valid(next) {
			return NilRef, fmt.Errorf("successor %d: %w", next, ErrBadRef)
		}
		if l.nodes[next].linked {
			return NilRef, fmt.Errorf("successor %d is already linked: %w", next, ErrBadRef)
		}
	}
	r, err := l.alloc(seg, next)
	if err != nil {
		return NilRef, err
	}
	if next != NilRef {
		l.nodes[next].linked = true
	}
	return r, nil
}

// SetHead makes r the first segment of the list. Segments previously
// reachable from the head but not from r stay allocated until Release.
func (l *List) SetHead(r Ref) error {
	if r == l.head {
		return nil
	}
	if r != NilRef {
		if !l.valid(r) {
			return fmt.Errorf("head %d: %w", r, ErrBadRef)
		}
		if l.nodes[r].linked {
			return fmt.Errorf("head %d is linked behind another segment: %w", r, ErrBadRef)
		}
	}
	l.head = r
	return nil
}

// Push prepends seg to the list.
func (l *List) Push(seg Segment) error {
	r, err := l.Link(seg, l.head)
	if err != nil {
		return err
	}
	l.head = r
	return nil
}

func (l *List) Head() Ref {
	return l.head
}

// Next returns the successor of r, or NilRef if r is the last segment.
func (l *List) Next(r Ref) Ref {
	if !l.valid(r) {
		return NilRef
	}
	return l.nodes[r].next
}

func (l *List) Get(r Ref) (Segment, bool) {
	if !l.valid(r) {
		return Segment{}, false
	}
	return l.nodes[r].seg, true
}

// Tail returns the last segment of the list, or NilRef if the list is empty.
func (l *List) Tail() Ref {
	cur := l.head
	if cur == NilRef {
		return NilRef
	}
	for l.nodes[cur].next != NilRef {
		cur = l.nodes[cur].next
	}
	return cur
}

// Len returns the number of segments reachable from the head.
func (l *List) Len() int {
	n := 0
	for cur := l.head; cur != NilRef; cur = l.nodes[cur].next {
		n++
	}
	return n
}

// All returns an iterator over the list in order.
func (l *List) All() iter.Seq2[Ref, Segment] {
	return func(yield func(Ref, Segment) bool) {
		for cur := l.head; cur != NilRef; cur = l.nodes[cur].next {
			if !yield(cur, l.nodes[cur].seg) {
				return
			}
		}
	}
}

// Segments returns a copy of the list's segments in order.
func (l *List) Segments() []Segment {
	segs := make([]Segment, 0, l.live)
	for _, seg := range l.All() {
		segs = append(segs, seg)
	}
	return segs
}

// Release frees every segment of the list exactly once, in list order, and
// returns how many were released. Segments that were linked but never made
// reachable from the head are dropped with the arena. The list is empty
// afterwards and may be reused.
func (l *List) Release() int {
	released := 0
	cur := l.head
	l.head = NilRef
	for cur != NilRef {
		next := l.nodes[cur].next
		l.release(cur)
		released++
		cur = next
	}
	l.nodes = l.nodes[:0]
	l.free = l.free[:0]
	l.live = 0
	return released
}
