package memlist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompact(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		segs     []Segment
		expected []Segment
	}{
		{
			name:     "empty list",
			segs:     nil,
			expected: []Segment{},
		},
		{
			name:     "single hole",
			segs:     []Segment{Hole(0, 10)},
			expected: []Segment{Hole(0, 10)},
		},
		{
			name:     "one process",
			segs:     []Segment{Process(1, 0, 10)},
			expected: []Segment{Process(1, 0, 10)},
		},
		{
			name:     "two processes",
			segs:     []Segment{Process(1, 0, 10), Process(2, 10, 12)},
			expected: []Segment{Process(1, 0, 10), Process(2, 10, 12)},
		},
		{
			name:     "two holes",
			segs:     []Segment{Hole(0, 10), Hole(10, 12)},
			expected: []Segment{Hole(0, 22)},
		},
		{
			name:     "hole then process",
			segs:     []Segment{Hole(0, 4), Process(1, 4, 2)},
			expected: []Segment{Process(1, 0, 2), Hole(2, 4)},
		},
		{
			name: "list starting and ending in hole",
			segs: []Segment{
				{Hole: true, Owner: 1, Base: 0, Limit: 6}, Process(17, 6, 1), Hole(7, 4), Hole(11, 4),
				Hole(15, 1), Process(3, 16, 10), Hole(26, 6),
			},
			expected: []Segment{Process(17, 0, 1), Process(3, 1, 10), Hole(11, 21)},
		},
		{
			name: "list starting with process and ending in hole",
			segs: []Segment{
				Process(1, 0, 6), Process(2, 6, 1), Hole(7, 9), Process(3, 16, 10), Hole(26, 6),
			},
			expected: []Segment{Process(1, 0, 6), Process(2, 6, 1), Process(3, 7, 10), Hole(17, 15)},
		},
		{
			name: "long list starting with hole",
			segs: []Segment{
				Hole(0, 10), Process(1, 10, 6), Process(2, 16, 1), Hole(17, 1), Process(3, 18, 10),
				Hole(28, 6), Hole(34, 1), Hole(35, 2), Process(4, 37, 9), Process(5, 46, 1), Hole(47, 2),
			},
			expected: []Segment{
				Process(1, 0, 6), Process(2, 6, 1), Process(3, 7, 10), Process(4, 17, 9), Process(5, 26, 1),
				Hole(27, 22),
			},
		},
		{
			name: "long list starting with process",
			segs: []Segment{
				Process(1, 0, 10), Process(2, 10, 6), Process(3, 16, 1), Hole(17, 1), Process(4, 18, 10),
				Hole(28, 6), Hole(34, 1), Hole(35, 2), Process(5, 37, 9), Process(6, 46, 1), Hole(47, 2),
			},
			expected: []Segment{
				Process(1, 0, 10), Process(2, 10, 6), Process(3, 16, 1), Process(4, 17, 10), Process(5, 27, 9),
				Process(6, 36, 1), Hole(37, 12),
			},
		},
		{
			name:     "head base anchors a discontiguous list",
			segs:     []Segment{Process(1, 5, 2), Hole(100, 3), Process(2, 50, 4)},
			expected: []Segment{Process(1, 5, 2), Process(2, 7, 4), Hole(11, 3)},
		},
		{
			name:     "hole at head hands its base to the next segment",
			segs:     []Segment{Hole(3, 2), Process(1, 0, 1)},
			expected: []Segment{Process(1, 3, 1), Hole(4, 2)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			l, err := FromSegments(tc.segs)
			require.NoError(t, err)
			before := l.Stats()

			require.NoError(t, l.Compact())
			assert.Equal(t, tc.expected, l.Segments())
			assert.Equal(t, before.TotalSpace(), l.Stats().TotalSpace())
			require.NoError(t, l.Validate(true))
		})
	}
}

func TestCompact_AlreadyCompactIsUnchanged(t *testing.T) {
	t.Parallel()
	l, err := FromSegments([]Segment{Process(1, 0, 3), Process(2, 3, 4), Hole(7, 9)})
	require.NoError(t, err)
	want := l.Fingerprint()

	require.NoError(t, l.Compact())
	assert.Equal(t, want, l.Fingerprint())
}

func TestCompact_LinksStayUsable(t *testing.T) {
	t.Parallel()
	l, err := FromSegments([]Segment{Hole(0, 4), Process(1, 4, 2), Hole(6, 1), Process(2, 7, 1)})
	require.NoError(t, err)
	require.NoError(t, l.Compact())

	// The new head must accept a predecessor and the moved hole must be owned by its predecessor.
	require.NoError(t, l.Push(Process(9, 0, 1)))
	assert.ErrorIs(t, l.SetHead(l.Tail()), ErrBadRef)
	assert.Equal(t, []Segment{Process(9, 0, 1), Process(1, 0, 2), Process(2, 2, 1), Hole(3, 5)}, l.Segments())
	assert.Equal(t, 4, l.Release())
}

func TestCompact_RejectsInvalidInput(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		segs []Segment
	}{
		{"zero limit process", []Segment{Hole(0, 2), Process(1, 2, 0)}},
		{"negative base", []Segment{Process(1, -1, 2)}},
		{"end overflows", []Segment{Process(1, 1, math.MaxInt64)}},
		{"total overflows", []Segment{Process(1, 0, math.MaxInt64), Process(2, 0, 10), Hole(5, 3)}},
		{"total from head base overflows", []Segment{Hole(math.MaxInt64-5, 5), Process(1, 0, 1)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := FromSegments(tc.segs)
			require.NoError(t, err)
			assert.ErrorIs(t, l.Compact(), ErrInvalidSegment)
			assert.Equal(t, tc.segs, l.Segments(), "list must be left untouched")
		})
	}
}

func TestCompact_LargeAddresses(t *testing.T) {
	t.Parallel()
	l, err := FromSegments([]Segment{Hole(0, math.MaxInt64-1), Process(1, math.MaxInt64-1, 1)})
	require.NoError(t, err)
	require.NoError(t, l.Compact())
	assert.Equal(t, []Segment{Process(1, 0, 1), Hole(1, math.MaxInt64-1)}, l.Segments())
	assert.NoError(t, l.Validate(true))
}

func TestShiftFreeCells_MovesEachHoleOnce(t *testing.T) {
	t.Parallel()
	l, err := FromSegments([]Segment{
		Hole(0, 1), Process(1, 1, 1), Hole(2, 1), Hole(3, 1), Process(2, 4, 1), Hole(5, 1),
	})
	require.NoError(t, err)

	// The two leading runs move; the trailing hole absorbs them in place.
	assert.Equal(t, 2, l.shiftFreeCells())
	assert.Equal(t, 3, l.Len())
}

func TestRender(t *testing.T) {
	t.Parallel()
	l, err := FromSegments([]Segment{Hole(0, 6), Process(17, 6, 1)})
	require.NoError(t, err)

	expected := "Node 1: H (Hole), base = 0, limit = 6\n" +
		"Node 2: P17, base = 6, limit = 1\n"
	assert.Equal(t, expected, l.String())

	assert.Equal(t, "", New().String())
}
