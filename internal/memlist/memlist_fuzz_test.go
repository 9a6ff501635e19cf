package memlist

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomSegments returns n contiguous segments starting at base with roughly
// holeRatio percent holes.
func randomSegments(rng *rand.Rand, n int, base int64, holeRatio int) []Segment {
	segs := make([]Segment, 0, n)
	for i := 0; i < n; i++ {
		limit := rng.Int63n(16) + 1
		if rng.Intn(100) < holeRatio {
			segs = append(segs, Hole(base, limit))
		} else {
			segs = append(segs, Process(i+1, base, limit))
		}
		base += limit
	}
	return segs
}

// mergeModel coalesces runs of holes in a slice.
func mergeModel(segs []Segment) []Segment {
	out := []Segment{}
	for _, seg := range segs {
		if n := len(out); n > 0 && seg.Hole && out[n-1].Hole {
			out[n-1].Limit += seg.Limit
			continue
		}
		out = append(out, seg)
	}
	return out
}

// compactModel lays out the processes of segs from the first segment's base
// followed by one hole holding all free space.
func compactModel(segs []Segment) []Segment {
	out := []Segment{}
	if len(segs) == 0 {
		return out
	}
	base := segs[0].Base
	var free int64
	for _, seg := range segs {
		if seg.Hole {
			free += seg.Limit
			continue
		}
		out = append(out, Process(seg.Owner, base, seg.Limit))
		base += seg.Limit
	}
	if free > 0 {
		out = append(out, Hole(base, free))
	}
	return out
}

func checkCompacted(t *testing.T, before []Segment, l *List) {
	t.Helper()
	after := l.Segments()

	var owners, wantOwners []int
	for _, seg := range before {
		if !seg.Hole {
			wantOwners = append(wantOwners, seg.Owner)
		}
	}
	for i, seg := range after {
		if seg.Hole {
			assert.Equal(t, len(after)-1, i, "a hole may only be the last segment")
			continue
		}
		owners = append(owners, seg.Owner)
	}
	assert.Equal(t, wantOwners, owners, "process order must be preserved")
	assert.NoError(t, l.Validate(true))
}

func FuzzCompact(f *testing.F) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	f.Add(0, 30, int(rng.Int63()))
	f.Add(1, 50, int(rng.Int63()))
	f.Add(2, 100, int(rng.Int63()))
	f.Add(64, 50, int(rng.Int63()))
	f.Add(500, 80, int(rng.Int63()))

	f.Fuzz(func(t *testing.T, n int, holeRatio int, seed int) {
		if n < 0 || n > 2000 || holeRatio < 0 || holeRatio > 100 {
			t.Skip("invalid list shape")
		}
		rng := rand.New(rand.NewSource(int64(seed)))
		segs := randomSegments(rng, n, rng.Int63n(64), holeRatio)

		l, err := FromSegments(segs)
		require.NoError(t, err)
		require.NoError(t, l.Compact())

		assert.Equal(t, compactModel(segs), l.Segments())
		checkCompacted(t, segs, l)
		assert.LessOrEqual(t, l.Stats().Holes, 1)

		// Compacting a compacted list changes nothing.
		fingerprint := l.Fingerprint()
		require.NoError(t, l.Compact())
		assert.Equal(t, fingerprint, l.Fingerprint())
		assert.Equal(t, l.Len(), l.Release())
	})
}

func FuzzMergeFreeBlocks(f *testing.F) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	f.Add(0, 30, int(rng.Int63()))
	f.Add(1, 100, int(rng.Int63()))
	f.Add(100, 50, int(rng.Int63()))
	f.Add(1000, 90, int(rng.Int63()))

	f.Fuzz(func(t *testing.T, n int, holeRatio int, seed int) {
		if n < 0 || n > 2000 || holeRatio < 0 || holeRatio > 100 {
			t.Skip("invalid list shape")
		}
		rng := rand.New(rand.NewSource(int64(seed)))
		segs := randomSegments(rng, n, 0, holeRatio)

		l, err := FromSegments(segs)
		require.NoError(t, err)
		before := l.Stats()
		require.NoError(t, l.MergeFreeBlocks())

		after := l.Segments()
		assert.Equal(t, mergeModel(segs), after)
		assert.Equal(t, before.TotalSpace(), l.Stats().TotalSpace())
		for i := 1; i < len(after); i++ {
			assert.False(t, after[i-1].Hole && after[i].Hole, "adjacent holes at %d", i)
		}

		fingerprint := l.Fingerprint()
		require.NoError(t, l.MergeFreeBlocks())
		assert.Equal(t, fingerprint, l.Fingerprint())
	})
}

// Interleaves random merges, compactions and pushes on one list so that freed
// arena slots are reused between operations.
func TestListOperations_RandomModel(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	l := New()
	var model []Segment

	for i := 0; i < 2000; i++ {
		switch rng.Intn(4) {
		case 0, 1:
			limit := rng.Int63n(8) + 1
			var seg Segment
			if rng.Intn(2) == 0 {
				seg = Hole(0, limit)
			} else {
				seg = Process(i, 0, limit)
			}
			if len(model) > 0 {
				// Keep the list contiguous by placing the new head just below the old one.
				seg.Base = model[0].Base - limit
				if seg.Base < 0 {
					continue
				}
			} else {
				seg.Base = 1 << 20
			}
			require.NoError(t, l.Push(seg))
			model = append([]Segment{seg}, model...)
		case 2:
			require.NoError(t, l.MergeFreeBlocks())
			model = mergeModel(model)
		case 3:
			require.NoError(t, l.Compact())
			model = compactModel(model)
		}
		require.Equal(t, len(model), l.Len())
	}
	assert.Equal(t, model, l.Segments())
}
