package memlist

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Stats summarises a list.
type Stats struct {
	Segments  int
	Holes     int
	Processes int

	FreeSpace      int64
	AllocatedSpace int64
	LargestHole    int64
}

// TotalSpace is the sum of all segment limits.
func (s Stats) TotalSpace() int64 {
	return s.FreeSpace + s.AllocatedSpace
}

func (l *List) Stats() Stats {
	var s Stats
	for _, seg := range l.All() {
		s.Segments++
		if seg.Hole {
			s.Holes++
			s.FreeSpace += seg.Limit
			s.LargestHole = max(s.LargestHole, seg.Limit)
		} else {
			s.Processes++
			s.AllocatedSpace += seg.Limit
		}
	}
	return s
}

// Fingerprint hashes the ordered segment fields. Lists holding equal segments
// in the same order have equal fingerprints; the owner of a hole is ignored.
func (l *List) Fingerprint() uint64 {
	var buf [25]byte
	digest := xxhash.New()
	for _, seg := range l.All() {
		owner := uint64(seg.Owner)
		if seg.Hole {
			buf[0] = 1
			owner = 0
		} else {
			buf[0] = 0
		}
		binary.LittleEndian.PutUint64(buf[1:9], owner)
		binary.LittleEndian.PutUint64(buf[9:17], uint64(seg.Base))
		binary.LittleEndian.PutUint64(buf[17:25], uint64(seg.Limit))
		digest.Write(buf[:])
	}
	return digest.Sum64()
}
