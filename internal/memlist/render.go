package memlist

import (
	"fmt"
	"io"
	"strings"
)

// Render writes one line per segment, numbered from 1. An empty list writes nothing.
func (l *List) Render(w io.Writer) error {
	pos := 0
	for _, seg := range l.All() {
		pos++
		var err error
		if seg.Hole {
			_, err = fmt.Fprintf(w, "Node %d: H (Hole), base = %d, limit = %d\n", pos, seg.Base, seg.Limit)
		} else {
			_, err = fmt.Fprintf(w, "Node %d: P%d, base = %d, limit = %d\n", pos, seg.Owner, seg.Base, seg.Limit)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *List) String() string {
	var sb strings.Builder
	_ = l.Render(&sb)
	return sb.String()
}
