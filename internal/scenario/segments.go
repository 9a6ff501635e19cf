package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/garethgeorge/memcompact/internal/memlist"
)

// ParseSegments parses a whitespace or comma separated list of segment tokens.
// A hole is written "H:base:limit" and a process "P<owner>:base:limit".
func ParseSegments(s string) ([]memlist.Segment, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	segs := make([]memlist.Segment, 0, len(fields))
	for i, field := range fields {
		seg, err := ParseSegment(field)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i+1, err)
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// ParseSegment parses a single segment token.
func ParseSegment(token string) (memlist.Segment, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return memlist.Segment{}, fmt.Errorf("%q: want kind:base:limit: %w", token, ErrSyntax)
	}
	base, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return memlist.Segment{}, fmt.Errorf("%q: base: %w", token, ErrSyntax)
	}
	limit, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return memlist.Segment{}, fmt.Errorf("%q: limit: %w", token, ErrSyntax)
	}

	kind := strings.ToUpper(parts[0])
	switch {
	case kind == "H":
		return memlist.Hole(base, limit), nil
	case strings.HasPrefix(kind, "P"):
		owner, err := strconv.Atoi(kind[1:])
		if err != nil {
			return memlist.Segment{}, fmt.Errorf("%q: process id: %w", token, ErrSyntax)
		}
		return memlist.Process(owner, base, limit), nil
	default:
		return memlist.Segment{}, fmt.Errorf("%q: unknown segment kind %q: %w", token, parts[0], ErrSyntax)
	}
}

// FormatSegments renders segs in the form accepted by ParseSegments.
func FormatSegments(segs []memlist.Segment) string {
	tokens := make([]string, len(segs))
	for i, seg := range segs {
		if seg.Hole {
			tokens[i] = fmt.Sprintf("H:%d:%d", seg.Base, seg.Limit)
		} else {
			tokens[i] = fmt.Sprintf("P%d:%d:%d", seg.Owner, seg.Base, seg.Limit)
		}
	}
	return strings.Join(tokens, " ")
}
