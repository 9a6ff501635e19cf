package scenario

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/ini.v1"
)

// Load reads a scenario file. Files ending in ".zst" are zstd compressed.
//
// Each section of the file is one scenario:
//
//	[two-holes]
//	title    = two hole test
//	op       = merge
//	segments = H:0:10 H:10:12
//
// The optional keys heading and rule set Scenario.Heading and
// Scenario.RuleWidth.
func Load(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario file: %w", err)
	}
	defer f.Close()

	scenarios, err := Parse(f, strings.HasSuffix(path, ".zst"))
	if err != nil {
		return nil, fmt.Errorf("scenario file %s: %w", path, err)
	}
	return scenarios, nil
}

// Parse reads scenarios in INI form from r.
func Parse(r io.Reader, compressed bool) ([]Scenario, error) {
	if compressed {
		zstdReader, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create zstd reader: %w", err)
		}
		defer zstdReader.Close()
		r = zstdReader
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scenarios: %w", err)
	}

	file, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}

	var scenarios []Scenario
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection && len(section.Keys()) == 0 {
			continue
		}
		s, err := parseSection(section)
		if err != nil {
			return nil, fmt.Errorf("section [%s]: %w", section.Name(), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func parseSection(section *ini.Section) (Scenario, error) {
	if !section.HasKey("segments") {
		return Scenario{}, fmt.Errorf("missing segments key: %w", ErrSyntax)
	}
	op, err := ParseOp(section.Key("op").String())
	if err != nil {
		return Scenario{}, err
	}
	segs, err := ParseSegments(section.Key("segments").String())
	if err != nil {
		return Scenario{}, err
	}
	ruleWidth := 0
	if section.HasKey("rule") {
		ruleWidth, err = section.Key("rule").Int()
		if err != nil || ruleWidth < 0 {
			return Scenario{}, fmt.Errorf("rule %q: want a non-negative width: %w", section.Key("rule").String(), ErrSyntax)
		}
	}
	return Scenario{
		Name:      section.Name(),
		Title:     section.Key("title").MustString(section.Name()),
		Heading:   section.Key("heading").String(),
		RuleWidth: ruleWidth,
		Op:        op,
		Segments:  segs,
	}, nil
}
