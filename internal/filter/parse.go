package filter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadFile reads skip patterns from path, one regular expression per line.
// An empty path yields an empty set.
func LoadFile(path string) (*SkipSet, error) {
	if path == "" {
		return &SkipSet{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open skip file: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("skip file %s: %w", path, err)
	}
	return s, nil
}

// Parse reads newline separated patterns from r. Blank lines are ignored and
// a trailing carriage return is dropped. Everything else, including leading
// or trailing spaces, is part of the pattern.
func Parse(r io.Reader) (*SkipSet, error) {
	s := &SkipSet{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if err := s.add(line, lineNum); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read patterns: %w", err)
	}
	return s, nil
}
