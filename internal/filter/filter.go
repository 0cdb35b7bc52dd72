// Package filter decides which source paths are left out of the mirror.
package filter

// SkipSet holds an ordered list of regular expressions matched against raw
// path bytes. A path matching any of them is skipped.
type SkipSet struct {
	patterns []*compiledPattern
}

// NewSkipSet compiles patterns in order. The first invalid pattern aborts
// construction with a *PatternCompileError.
func NewSkipSet(patterns ...string) (*SkipSet, error) {
	s := &SkipSet{}
	for i, p := range patterns {
		if err := s.add(p, i+1); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *SkipSet) add(pattern string, line int) error {
	cp, err := compilePattern(pattern, line)
	if err != nil {
		return err
	}
	s.patterns = append(s.patterns, cp)
	return nil
}

// Len returns the number of patterns in the set.
func (s *SkipSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Patterns returns the source text of every pattern, in order.
func (s *SkipSet) Patterns() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.patterns))
	for i, cp := range s.patterns {
		out[i] = cp.original
	}
	return out
}

// Match reports whether path matches any pattern. The path is matched as
// given: no anchoring is added and directories carry no trailing separator.
func (s *SkipSet) Match(path []byte) bool {
	if s == nil {
		return false
	}
	for _, cp := range s.patterns {
		if cp.match(path) {
			return true
		}
	}
	return false
}
