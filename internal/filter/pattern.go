package filter

import (
	"fmt"
	"regexp"
)

// PatternCompileError reports a skip pattern that is not a valid regular
// expression.
type PatternCompileError struct {
	Pattern string
	Line    int
	Err     error
}

func (e *PatternCompileError) Error() string {
	return fmt.Sprintf("skip pattern %d %q: %v", e.Line, e.Pattern, e.Err)
}

func (e *PatternCompileError) Unwrap() error { return e.Err }

// compiledPattern is one regular expression of a SkipSet.
type compiledPattern struct {
	re       *regexp.Regexp
	original string
}

func compilePattern(pattern string, line int) (*compiledPattern, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternCompileError{Pattern: pattern, Line: line, Err: err}
	}
	return &compiledPattern{re: re, original: pattern}, nil
}

func (cp *compiledPattern) match(path []byte) bool {
	return cp.re.Match(path)
}
