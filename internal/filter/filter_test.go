package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptySetMatchesNothing(t *testing.T) {
	s, err := NewSkipSet()
	require.NoError(t, err)
	assert.Zero(t, s.Len())
	assert.False(t, s.Match([]byte("/any/file.txt")))
	assert.False(t, s.Match(nil))
}

func TestNilSetMatchesNothing(t *testing.T) {
	var s *SkipSet
	assert.Zero(t, s.Len())
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Patterns())
	assert.False(t, s.Match([]byte("/any/file.txt")))
}

func TestAnyPatternMatches(t *testing.T) {
	s, err := NewSkipSet(`\.git`, `node_modules`, `\.DS_Store$`)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	assert.True(t, s.Match([]byte("/src/repo/.git/config")))
	assert.True(t, s.Match([]byte("/src/web/node_modules/x/y.js")))
	assert.True(t, s.Match([]byte("/src/photos/.DS_Store")))
	assert.False(t, s.Match([]byte("/src/repo/main.go")))
	assert.False(t, s.Match([]byte("/src/photos/.DS_Store.bak")))
}

func TestDescendantsTestedIndependently(t *testing.T) {
	// A pattern that matches a directory name only at the end of the path
	// leaves the directory's children in play.
	s, err := NewSkipSet(`/cache$`)
	require.NoError(t, err)

	assert.True(t, s.Match([]byte("/src/cache")))
	assert.False(t, s.Match([]byte("/src/cache/keep.txt")))
}

func TestNewSkipSetInvalidPattern(t *testing.T) {
	_, err := NewSkipSet(`ok`, `[unclosed`)
	require.Error(t, err)

	var pce *PatternCompileError
	require.True(t, errors.As(err, &pce))
	assert.Equal(t, 2, pce.Line)
}

func TestPatternsKeepOrder(t *testing.T) {
	s, err := NewSkipSet(`\.iso$`, `^/media/tmp`)
	require.NoError(t, err)

	assert.Equal(t, []string{`\.iso$`, `^/media/tmp`}, s.Patterns())
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Match([]byte("/media/disk.iso")))
}
