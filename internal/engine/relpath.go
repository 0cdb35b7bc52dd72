package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var errOutsideRoot = errors.New("path is outside the source root")

// PathDiffError reports an entry path that cannot be expressed relative to
// the source root.
type PathDiffError struct {
	Path string
	Root string
	Err  error
}

func (e *PathDiffError) Error() string {
	return fmt.Sprintf("could not diff paths %s, %s: %v", e.Path, e.Root, e.Err)
}

func (e *PathDiffError) Unwrap() error { return e.Err }

// Relativize maps path, which must live under srcRoot, to the same relative
// location under dstRoot.
func Relativize(srcRoot, dstRoot, path string) (string, error) {
	rel, err := filepath.Rel(srcRoot, path)
	if err != nil {
		return "", &PathDiffError{Path: path, Root: srcRoot, Err: err}
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &PathDiffError{Path: path, Root: srcRoot, Err: errOutsideRoot}
	}
	return filepath.Join(dstRoot, rel), nil
}
