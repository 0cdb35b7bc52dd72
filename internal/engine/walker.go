package engine

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// Walk returns a lazy depth-first traversal of root. The root is yielded
// first, then each directory's children in name order, every object exactly
// once. Symlinks other than the root are not followed. A directory that
// cannot be read is yielded as an entry and then as a *WalkError; the walk
// then moves on to its siblings.
//
// Each range over the returned sequence starts a fresh walk.
func Walk(root string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		info, err := os.Stat(root)
		if err != nil {
			yield(Entry{Path: root}, &WalkError{Path: root, Err: err})
			return
		}

		stack := []Entry{{Path: root, d: fs.FileInfoToDirEntry(info)}}
		for len(stack) > 0 {
			e := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(e, nil) {
				return
			}
			if e.Kind() != KindDir {
				continue
			}

			children, err := readDir(e)
			// os.ReadDir returns whatever it read before failing.
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
			if err != nil {
				if !yield(Entry{Path: e.Path, Depth: e.Depth}, &WalkError{Path: e.Path, Depth: e.Depth, Err: err}) {
					return
				}
			}
		}
	}
}

func readDir(dir Entry) ([]Entry, error) {
	des, err := os.ReadDir(dir.Path)
	entries := make([]Entry, 0, len(des))
	for _, d := range des {
		entries = append(entries, Entry{
			Path:  filepath.Join(dir.Path, d.Name()),
			Depth: dir.Depth + 1,
			d:     d,
		})
	}
	return entries, err
}
