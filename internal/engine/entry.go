package engine

import (
	"fmt"
	"io/fs"
)

// Kind classifies a walked filesystem object.
type Kind int

const (
	KindFile Kind = iota
	KindDir
	KindSymlink
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

func kindOf(mode fs.FileMode) Kind {
	switch {
	case mode.IsDir():
		return KindDir
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// describeMode names the type of a non-regular, non-directory mode.
func describeMode(mode fs.FileMode) string {
	switch {
	case mode&fs.ModeNamedPipe != 0:
		return "named pipe"
	case mode&fs.ModeSocket != 0:
		return "socket"
	case mode&fs.ModeCharDevice != 0:
		return "character device"
	case mode&fs.ModeDevice != 0:
		return "device"
	case mode&fs.ModeSymlink != 0:
		return "symlink"
	case mode&fs.ModeIrregular != 0:
		return "irregular file"
	default:
		return mode.Type().String()
	}
}

// Entry is one object discovered by Walk. Its metadata is fetched only when
// Info is called.
type Entry struct {
	Path  string // absolute when the walk root is absolute
	Depth int    // 0 for the walk root
	d     fs.DirEntry
}

// Kind reports the entry kind without following symlinks.
func (e Entry) Kind() Kind {
	if e.d == nil {
		return KindOther
	}
	return kindOf(e.d.Type())
}

// Info returns the entry's metadata as seen by lstat.
func (e Entry) Info() (fs.FileInfo, error) {
	if e.d == nil {
		return nil, fmt.Errorf("no metadata for %s", e.Path)
	}
	return e.d.Info()
}

// WalkError reports a part of the tree that could not be read. The walk
// continues past it.
type WalkError struct {
	Path  string
	Depth int
	Err   error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("read directory %s: %v", e.Path, e.Err)
}

func (e *WalkError) Unwrap() error { return e.Err }
