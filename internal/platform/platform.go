// Package platform holds the OS-specific file primitives: fast copies and
// timestamp propagation.
package platform

import "os"

// CopyMethod identifies which syscall/strategy was used for a copy.
type CopyMethod int

const (
	ReadWrite     CopyMethod = iota
	CopyFileRange            // Linux copy_file_range(2)
)

func (m CopyMethod) String() string {
	switch m {
	case ReadWrite:
		return "read_write"
	case CopyFileRange:
		return "copy_file_range"
	default:
		return "unknown"
	}
}

// CopyResult reports the outcome of a copy operation.
type CopyResult struct {
	BytesWritten int64
	Method       CopyMethod
}

// CopyFileParams describes a whole-file copy into an already open
// destination. The source is read until EOF; SrcSize is a preallocation
// hint only.
type CopyFileParams struct {
	DstFd   *os.File
	SrcPath string
	SrcSize int64
}
