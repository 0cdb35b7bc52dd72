//go:build linux

package platform

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// copyFileRangeChunk caps a single copy_file_range call.
const copyFileRangeChunk = 1 << 30

// CopyFile tries copy_file_range(2) first and falls back to read/write on
// unsupported or cross-device errors.
func CopyFile(params CopyFileParams) (CopyResult, error) {
	preallocate(params.DstFd, params.SrcSize)

	result, err := copyFileRange(params)
	if err == nil {
		return result, nil
	}
	if !shouldFallback(result, err) {
		return result, err
	}
	return copyReadWrite(params)
}

// shouldFallback reports whether a failed copy_file_range can be retried with
// read/write. The destination offset has already moved past any bytes that
// were copied, so a retry from offset 0 is only safe when nothing was.
func shouldFallback(result CopyResult, err error) bool {
	return result.BytesWritten == 0 && isFallbackErr(err)
}

// errEmptyRange signals that copy_file_range produced nothing on the first
// call, as it does on some pseudo filesystems that report a zero size.
var errEmptyRange = errors.New("copy_file_range copied nothing")

func copyFileRange(params CopyFileParams) (CopyResult, error) {
	srcFd, err := os.Open(params.SrcPath)
	if err != nil {
		return CopyResult{}, err
	}
	defer srcFd.Close()

	var totalWritten int64
	for {
		n, err := unix.CopyFileRange(int(srcFd.Fd()), nil, int(params.DstFd.Fd()), nil, copyFileRangeChunk, 0)
		if err != nil {
			if totalWritten == 0 {
				return CopyResult{}, err
			}
			return CopyResult{BytesWritten: totalWritten, Method: CopyFileRange}, err
		}
		if n == 0 {
			if totalWritten == 0 {
				return CopyResult{}, errEmptyRange
			}
			break
		}
		totalWritten += int64(n)
	}

	return CopyResult{BytesWritten: totalWritten, Method: CopyFileRange}, nil
}

// preallocate attempts to pre-allocate disk space. Errors are ignored as
// fallocate is not supported on all filesystems.
func preallocate(fd *os.File, size int64) {
	if size <= 0 {
		return
	}
	_ = unix.Fallocate(int(fd.Fd()), unix.FALLOC_FL_KEEP_SIZE, 0, size)
}

// isFallbackErr returns true if err should trigger a fallback to read/write.
func isFallbackErr(err error) bool {
	if errors.Is(err, errEmptyRange) {
		return true
	}
	switch {
	case errors.Is(err, unix.ENOSYS),
		errors.Is(err, unix.EXDEV),
		errors.Is(err, unix.EINVAL),
		errors.Is(err, unix.ENOTSUP),
		errors.Is(err, unix.EOPNOTSUPP),
		errors.Is(err, unix.EPERM):
		return true
	}
	return false
}
