package platform

import (
	"io"
	"os"
	"sync"
)

const bufferSize = 1 << 20 // 1 MiB

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, bufferSize)
		return &b
	},
}

// copyReadWrite copies the whole source through a pooled buffer.
func copyReadWrite(params CopyFileParams) (CopyResult, error) {
	srcFd, err := os.Open(params.SrcPath)
	if err != nil {
		return CopyResult{}, err
	}
	defer srcFd.Close()

	n, err := CopyReader(params.DstFd, srcFd)
	return CopyResult{BytesWritten: n, Method: ReadWrite}, err
}

// CopyReader copies src into dst until EOF using a pooled buffer. It is the
// path used when the source has to be wrapped (for example rate limited).
func CopyReader(dst io.Writer, src io.Reader) (int64, error) {
	bufp := bufPool.Get().(*[]byte)
	defer bufPool.Put(bufp)

	// Hide ReaderFrom/WriterTo so io.CopyBuffer really uses buf.
	return io.CopyBuffer(struct{ io.Writer }{dst}, struct{ io.Reader }{src}, *bufp)
}
