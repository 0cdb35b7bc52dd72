//go:build !linux

package platform

// CopyFile copies with read/write on platforms without copy_file_range.
func CopyFile(params CopyFileParams) (CopyResult, error) {
	return copyReadWrite(params)
}
