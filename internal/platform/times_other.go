//go:build !linux && !darwin

package platform

import (
	"fmt"
	"os"
	"time"
)

// AccessTime returns the modification time; access times are not exposed
// portably here.
func AccessTime(info os.FileInfo) time.Time {
	return info.ModTime()
}

// SetFileTimes sets the access and modification times of path.
func SetFileTimes(path string, accTime, modTime time.Time) error {
	if err := os.Chtimes(path, accTime, modTime); err != nil {
		return fmt.Errorf("chtimes %s: %w", path, err)
	}
	return nil
}
