// Package stub renders the placeholder files written in place of files that
// are too large to mirror verbatim.
package stub

import (
	"fmt"
	"strconv"
)

// Defaults used when no extension or magic is configured.
const (
	DefaultExtension = ".drivetan.txt"
	DefaultMagic     = "DRIVETAN"
)

const (
	kib = 1024
	mib = kib * 1024
	gib = mib * 1024
)

// Format returns the exact contents of a stub for a file of the given size.
//
//	<magic>
//
//	size:       <bytes>
//	human_size: <human>
func Format(size int64, magic string) []byte {
	buf := make([]byte, 0, len(magic)+48)
	buf = append(buf, magic...)
	buf = append(buf, "\n\nsize:       "...)
	buf = strconv.AppendInt(buf, size, 10)
	buf = append(buf, "\nhuman_size: "...)
	buf = append(buf, HumanSize(size)...)
	buf = append(buf, '\n')
	return buf
}

// HumanSize formats size using binary units. Byte counts are integers, larger
// units always carry two decimals.
func HumanSize(size int64) string {
	switch {
	case size < kib:
		return fmt.Sprintf("%d B", size)
	case size < mib:
		return fmt.Sprintf("%.2f KiB", float64(size)/kib)
	case size < gib:
		return fmt.Sprintf("%.2f MiB", float64(size)/mib)
	default:
		return fmt.Sprintf("%.2f GiB", float64(size)/gib)
	}
}

// Name returns the file name a stub for name is written under.
func Name(name, ext string) string {
	return name + ext
}
