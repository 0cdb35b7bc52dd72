package stub

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_ExactLayout(t *testing.T) {
	got := string(Format(2097152, "DRIVETAN"))
	want := "DRIVETAN\n\nsize:       2097152\nhuman_size: 2.00 MiB\n"
	assert.Equal(t, want, got)
}

func TestFormat_CustomMagic(t *testing.T) {
	got := string(Format(10, "OFFLINE"))
	assert.True(t, strings.HasPrefix(got, "OFFLINE\n\n"))
	assert.Contains(t, got, "size:       10\n")
	assert.True(t, strings.HasSuffix(got, "human_size: 10 B\n"))
}

func TestFormat_EmptyMagic(t *testing.T) {
	assert.Equal(t, "\n\nsize:       0\nhuman_size: 0 B\n", string(Format(0, "")))
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{1, "1 B"},
		{1023, "1023 B"},
		{1024, "1.00 KiB"},
		{5000, "4.88 KiB"},
		{1536, "1.50 KiB"},
		{1024*1024 - 1, "1024.00 KiB"},
		{1024 * 1024, "1.00 MiB"},
		{2097152, "2.00 MiB"},
		{1024*1024*1024 - 1, "1024.00 MiB"},
		{1024 * 1024 * 1024, "1.00 GiB"},
		{5 * 1024 * 1024 * 1024 * 1024, "5120.00 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanSize(tt.size))
		})
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "big.bin.drivetan.txt", Name("big.bin", DefaultExtension))
	assert.Equal(t, "big.bin", Name("big.bin", ""))
}
