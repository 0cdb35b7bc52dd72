package ui

import (
	"fmt"
	"time"

	"github.com/bamsammich/drivetan/internal/stats"
)

// Summary builds the final summary line printed after every run.
// Format: success count: 4, error count: 0, skipped count: 1
func Summary(t stats.Tally) string {
	return fmt.Sprintf("success count: %d, error count: %d, skipped count: %d",
		t.Succeeded, t.Failed, t.SkippedTotal())
}

// Details builds a longer breakdown of a run for verbose output.
// Format: dirs 12  copied 1,204 (3.2 GiB)  stubbed 87 (410.5 GiB)  time 1m 02s
func Details(t stats.Tally, elapsed time.Duration) string {
	return fmt.Sprintf("dirs %s  copied %s (%s)  stubbed %s (%s)  time %s",
		FormatCount(t.Dirs),
		FormatCount(t.Copied), FormatBytes(t.BytesCopied),
		FormatCount(t.Stubbed), FormatBytes(t.BytesStubbed),
		FormatDuration(elapsed),
	)
}
