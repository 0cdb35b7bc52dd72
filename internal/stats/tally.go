// Package stats accumulates per-run counters.
package stats

import "fmt"

// Tally is the running count of outcomes for one run. It is a plain value
// owned by the loop that drives the run.
type Tally struct {
	Succeeded int64
	Failed    int64
	Filtered  int64 // rejected by the skip set
	Skipped   int64 // walked but not materialized (sockets, devices, FIFOs)
	Warnings  int64 // succeeded with a best-effort step failing

	Dirs         int64
	Copied       int64
	Stubbed      int64
	BytesCopied  int64
	BytesStubbed int64 // size of the originals replaced by stubs
}

// SkippedTotal counts every entry left out of the mirror.
func (t Tally) SkippedTotal() int64 {
	return t.Filtered + t.Skipped
}

// Add returns the sum of t and o.
func (t Tally) Add(o Tally) Tally {
	return Tally{
		Succeeded:    t.Succeeded + o.Succeeded,
		Failed:       t.Failed + o.Failed,
		Filtered:     t.Filtered + o.Filtered,
		Skipped:      t.Skipped + o.Skipped,
		Warnings:     t.Warnings + o.Warnings,
		Dirs:         t.Dirs + o.Dirs,
		Copied:       t.Copied + o.Copied,
		Stubbed:      t.Stubbed + o.Stubbed,
		BytesCopied:  t.BytesCopied + o.BytesCopied,
		BytesStubbed: t.BytesStubbed + o.BytesStubbed,
	}
}

func (t Tally) String() string {
	return fmt.Sprintf(
		"succeeded=%d failed=%d filtered=%d skipped=%d warnings=%d dirs=%d copied=%d stubbed=%d bytes=%d stubbed_bytes=%d",
		t.Succeeded, t.Failed, t.Filtered, t.Skipped, t.Warnings,
		t.Dirs, t.Copied, t.Stubbed, t.BytesCopied, t.BytesStubbed,
	)
}
