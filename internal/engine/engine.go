// Package engine mirrors a source tree into a destination, replacing large
// files with stubs.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bamsammich/drivetan/internal/event"
	"github.com/bamsammich/drivetan/internal/stats"
)

// ErrNothingProcessed is the run-level failure when no entry succeeded.
var ErrNothingProcessed = errors.New("no entries successfully processed")

// Result is the outcome of a mirror run.
type Result struct {
	Stats stats.Tally
	Err   error
}

// Run walks cfg.Src and materializes every entry not matched by cfg.Skip,
// one entry at a time. Per-entry failures are counted and reported through
// cfg.Events; they never stop the run. cfg should come from Prepare.
func Run(ctx context.Context, cfg Config) Result {
	sink := cfg.Events
	if sink == nil {
		sink = event.Discard
	}
	proc := NewProcessor(cfg)

	slog.Debug("starting mirror",
		"src", cfg.Src,
		"dst", cfg.Dst,
		"max_inline_size", cfg.MaxInlineSize,
		"skip_patterns", cfg.Skip.Patterns(),
		"dry_run", cfg.DryRun,
	)

	var tally stats.Tally
	for entry, walkErr := range Walk(cfg.Src) {
		if err := ctx.Err(); err != nil {
			return Result{Stats: tally, Err: fmt.Errorf("mirror interrupted: %w", err)}
		}

		if walkErr != nil {
			tally = tally.Add(stats.Tally{Failed: 1})
			sink.Emit(event.Event{
				Type:      event.WalkFailed,
				Timestamp: time.Now(),
				Path:      entry.Path,
				Error:     walkErr,
			})
			continue
		}

		if cfg.Skip.Match([]byte(entry.Path)) {
			tally = tally.Add(stats.Tally{Filtered: 1})
			sink.Emit(event.Event{
				Type:      event.EntryFiltered,
				Timestamp: time.Now(),
				Path:      entry.Path,
			})
			continue
		}

		out := proc.Process(ctx, entry)
		tally = tally.Add(out.Tally())

		ev := out.Event()
		ev.Timestamp = time.Now()
		sink.Emit(ev)
	}

	slog.Debug("mirror finished", "stats", tally.String())

	if tally.Succeeded == 0 {
		return Result{
			Stats: tally,
			Err:   fmt.Errorf("%w; error count: %d", ErrNothingProcessed, tally.Failed),
		}
	}
	return Result{Stats: tally}
}
