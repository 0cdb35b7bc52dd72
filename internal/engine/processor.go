package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bamsammich/drivetan/internal/event"
	"github.com/bamsammich/drivetan/internal/platform"
	"github.com/bamsammich/drivetan/internal/stats"
	"github.com/bamsammich/drivetan/internal/stub"
)

// ErrDestinationExists is returned when a file or stub would overwrite
// something already placed in the destination tree.
var ErrDestinationExists = errors.New("destination already exists")

// Status is the result class of processing one entry.
type Status int

const (
	Succeeded Status = iota
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Outcome is the result of processing one entry. Warning is only set on
// Succeeded outcomes whose best-effort second step (timestamp propagation)
// failed; the written file is kept.
type Outcome struct {
	Status  Status
	Path    string // source path
	DstPath string
	Action  event.Action
	Size    int64
	Err     error
	Warning error
}

// Tally returns the counters this outcome contributes to a run.
func (o Outcome) Tally() stats.Tally {
	var t stats.Tally
	switch o.Status {
	case Failed:
		t.Failed = 1
		return t
	case Skipped:
		t.Skipped = 1
		return t
	}

	t.Succeeded = 1
	if o.Warning != nil {
		t.Warnings = 1
	}
	switch o.Action {
	case event.ActionDir:
		t.Dirs = 1
	case event.ActionCopy:
		t.Copied = 1
		t.BytesCopied = o.Size
	case event.ActionStub:
		t.Stubbed = 1
		t.BytesStubbed = o.Size
	}
	return t
}

// Event converts the outcome into an event for the presenter.
func (o Outcome) Event() event.Event {
	ev := event.Event{
		Path:    o.Path,
		DstPath: o.DstPath,
		Action:  o.Action,
		Size:    o.Size,
	}
	switch {
	case o.Status == Failed:
		ev.Type = event.EntryFailed
		ev.Error = o.Err
	case o.Status == Skipped:
		ev.Type = event.EntrySkipped
		ev.Error = o.Err
	case o.Warning != nil:
		ev.Type = event.EntryWarning
		ev.Error = o.Warning
	default:
		ev.Type = event.EntryDone
	}
	return ev
}

// Processor materializes walked entries in the destination tree.
type Processor struct {
	cfg     Config
	limiter *rate.Limiter
}

// NewProcessor creates a processor for a prepared config.
func NewProcessor(cfg Config) *Processor {
	p := &Processor{cfg: cfg}
	if cfg.BWLimit > 0 {
		p.limiter = NewBWLimiter(cfg.BWLimit)
	}
	return p
}

// Process creates the destination counterpart of e: a directory, a verbatim
// copy, or a stub. Failures are reported in the outcome, never returned.
// A symlink is materialized from its target: a link to a directory becomes an
// empty directory, a link to a file is copied or stubbed by the target's size.
func (p *Processor) Process(ctx context.Context, e Entry) Outcome {
	out := Outcome{Path: e.Path}

	dst, err := Relativize(p.cfg.Src, p.cfg.Dst, e.Path)
	if err != nil {
		return failed(out, err)
	}

	switch e.Kind() {
	case KindDir:
		return p.createDirectory(out, dst)

	case KindFile:
		info, err := e.Info()
		if err != nil {
			return failed(out, fmt.Errorf("metadata %s: %w", e.Path, err))
		}
		return p.materializeFile(ctx, out, dst, info)

	case KindSymlink:
		// Materialize whatever the link points at.
		info, err := os.Stat(e.Path)
		if err != nil {
			return failed(out, fmt.Errorf("resolve symlink %s: %w", e.Path, err))
		}
		switch {
		case info.IsDir():
			return p.createDirectory(out, dst)
		case info.Mode().IsRegular():
			return p.materializeFile(ctx, out, dst, info)
		}
		out.Status = Skipped
		out.Err = fmt.Errorf("symlink %s points at a %s", e.Path, describeMode(info.Mode()))
		return out

	default:
		out.Status = Skipped
		if info, err := e.Info(); err == nil {
			out.Err = fmt.Errorf("unsupported file type: %s", describeMode(info.Mode()))
		}
		return out
	}
}

func (p *Processor) createDirectory(out Outcome, dst string) Outcome {
	out.Action = event.ActionDir
	out.DstPath = dst
	if p.cfg.DryRun {
		return out
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return failed(out, fmt.Errorf("mkdir %s: %w", dst, err))
	}
	return out
}

func (p *Processor) materializeFile(ctx context.Context, out Outcome, dst string, info fs.FileInfo) Outcome {
	size := info.Size()
	accTime := platform.AccessTime(info)
	modTime := info.ModTime()
	out.Size = size

	if size > p.cfg.MaxInlineSize {
		out.Action = event.ActionStub
		out.DstPath = filepath.Join(filepath.Dir(dst), stub.Name(filepath.Base(dst), p.cfg.StubExtension))
	} else {
		out.Action = event.ActionCopy
		out.DstPath = dst
	}

	if p.cfg.DryRun {
		return out
	}

	var err error
	if out.Action == event.ActionStub {
		content := stub.Format(size, p.cfg.Magic)
		err = writeAtomic(out.DstPath, 0o644, func(f *os.File) error {
			_, werr := f.Write(content)
			return werr
		})
	} else {
		err = writeAtomic(out.DstPath, info.Mode().Perm(), func(f *os.File) error {
			return p.copyData(ctx, out.Path, f, size)
		})
	}
	if err != nil {
		return failed(out, err)
	}

	// The file is in place; a timestamp failure only downgrades the outcome.
	if err := platform.SetFileTimes(out.DstPath, accTime, modTime); err != nil {
		out.Warning = fmt.Errorf("propagate timestamps: %w", err)
	}
	return out
}

func (p *Processor) copyData(ctx context.Context, srcPath string, dst *os.File, size int64) error {
	if p.limiter == nil {
		if _, err := platform.CopyFile(platform.CopyFileParams{
			DstFd:   dst,
			SrcPath: srcPath,
			SrcSize: size,
		}); err != nil {
			return fmt.Errorf("copy data %s: %w", srcPath, err)
		}
		return nil
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", srcPath, err)
	}
	defer src.Close()

	if _, err := platform.CopyReader(dst, newRateLimitedReader(ctx, src, p.limiter)); err != nil {
		return fmt.Errorf("copy data %s: %w", srcPath, err)
	}
	return nil
}

// writeAtomic creates path through a temporary sibling that is renamed into
// place once fill succeeds. Missing parent directories are created, since a
// file may be reached before its directory entry is processed.
func writeAtomic(path string, perm os.FileMode, fill func(*os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create parent dir %s: %w", dir, err)
	}
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrDestinationExists, path)
	}

	// The final name may already be close to NAME_MAX, so it is not part of
	// the temp name.
	tmpPath := filepath.Join(dir, tmpFileName())

	tmpFd, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create tmp %s: %w", tmpPath, err)
	}
	defer func() {
		_ = os.Remove(tmpPath) // no-op if rename succeeded
	}()

	if err := fill(tmpFd); err != nil {
		tmpFd.Close()
		return err
	}
	if err := tmpFd.Close(); err != nil {
		return fmt.Errorf("close tmp %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename %s -> %s: %w", tmpPath, path, err)
	}
	return nil
}

func tmpFileName() string {
	return ".drivetan-" + uuid.New().String() + ".tmp"
}

func failed(out Outcome, err error) Outcome {
	out.Status = Failed
	out.Err = err
	return out
}
