package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bamsammich/drivetan/internal/event"
	"github.com/bamsammich/drivetan/internal/filter"
)

var (
	ErrSourceNotDir            = errors.New("source is not a directory")
	ErrDestinationNotEmpty     = errors.New("destination is not empty")
	ErrDestinationNotDir       = errors.New("destination is not a directory")
	ErrDestinationInsideSource = errors.New("destination is inside source")
	ErrNegativeMaxSize         = errors.New("max inline size must not be negative")
)

// Config describes a mirror run.
type Config struct {
	Src string
	Dst string

	// MaxInlineSize is the largest file copied verbatim; anything bigger is
	// replaced by a stub. Zero stubs every non-empty file.
	MaxInlineSize int64
	StubExtension string
	Magic         string
	Skip          *filter.SkipSet // nil skips nothing

	DryRun  bool
	BWLimit int64 // bytes/sec for verbatim copies, 0 for unlimited
	Events  event.Sink
}

// Prepare validates cfg and readies the destination. Source and destination
// are made absolute. A missing destination is created (unless DryRun); an
// existing one must be an empty directory. Every error returned here is
// fatal to the run.
func Prepare(cfg Config) (Config, error) {
	if cfg.MaxInlineSize < 0 {
		return cfg, fmt.Errorf("%w: %d", ErrNegativeMaxSize, cfg.MaxInlineSize)
	}
	if cfg.BWLimit < 0 {
		return cfg, fmt.Errorf("bandwidth limit must not be negative: %d", cfg.BWLimit)
	}

	src, err := filepath.Abs(cfg.Src)
	if err != nil {
		return cfg, fmt.Errorf("resolve source %s: %w", cfg.Src, err)
	}
	info, err := os.Stat(src)
	if err != nil {
		return cfg, fmt.Errorf("source path %s does not exist or cannot be accessed: %w", src, err)
	}
	if !info.IsDir() {
		return cfg, fmt.Errorf("%w: %s", ErrSourceNotDir, src)
	}

	dst, err := filepath.Abs(cfg.Dst)
	if err != nil {
		return cfg, fmt.Errorf("resolve destination %s: %w", cfg.Dst, err)
	}
	if within(src, dst) {
		return cfg, fmt.Errorf("%w: %s is under %s", ErrDestinationInsideSource, dst, src)
	}

	if err := prepareDestination(dst, cfg.DryRun); err != nil {
		return cfg, err
	}

	cfg.Src = src
	cfg.Dst = dst
	if cfg.Events == nil {
		cfg.Events = event.Discard
	}
	return cfg, nil
}

func prepareDestination(dst string, dryRun bool) error {
	info, err := os.Stat(dst)
	if errors.Is(err, os.ErrNotExist) {
		if dryRun {
			return nil
		}
		if err := os.MkdirAll(dst, 0o755); err != nil {
			return fmt.Errorf("creating destination directory failed: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat destination %s: %w", dst, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrDestinationNotDir, dst)
	}

	f, err := os.Open(dst)
	if err != nil {
		return fmt.Errorf("reading destination directory failed: %w", err)
	}
	defer f.Close()

	names, err := f.Readdirnames(1)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading destination directory failed: %w", err)
	}
	if len(names) > 0 {
		return fmt.Errorf("%w: %s", ErrDestinationNotEmpty, dst)
	}
	return nil
}

// within reports whether path is root or lies below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
