package ui

import (
	"io"
	"log/slog"

	"github.com/bamsammich/drivetan/internal/event"
)

// Presenter consumes run events as they happen.
type Presenter interface {
	event.Sink
}

// Config configures a Presenter.
type Config struct {
	Writer io.Writer    // receives one source path per successful entry
	Logger *slog.Logger // diagnostics; slog.Default() when nil
	IsTTY  bool         // Writer is a terminal, so paths are made printable
	Quiet  bool
}

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // factory function returns interface by design
func NewPresenter(cfg Config) Presenter {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Quiet {
		return &quietPresenter{log: logger}
	}
	return &plainPresenter{
		w:     cfg.Writer,
		log:   logger,
		isTTY: cfg.IsTTY,
	}
}

// logDiagnostic reports everything that is not a plain success. Shared by all
// presenters so -q only silences the path listing.
func logDiagnostic(log *slog.Logger, ev event.Event) {
	path := DisplayPath(ev.Path)
	switch ev.Type {
	case event.EntryWarning:
		log.Warn("entry mirrored with warning", "path", path, "action", ev.Action.String(), "error", ev.Error)
	case event.EntryFailed:
		log.Error("entry failed", "path", path, "error", ev.Error)
	case event.EntrySkipped:
		log.Warn("entry skipped", "path", path, "error", ev.Error)
	case event.WalkFailed:
		log.Error("walk failed", "path", path, "error", ev.Error)
	case event.EntryFiltered:
		log.Debug("entry filtered", "path", path)
	case event.EntryDone:
		log.Debug("entry done",
			"path", path,
			"dst", DisplayPath(ev.DstPath),
			"action", ev.Action.String(),
			"size", ev.Size,
		)
	}
}
