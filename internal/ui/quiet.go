package ui

import (
	"log/slog"

	"github.com/bamsammich/drivetan/internal/event"
)

// quietPresenter prints no path listing; diagnostics still reach the logger.
type quietPresenter struct {
	log *slog.Logger
}

func (p *quietPresenter) Emit(ev event.Event) {
	logDiagnostic(p.log, ev)
}
