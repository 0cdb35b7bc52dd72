package ui

import (
	"io"
	"log/slog"

	"github.com/bamsammich/drivetan/internal/event"
)

// plainPresenter lists every successfully mirrored source path on w, one per
// line, and sends diagnostics to the logger.
type plainPresenter struct {
	w     io.Writer
	log   *slog.Logger
	isTTY bool
	buf   []byte
}

func (p *plainPresenter) Emit(ev event.Event) {
	logDiagnostic(p.log, ev)
	if ev.Type != event.EntryDone && ev.Type != event.EntryWarning {
		return
	}

	// Pipes get the raw path bytes; terminals get something printable.
	path := ev.Path
	if p.isTTY {
		path = DisplayPath(path)
	}
	p.buf = append(p.buf[:0], path...)
	p.buf = append(p.buf, '\n')
	if _, err := p.w.Write(p.buf); err != nil {
		p.log.Debug("write path listing", "error", err)
	}
}
