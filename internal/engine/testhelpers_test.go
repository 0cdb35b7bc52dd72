package engine

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bamsammich/drivetan/internal/event"
)

// writeFile creates path (and its parents) with the given contents.
func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// entryFor builds the Entry the walker would produce for path.
func entryFor(t *testing.T, path string) Entry {
	t.Helper()
	info, err := os.Lstat(path)
	require.NoError(t, err)
	return Entry{Path: path, d: fs.FileInfoToDirEntry(info)}
}

// prepared returns a prepared config mirroring a fresh source dir into a
// fresh (absent) destination.
func prepared(t *testing.T, mutate func(*Config)) Config {
	t.Helper()
	base := t.TempDir()
	src := filepath.Join(base, "src")
	require.NoError(t, os.Mkdir(src, 0o755))
	cfg := Config{
		Src:           src,
		Dst:           filepath.Join(base, "dst"),
		StubExtension: ".drivetan.txt",
		Magic:         "DRIVETAN",
	}
	if mutate != nil {
		mutate(&cfg)
	}
	out, err := Prepare(cfg)
	require.NoError(t, err)
	return out
}

// recorder collects emitted events in order.
type recorder struct {
	events []event.Event
}

func (r *recorder) Emit(ev event.Event) { r.events = append(r.events, ev) }

func (r *recorder) paths(typ event.Type) []string {
	var out []string
	for _, ev := range r.events {
		if ev.Type == typ {
			out = append(out, ev.Path)
		}
	}
	return out
}

func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}
