package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	EntryDone Type = iota + 1
	EntryWarning
	EntryFailed
	EntrySkipped
	EntryFiltered
	WalkFailed
)

var typeNames = [...]string{
	EntryDone:     "EntryDone",
	EntryWarning:  "EntryWarning",
	EntryFailed:   "EntryFailed",
	EntrySkipped:  "EntrySkipped",
	EntryFiltered: "EntryFiltered",
	WalkFailed:    "WalkFailed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Action is what was done (or would be done) for an entry.
type Action int

const (
	ActionNone Action = iota
	ActionDir
	ActionCopy
	ActionStub
)

func (a Action) String() string {
	switch a {
	case ActionDir:
		return "dir"
	case ActionCopy:
		return "copy"
	case ActionStub:
		return "stub"
	default:
		return "none"
	}
}

// Event represents the outcome of one walked entry.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string // source path as walked
	DstPath   string // empty when nothing was written
	Action    Action
	Size      int64 // source size for files
	Error     error // failure cause, or the warning for EntryWarning
}

// Sink consumes events synchronously, in the order they are produced.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(ev Event) { f(ev) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})
