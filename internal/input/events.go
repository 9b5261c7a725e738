package input

// EventType identifies the kind of input event.
type EventType int

const (
	// EventClose is a window close request.
	EventClose EventType = iota
	// EventEscape is the exit key.
	EventEscape
	// EventExpose means the window needs repainting (shown, resized).
	EventExpose
)

func (t EventType) String() string {
	switch t {
	case EventClose:
		return "close"
	case EventEscape:
		return "escape"
	case EventExpose:
		return "expose"
	}
	return "unknown"
}

// Event is one input notification from the windowing layer.
type Event struct {
	Type EventType
}

// Quits reports whether the event ends the program.
func (e Event) Quits() bool {
	return e.Type == EventClose || e.Type == EventEscape
}

// Poller returns the events that arrived since the last call.
type Poller interface {
	Poll() []Event
}
