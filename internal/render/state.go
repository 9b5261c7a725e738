package render

import "fmt"

// State is the render loop's position in its cycle.
type State int

const (
	Idle State = iota
	Polling
	Decoding
	Skipping
	Presenting
	ShuttingDown
)

var stateNames = [...]string{
	Idle:         "idle",
	Polling:      "polling",
	Decoding:     "decoding",
	Skipping:     "skipping",
	Presenting:   "presenting",
	ShuttingDown: "shutting down",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}
