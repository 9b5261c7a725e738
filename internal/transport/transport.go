package transport

import (
	"fmt"
	"net"
	"time"
)

// DefaultTimeout bounds a single receive attempt.
const DefaultTimeout = 2 * time.Millisecond

// OutcomeKind classifies a receive attempt.
type OutcomeKind int

const (
	// Received means a datagram was copied into the caller's buffer.
	Received OutcomeKind = iota
	// TimedOut means nothing arrived within the timeout. It is the normal
	// steady state, not an error.
	TimedOut
	// Failed means the transport reported an error other than a timeout.
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Received:
		return "received"
	case TimedOut:
		return "timed out"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome is the result of one TryReceive.
type Outcome struct {
	Kind   OutcomeKind
	Size   int
	Sender net.Addr
	Err    error
}

// FrameSource yields at most one frame-sized message per call and never
// blocks longer than its configured timeout.
type FrameSource interface {
	TryReceive(buf []byte) Outcome
	Close() error
}

// FrameSender sends encoded frames.
type FrameSender interface {
	SendFrame(data []byte) error
	Close() error
}

// BindError reports a local endpoint that could not be bound.
type BindError struct {
	Address string
	Err     error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Address, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }
