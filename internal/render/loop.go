// Package render drives the cooperative receive/decode/present cycle.
//
// Every tick runs on the windowing layer's update callback. A tick presents
// if a redraw is pending, checks input for a quit request, then makes one
// bounded receive attempt. A frame applied in tick N is presented in tick
// N+1, never in the same tick.
package render

import (
	"github.com/go-faster/errors"
	"github.com/op/go-logging"

	"github.com/junsooki/ledsim/internal/decoder"
	"github.com/junsooki/ledsim/internal/frame"
	"github.com/junsooki/ledsim/internal/input"
	"github.com/junsooki/ledsim/internal/transport"
)

var log = logging.MustGetLogger("render")

// ErrShutdown is returned by Tick once the user asked to quit.
var ErrShutdown = errors.New("render loop shut down")

// Surface is the display the loop paints into.
type Surface interface {
	Apply(g *frame.Grid) error
	Present() error
}

// Stats counts what the loop has done since it was created.
type Stats struct {
	Ticks    uint64
	Received uint64
	Applied  uint64
	Dropped  uint64
	Timeouts uint64
	Errors   uint64
	Presents uint64
}

// Loop is the render loop state machine. It owns the receive buffer and the
// decoded grid.
type Loop struct {
	src     transport.FrameSource
	surface Surface
	events  input.Poller
	dim     frame.Dimension

	buf  []byte
	grid *frame.Grid

	state  State
	redraw bool
	stats  Stats
}

// New builds a loop in the Idle state.
func New(src transport.FrameSource, surface Surface, events input.Poller, dim frame.Dimension) (*Loop, error) {
	if err := dim.Validate(); err != nil {
		return nil, err
	}
	if src == nil || surface == nil || events == nil {
		return nil, errors.New("render loop needs a source, a surface and an input poller")
	}
	return &Loop{
		src:     src,
		surface: surface,
		events:  events,
		dim:     dim,
		// One spare byte so an oversized datagram cannot pass as a full frame.
		buf:   make([]byte, dim.FrameSize()+1),
		grid:  frame.NewGrid(dim),
		state: Idle,
	}, nil
}

// State returns the last phase the loop executed. A tick that applies a
// frame ends in Decoding, and the presentation that follows happens at the
// start of the next tick, which then ends in Polling or a later phase.
func (l *Loop) State() State { return l.state }

// Stats returns a copy of the counters.
func (l *Loop) Stats() Stats { return l.stats }

// RequestRedraw schedules a presentation on the next tick.
func (l *Loop) RequestRedraw() { l.redraw = true }

// Tick runs one scheduling step. It returns ErrShutdown after a quit
// request and a *display.PresentError (as returned by the surface) when
// presentation fails; both leave the loop in ShuttingDown. Network problems
// never surface here.
func (l *Loop) Tick() error {
	if l.state == ShuttingDown {
		return ErrShutdown
	}
	l.stats.Ticks++

	if l.state == Idle {
		l.redraw = true
	}
	if l.redraw {
		l.state = Presenting
		if err := l.surface.Present(); err != nil {
			l.state = ShuttingDown
			return err
		}
		l.redraw = false
		l.stats.Presents++
	}

	for _, ev := range l.events.Poll() {
		if ev.Quits() {
			log.Infof("%s requested, shutting down", ev.Type)
			l.state = ShuttingDown
			return ErrShutdown
		}
		if ev.Type == input.EventExpose {
			l.redraw = true
		}
	}

	l.state = Polling
	out := l.src.TryReceive(l.buf)
	switch out.Kind {
	case transport.TimedOut:
		l.stats.Timeouts++
	case transport.Failed:
		l.stats.Errors++
		log.Warningf("receive: %v", out.Err)
	case transport.Received:
		l.consume(out)
	}
	return nil
}

func (l *Loop) consume(out transport.Outcome) {
	l.stats.Received++
	log.Debugf("received %d bytes from %v", out.Size, out.Sender)

	size := out.Size
	if size < 0 || size > len(l.buf) {
		size = len(l.buf)
	}
	l.state = Decoding
	if err := decoder.DecodeInto(l.grid, l.buf[:size]); err != nil {
		l.drop(out, err)
		return
	}
	if err := l.surface.Apply(l.grid); err != nil {
		l.drop(out, err)
		return
	}
	l.stats.Applied++
	l.redraw = true
}

func (l *Loop) drop(out transport.Outcome, err error) {
	l.state = Skipping
	l.stats.Dropped++
	log.Debugf("dropping datagram from %v: %v", out.Sender, err)
}

// LogStats writes a one-line summary at INFO.
func (l *Loop) LogStats() {
	s := l.stats
	log.Infof("ticks=%d received=%d applied=%d dropped=%d timeouts=%d errors=%d presents=%d",
		s.Ticks, s.Received, s.Applied, s.Dropped, s.Timeouts, s.Errors, s.Presents)
}
