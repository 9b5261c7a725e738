package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenPoller reads window and keyboard state from Ebitengine. It must be
// polled from the game's Update.
type EbitenPoller struct {
	events []Event

	prevW int
	prevH int
}

// NewEbitenPoller takes over window closing so a close request is reported
// as an event instead of ending the game loop directly.
func NewEbitenPoller() *EbitenPoller {
	ebiten.SetWindowClosingHandled(true)
	return &EbitenPoller{}
}

func (p *EbitenPoller) Poll() []Event {
	p.events = p.events[:0]
	if ebiten.IsWindowBeingClosed() {
		p.events = append(p.events, Event{Type: EventClose})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.events = append(p.events, Event{Type: EventEscape})
	}
	w, h := ebiten.WindowSize()
	if w != p.prevW || h != p.prevH {
		p.prevW, p.prevH = w, h
		p.events = append(p.events, Event{Type: EventExpose})
	}
	return p.events
}
