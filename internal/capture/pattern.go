package capture

import (
	"math/rand/v2"
	"time"

	"github.com/go-faster/errors"

	"github.com/junsooki/ledsim/internal/frame"
)

// Pattern names a test pattern.
type Pattern string

const (
	Solid    Pattern = "solid"
	Gradient Pattern = "gradient"
	Chase    Pattern = "chase"
	Noise    Pattern = "noise"
)

// Patterns lists every supported pattern.
var Patterns = []Pattern{Solid, Gradient, Chase, Noise}

var solidCycle = []frame.Color{{R: 255}, {G: 255}, {B: 255}, {R: 255, G: 255, B: 255}}

// Generator produces test-pattern frames at a fixed rate.
type Generator struct {
	dim     frame.Dimension
	pattern Pattern
	fps     int
	rng     *rand.Rand
	frameCh chan *Frame
	stopCh  chan struct{}
	running bool
}

// NewGenerator creates a generator for pattern at fps frames per second.
func NewGenerator(dim frame.Dimension, pattern Pattern, fps int) (*Generator, error) {
	if err := dim.Validate(); err != nil {
		return nil, err
	}
	if fps <= 0 || fps > 240 {
		return nil, errors.Errorf("fps must be 1-240, got %d", fps)
	}
	if !pattern.valid() {
		return nil, errors.Errorf("unknown pattern %q", pattern)
	}
	return &Generator{
		dim:     dim,
		pattern: pattern,
		fps:     fps,
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x1ed)),
		frameCh: make(chan *Frame, 2),
		stopCh:  make(chan struct{}),
	}, nil
}

func (p Pattern) valid() bool {
	for _, q := range Patterns {
		if p == q {
			return true
		}
	}
	return false
}

func (g *Generator) Start() error {
	if g.running {
		return errors.New("already running")
	}
	g.running = true
	go g.loop()
	return nil
}

func (g *Generator) Stop() {
	if !g.running {
		return
	}
	g.running = false
	close(g.stopCh)
}

// Frames is closed after Stop.
func (g *Generator) Frames() <-chan *Frame {
	return g.frameCh
}

func (g *Generator) loop() {
	ticker := time.NewTicker(time.Second / time.Duration(g.fps))
	defer ticker.Stop()
	defer close(g.frameCh)

	var seq uint64
	for {
		select {
		case <-g.stopCh:
			return
		case <-ticker.C:
			f := &Frame{Grid: g.Render(seq), Seq: seq, Timestamp: time.Now()}
			seq++
			// Drop the frame if the consumer is behind.
			select {
			case g.frameCh <- f:
			default:
			}
		}
	}
}

// Render draws frame number seq of the pattern into a new grid.
func (g *Generator) Render(seq uint64) *frame.Grid {
	out := frame.NewGrid(g.dim)
	w, h := g.dim.Width, g.dim.Height
	switch g.pattern {
	case Solid:
		out.Fill(solidCycle[seq%uint64(len(solidCycle))])
	case Gradient:
		for row := 0; row < h; row++ {
			for col := 0; col < w; col++ {
				x := (col + int(seq%uint64(w))) % w * 255 / max(w-1, 1)
				out.Set(row, col, frame.Color{
					R: uint8(x),
					G: uint8(row * 255 / max(h-1, 1)),
					B: uint8(255 - x),
				})
			}
		}
	case Chase:
		out.Cells[int(seq%uint64(len(out.Cells)))] = frame.Color{R: 255, G: 255, B: 255}
	case Noise:
		for i := range out.Cells {
			v := g.rng.Uint32()
			out.Cells[i] = frame.Color{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16)}
		}
	}
	return out
}
