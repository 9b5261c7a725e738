package encoder

import (
	"github.com/go-faster/errors"

	"github.com/junsooki/ledsim/internal/frame"
)

// RGBEncoder writes grids as headerless row-major RGB triples. The output
// buffer is reused between calls, so callers must send it before encoding
// the next frame.
type RGBEncoder struct {
	buf []byte
}

func NewRGBEncoder(dim frame.Dimension) *RGBEncoder {
	return &RGBEncoder{buf: make([]byte, 0, dim.FrameSize())}
}

func (e *RGBEncoder) Encode(g *frame.Grid) ([]byte, error) {
	if g == nil {
		return nil, errors.New("encode nil grid")
	}
	if len(g.Cells) != g.Dim.Cells() {
		return nil, errors.Errorf("grid has %d cells, want %d", len(g.Cells), g.Dim.Cells())
	}
	buf := e.buf[:0]
	for _, c := range g.Cells {
		buf = append(buf, c.R, c.G, c.B)
	}
	e.buf = buf
	return buf, nil
}
