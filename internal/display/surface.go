package display

import (
	"image"

	"github.com/go-faster/errors"

	"github.com/junsooki/ledsim/internal/frame"
)

// Opaque is the alpha value of every pixel in the surface buffer.
const Opaque = 0xff

// Surface owns the RGBA buffer shown in the window. It is not safe for
// concurrent use; the render loop is its only caller.
type Surface struct {
	dim       frame.Dimension
	img       *image.RGBA
	presenter Presenter
}

// NewSurface returns a surface of exactly dim pixels, all black and opaque.
func NewSurface(dim frame.Dimension, p Presenter) (*Surface, error) {
	if err := dim.Validate(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("nil presenter")
	}
	img := image.NewRGBA(image.Rect(0, 0, dim.Width, dim.Height))
	for i := 3; i < len(img.Pix); i += frame.BytesPerPixel {
		img.Pix[i] = Opaque
	}
	return &Surface{dim: dim, img: img, presenter: p}, nil
}

// Dimension returns the grid size of the surface.
func (s *Surface) Dimension() frame.Dimension { return s.dim }

// Apply overwrites every pixel from g with alpha forced opaque. A grid of
// another size is rejected and the buffer is left as it was.
func (s *Surface) Apply(g *frame.Grid) error {
	if g == nil {
		return errors.New("apply nil grid")
	}
	if g.Dim != s.dim || len(g.Cells) != s.dim.Cells() {
		return errors.Errorf("grid %v does not match surface %v", g.Dim, s.dim)
	}
	pix := s.img.Pix
	for i, c := range g.Cells {
		o := i * frame.BytesPerPixel
		pix[o] = c.R
		pix[o+1] = c.G
		pix[o+2] = c.B
		pix[o+3] = Opaque
	}
	return nil
}

// Present submits the current buffer. Any failure is returned as a
// *PresentError.
func (s *Surface) Present() error {
	if err := s.presenter.Present(s.img.Pix); err != nil {
		return &PresentError{Err: err}
	}
	return nil
}

// Pix exposes the buffer for read-only use.
func (s *Surface) Pix() []byte { return s.img.Pix }

// Snapshot returns a copy of the buffer.
func (s *Surface) Snapshot() []byte {
	out := make([]byte, len(s.img.Pix))
	copy(out, s.img.Pix)
	return out
}

// Image returns the buffer as an image. Callers must not modify it.
func (s *Surface) Image() *image.RGBA { return s.img }
