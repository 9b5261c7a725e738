package display

import (
	"math"

	"github.com/go-faster/errors"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/junsooki/ledsim/internal/frame"
)

// EbitenBackend presents the surface buffer in an Ebitengine window. The
// texture stays at grid resolution and is magnified with nearest-neighbour
// filtering when drawn.
type EbitenBackend struct {
	dim      frame.Dimension
	texture  *ebiten.Image
	disposed bool
}

// NewEbitenBackend configures the window: dim*scale logical pixels,
// resizable, never smaller than one pixel per cell.
func NewEbitenBackend(dim frame.Dimension, scale int, title string) *EbitenBackend {
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowSize(dim.Width*scale, dim.Height*scale)
	ebiten.SetWindowSizeLimits(dim.Width, dim.Height, -1, -1)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return &EbitenBackend{dim: dim}
}

// Present uploads pix into the grid texture.
func (b *EbitenBackend) Present(pix []byte) (err error) {
	if b.disposed {
		return errors.New("backend disposed")
	}
	if len(pix) != b.dim.BufferSize() {
		return errors.Errorf("buffer has %d bytes, want %d", len(pix), b.dim.BufferSize())
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("write pixels: %v", r)
		}
	}()
	if b.texture == nil {
		b.texture = ebiten.NewImage(b.dim.Width, b.dim.Height)
	}
	b.texture.WritePixels(pix)
	return nil
}

// Draw letterboxes the texture into screen.
func (b *EbitenBackend) Draw(screen *ebiten.Image) {
	if b.texture == nil {
		return
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale, offsetX, offsetY := aspectFitTransform(float64(sw), float64(sh), float64(b.dim.Width), float64(b.dim.Height))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(b.texture, op)
}

// Layout keeps the screen at the window's size so Draw controls scaling.
func (b *EbitenBackend) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Dispose releases the texture. Later Present calls fail.
func (b *EbitenBackend) Dispose() {
	if b.texture != nil {
		b.texture.Deallocate()
		b.texture = nil
	}
	b.disposed = true
}

// aspectFitTransform returns scale and offsets to fit frame into view with letterboxing.
func aspectFitTransform(viewW, viewH, frameW, frameH float64) (scale, offsetX, offsetY float64) {
	scale = math.Min(viewW/frameW, viewH/frameH)
	offsetX = (viewW - frameW*scale) / 2
	offsetY = (viewH - frameH*scale) / 2
	return
}
