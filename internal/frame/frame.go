package frame

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Bytes per cell on the wire (RGB) and in the surface buffer (RGBA).
const (
	BytesPerCell  = 3
	BytesPerPixel = 4
)

// MaxFrameSize is the largest UDP payload over IPv4. A frame must fit in one
// datagram.
const MaxFrameSize = 65507

// Dimension is the grid size in cells. It is fixed at startup and determines
// every buffer size in the pipeline.
type Dimension struct {
	Width  int
	Height int
}

// Validate reports an error unless both sides are positive and one frame
// fits in MaxFrameSize bytes.
func (d Dimension) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return errors.Errorf("invalid dimensions: %dx%d", d.Width, d.Height)
	}
	// Divide before multiplying so huge sides cannot wrap.
	if d.Width > MaxFrameSize/BytesPerCell/d.Height {
		return errors.Errorf("dimensions %dx%d exceed %d bytes per frame", d.Width, d.Height, MaxFrameSize)
	}
	return nil
}

// Cells returns the number of grid cells.
func (d Dimension) Cells() int { return d.Width * d.Height }

// FrameSize is the exact length of one raw frame on the wire.
func (d Dimension) FrameSize() int { return d.Cells() * BytesPerCell }

// BufferSize is the length of the RGBA surface buffer.
func (d Dimension) BufferSize() int { return d.Cells() * BytesPerPixel }

func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Color is one LED's color.
type Color struct {
	R, G, B uint8
}

// Black is the color of an unlit cell.
var Black = Color{}

// Grid holds one color per cell in row-major order.
type Grid struct {
	Dim   Dimension
	Cells []Color
}

// NewGrid returns an all-black grid.
func NewGrid(dim Dimension) *Grid {
	return &Grid{Dim: dim, Cells: make([]Color, dim.Cells())}
}

// At returns the color at (row, col).
func (g *Grid) At(row, col int) Color {
	return g.Cells[row*g.Dim.Width+col]
}

// Set stores c at (row, col).
func (g *Grid) Set(row, col int, c Color) {
	g.Cells[row*g.Dim.Width+col] = c
}

// Fill sets every cell to c.
func (g *Grid) Fill(c Color) {
	for i := range g.Cells {
		g.Cells[i] = c
	}
}
