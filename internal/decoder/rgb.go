package decoder

import (
	"fmt"

	"github.com/go-faster/errors"

	"github.com/junsooki/ledsim/internal/frame"
)

// ErrSizeMismatch is matched by every *SizeMismatchError.
var ErrSizeMismatch = errors.New("frame size mismatch")

// SizeMismatchError reports a raw frame whose length is not W*H*3.
type SizeMismatchError struct {
	Expected int
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("frame size mismatch: expected %d bytes, got %d", e.Expected, e.Actual)
}

func (e *SizeMismatchError) Is(target error) bool {
	return target == ErrSizeMismatch
}

// Decode converts raw row-major RGB triples into a new grid.
func Decode(raw []byte, dim frame.Dimension) (*frame.Grid, error) {
	if err := dim.Validate(); err != nil {
		return nil, err
	}
	g := frame.NewGrid(dim)
	if err := DecodeInto(g, raw); err != nil {
		return nil, err
	}
	return g, nil
}

// DecodeInto overwrites every cell of dst from raw. On error dst is left
// untouched.
func DecodeInto(dst *frame.Grid, raw []byte) error {
	if dst == nil {
		return errors.New("decode into nil grid")
	}
	if err := dst.Dim.Validate(); err != nil {
		return err
	}
	if len(dst.Cells) != dst.Dim.Cells() {
		return errors.Errorf("grid has %d cells, want %d", len(dst.Cells), dst.Dim.Cells())
	}
	expected := dst.Dim.FrameSize()
	if len(raw) != expected {
		return &SizeMismatchError{Expected: expected, Actual: len(raw)}
	}
	for i := range dst.Cells {
		o := i * frame.BytesPerCell
		dst.Cells[i] = frame.Color{R: raw[o], G: raw[o+1], B: raw[o+2]}
	}
	return nil
}

// RGBDecoder decodes frames of a fixed dimension.
type RGBDecoder struct {
	dim frame.Dimension
}

func NewRGBDecoder(dim frame.Dimension) *RGBDecoder {
	return &RGBDecoder{dim: dim}
}

func (d *RGBDecoder) Decode(raw []byte) (*frame.Grid, error) {
	return Decode(raw, d.dim)
}

// FrameSize returns the only raw length this decoder accepts.
func (d *RGBDecoder) FrameSize() int {
	return d.dim.FrameSize()
}
