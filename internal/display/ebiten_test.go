package display

import (
	"testing"

	"github.com/junsooki/ledsim/internal/frame"
)

func TestAspectFitTransform(t *testing.T) {
	cases := []struct {
		viewW, viewH, frameW, frameH float64
		scale, offX, offY            float64
	}{
		{576, 288, 48, 24, 12, 0, 0},
		{600, 288, 48, 24, 12, 12, 0},
		{576, 400, 48, 24, 12, 0, 56},
		{48, 24, 48, 24, 1, 0, 0},
	}
	for _, tt := range cases {
		s, x, y := aspectFitTransform(tt.viewW, tt.viewH, tt.frameW, tt.frameH)
		if s != tt.scale || x != tt.offX || y != tt.offY {
			t.Errorf("aspectFitTransform(%v, %v, %v, %v) = (%v, %v, %v), want (%v, %v, %v)",
				tt.viewW, tt.viewH, tt.frameW, tt.frameH, s, x, y, tt.scale, tt.offX, tt.offY)
		}
	}
}

func TestEbitenBackendPresentErrors(t *testing.T) {
	b := &EbitenBackend{dim: frame.Dimension{Width: 2, Height: 2}}
	if err := b.Present(make([]byte, 15)); err == nil {
		t.Error("Present with short buffer: expected error")
	}
	b.Dispose()
	if err := b.Present(make([]byte, 16)); err == nil {
		t.Error("Present after Dispose: expected error")
	}
}
