package encoder

import "github.com/junsooki/ledsim/internal/frame"

// Encoder encodes a color grid into wire bytes.
type Encoder interface {
	Encode(g *frame.Grid) ([]byte, error)
}
