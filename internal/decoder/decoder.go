package decoder

import "github.com/junsooki/ledsim/internal/frame"

// Decoder decodes one raw frame into a color grid.
type Decoder interface {
	Decode(raw []byte) (*frame.Grid, error)
}
