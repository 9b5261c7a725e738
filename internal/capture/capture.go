package capture

import (
	"time"

	"github.com/junsooki/ledsim/internal/frame"
)

// Frame is one generated grid.
type Frame struct {
	Grid      *frame.Grid
	Seq       uint64
	Timestamp time.Time
}
