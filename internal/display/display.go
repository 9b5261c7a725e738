package display

import "fmt"

// Presenter submits a grid-resolution RGBA buffer to the screen.
type Presenter interface {
	Present(pix []byte) error
}

// PresentError reports a failed submission. It is fatal: the caller stops
// the loop and exits.
type PresentError struct {
	Err error
}

func (e *PresentError) Error() string {
	return fmt.Sprintf("present: %v", e.Err)
}

func (e *PresentError) Unwrap() error { return e.Err }
