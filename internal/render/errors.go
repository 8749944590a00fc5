package render

import (
	"errors"
	"fmt"
)

// ErrUnreadableLogo is returned when logo bytes cannot be decoded as an image
var ErrUnreadableLogo = errors.New("logo image is unreadable")

// RenderError records which projection failed and at which step
type RenderError struct {
	Format Format `json:"format"`
	Op     string `json:"operation"`
	Err    error  `json:"error"`
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s projection failed in %s: %v", e.Format, e.Op, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
