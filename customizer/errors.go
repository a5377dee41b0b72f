// ABOUTME: Error types raised by the customization engine
// ABOUTME: InvalidSurfaceError for unlaid-out previews, IncompleteDraftError for gated submissions
package customizer

import (
	"fmt"
	"strings"
)

// InvalidSurfaceError is returned when a pointer is mapped onto a surface
// without a positive size.
type InvalidSurfaceError struct {
	Width  float64
	Height float64
}

func (e *InvalidSurfaceError) Error() string {
	return fmt.Sprintf("invalid preview surface: %gx%g", e.Width, e.Height)
}

// IncompleteDraftError is returned when a quote is assembled without the
// required fields.
type IncompleteDraftError struct {
	Missing []string
}

func (e *IncompleteDraftError) Error() string {
	if len(e.Missing) == 0 {
		return "incomplete draft"
	}
	return "incomplete draft: missing " + strings.Join(e.Missing, ", ")
}
