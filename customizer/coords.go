// ABOUTME: Maps pointer coordinates on the preview surface to normalized logo positions
// ABOUTME: Output is a percentage pair clamped to [0,100]
package customizer

import (
	"github.com/harperreed/flagshop/models"
)

// Bounds is the bounding box of the preview surface in pointer coordinates.
type Bounds struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Contains reports whether the point lies inside the box (edges inclusive).
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.Left && x <= b.Left+b.Width && y >= b.Top && y <= b.Top+b.Height
}

// MapToNormalized converts a pointer position into a percentage offset within
// the surface. Points outside the box are clamped, not extrapolated.
func MapToNormalized(pointerX, pointerY float64, surface Bounds) (models.NormalizedPosition, error) {
	if surface.Width <= 0 || surface.Height <= 0 {
		return models.NormalizedPosition{}, &InvalidSurfaceError{Width: surface.Width, Height: surface.Height}
	}

	pos := models.NormalizedPosition{
		X: (pointerX - surface.Left) / surface.Width * 100,
		Y: (pointerY - surface.Top) / surface.Height * 100,
	}
	return pos.Clamp(), nil
}
