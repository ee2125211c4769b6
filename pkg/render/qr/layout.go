package qr

import (
	"github.com/matzehuels/qrsmith/pkg/matrix"
	"github.com/matzehuels/qrsmith/pkg/style"
)

// Layout bundles a grid with everything derived from it that the shape
// generators consult: pixel geometry, locator regions and the logo zone.
type Layout struct {
	Matrix   matrix.Matrix
	Geometry Geometry
	Locators Locators
	Logo     LogoZone
}

// NewLayout plans the geometry of m on a canvas of width pixels.
func NewLayout(m matrix.Matrix, width float64, o style.Overlay) (Layout, error) {
	g, err := Plan(m.Size(), width)
	if err != nil {
		return Layout{}, err
	}
	loc := NewLocators(m.Size())
	return Layout{
		Matrix:   m,
		Geometry: g,
		Locators: loc,
		Logo:     NewLogoZone(o, g, loc),
	}, nil
}

// Drawable reports whether (row, col) is a data module that gets drawn:
// set, outside the locator regions and not hidden by the overlay.
// Neighbor checks use the same predicate.
func (l Layout) Drawable(row, col int) bool {
	return l.Matrix.IsSet(row, col) &&
		!l.Locators.IsLocator(row, col) &&
		!l.Logo.Occludes(row, col)
}

// Empty reports whether (row, col) is an in-grid data cell that is not
// drawn. Fluid fillets only ever fill empty cells.
func (l Layout) Empty(row, col int) bool {
	n := l.Geometry.Size
	if row < 0 || row >= n || col < 0 || col >= n {
		return false
	}
	return !l.Matrix.IsSet(row, col) &&
		!l.Locators.IsLocator(row, col) &&
		!l.Logo.Occludes(row, col)
}
