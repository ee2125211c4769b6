package qr

import (
	"math"

	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/geom"
)

// QuietZone is the number of empty modules around the grid on each side.
const QuietZone = 4

// Geometry maps grid cells to canvas pixels.
type Geometry struct {
	Size       int     // modules per side
	ModuleSize float64 // pixels per module
	Offset     float64 // pixels from the canvas edge to the first module
	Width      float64 // canvas width and height
}

// Plan derives the geometry for a grid of size modules on a canvas of width
// pixels.
func Plan(size int, width float64) (Geometry, error) {
	if size <= 0 {
		return Geometry{}, errors.Config("matrix size must be positive, got %d", size)
	}
	if math.IsNaN(width) || math.IsInf(width, 0) || width <= 0 {
		return Geometry{}, errors.Config("width must be a positive number, got %v", width)
	}
	module := width / float64(size+2*QuietZone)
	return Geometry{
		Size:       size,
		ModuleSize: module,
		Offset:     QuietZone * module,
		Width:      width,
	}, nil
}

// Cell returns the pixel rectangle of one module.
func (g Geometry) Cell(row, col int) geom.Rect {
	return g.Span(row, col, 1)
}

// Span returns the pixel rectangle of the n×n block whose top-left module is
// (row, col).
func (g Geometry) Span(row, col, n int) geom.Rect {
	return geom.Rect{
		X: g.Offset + float64(col)*g.ModuleSize,
		Y: g.Offset + float64(row)*g.ModuleSize,
		W: float64(n) * g.ModuleSize,
		H: float64(n) * g.ModuleSize,
	}
}

// GridWidth is the pixel side of the module grid without the quiet zone.
func (g Geometry) GridWidth() float64 {
	return float64(g.Size) * g.ModuleSize
}
