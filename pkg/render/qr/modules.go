package qr

import (
	"github.com/matzehuels/qrsmith/pkg/geom"
	"github.com/matzehuels/qrsmith/pkg/style"
)

// Neighbors records which orthogonal neighbors of a module are drawn.
type Neighbors struct {
	Top, Right, Bottom, Left bool
}

// NeighborsAt looks up the drawable neighbors of (row, col).
func (l Layout) NeighborsAt(row, col int) Neighbors {
	return Neighbors{
		Top:    l.Drawable(row-1, col),
		Right:  l.Drawable(row, col+1),
		Bottom: l.Drawable(row+1, col),
		Left:   l.Drawable(row, col-1),
	}
}

// ModuleRadii returns the corner radii of one data module.
//
// classy rounds a corner only when both neighbors adjacent to it are drawn;
// classy-rounded rounds it when either is. The fluid shapes are merged by
// [FluidPath]; drawn one by one they are plain circles.
func ModuleRadii(shape style.DotShape, n Neighbors, module float64) geom.Radii {
	half := module / 2
	switch shape {
	case style.DotRounded:
		return geom.Uniform(half / 2)
	case style.DotDots, style.DotExtraRounded, style.DotFluid, style.DotFluidSmooth:
		return geom.Uniform(half)
	case style.DotClassy:
		return geom.Radii{
			TL: pick(n.Top && n.Left, half),
			TR: pick(n.Top && n.Right, half),
			BR: pick(n.Bottom && n.Right, half),
			BL: pick(n.Bottom && n.Left, half),
		}
	case style.DotClassyRounded:
		return geom.Radii{
			TL: pick(n.Top || n.Left, half),
			TR: pick(n.Top || n.Right, half),
			BR: pick(n.Bottom || n.Right, half),
			BL: pick(n.Bottom || n.Left, half),
		}
	}
	return geom.Radii{}
}

func pick(ok bool, r float64) float64 {
	if ok {
		return r
	}
	return 0
}

// ModulePath draws every drawable data module as its own rounded rectangle,
// row by row, into a single path.
func ModulePath(l Layout, shape style.DotShape) geom.Path {
	var p geom.Path
	n := l.Geometry.Size
	for row := range n {
		for col := range n {
			if !l.Drawable(row, col) {
				continue
			}
			r := ModuleRadii(shape, l.NeighborsAt(row, col), l.Geometry.ModuleSize)
			geom.RoundedRect(&p, l.Geometry.Cell(row, col), r)
		}
	}
	return p
}
