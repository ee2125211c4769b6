package qr

import (
	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/geom"
	"github.com/matzehuels/qrsmith/pkg/style"
)

// Flattening parameters for the curved fluid primitives.
const (
	// ChordTolerance is the largest gap in pixels between a true arc and its
	// polygon approximation.
	ChordTolerance = 0.05
	minSegments    = 12
	maxSegments    = 64

	// epsilonScale inflates every primitive by this fraction of a module so
	// that shapes meant to touch overlap and merge into one outline.
	epsilonScale = 1e-3
)

type primitiveKind int

const (
	primCircle primitiveKind = iota
	primRect
	primFillet
)

// primitive is a shape waiting to be flattened. Collecting the cheap
// descriptors first lets the primitive budget be checked before any
// polygon is built.
type primitive struct {
	kind   primitiveKind
	at     geom.Point // circle center, rect origin, fillet corner
	w, h   float64    // rect size
	dx, dy float64    // fillet direction into the empty cell
}

// FluidPrimitives counts the shapes FluidPath would merge for l.
func FluidPrimitives(l Layout, shape style.DotShape) int {
	return len(fluidPrimitives(l, shape))
}

func fluidPrimitives(l Layout, shape style.DotShape) []primitive {
	g := l.Geometry
	m := g.ModuleSize
	r := m / 2
	var prims []primitive

	for row := range g.Size {
		for col := range g.Size {
			if !l.Drawable(row, col) {
				continue
			}
			cell := g.Cell(row, col)
			prims = append(prims, primitive{kind: primCircle, at: geom.Point{X: cell.X + r, Y: cell.Y + r}})
			if l.Drawable(row, col+1) {
				prims = append(prims, primitive{kind: primRect, at: geom.Point{X: cell.X + r, Y: cell.Y}, w: m, h: m})
			}
			if l.Drawable(row+1, col) {
				prims = append(prims, primitive{kind: primRect, at: geom.Point{X: cell.X, Y: cell.Y + r}, w: m, h: m})
			}
		}
	}

	if shape != style.DotFluidSmooth {
		return prims
	}

	// A fillet fills the notch at a corner of an empty cell when the two
	// cells sharing that corner's edges and the diagonal cell are all drawn.
	corners := []struct{ dr, dc int }{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	for row := range g.Size {
		for col := range g.Size {
			if !l.Empty(row, col) {
				continue
			}
			cell := g.Cell(row, col)
			for _, c := range corners {
				if !l.Drawable(row+c.dr, col) || !l.Drawable(row, col+c.dc) || !l.Drawable(row+c.dr, col+c.dc) {
					continue
				}
				corner := geom.Point{X: cell.X, Y: cell.Y}
				if c.dc > 0 {
					corner.X += m
				}
				if c.dr > 0 {
					corner.Y += m
				}
				prims = append(prims, primitive{
					kind: primFillet,
					at:   corner,
					dx:   float64(-c.dc),
					dy:   float64(-c.dr),
				})
			}
		}
	}
	return prims
}

// FluidPath merges the fluid primitives of every drawable module into one
// outline. Each module contributes a circle and a connector toward each
// drawn right and bottom neighbor; fluid-smooth also adds a concave fillet
// at every inner corner. The result has no overlapping regions and must be
// filled with the evenodd rule.
//
// maxPrimitives bounds the union input; zero disables the check.
func FluidPath(l Layout, shape style.DotShape, u geom.Unioner, maxPrimitives int) (geom.Path, error) {
	prims := fluidPrimitives(l, shape)
	if len(prims) == 0 {
		return geom.Path{}, nil
	}
	if maxPrimitives > 0 && len(prims) > maxPrimitives {
		return geom.Path{}, errors.Config("fluid style needs %d shapes, limit is %d; use a smaller payload or another dot shape",
			len(prims), maxPrimitives)
	}

	m := l.Geometry.ModuleSize
	r := m / 2
	eps := epsilonScale * m
	n := geom.Segments(r+eps, ChordTolerance, minSegments, maxSegments)
	quarter := max(3, n/4)

	polys := make([]geom.Polygon, 0, len(prims))
	for _, p := range prims {
		switch p.kind {
		case primCircle:
			polys = append(polys, geom.CirclePolygon(p.at, r+eps, n))
		case primRect:
			polys = append(polys, geom.RectPolygon(geom.Rect{
				X: p.at.X - eps, Y: p.at.Y - eps, W: p.w + 2*eps, H: p.h + 2*eps,
			}))
		case primFillet:
			corner := geom.Point{X: p.at.X - p.dx*eps, Y: p.at.Y - p.dy*eps}
			polys = append(polys, geom.FilletPolygon(corner, p.dx, p.dy, r+eps, quarter))
		}
	}

	merged, err := u.Union(polys)
	if err != nil {
		return geom.Path{}, err
	}
	return geom.PolygonPath(merged), nil
}
