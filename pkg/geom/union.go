package geom

import (
	"github.com/engelsjk/polygol"

	"github.com/matzehuels/qrsmith/pkg/errors"
)

// Unioner merges a set of polygons into non-overlapping polygons.
type Unioner interface {
	Union(polys []Polygon) ([]Polygon, error)
}

// UnionFunc adapts a function to the Unioner interface.
type UnionFunc func(polys []Polygon) ([]Polygon, error)

// Union calls f.
func (f UnionFunc) Union(polys []Polygon) ([]Polygon, error) { return f(polys) }

// SweepUnion computes unions with the Martinez-Rueda sweep line algorithm
// from github.com/engelsjk/polygol. A single sweep processes the whole input,
// so the cost is O(n log n) in the total number of edges.
type SweepUnion struct{}

// Union merges polys. Any failure inside the sweep is reported as a render
// error; a partially merged outline is never returned.
func (SweepUnion) Union(polys []Polygon) (out []Polygon, err error) {
	if len(polys) == 0 {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = nil, errors.Render("polygon union panicked: %v", r)
		}
	}()

	first := toGeom(polys[:1])
	rest := make([]polygol.Geom, 0, len(polys)-1)
	for i := 1; i < len(polys); i++ {
		rest = append(rest, toGeom(polys[i:i+1]))
	}

	merged, uerr := polygol.Union(first, rest...)
	if uerr != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, uerr, "polygon union of %d shapes", len(polys))
	}
	out = fromGeom(merged)
	if len(out) == 0 {
		return nil, errors.Render("polygon union of %d shapes produced no outline", len(polys))
	}
	return out, nil
}

// toGeom converts polygons into polygol's GeoJSON-like multipolygon form,
// where every ring repeats its first point at the end.
func toGeom(polys []Polygon) polygol.Geom {
	g := make(polygol.Geom, 0, len(polys))
	for _, poly := range polys {
		rings := make([][][]float64, 0, len(poly))
		for _, ring := range poly {
			pts := make([][]float64, 0, len(ring)+1)
			for _, p := range ring {
				pts = append(pts, []float64{p.X, p.Y})
			}
			pts = append(pts, []float64{ring[0].X, ring[0].Y})
			rings = append(rings, pts)
		}
		g = append(g, rings)
	}
	return g
}

func fromGeom(g polygol.Geom) []Polygon {
	out := make([]Polygon, 0, len(g))
	for _, rings := range g {
		var poly Polygon
		for _, pts := range rings {
			ring := make(Ring, 0, len(pts))
			for i, p := range pts {
				if len(p) < 2 {
					continue
				}
				pt := Point{p[0], p[1]}
				if i == len(pts)-1 && len(ring) > 0 && ring[0] == pt {
					break
				}
				ring = append(ring, pt)
			}
			if len(ring) >= 3 {
				poly = append(poly, ring)
			}
		}
		if len(poly) > 0 {
			out = append(out, poly)
		}
	}
	return out
}

var _ Unioner = SweepUnion{}
