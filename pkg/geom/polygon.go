package geom

import "math"

// Ring is a closed loop of points. The closing edge from the last point back
// to the first is implicit; rings never repeat their first point.
type Ring []Point

// Polygon is an outer ring followed by zero or more hole rings.
type Polygon []Ring

// RectPolygon returns the rectangle rc as a single-ring polygon.
func RectPolygon(rc Rect) Polygon {
	return Polygon{Ring{
		{rc.X, rc.Y},
		{rc.X + rc.W, rc.Y},
		{rc.X + rc.W, rc.Y + rc.H},
		{rc.X, rc.Y + rc.H},
	}}
}

// CirclePolygon approximates a circle with a regular n-gon whose vertices lie
// on the circle.
func CirclePolygon(c Point, r float64, n int) Polygon {
	ring := make(Ring, n)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = Point{c.X + r*math.Cos(a), c.Y + r*math.Sin(a)}
	}
	return Polygon{ring}
}

// FilletPolygon returns the concave fillet that fills a sharp inner corner.
//
// corner is the vertex of the notch; (dx, dy) are unit signs pointing from
// the corner into the empty cell. The shape is the r×r square at the corner
// minus the disc of radius r centred at corner + (dx·r, dy·r), approximated
// with n segments along the quarter arc.
func FilletPolygon(corner Point, dx, dy, r float64, n int) Polygon {
	center := Point{corner.X + dx*r, corner.Y + dy*r}
	ring := make(Ring, 0, n+2)
	ring = append(ring, corner)
	// The arc runs from (corner.X, center.Y) to (center.X, corner.Y) the
	// short way round, which bulges toward the corner.
	a0 := math.Atan2(0, -dx)
	a1 := math.Atan2(-dy, 0)
	delta := angleBetween(a0, a1)
	for i := 0; i <= n; i++ {
		a := a0 + delta*float64(i)/float64(n)
		ring = append(ring, Point{center.X + r*math.Cos(a), center.Y + r*math.Sin(a)})
	}
	return Polygon{ring}
}

// angleBetween returns the signed sweep from a0 to a1 in (-π, π].
func angleBetween(a0, a1 float64) float64 {
	d := a1 - a0
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	return d
}

// Segments returns how many segments a full circle of radius r needs so the
// chord never strays more than tol from the true arc, clamped to [lo, hi].
func Segments(r, tol float64, lo, hi int) int {
	if r <= tol || tol <= 0 {
		return lo
	}
	n := int(math.Ceil(math.Pi / math.Acos(1-tol/r)))
	return max(lo, min(hi, n))
}

// Winding returns the winding number of the polygon set around pt.
// Inside a correctly merged union every point has |winding| <= 1.
func Winding(polys []Polygon, pt Point) int {
	w := 0
	for _, poly := range polys {
		for _, ring := range poly {
			w += ringWinding(ring, pt)
		}
	}
	return w
}

func ringWinding(ring Ring, pt Point) int {
	w := 0
	n := len(ring)
	for i := range n {
		a, b := ring[i], ring[(i+1)%n]
		if a.Y <= pt.Y {
			if b.Y > pt.Y && cross(a, b, pt) > 0 {
				w++
			}
		} else if b.Y <= pt.Y && cross(a, b, pt) < 0 {
			w--
		}
	}
	return w
}

func cross(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}

// Area returns the signed area of the ring (positive when counter-clockwise
// in y-up space).
func (r Ring) Area() float64 {
	s := 0.0
	n := len(r)
	for i := range n {
		a, b := r[i], r[(i+1)%n]
		s += a.X*b.Y - b.X*a.Y
	}
	return s / 2
}

// PolygonPath converts polygons into a path of straight segments, one
// subpath per ring. Fill it with the evenodd rule.
func PolygonPath(polys []Polygon) Path {
	var p Path
	for _, poly := range polys {
		for _, ring := range poly {
			if len(ring) < 3 {
				continue
			}
			p.MoveTo(ring[0].X, ring[0].Y)
			for _, pt := range ring[1:] {
				p.LineTo(pt.X, pt.Y)
			}
			p.Close()
		}
	}
	return p
}
