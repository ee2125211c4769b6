package geom

import "math"

// Radii holds the four corner radii of a rounded rectangle.
type Radii struct {
	TL, TR, BR, BL float64
}

// Uniform returns radii with every corner set to r.
func Uniform(r float64) Radii { return Radii{r, r, r, r} }

// Shrink subtracts d from every corner, clamping at zero.
func (r Radii) Shrink(d float64) Radii {
	return Radii{
		TL: math.Max(0, r.TL-d),
		TR: math.Max(0, r.TR-d),
		BR: math.Max(0, r.BR-d),
		BL: math.Max(0, r.BL-d),
	}
}

// IsZero reports whether every corner is sharp.
func (r Radii) IsZero() bool {
	return r.TL == 0 && r.TR == 0 && r.BR == 0 && r.BL == 0
}

// RoundedRect appends a closed rounded rectangle to p.
//
// The outline starts on the top edge and runs clockwise (in y-down screen
// space): top edge, top-right arc, right edge, bottom-right arc, bottom edge,
// bottom-left arc, left edge, top-left arc. Every arc is a quarter circle with
// the sweep flag set. A zero radius leaves a sharp corner.
func RoundedRect(p *Path, rc Rect, r Radii) {
	x, y, w, h := rc.X, rc.Y, rc.W, rc.H
	p.MoveTo(x+r.TL, y)
	p.HLineTo(x + w - r.TR)
	p.ArcTo(r.TR, true, x+w, y+r.TR)
	p.VLineTo(y + h - r.BR)
	p.ArcTo(r.BR, true, x+w-r.BR, y+h)
	p.HLineTo(x + r.BL)
	p.ArcTo(r.BL, true, x, y+h-r.BL)
	p.VLineTo(y + r.TL)
	p.ArcTo(r.TL, true, x+r.TL, y)
	p.Close()
}
