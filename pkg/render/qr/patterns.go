package qr

import (
	"github.com/matzehuels/qrsmith/pkg/geom"
	"github.com/matzehuels/qrsmith/pkg/style"
)

// LocatorPattern is the drawn form of one locator region.
type LocatorPattern struct {
	Region Region

	// Ring is the outer 7×7 square with the inner 5×5 square cut out.
	// It must be filled with the evenodd rule.
	Ring geom.Path

	// Dot is the 3×3 center.
	Dot geom.Path

	SquareRadii geom.Radii
	DotRadii    geom.Radii
}

// Radius scales in modules, per shape: outer square, inner dot.
var locatorScale = map[style.LocatorShape][2]float64{
	style.LocatorSquare:        {0, 0},
	style.LocatorRounded:       {2, 0.75},
	style.LocatorExtraRounded:  {3, 1.25},
	style.LocatorDot:           {3.5, 1.5},
	style.LocatorClassy:        {2, 0.75},
	style.LocatorClassyRounded: {2, 0.75},
}

// LocatorRadii returns the corner radii of a locator square (inner false)
// or locator dot (inner true).
//
// classy rounds only the corner that points away from the code: top-left for
// the top-left region and so on. classy-rounded rounds every corner except
// the one facing the code center.
func LocatorRadii(shape style.LocatorShape, role Role, inner bool, module float64) geom.Radii {
	scale := locatorScale[shape]
	r := scale[0] * module
	if inner {
		r = scale[1] * module
	}
	switch shape {
	case style.LocatorClassy:
		switch role {
		case TopLeft:
			return geom.Radii{TL: r}
		case TopRight:
			return geom.Radii{TR: r}
		case BottomLeft:
			return geom.Radii{BL: r}
		}
		return geom.Radii{}
	case style.LocatorClassyRounded:
		switch role {
		case TopLeft:
			return geom.Radii{TL: r, TR: r, BL: r}
		case TopRight:
			return geom.Radii{TL: r, TR: r, BR: r}
		case BottomLeft:
			return geom.Radii{TL: r, BR: r, BL: r}
		}
		return geom.Radii{}
	}
	return geom.Uniform(r)
}

// LocatorPatterns draws the three locator patterns. A dot shape of
// "inherit" (or empty) takes the square's shape.
func LocatorPatterns(l Layout, square, dot style.LocatorShape) []LocatorPattern {
	if square == "" {
		square = style.LocatorSquare
	}
	if dot == "" || dot == style.LocatorInherit {
		dot = square
	}

	g := l.Geometry
	out := make([]LocatorPattern, 0, 3)
	for _, reg := range l.Locators.Regions() {
		sq := LocatorRadii(square, reg.Role, false, g.ModuleSize)
		dr := LocatorRadii(dot, reg.Role, true, g.ModuleSize)

		var ring geom.Path
		geom.RoundedRect(&ring, g.Span(reg.Row, reg.Col, 7), sq)
		geom.RoundedRect(&ring, g.Span(reg.Row+1, reg.Col+1, 5), sq.Shrink(g.ModuleSize))

		var center geom.Path
		geom.RoundedRect(&center, g.Span(reg.Row+2, reg.Col+2, 3), dr)

		out = append(out, LocatorPattern{
			Region:      reg,
			Ring:        ring,
			Dot:         center,
			SquareRadii: sq,
			DotRadii:    dr,
		})
	}
	return out
}
