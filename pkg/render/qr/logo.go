package qr

import (
	"github.com/matzehuels/qrsmith/pkg/geom"
	"github.com/matzehuels/qrsmith/pkg/style"
)

// LogoZone is the area reserved for a centered overlay image.
type LogoZone struct {
	present  bool
	occlude  bool
	image    geom.Rect
	box      geom.Rect
	geo      Geometry
	locators Locators
}

// NewLogoZone computes the overlay footprint and its exclusion box.
//
// The image side is RelativeSize of the grid width (quiet zone excluded) and
// the image is centered on the canvas. The exclusion box is the image
// inflated by Margin pixels on every side.
func NewLogoZone(o style.Overlay, g Geometry, l Locators) LogoZone {
	side := o.RelativeSize * g.GridWidth()
	center := g.Offset + g.GridWidth()/2
	img := geom.Rect{X: center - side/2, Y: center - side/2, W: side, H: side}
	box := geom.Rect{
		X: img.X - o.Margin,
		Y: img.Y - o.Margin,
		W: img.W + 2*o.Margin,
		H: img.H + 2*o.Margin,
	}
	return LogoZone{
		present:  o.Present(),
		occlude:  o.OccludeModules,
		image:    img,
		box:      box,
		geo:      g,
		locators: l,
	}
}

// Present reports whether an overlay image is configured.
func (z LogoZone) Present() bool { return z.present }

// Box is the exclusion box: the image plus its margin.
func (z LogoZone) Box() geom.Rect { return z.box }

// ImageRect is where the image is drawn.
func (z LogoZone) ImageRect() geom.Rect { return z.image }

// Occludes reports whether the module at (row, col) is hidden under the
// overlay. Locator cells are never hidden.
func (z LogoZone) Occludes(row, col int) bool {
	if !z.present || !z.occlude {
		return false
	}
	if z.locators.IsLocator(row, col) {
		return false
	}
	return z.geo.Cell(row, col).Intersects(z.box)
}
