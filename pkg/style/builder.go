package style

import "github.com/matzehuels/qrsmith/pkg/matrix"

// Builder assembles a Style through explicit, typed updates.
// Builders are values: every method returns a modified copy and leaves the
// receiver untouched, so a base builder can be shared and specialized.
type Builder struct {
	s Style
}

// New starts from Default().
func New() Builder { return Builder{s: Default()} }

// From starts from an existing style.
func From(s Style) Builder { return Builder{s: s} }

// Width sets the canvas width in pixels.
func (b Builder) Width(w float64) Builder {
	b.s.Width = w
	return b
}

// Dots sets the data module shape and paint.
func (b Builder) Dots(shape DotShape, p Paint) Builder {
	b.s.Dots = Dots{Shape: shape, Paint: p}
	return b
}

// DotsShape changes only the data module shape.
func (b Builder) DotsShape(shape DotShape) Builder {
	b.s.Dots.Shape = shape
	return b
}

// DotsPaint changes only the data module paint.
func (b Builder) DotsPaint(p Paint) Builder {
	b.s.Dots.Paint = p
	return b
}

// LocatorSquare sets the outer locator square. A nil paint inherits the dots paint.
func (b Builder) LocatorSquare(shape LocatorShape, p Paint) Builder {
	b.s.LocatorSquare = Locator{Shape: shape, Paint: p}
	return b
}

// LocatorDot sets the inner locator dot. LocatorInherit reuses the square's
// shape; a nil paint inherits the square's paint.
func (b Builder) LocatorDot(shape LocatorShape, p Paint) Builder {
	b.s.LocatorDot = Locator{Shape: shape, Paint: p}
	return b
}

// LocatorSquareShape changes only the locator square shape.
func (b Builder) LocatorSquareShape(shape LocatorShape) Builder {
	b.s.LocatorSquare.Shape = shape
	return b
}

// LocatorDotShape changes only the locator dot shape.
func (b Builder) LocatorDotShape(shape LocatorShape) Builder {
	b.s.LocatorDot.Shape = shape
	return b
}

// Background sets the background paint. Nil or Transparent disables it.
func (b Builder) Background(p Paint) Builder {
	b.s.Background = p
	return b
}

// Overlay sets the overlay image and its geometry.
func (b Builder) Overlay(o Overlay) Builder {
	b.s.Overlay = o
	return b
}

// OverlayImage changes only the overlay image.
func (b Builder) OverlayImage(href string) Builder {
	b.s.Overlay.Image = href
	return b
}

// OverlaySize changes the overlay side as a fraction of the matrix side.
func (b Builder) OverlaySize(rel float64) Builder {
	b.s.Overlay.RelativeSize = rel
	return b
}

// OverlayMargin changes the clearance around the overlay image.
func (b Builder) OverlayMargin(px float64) Builder {
	b.s.Overlay.Margin = px
	return b
}

// OverlayOcclude sets whether modules under the overlay are hidden.
func (b Builder) OverlayOcclude(on bool) Builder {
	b.s.Overlay.OccludeModules = on
	return b
}

// ECC sets the error correction level forwarded to the encoder.
func (b Builder) ECC(l matrix.Level) Builder {
	b.s.ECC = l
	return b
}

// Build validates and returns the style with canonical shape names.
func (b Builder) Build() (Style, error) {
	return b.s.Canonical()
}
