package qr

import (
	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/geom"
	"github.com/matzehuels/qrsmith/pkg/matrix"
	"github.com/matzehuels/qrsmith/pkg/style"
)

// MinSize is the side of the smallest QR code (version 1).
const MinSize = 21

// Limits bounds the work a single render may do.
type Limits struct {
	MaxSize       int     // modules per side
	MaxWidth      float64 // canvas pixels
	MaxPrimitives int     // shapes fed to the fluid union
}

// DefaultLimits admits every QR version (up to 177 modules per side).
var DefaultLimits = Limits{
	MaxSize:       177,
	MaxWidth:      16384,
	MaxPrimitives: 60000,
}

// Option configures Render.
type Option func(*renderer)

type renderer struct {
	unioner geom.Unioner
	limits  Limits
}

// WithUnioner replaces the polygon union used by the fluid styles.
func WithUnioner(u geom.Unioner) Option {
	return func(r *renderer) { r.unioner = u }
}

// WithLimits replaces DefaultLimits. Zero fields disable the matching check.
func WithLimits(l Limits) Option {
	return func(r *renderer) { r.limits = l }
}

// Render draws m with style s.
//
// Invalid styles and inputs beyond the limits fail with CONFIG_INVALID
// before any geometry is built. A grid too small to hold three locator
// patterns fails with RENDER_FAILED, as does a failed fluid union; no
// partial document is ever returned.
func Render(m matrix.Matrix, s style.Style, opts ...Option) (Document, error) {
	r := renderer{unioner: geom.SweepUnion{}, limits: DefaultLimits}
	for _, opt := range opts {
		opt(&r)
	}

	s, err := s.Canonical()
	if err != nil {
		return Document{}, err
	}
	if m.Size() < MinSize {
		return Document{}, errors.Render("matrix size %d is below the minimum of %d", m.Size(), MinSize)
	}
	if err := r.limits.check(m.Size(), s.Width); err != nil {
		return Document{}, err
	}

	lay, err := NewLayout(m, s.Width, s.Overlay)
	if err != nil {
		return Document{}, err
	}

	parts := Parts{
		Layout:   lay,
		Style:    s,
		Locators: LocatorPatterns(lay, s.LocatorSquare.Shape, s.DotShape()),
	}
	if s.Dots.Shape.Organic() {
		path, err := FluidPath(lay, s.Dots.Shape, r.unioner, r.limits.MaxPrimitives)
		if err != nil {
			return Document{}, err
		}
		parts.Modules = path
		parts.ModulesEvenOdd = true
	} else {
		parts.Modules = ModulePath(lay, s.Dots.Shape)
	}

	return Compose(parts), nil
}

func (l Limits) check(size int, width float64) error {
	if l.MaxSize > 0 && size > l.MaxSize {
		return errors.Config("matrix size %d exceeds the limit of %d", size, l.MaxSize)
	}
	if l.MaxWidth > 0 && width > l.MaxWidth {
		return errors.Config("width %v exceeds the limit of %v", width, l.MaxWidth)
	}
	return nil
}
