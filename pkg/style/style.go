// Package style defines the style configuration of a rendered QR code.
//
// A [Style] is an immutable value. Paints are a sum type: every paint target
// holds either a flat [Color] or a [*Gradient], never both, so there is no
// state in which a color and a gradient disagree. Styles are built and
// changed through a [Builder], whose methods return updated copies:
//
//	s, err := style.New().
//	    Width(600).
//	    Dots(style.DotClassyRounded, style.Color("#292732")).
//	    LocatorSquare(style.LocatorDot, nil). // inherit the dots paint
//	    Background(style.Color("#ffffff")).
//	    Build()
//
// Styles can also be loaded from TOML or JSON files with [Load].
package style

import (
	"math"

	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/matrix"
)

// Defaults mirror the original web UI.
const (
	DefaultWidth        = 300.0
	DefaultColor  Color = "#292732"
	DefaultLogoSize     = 0.2
	DefaultLogoMargin   = 10.0
)

// Dots configures data modules.
type Dots struct {
	Shape DotShape
	Paint Paint
}

// Locator configures the outer square or the inner dot of the locator patterns.
// A nil Paint inherits from the next paint up (dot → square → dots).
type Locator struct {
	Shape LocatorShape
	Paint Paint
}

// Overlay configures an optional image centered on the code.
type Overlay struct {
	Image          string  // data URI or http(s) URL; empty disables the overlay
	RelativeSize   float64 // image side as a fraction of the matrix side, 0..1
	Margin         float64 // pixels of clearance around the image
	OccludeModules bool    // hide data modules under the image and its margin
}

// Present reports whether an overlay image is configured.
func (o Overlay) Present() bool { return o.Image != "" }

// Style is the complete rendering configuration.
type Style struct {
	Width         float64
	Dots          Dots
	LocatorSquare Locator
	LocatorDot    Locator
	Background    Paint // nil or Transparent for no background
	Overlay       Overlay
	ECC           matrix.Level // forwarded to the encoder; unused by the renderer
}

// Default returns the default style.
func Default() Style {
	return Style{
		Width:         DefaultWidth,
		Dots:          Dots{Shape: DotSquare, Paint: DefaultColor},
		LocatorSquare: Locator{Shape: LocatorSquare},
		LocatorDot:    Locator{Shape: LocatorInherit},
		Background:    Transparent,
		Overlay: Overlay{
			RelativeSize:   DefaultLogoSize,
			Margin:         DefaultLogoMargin,
			OccludeModules: true,
		},
		ECC: matrix.DefaultLevel,
	}
}

// DotsPaint returns the data module paint, falling back to DefaultColor.
func (s Style) DotsPaint() Paint {
	if s.Dots.Paint == nil {
		return DefaultColor
	}
	return s.Dots.Paint
}

// SquarePaint resolves the locator square paint, inheriting the dots paint.
func (s Style) SquarePaint() Paint {
	if s.LocatorSquare.Paint != nil {
		return s.LocatorSquare.Paint
	}
	return s.DotsPaint()
}

// DotPaint resolves the locator dot paint, inheriting the square paint.
func (s Style) DotPaint() Paint {
	if s.LocatorDot.Paint != nil {
		return s.LocatorDot.Paint
	}
	return s.SquarePaint()
}

// DotShape resolves the locator dot shape; "inherit" takes the square shape.
func (s Style) DotShape() LocatorShape {
	if s.LocatorDot.Shape == LocatorInherit || s.LocatorDot.Shape == "" {
		return s.squareShape()
	}
	return s.LocatorDot.Shape
}

func (s Style) squareShape() LocatorShape {
	if s.LocatorSquare.Shape == "" {
		return LocatorSquare
	}
	return s.LocatorSquare.Shape
}

// Canonical validates s and returns a copy whose shape names are the
// canonical lower-case constants, with aliases such as "connected" resolved.
// Renderers switch on shape constants and must only see canonical styles.
func (s Style) Canonical() (Style, error) {
	if err := s.Validate(); err != nil {
		return Style{}, err
	}
	// Validate has already parsed every shape, so these cannot fail.
	s.Dots.Shape, _ = ParseDotShape(string(s.Dots.Shape))
	s.LocatorSquare.Shape, _ = ParseLocatorShape(string(s.LocatorSquare.Shape), false)
	s.LocatorDot.Shape, _ = ParseLocatorShape(string(s.LocatorDot.Shape), true)
	return s, nil
}

// Validate checks every field. All failures are CONFIG errors.
func (s Style) Validate() error {
	if math.IsNaN(s.Width) || math.IsInf(s.Width, 0) || s.Width <= 0 {
		return errors.Config("width must be a positive number, got %v", s.Width)
	}
	if _, err := ParseDotShape(string(s.Dots.Shape)); err != nil {
		return err
	}
	if _, err := ParseLocatorShape(string(s.LocatorSquare.Shape), false); err != nil {
		return err
	}
	if _, err := ParseLocatorShape(string(s.LocatorDot.Shape), true); err != nil {
		return err
	}
	if err := validatePaint(s.Dots.Paint, "dots"); err != nil {
		return err
	}
	if err := validatePaint(s.LocatorSquare.Paint, "locator square"); err != nil {
		return err
	}
	if err := validatePaint(s.LocatorDot.Paint, "locator dot"); err != nil {
		return err
	}
	if err := validatePaint(s.Background, "background"); err != nil {
		return err
	}
	if _, err := matrix.ParseLevel(string(s.ECC)); err != nil {
		return err
	}
	return s.Overlay.validate()
}

func (o Overlay) validate() error {
	if math.IsNaN(o.RelativeSize) || o.RelativeSize < 0 || o.RelativeSize > 1 {
		return errors.Config("overlay relative size must be within [0,1], got %v", o.RelativeSize)
	}
	if math.IsNaN(o.Margin) || math.IsInf(o.Margin, 0) || o.Margin < 0 {
		return errors.Config("overlay margin must be a non-negative number, got %v", o.Margin)
	}
	if o.Present() {
		if err := errors.ValidateImageHref(o.Image); err != nil {
			return err
		}
	}
	return nil
}
