package style

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/qrsmith/pkg/errors"
)

// Paint is what a shape is filled with: either a flat [Color] or a
// [*Gradient]. A nil Paint means "inherit" where inheritance applies and
// "transparent" for the background.
type Paint interface {
	isPaint()
}

// Color is a flat CSS color: #rgb, #rrggbb, a CSS color name, or "transparent".
type Color string

func (Color) isPaint() {}

// Transparent is the fully transparent color.
const Transparent Color = "transparent"

// ParseColor validates s and returns it as a Color.
func ParseColor(s string) (Color, error) {
	c := strings.TrimSpace(s)
	if c == "" {
		return "", errors.Config("color cannot be empty")
	}
	lc := strings.ToLower(c)
	if Color(lc) == Transparent {
		return Transparent, nil
	}
	if strings.HasPrefix(c, "#") {
		if _, err := colorful.Hex(lc); err != nil || (len(c) != 4 && len(c) != 7) {
			return "", errors.Config("invalid hex color %q", s)
		}
		return Color(lc), nil
	}
	if _, ok := colornames.Map[lc]; ok {
		return Color(lc), nil
	}
	if hex, ok := css4Colors[lc]; ok {
		return hex, nil
	}
	return "", errors.Config("unknown color %q", s)
}

// css4Colors are CSS Color 4 names missing from the SVG 1.1 keyword set in
// colornames. They resolve to hex so SVG 1.1 consumers and the rasterizer
// understand them.
var css4Colors = map[string]Color{
	"rebeccapurple": "#663399",
}

// IsTransparent reports whether p paints nothing.
func IsTransparent(p Paint) bool {
	if p == nil {
		return true
	}
	c, ok := p.(Color)
	return ok && c == Transparent
}

// GradientKind selects the gradient geometry.
type GradientKind string

// Gradient kinds.
const (
	Linear GradientKind = "linear"
	Radial GradientKind = "radial"
)

// Stop is one point on a gradient's color ramp.
type Stop struct {
	Offset float64 // 0..1
	Color  Color
}

// Gradient is an immutable color ramp. Build one with [NewGradient].
type Gradient struct {
	kind     GradientKind
	rotation float64
	stops    []Stop
}

func (*Gradient) isPaint() {}

// NewGradient validates and builds a gradient.
// Gradients need at least two stops with offsets in [0,1] that never
// decrease. Rotation is in radians and only affects linear gradients.
func NewGradient(kind GradientKind, rotation float64, stops ...Stop) (*Gradient, error) {
	switch kind {
	case Linear, Radial:
	case "":
		kind = Linear
	default:
		return nil, errors.Config("unknown gradient type %q (want linear or radial)", kind)
	}
	if math.IsNaN(rotation) || math.IsInf(rotation, 0) {
		return nil, errors.Config("gradient rotation must be finite")
	}
	if len(stops) < 2 {
		return nil, errors.Config("gradient needs at least 2 stops, got %d", len(stops))
	}

	out := make([]Stop, len(stops))
	prev := 0.0
	for i, s := range stops {
		if math.IsNaN(s.Offset) || s.Offset < 0 || s.Offset > 1 {
			return nil, errors.Config("gradient stop %d offset %v outside [0,1]", i, s.Offset)
		}
		if s.Offset < prev {
			return nil, errors.Config("gradient stop %d offset %v is before previous offset %v", i, s.Offset, prev)
		}
		c, err := ParseColor(string(s.Color))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfig, err, "gradient stop %d", i)
		}
		out[i] = Stop{Offset: s.Offset, Color: c}
		prev = s.Offset
	}

	if kind == Radial {
		rotation = 0
	}
	return &Gradient{kind: kind, rotation: rotation, stops: out}, nil
}

// Kind returns the gradient kind.
func (g *Gradient) Kind() GradientKind { return g.kind }

// Rotation returns the rotation in radians (always 0 for radial gradients).
func (g *Gradient) Rotation() float64 { return g.rotation }

// Stops returns a copy of the ordered stops.
func (g *Gradient) Stops() []Stop { return append([]Stop(nil), g.stops...) }

// Equal reports whether g and o describe the same ramp.
func (g *Gradient) Equal(o *Gradient) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.kind != o.kind || g.rotation != o.rotation || len(g.stops) != len(o.stops) {
		return false
	}
	for i := range g.stops {
		if g.stops[i] != o.stops[i] {
			return false
		}
	}
	return true
}

// validatePaint re-checks a paint that may have been built without the
// constructors (a Color literal, for instance).
func validatePaint(p Paint, what string) error {
	switch v := p.(type) {
	case nil:
		return nil
	case Color:
		if _, err := ParseColor(string(v)); err != nil {
			return errors.Wrap(errors.ErrCodeConfig, err, "%s color", what)
		}
	case *Gradient:
		if v == nil || len(v.stops) < 2 {
			return errors.Config("%s gradient needs at least 2 stops", what)
		}
	default:
		return errors.Config("%s has unsupported paint %T", what, p)
	}
	return nil
}
