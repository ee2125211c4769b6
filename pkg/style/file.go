package style

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/matrix"
)

// Format is a style file encoding.
type Format string

// Supported style file formats.
const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// fileStyle is the on-disk shape of a style. Every field is optional; unset
// fields keep the value of the base style.
type fileStyle struct {
	Width         *float64     `json:"width,omitempty" toml:"width,omitempty"`
	ECC           string       `json:"ecc_level,omitempty" toml:"ecc_level,omitempty"`
	Dots          *fileTarget  `json:"dots,omitempty" toml:"dots,omitempty"`
	LocatorSquare *fileTarget  `json:"locator_square,omitempty" toml:"locator_square,omitempty"`
	LocatorDot    *fileTarget  `json:"locator_dot,omitempty" toml:"locator_dot,omitempty"`
	Background    *fileTarget  `json:"background,omitempty" toml:"background,omitempty"`
	Overlay       *fileOverlay `json:"overlay,omitempty" toml:"overlay,omitempty"`
}

type fileTarget struct {
	Type     string        `json:"type,omitempty" toml:"type,omitempty"`
	Color    string        `json:"color,omitempty" toml:"color,omitempty"`
	Gradient *fileGradient `json:"gradient,omitempty" toml:"gradient,omitempty"`
}

type fileGradient struct {
	Type     string     `json:"type" toml:"type"`
	Rotation float64    `json:"rotation" toml:"rotation"`
	Stops    []fileStop `json:"stops" toml:"stops"`
}

type fileStop struct {
	Offset float64 `json:"offset" toml:"offset"`
	Color  string  `json:"color" toml:"color"`
}

type fileOverlay struct {
	Image          string   `json:"image,omitempty" toml:"image,omitempty"`
	RelativeSize   *float64 `json:"relative_size,omitempty" toml:"relative_size,omitempty"`
	Margin         *float64 `json:"margin,omitempty" toml:"margin,omitempty"`
	OccludeModules *bool    `json:"occlude_modules,omitempty" toml:"occlude_modules,omitempty"`
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.Config("unsupported style file %q (want .toml or .json)", filepath.Base(path))
}

// Load reads a style file on top of Default().
func Load(path string) (Style, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Style{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Style{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Style{}, errors.Wrap(errors.ErrCodeNotFound, err, "style file %s", path)
	}
	if err != nil {
		return Style{}, errors.Wrap(errors.ErrCodeInternal, err, "read style file %s", path)
	}
	return Decode(bytes.NewReader(data), format, New())
}

// Decode reads a style document from r and applies it on top of base.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Decode(r io.Reader, format Format, base Builder) (Style, error) {
	var f fileStyle
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return Style{}, errors.Wrap(errors.ErrCodeConfig, err, "parse TOML style")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Style{}, errors.Config("unknown style key %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return Style{}, errors.Wrap(errors.ErrCodeConfig, err, "parse JSON style")
		}
	default:
		return Style{}, errors.Config("unsupported style format %q", format)
	}
	return f.apply(base)
}

func (f fileStyle) apply(b Builder) (Style, error) {
	if f.Width != nil {
		b = b.Width(*f.Width)
	}
	if f.ECC != "" {
		level, err := matrix.ParseLevel(f.ECC)
		if err != nil {
			return Style{}, err
		}
		b = b.ECC(level)
	}

	if f.Dots != nil {
		if f.Dots.Type != "" {
			shape, err := ParseDotShape(f.Dots.Type)
			if err != nil {
				return Style{}, err
			}
			b = b.DotsShape(shape)
		}
		p, err := f.Dots.paint("dots")
		if err != nil {
			return Style{}, err
		}
		if p != nil {
			b = b.DotsPaint(p)
		}
	}

	if f.LocatorSquare != nil {
		cur := b.s.LocatorSquare
		shape, p, err := f.LocatorSquare.locator("locator_square", cur, false)
		if err != nil {
			return Style{}, err
		}
		b = b.LocatorSquare(shape, p)
	}

	if f.LocatorDot != nil {
		cur := b.s.LocatorDot
		shape, p, err := f.LocatorDot.locator("locator_dot", cur, true)
		if err != nil {
			return Style{}, err
		}
		b = b.LocatorDot(shape, p)
	}

	if f.Background != nil {
		if f.Background.Type != "" {
			return Style{}, errors.Config("background does not take a type")
		}
		p, err := f.Background.paint("background")
		if err != nil {
			return Style{}, err
		}
		if p != nil {
			b = b.Background(p)
		}
	}

	if f.Overlay != nil {
		o := b.s.Overlay
		if f.Overlay.Image != "" {
			o.Image = f.Overlay.Image
		}
		if f.Overlay.RelativeSize != nil {
			o.RelativeSize = *f.Overlay.RelativeSize
		}
		if f.Overlay.Margin != nil {
			o.Margin = *f.Overlay.Margin
		}
		if f.Overlay.OccludeModules != nil {
			o.OccludeModules = *f.Overlay.OccludeModules
		}
		b = b.Overlay(o)
	}

	return b.Build()
}

func (t fileTarget) locator(what string, cur Locator, allowInherit bool) (LocatorShape, Paint, error) {
	shape := cur.Shape
	if t.Type != "" {
		s, err := ParseLocatorShape(t.Type, allowInherit)
		if err != nil {
			return "", nil, err
		}
		shape = s
	}
	p, err := t.paint(what)
	if err != nil {
		return "", nil, err
	}
	if p == nil {
		p = cur.Paint
	}
	return shape, p, nil
}

// paint converts the color/gradient pair into a Paint. Setting both is an
// error; setting neither returns nil.
func (t fileTarget) paint(what string) (Paint, error) {
	if t.Color != "" && t.Gradient != nil {
		return nil, errors.Config("%s: color and gradient are mutually exclusive", what)
	}
	if t.Gradient != nil {
		stops := make([]Stop, len(t.Gradient.Stops))
		for i, s := range t.Gradient.Stops {
			stops[i] = Stop{Offset: s.Offset, Color: Color(s.Color)}
		}
		g, err := NewGradient(GradientKind(strings.ToLower(t.Gradient.Type)), t.Gradient.Rotation, stops...)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfig, err, "%s gradient", what)
		}
		return g, nil
	}
	if t.Color != "" {
		c, err := ParseColor(t.Color)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfig, err, "%s", what)
		}
		return c, nil
	}
	return nil, nil
}

// Encode writes s in the given format. Decoding the output on top of any
// base reproduces s exactly.
func Encode(w io.Writer, s Style, format Format) error {
	f := toFile(s)
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(f); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode TOML style")
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode JSON style")
		}
	default:
		return errors.Config("unsupported style format %q", format)
	}
	return nil
}

func toFile(s Style) fileStyle {
	width := s.Width
	size, margin, occlude := s.Overlay.RelativeSize, s.Overlay.Margin, s.Overlay.OccludeModules
	return fileStyle{
		Width:         &width,
		ECC:           string(s.ECC),
		Dots:          paintTarget(string(s.Dots.Shape), s.Dots.Paint),
		LocatorSquare: paintTarget(string(s.LocatorSquare.Shape), s.LocatorSquare.Paint),
		LocatorDot:    paintTarget(string(s.LocatorDot.Shape), s.LocatorDot.Paint),
		Background:    paintTarget("", s.Background),
		Overlay: &fileOverlay{
			Image:          s.Overlay.Image,
			RelativeSize:   &size,
			Margin:         &margin,
			OccludeModules: &occlude,
		},
	}
}

func paintTarget(shape string, p Paint) *fileTarget {
	t := &fileTarget{Type: shape}
	switch v := p.(type) {
	case Color:
		t.Color = string(v)
	case *Gradient:
		g := &fileGradient{Type: string(v.kind), Rotation: v.rotation}
		for _, s := range v.stops {
			g.Stops = append(g.Stops, fileStop{Offset: s.Offset, Color: string(s.Color)})
		}
		t.Gradient = g
	}
	return t
}
