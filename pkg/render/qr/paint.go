package qr

import (
	"math"

	"github.com/matzehuels/qrsmith/pkg/style"
)

// Site names a place in the document that takes a fill.
type Site string

// Fill sites. Each one gets its own gradient definition.
const (
	SiteBackground    Site = "background"
	SiteLocatorSquare Site = "locator-square"
	SiteLocatorDot    Site = "locator-dot"
	SiteDots          Site = "dots"
)

// Fill is the value of a fill attribute: a color or a url(#id) reference.
type Fill struct {
	Ref string
}

// None is the fill that paints nothing.
var None = Fill{Ref: "none"}

// PaintDef is a gradient definition referenced by a Fill.
type PaintDef struct {
	ID      string
	Kind    style.GradientKind
	Degrees float64 // rotation for linear gradients
	Stops   []style.Stop
}

// Paints compiles paints into fills and collects the gradient definitions
// they need. The zero value is ready to use.
type Paints struct {
	defs []PaintDef
}

// NewPaints returns an empty compiler.
func NewPaints() *Paints { return &Paints{} }

// GradientID is the definition id used for a gradient at site.
func GradientID(site Site) string { return "grad-" + string(site) }

// Compile returns the fill for p at site. Gradients register a definition
// keyed by site, so two sites never share one even when their stops match.
// Compiling the same site twice replaces its definition.
func (c *Paints) Compile(site Site, p style.Paint) Fill {
	switch v := p.(type) {
	case style.Color:
		if v == style.Transparent {
			return None
		}
		return Fill{Ref: string(v)}
	case *style.Gradient:
		if v == nil {
			return None
		}
		def := PaintDef{
			ID:    GradientID(site),
			Kind:  v.Kind(),
			Stops: v.Stops(),
		}
		if def.Kind == style.Linear {
			def.Degrees = v.Rotation() * 180 / math.Pi
		}
		c.put(def)
		return Fill{Ref: "url(#" + def.ID + ")"}
	}
	return None
}

func (c *Paints) put(def PaintDef) {
	for i := range c.defs {
		if c.defs[i].ID == def.ID {
			c.defs[i] = def
			return
		}
	}
	c.defs = append(c.defs, def)
}

// Defs returns the registered definitions in registration order.
func (c *Paints) Defs() []PaintDef {
	return append([]PaintDef(nil), c.defs...)
}
