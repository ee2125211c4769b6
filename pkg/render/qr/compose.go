package qr

import (
	"github.com/matzehuels/qrsmith/pkg/geom"
	"github.com/matzehuels/qrsmith/pkg/style"
)

// LayerKind selects how a layer is drawn.
type LayerKind int

// Layer kinds.
const (
	LayerRect LayerKind = iota
	LayerPath
	LayerImage
)

// Layer is one drawn element. Later layers paint over earlier ones.
type Layer struct {
	Kind    LayerKind
	Name    string    // background, locator-square, locator-dot, dots, overlay
	Rect    geom.Rect // LayerRect and LayerImage
	Path    geom.Path // LayerPath
	Fill    Fill
	EvenOdd bool
	Href    string // LayerImage
}

// Document is a composed drawing, ready for a sink.
type Document struct {
	Width  float64
	Defs   []PaintDef
	Layers []Layer
}

// Parts are the pieces Compose stacks.
type Parts struct {
	Layout   Layout
	Style    style.Style
	Locators []LocatorPattern
	Modules  geom.Path
	// ModulesEvenOdd is set when Modules is a merged fluid outline.
	ModulesEvenOdd bool
}

// Compose stacks background, locator patterns, data modules and overlay
// image, in that order.
func Compose(p Parts) Document {
	s := p.Style
	width := p.Layout.Geometry.Width
	paints := NewPaints()
	var layers []Layer

	if !style.IsTransparent(s.Background) {
		layers = append(layers, Layer{
			Kind: LayerRect,
			Name: string(SiteBackground),
			Rect: geom.Rect{W: width, H: width},
			Fill: paints.Compile(SiteBackground, s.Background),
		})
	}

	if len(p.Locators) > 0 {
		square := paints.Compile(SiteLocatorSquare, s.SquarePaint())
		dot := paints.Compile(SiteLocatorDot, s.DotPaint())
		for _, lp := range p.Locators {
			layers = append(layers,
				Layer{Kind: LayerPath, Name: string(SiteLocatorSquare), Path: lp.Ring, Fill: square, EvenOdd: true},
				Layer{Kind: LayerPath, Name: string(SiteLocatorDot), Path: lp.Dot, Fill: dot},
			)
		}
	}

	if !p.Modules.Empty() {
		layers = append(layers, Layer{
			Kind:    LayerPath,
			Name:    string(SiteDots),
			Path:    p.Modules,
			Fill:    paints.Compile(SiteDots, s.DotsPaint()),
			EvenOdd: p.ModulesEvenOdd,
		})
	}

	if logo := p.Layout.Logo; logo.Present() && logo.ImageRect().W > 0 {
		layers = append(layers, Layer{
			Kind: LayerImage,
			Name: "overlay",
			Rect: logo.ImageRect(),
			Href: s.Overlay.Image,
		})
	}

	return Document{
		Width:  width,
		Defs:   paints.Defs(),
		Layers: layers,
	}
}
