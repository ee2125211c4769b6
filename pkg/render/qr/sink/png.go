package sink

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/render/qr"
)

// DefaultScale renders PNGs at twice the document width.
const DefaultScale = 2.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RasterizeImage renders doc into an RGBA image. Uncovered pixels stay
// transparent.
func RasterizeImage(doc qr.Document, opts ...PNGOption) (*image.RGBA, error) {
	r := pngRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	if math.IsNaN(r.scale) || r.scale <= 0 {
		return nil, errors.Config("png scale must be positive, got %v", r.scale)
	}

	side := int(math.Ceil(doc.Width * r.scale))
	if side <= 0 {
		return nil, errors.Config("png would be empty (width %v, scale %v)", doc.Width, r.scale)
	}

	svg := RenderSVG(doc, r.svgOpts...)
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse generated svg")
	}
	icon.SetTarget(0, 0, float64(side), float64(side))

	img := image.NewRGBA(image.Rect(0, 0, side, side))
	scanner := rasterx.NewScannerGV(side, side, img, img.Bounds())
	raster := rasterx.NewDasher(side, side, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

// RenderPNG renders doc as PNG via SVG conversion.
func RenderPNG(doc qr.Document, opts ...PNGOption) ([]byte, error) {
	img, err := RasterizeImage(doc, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
