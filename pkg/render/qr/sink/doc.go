// Package sink serializes a composed [qr.Document].
//
// [RenderSVG] writes a self-contained SVG whose width, height and viewBox all
// equal the document width, so one user unit is one canvas pixel:
//
//	doc, err := qr.Render(m, s)
//	svg := sink.RenderSVG(doc, sink.WithPrecision(2))
//
// [RenderPNG] rasterizes that SVG in-process with github.com/srwiley/oksvg
// and github.com/srwiley/rasterx:
//
//	png, err := sink.RenderPNG(doc, sink.WithScale(4))
//
// The rasterizer does not load <image> elements, so overlay images only
// appear in SVG output. Modules under the overlay are still hidden.
//
// [qr.Document]: github.com/matzehuels/qrsmith/pkg/render/qr.Document
package sink
