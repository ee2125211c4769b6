package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/qrsmith/pkg/geom"
	"github.com/matzehuels/qrsmith/pkg/render/qr"
	"github.com/matzehuels/qrsmith/pkg/style"
)

// DefaultPrecision is the number of decimals written for coordinates.
const DefaultPrecision = 3

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	precision int
}

// WithPrecision sets the decimals written for path coordinates.
func WithPrecision(p int) SVGOption {
	return func(r *svgRenderer) {
		if p >= 0 {
			r.precision = p
		}
	}
}

// RenderSVG writes doc as an SVG document.
func RenderSVG(doc qr.Document, opts ...SVGOption) []byte {
	r := svgRenderer{precision: DefaultPrecision}
	for _, opt := range opts {
		opt(&r)
	}

	w := strconv.FormatFloat(doc.Width, 'f', -1, 64)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`+"\n",
		w, w, w, w)

	if len(doc.Defs) > 0 {
		buf.WriteString("  <defs>\n")
		for _, d := range doc.Defs {
			r.renderDef(&buf, d)
		}
		buf.WriteString("  </defs>\n")
	}

	for _, l := range doc.Layers {
		r.renderLayer(&buf, l)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderDef(buf *bytes.Buffer, d qr.PaintDef) {
	id := escapeXML(d.ID)
	switch d.Kind {
	case style.Radial:
		fmt.Fprintf(buf, `    <radialGradient id="%s">`+"\n", id)
	default:
		fmt.Fprintf(buf, `    <linearGradient id="%s" x1="0%%" y1="0%%" x2="100%%" y2="100%%" gradientTransform="rotate(%s)">`+"\n",
			id, r.num(d.Degrees))
	}
	for _, s := range d.Stops {
		fmt.Fprintf(buf, `      <stop offset="%s%%" stop-color="%s"/>`+"\n", r.num(s.Offset*100), escapeXML(string(s.Color)))
	}
	if d.Kind == style.Radial {
		buf.WriteString("    </radialGradient>\n")
	} else {
		buf.WriteString("    </linearGradient>\n")
	}
}

func (r svgRenderer) renderLayer(buf *bytes.Buffer, l qr.Layer) {
	switch l.Kind {
	case qr.LayerRect:
		fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			r.num(l.Rect.X), r.num(l.Rect.Y), r.num(l.Rect.W), r.num(l.Rect.H), escapeXML(l.Fill.Ref))
	case qr.LayerPath:
		rule := ""
		if l.EvenOdd {
			rule = ` fill-rule="evenodd"`
		}
		fmt.Fprintf(buf, `  <path class="%s" d="%s" fill="%s"%s/>`+"\n",
			escapeXML(l.Name), l.Path.Data(r.precision), escapeXML(l.Fill.Ref), rule)
	case qr.LayerImage:
		href := escapeXML(l.Href)
		fmt.Fprintf(buf, `  <image href="%s" xlink:href="%s" x="%s" y="%s" width="%s" height="%s"/>`+"\n",
			href, href, r.num(l.Rect.X), r.num(l.Rect.Y), r.num(l.Rect.W), r.num(l.Rect.H))
	}
}

func (r svgRenderer) num(v float64) string {
	return geom.FormatFloat(v, r.precision)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
