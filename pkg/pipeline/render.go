package pipeline

import (
	"fmt"

	"github.com/matzehuels/qrsmith/pkg/render/qr"
	"github.com/matzehuels/qrsmith/pkg/render/qr/sink"
)

// Export serializes a composed document in every requested format.
func Export(doc qr.Document, opts Options) (map[string][]byte, error) {
	svgOpts := []sink.SVGOption{sink.WithPrecision(opts.Precision)}
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(doc, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(doc,
				sink.WithScale(opts.Scale),
				sink.WithPNGSVGOptions(svgOpts...))
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("export %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
