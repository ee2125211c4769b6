// Package pkg provides the core libraries for qrsmith styled QR code rendering.
//
// # Overview
//
// qrsmith turns a text payload into a styled, scalable QR code: rounded or
// fluid modules, shaped locator patterns, gradients and a centered logo. The
// pkg directory is organized into three areas:
//
//  1. Domain - [matrix], [style], [geom] and [render/qr]
//  2. Output - [render/qr/sink] (SVG and PNG serialization)
//  3. Infrastructure - [pipeline], [cache], [observability] and [errors]
//
// # Architecture
//
// The typical data flow through qrsmith:
//
//	Payload + Style
//	      ↓
//	 [matrix] package (encode the module grid)
//	      ↓
//	 [render/qr] package (geometry, shapes, paints → Document)
//	      ↓
//	 [render/qr/sink] package (SVG or PNG bytes)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/qrsmith/pkg/matrix"
//	    "github.com/matzehuels/qrsmith/pkg/render/qr"
//	    "github.com/matzehuels/qrsmith/pkg/render/qr/sink"
//	    "github.com/matzehuels/qrsmith/pkg/style"
//	)
//
//	// 1. Build a style
//	s, _ := style.New().
//	    Dots(style.DotFluidSmooth, style.Color("#1d3557")).
//	    LocatorSquare(style.LocatorExtraRounded, nil).
//	    Build()
//
//	// 2. Encode the payload
//	m, _ := matrix.NewQREncoder().Encode("https://example.com", s.ECC)
//
//	// 3. Compose the document
//	doc, _ := qr.Render(m, s)
//
//	// 4. Serialize
//	svg := sink.RenderSVG(doc)
//
// The [pipeline] package wraps these steps with validation, caching and
// hooks, and is what the CLI uses.
//
// # Testing
//
//	go test ./pkg/...                 # All tests
//	go test ./pkg/render/qr/...       # Specific package
//
// [matrix]: https://pkg.go.dev/github.com/matzehuels/qrsmith/pkg/matrix
// [style]: https://pkg.go.dev/github.com/matzehuels/qrsmith/pkg/style
// [geom]: https://pkg.go.dev/github.com/matzehuels/qrsmith/pkg/geom
// [render/qr]: https://pkg.go.dev/github.com/matzehuels/qrsmith/pkg/render/qr
// [render/qr/sink]: https://pkg.go.dev/github.com/matzehuels/qrsmith/pkg/render/qr/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/qrsmith/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/qrsmith/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/qrsmith/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/qrsmith/pkg/errors
package pkg
