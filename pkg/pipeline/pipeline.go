// Package pipeline provides the core QR rendering pipeline for qrsmith.
//
// The pipeline ties the engine to its surroundings so the CLI (and anything
// else that renders codes) shares one implementation of caching, input
// checks and logging.
//
// # Architecture
//
// A run has three stages:
//
//  1. Encode: turn the payload into a module grid with a [matrix.Encoder]
//  2. Render: build the vector document with [qr.Render]
//  3. Export: serialize the document to SVG and/or PNG with the sinks
//
// Encoded grids and exported artifacts are cached independently, so a style
// change reuses the grid and an identical request skips every stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Payload: "https://example.com",
//	    Style:   s,
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrsmith/pkg/cache"
	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/matrix"
	"github.com/matzehuels/qrsmith/pkg/render/qr"
	"github.com/matzehuels/qrsmith/pkg/render/qr/sink"
	"github.com/matzehuels/qrsmith/pkg/style"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultPrecision is the number of decimals written for path coordinates.
	DefaultPrecision = sink.DefaultPrecision

	// DefaultScale is the PNG pixel density relative to the style width.
	DefaultScale = sink.DefaultScale

	// MaxScale bounds PNG output to a sane number of pixels.
	MaxScale = 16.0
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	Payload string      `json:"payload"`
	Style   style.Style `json:"-"`

	// KeepECC disables raising the error correction level to H when an
	// overlay image is present. Set it when the level was chosen explicitly.
	KeepECC bool `json:"keep_ecc,omitempty"`

	// Export options
	Formats   []string `json:"formats,omitempty"`
	Precision int      `json:"precision,omitempty"`
	Scale     float64  `json:"scale,omitempty"`

	// Refresh bypasses cached artifacts and re-renders.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
	eccRaised bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Matrix is the encoded module grid. It is the zero Matrix when every
	// artifact was served from the cache.
	Matrix matrix.Matrix

	// Document is the composed vector document. Like Matrix, it is only
	// populated when the render stage ran.
	Document qr.Document

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// StyleHash fingerprints the effective style.
	StyleHash string

	// ECC is the error correction level the payload was encoded at.
	ECC matrix.Level

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Size       int // modules per side
	Modules    int // dark modules
	EncodeTime time.Duration
	RenderTime time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	EncodeHit bool // Whether the module grid came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.Config("invalid format: %q (must be one of: svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidatePayload(o.Payload); err != nil {
		return err
	}
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Precision < 0 || o.Precision > 8 {
		return errors.Config("precision must be within [0,8], got %d", o.Precision)
	}
	if math.IsNaN(o.Scale) || o.Scale <= 0 || o.Scale > MaxScale {
		return errors.Config("scale must be within (0,%v], got %v", MaxScale, o.Scale)
	}
	s, err := o.Style.Canonical()
	if err != nil {
		return err
	}
	o.Style = s
	if o.Style.Overlay.Present() && !o.KeepECC && o.Style.ECC != matrix.LevelH {
		o.Style.ECC = matrix.LevelH
		o.eccRaised = true
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset fields. A zero Style becomes style.Default().
func (o *Options) SetDefaults() {
	if isZeroStyle(o.Style) {
		o.Style = style.Default()
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Precision == 0 {
		o.Precision = DefaultPrecision
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ECCRaised reports whether validation raised the error correction level
// because of an overlay image.
func (o *Options) ECCRaised() bool { return o.eccRaised }

// StyleHash returns a stable fingerprint of the style.
func (o *Options) StyleHash() (string, error) {
	var buf bytes.Buffer
	if err := style.Encode(&buf, o.Style, style.FormatJSON); err != nil {
		return "", fmt.Errorf("fingerprint style: %w", err)
	}
	return cache.Hash(buf.Bytes()), nil
}

// ArtifactKeyOpts returns cache key options for one exported format.
func (o *Options) ArtifactKeyOpts(styleHash, format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Payload:   o.Payload,
		ECC:       string(o.Style.ECC),
		StyleHash: styleHash,
		Format:    format,
	}
	switch format {
	case FormatSVG:
		opts.Precision = o.Precision
	case FormatPNG:
		opts.Precision = o.Precision
		opts.Scale = o.Scale
	}
	return opts
}

func isZeroStyle(s style.Style) bool {
	return s.Width == 0 && s.Dots.Shape == "" && s.Dots.Paint == nil && s.ECC == ""
}
