package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrsmith/pkg/cache"
	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/matrix"
	"github.com/matzehuels/qrsmith/pkg/observability"
	"github.com/matzehuels/qrsmith/pkg/render/qr"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Encoder matrix.Encoder
	Limits  qr.Limits
	Logger  *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Encoder: matrix.NewQREncoder(),
		Limits:  qr.DefaultLimits,
		Logger:  logger,
	}
}

// Execute runs the complete encode → render → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.ECCRaised() {
		r.Logger.Debug("raised error correction for overlay image", "ecc", opts.Style.ECC)
	}

	styleHash, err := opts.StyleHash()
	if err != nil {
		return nil, err
	}
	result := &Result{
		StyleHash: styleHash,
		ECC:       opts.Style.ECC,
	}

	// Fast path: every artifact already exported.
	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, opts, styleHash); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			r.Logger.Info("served from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 1: Encode
	encodeStart := time.Now()
	m, encodeHit, err := r.EncodeWithCacheInfo(ctx, opts.Payload, opts.Style.ECC)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Matrix = m
	result.Stats.EncodeTime = time.Since(encodeStart)
	result.Stats.Size = m.Size()
	result.Stats.Modules = m.Count()
	result.CacheInfo.EncodeHit = encodeHit

	r.Logger.Debug("encoded payload",
		"size", m.Size(),
		"modules", result.Stats.Modules,
		"ecc", opts.Style.ECC,
		"cache", encodeHit,
		"duration", result.Stats.EncodeTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Render
	renderStart := time.Now()
	doc, err := r.Render(ctx, m, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Document = doc
	result.Stats.RenderTime = time.Since(renderStart)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Export
	exportStart := time.Now()
	artifacts, err := Export(doc, opts)
	if err != nil {
		if errors.Is(err, errors.ErrCodeRender) {
			r.Logger.Error("export failed", "err", err)
		}
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(styleHash, format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	r.Logger.Info("rendered qr code",
		"size", m.Size(),
		"layers", len(doc.Layers),
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime+result.Stats.ExportTime)

	return result, nil
}

// EncodeWithCacheInfo encodes payload with caching and returns cache hit info.
func (r *Runner) EncodeWithCacheInfo(ctx context.Context, payload string, level matrix.Level) (matrix.Matrix, bool, error) {
	key := r.Keyer.MatrixKey(payload, string(level))

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var m matrix.Matrix
		if err := m.UnmarshalText(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "matrix")
			return m, true, nil
		}
		// If deserialization fails, fall through to re-encode
	}
	observability.Cache().OnCacheMiss(ctx, "matrix")

	hooks := observability.Render()
	hooks.OnEncodeStart(ctx, len(payload), string(level))
	start := time.Now()
	m, err := r.Encoder.Encode(payload, level)
	hooks.OnEncodeComplete(ctx, m.Size(), time.Since(start), err)
	if err != nil {
		return matrix.Matrix{}, false, err
	}

	if data, err := m.MarshalText(); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLMatrix); err == nil {
			observability.Cache().OnCacheSet(ctx, "matrix", len(data))
		}
	}
	return m, false, nil
}

// Encode is a convenience wrapper that calls EncodeWithCacheInfo and discards the cache hit info.
func (r *Runner) Encode(ctx context.Context, payload string, level matrix.Level) (matrix.Matrix, error) {
	m, _, err := r.EncodeWithCacheInfo(ctx, payload, level)
	return m, err
}

// Render builds the vector document for m. Render errors are defects and
// are logged at error level before being returned.
func (r *Runner) Render(ctx context.Context, m matrix.Matrix, opts Options) (qr.Document, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, string(opts.Style.Dots.Shape), opts.Formats)
	start := time.Now()

	doc, err := qr.Render(m, opts.Style, qr.WithLimits(r.Limits))
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)

	if errors.Is(err, errors.ErrCodeRender) {
		r.Logger.Error("render failed",
			"size", m.Size(),
			"dots", opts.Style.Dots.Shape,
			"err", err)
	}
	return doc, err
}

// cachedArtifacts returns every requested format from the cache, or false
// if any of them is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, opts Options, styleHash string) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(styleHash, format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
