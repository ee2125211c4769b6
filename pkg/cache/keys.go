package cache

import "fmt"

// Keyer builds cache keys.
type Keyer interface {
	// MatrixKey identifies the module grid encoded for a payload.
	MatrixKey(payload, ecc string) string

	// ArtifactKey identifies one rendered output.
	ArtifactKey(opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the inputs that determine an artifact's bytes.
type ArtifactKeyOpts struct {
	Payload   string  `json:"payload"`
	ECC       string  `json:"ecc"`
	StyleHash string  `json:"style_hash"`
	Format    string  `json:"format"`
	Precision int     `json:"precision,omitempty"` // svg coordinate decimals
	Scale     float64 `json:"scale,omitempty"`     // png scale factor
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct {
	version string
}

// NewDefaultKeyer returns a keyer for the current render version.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{version: RenderVersion}
}

// RenderVersion is mixed into every key so entries from a renderer with
// different output are never served.
const RenderVersion = "v1"

// MatrixKey returns "matrix:<hash>".
func (k *DefaultKeyer) MatrixKey(payload, ecc string) string {
	return hashKey("matrix", k.version, payload, ecc)
}

// ArtifactKey returns "artifact:<format>:<hash>".
func (k *DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), k.version, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
