package matrix

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/matzehuels/qrsmith/pkg/errors"
)

// Level is the error correction level requested from the encoder.
type Level string

// Error correction levels, from least to most robust.
const (
	LevelL Level = "L" // ~7% recovery
	LevelM Level = "M" // ~15% recovery
	LevelQ Level = "Q" // ~25% recovery
	LevelH Level = "H" // ~30% recovery
)

// DefaultLevel matches the original UI, which favors robustness because
// logos routinely cover part of the code.
const DefaultLevel = LevelH

// ParseLevel parses a level name, case-insensitively. Empty selects DefaultLevel.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return DefaultLevel, nil
	case LevelL:
		return LevelL, nil
	case LevelM:
		return LevelM, nil
	case LevelQ:
		return LevelQ, nil
	case LevelH:
		return LevelH, nil
	}
	return "", errors.Config("unknown error correction level %q (want L, M, Q or H)", s)
}

// Encoder turns a payload into a module grid.
type Encoder interface {
	Encode(payload string, level Level) (Matrix, error)
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc func(payload string, level Level) (Matrix, error)

// Encode calls f.
func (f EncoderFunc) Encode(payload string, level Level) (Matrix, error) {
	return f(payload, level)
}

// QREncoder encodes payloads with github.com/skip2/go-qrcode.
type QREncoder struct{}

// NewQREncoder returns the default encoder.
func NewQREncoder() QREncoder { return QREncoder{} }

// Encode produces the bare module grid (no quiet zone; the renderer adds its own).
func (QREncoder) Encode(payload string, level Level) (Matrix, error) {
	if err := errors.ValidatePayload(payload); err != nil {
		return Matrix{}, err
	}
	lvl, err := recoveryLevel(level)
	if err != nil {
		return Matrix{}, err
	}

	q, err := qrcode.New(payload, lvl)
	if err != nil {
		return Matrix{}, errors.Wrap(errors.ErrCodeEncoding, err, "encode %d bytes at level %s", len(payload), level)
	}
	q.DisableBorder = true

	m, err := New(q.Bitmap())
	if err != nil {
		return Matrix{}, fmt.Errorf("encoder output: %w", err)
	}
	return m, nil
}

func recoveryLevel(l Level) (qrcode.RecoveryLevel, error) {
	switch l {
	case LevelL:
		return qrcode.Low, nil
	case LevelM:
		return qrcode.Medium, nil
	case LevelQ:
		return qrcode.High, nil
	case LevelH, "":
		return qrcode.Highest, nil
	}
	return 0, errors.Config("unknown error correction level %q", l)
}

var _ Encoder = QREncoder{}
