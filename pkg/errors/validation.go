package errors

import (
	"strings"
	"unicode"
)

// MaxPayloadBytes bounds the payload accepted before it reaches the encoder.
// A version 40 code holds at most 2953 bytes at level L.
const MaxPayloadBytes = 2953

// ValidatePayload checks that a payload is non-empty and not obviously too
// large for any QR version. The encoder makes the final, level-aware decision.
func ValidatePayload(payload string) error {
	if payload == "" {
		return New(ErrCodeConfig, "payload cannot be empty")
	}
	if len(payload) > MaxPayloadBytes {
		return New(ErrCodeEncoding, "payload too long (%d bytes, max %d)", len(payload), MaxPayloadBytes)
	}
	return nil
}

// ValidateImageHref validates an overlay image reference.
// Accepted forms are data URIs for images and http(s) URLs.
//
// Validation rules:
//   - No control characters
//   - data: URIs must declare an image/* media type
//   - Anything else must use the http or https scheme
func ValidateImageHref(href string) error {
	if href == "" {
		return New(ErrCodeConfig, "overlay image cannot be empty")
	}

	for _, r := range href {
		if unicode.IsControl(r) {
			return New(ErrCodeConfig, "overlay image contains control characters")
		}
	}

	if strings.HasPrefix(href, "data:") {
		if !strings.HasPrefix(href, "data:image/") {
			return New(ErrCodeConfig, "overlay data URI must be an image")
		}
		return nil
	}

	if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
		return New(ErrCodeConfig, "overlay image must be a data URI or use http or https scheme")
	}

	return nil
}

// ValidatePath validates a user supplied file path (style files, logos, outputs).
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
