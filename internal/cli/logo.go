package cli

import (
	"encoding/base64"
	"net/http"
	"os"
	"strings"

	"github.com/matzehuels/qrsmith/pkg/errors"
)

// maxLogoBytes bounds logo files embedded into the document.
const maxLogoBytes = 2 << 20

// logoHref turns the --logo argument into an image reference. URLs and data
// URIs pass through; anything else is read as a file and embedded as a
// base64 data URI with a sniffed content type.
func logoHref(arg string) (string, error) {
	if strings.HasPrefix(arg, "data:") || strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return arg, errors.ValidateImageHref(arg)
	}
	if err := errors.ValidatePath(arg); err != nil {
		return "", err
	}

	data, err := os.ReadFile(arg)
	if os.IsNotExist(err) {
		return "", errors.Wrap(errors.ErrCodeNotFound, err, "logo file %s", arg)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "read logo %s", arg)
	}
	if len(data) > maxLogoBytes {
		return "", errors.Config("logo %s is too large (%d bytes, max %d)", arg, len(data), maxLogoBytes)
	}

	contentType := sniffImageType(arg, data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", errors.Config("logo %s is not an image (detected %s)", arg, contentType)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// sniffImageType detects the media type of data. SVG is text to the
// standard sniffer, so it is recognized by extension.
func sniffImageType(path string, data []byte) string {
	if strings.HasSuffix(strings.ToLower(path), ".svg") {
		return "image/svg+xml"
	}
	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}
