package style

import (
	"strings"

	"github.com/matzehuels/qrsmith/pkg/errors"
)

// DotShape is the rendering style of data modules.
type DotShape string

// Data module shapes.
const (
	DotSquare        DotShape = "square"
	DotRounded       DotShape = "rounded"
	DotExtraRounded  DotShape = "extra-rounded"
	DotDots          DotShape = "dots"
	DotClassy        DotShape = "classy"
	DotClassyRounded DotShape = "classy-rounded"
	DotFluid         DotShape = "fluid"        // connected blobs
	DotFluidSmooth   DotShape = "fluid-smooth" // connected blobs with filleted inner corners
)

// Organic reports whether adjacent modules fuse into connected blobs.
func (d DotShape) Organic() bool {
	return d == DotFluid || d == DotFluidSmooth
}

// ParseDotShape parses a data module shape name. Empty selects DotSquare.
// "connected" and "connected-smooth" are accepted as aliases of the fluid styles.
func ParseDotShape(s string) (DotShape, error) {
	switch v := DotShape(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return DotSquare, nil
	case DotSquare, DotRounded, DotExtraRounded, DotDots, DotClassy, DotClassyRounded, DotFluid, DotFluidSmooth:
		return v, nil
	case "connected":
		return DotFluid, nil
	case "connected-smooth":
		return DotFluidSmooth, nil
	}
	return "", errors.Config("unknown dot shape %q", s)
}

// LocatorShape is the rendering style of a locator square or locator dot.
type LocatorShape string

// Locator shapes.
const (
	LocatorSquare        LocatorShape = "square"
	LocatorRounded       LocatorShape = "rounded"
	LocatorExtraRounded  LocatorShape = "extra-rounded"
	LocatorDot           LocatorShape = "dot"
	LocatorClassy        LocatorShape = "classy"
	LocatorClassyRounded LocatorShape = "classy-rounded"
	LocatorInherit       LocatorShape = "inherit" // locator dot only
)

// ParseLocatorShape parses a locator shape name. Empty selects LocatorSquare
// for the outer square and LocatorInherit for the dot.
func ParseLocatorShape(s string, allowInherit bool) (LocatorShape, error) {
	v := LocatorShape(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case "":
		if allowInherit {
			return LocatorInherit, nil
		}
		return LocatorSquare, nil
	case LocatorSquare, LocatorRounded, LocatorExtraRounded, LocatorDot, LocatorClassy, LocatorClassyRounded:
		return v, nil
	case LocatorInherit:
		if allowInherit {
			return v, nil
		}
		return "", errors.Config("locator square shape cannot be %q", s)
	}
	return "", errors.Config("unknown locator shape %q", s)
}
