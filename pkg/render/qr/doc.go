// Package qr turns a QR module grid and a [style.Style] into vector geometry.
//
// # Overview
//
// Rendering runs in a fixed order. [Plan] derives the module size and the
// quiet-zone offset from the grid size and the requested width. [Locators]
// marks the three 7×7 locator regions and [LogoZone] computes the box hidden
// under an optional overlay image. With those in hand the data modules are
// drawn either one rounded rectangle per cell ([ModulePath]) or, for the
// fluid styles, as the merged outline of circles, connectors and fillets
// ([FluidPath]). [LocatorPatterns] draws the locator rings and dots, a
// [Paints] compiler turns colors and gradients into fill references, and
// [Compose] stacks everything into a [Document].
//
// [Render] runs the whole chain:
//
//	m, _ := matrix.NewQREncoder().Encode("HELLO", matrix.LevelH)
//	doc, err := qr.Render(m, style.Default())
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(doc)
//
// # Coordinates
//
// Every coordinate is an absolute canvas pixel. A quiet zone of [QuietZone]
// modules surrounds the grid on all sides, so for a grid of n modules
// ModuleSize = Width / (n + 8) and the grid starts at Offset = 4 × ModuleSize.
//
// Rendering is pure: the same grid and style always produce the same
// document, and calls share no state.
//
// [style.Style]: github.com/matzehuels/qrsmith/pkg/style.Style
package qr
