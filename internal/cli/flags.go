package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsmith/pkg/matrix"
	"github.com/matzehuels/qrsmith/pkg/style"
)

// styleFlags are the style overrides shared by render and batch.
// Flags apply on top of the --style file, which applies on top of the defaults.
type styleFlags struct {
	file       string  // TOML or JSON style file
	width      float64 // canvas width in pixels
	ecc        string  // error correction level: L, M, Q, H
	dots       string  // data module shape
	color      string  // data module color
	background string  // background color or "transparent"
	locator    string  // locator square shape
	locatorDot string  // locator dot shape or "inherit"
	logo       string  // logo file, data URI or http(s) URL
	logoSize   float64 // logo side relative to the matrix side
	logoMargin float64 // clearance around the logo in pixels
	noOcclude  bool    // keep modules under the logo
}

func (f *styleFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.file, "style", "s", "", "style file (.toml or .json)")
	fs.Float64VarP(&f.width, "width", "w", style.DefaultWidth, "image width in pixels")
	fs.StringVar(&f.ecc, "ecc", string(matrix.DefaultLevel), "error correction level: L, M, Q, H")
	fs.StringVar(&f.dots, "dots", string(style.DotSquare), "module shape: square, rounded, extra-rounded, dots, classy, classy-rounded, fluid, fluid-smooth")
	fs.StringVar(&f.color, "color", string(style.DefaultColor), "module color (hex or CSS name)")
	fs.StringVar(&f.background, "background", string(style.Transparent), "background color or 'transparent'")
	fs.StringVar(&f.locator, "locator", string(style.LocatorSquare), "locator square shape: square, rounded, extra-rounded, dot, classy, classy-rounded")
	fs.StringVar(&f.locatorDot, "locator-dot", string(style.LocatorInherit), "locator dot shape, or 'inherit'")
	fs.StringVar(&f.logo, "logo", "", "logo image file, data URI or http(s) URL")
	fs.Float64Var(&f.logoSize, "logo-size", style.DefaultLogoSize, "logo side as a fraction of the code side (0-1)")
	fs.Float64Var(&f.logoMargin, "logo-margin", style.DefaultLogoMargin, "clearance around the logo in pixels")
	fs.BoolVar(&f.noOcclude, "no-occlude", false, "draw modules underneath the logo")

	_ = cmd.RegisterFlagCompletionFunc("dots", cobra.FixedCompletions([]string{
		"square", "rounded", "extra-rounded", "dots", "classy", "classy-rounded", "fluid", "fluid-smooth",
	}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("ecc", cobra.FixedCompletions([]string{"L", "M", "Q", "H"}, cobra.ShellCompDirectiveNoFileComp))
}

// build resolves the effective style. Only flags the user actually set
// override the style file. keepECC reports whether the level was chosen
// explicitly and must survive adding a logo.
func (f *styleFlags) build(cmd *cobra.Command) (s style.Style, keepECC bool, err error) {
	b := style.New()
	if f.file != "" {
		loaded, err := style.Load(f.file)
		if err != nil {
			return style.Style{}, false, err
		}
		b = style.From(loaded)
	}

	changed := cmd.Flags().Changed

	if changed("width") {
		b = b.Width(f.width)
	}
	if changed("ecc") {
		level, err := matrix.ParseLevel(f.ecc)
		if err != nil {
			return style.Style{}, false, err
		}
		b = b.ECC(level)
		keepECC = true
	}
	if changed("dots") {
		shape, err := style.ParseDotShape(f.dots)
		if err != nil {
			return style.Style{}, false, err
		}
		b = b.DotsShape(shape)
	}
	if changed("color") {
		c, err := style.ParseColor(f.color)
		if err != nil {
			return style.Style{}, false, err
		}
		b = b.DotsPaint(c)
	}
	if changed("background") {
		c, err := style.ParseColor(f.background)
		if err != nil {
			return style.Style{}, false, err
		}
		b = b.Background(c)
	}
	if changed("locator") {
		shape, err := style.ParseLocatorShape(f.locator, false)
		if err != nil {
			return style.Style{}, false, err
		}
		b = b.LocatorSquareShape(shape)
	}
	if changed("locator-dot") {
		shape, err := style.ParseLocatorShape(f.locatorDot, true)
		if err != nil {
			return style.Style{}, false, err
		}
		b = b.LocatorDotShape(shape)
	}
	if f.logo != "" {
		href, err := logoHref(f.logo)
		if err != nil {
			return style.Style{}, false, err
		}
		b = b.OverlayImage(href)
	}
	if changed("logo-size") {
		b = b.OverlaySize(f.logoSize)
	}
	if changed("logo-margin") {
		b = b.OverlayMargin(f.logoMargin)
	}
	if f.noOcclude {
		b = b.OverlayOcclude(false)
	}

	s, err = b.Build()
	return s, keepECC, err
}
