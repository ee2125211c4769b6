package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/makiuchi-d/gozxing"
	gzqrcode "github.com/makiuchi-d/gozxing/qrcode"

	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/style"
)

// decode composites img onto white, since transparent pixels would read as
// dark, and runs a generic QR reader over it.
func decode(t *testing.T, img image.Image) string {
	t.Helper()
	bg := image.NewRGBA(img.Bounds())
	draw.Draw(bg, bg.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(bg, bg.Bounds(), img, img.Bounds().Min, draw.Over)

	bmp, err := gozxing.NewBinaryBitmapFromImage(bg)
	if err != nil {
		t.Fatalf("NewBinaryBitmapFromImage() error: %v", err)
	}
	res, err := gzqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return res.GetText()
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		b       style.Builder
	}{
		{"default square", "HELLO", style.New()},
		{"rounded", "HELLO", style.New().Dots(style.DotRounded, style.Color("#000000")).LocatorSquare(style.LocatorRounded, nil)},
		{"classy", "https://example.com", style.New().Dots(style.DotClassy, style.Color("#000000")).LocatorSquare(style.LocatorClassy, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.b.Build()
			if err != nil {
				t.Fatal(err)
			}
			img, err := RasterizeImage(renderDoc(t, tt.payload, s))
			if err != nil {
				t.Fatalf("RasterizeImage() error: %v", err)
			}
			if got := decode(t, img); got != tt.payload {
				t.Errorf("decoded %q, want %q", got, tt.payload)
			}
		})
	}
}

func TestRenderPNG(t *testing.T) {
	doc := renderDoc(t, "HELLO", style.Default())
	data, err := RenderPNG(doc, WithScale(1.5))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 450 || b.Dy() != 450 {
		t.Errorf("PNG is %dx%d, want 450x450", b.Dx(), b.Dy())
	}

	// The quiet zone stays transparent; the top-left locator corner is dark.
	if _, _, _, a := img.At(2, 2).RGBA(); a != 0 {
		t.Errorf("quiet zone alpha = %d, want 0", a)
	}
	corner := int(4*450/29) + 3
	if r, g, b, a := img.At(corner, corner).RGBA(); a == 0 || r > 0x8000 || g > 0x8000 || b > 0x8000 {
		t.Errorf("locator pixel = %d,%d,%d,%d, want dark", r, g, b, a)
	}
}

func TestRenderPNGBadScale(t *testing.T) {
	doc := renderDoc(t, "HELLO", style.Default())
	for _, scale := range []float64{0, -1} {
		if _, err := RenderPNG(doc, WithScale(scale)); !errors.Is(err, errors.ErrCodeConfig) {
			t.Errorf("RenderPNG(scale %v) error = %v, want CONFIG_INVALID", scale, err)
		}
	}
}
