package style

import (
	"math"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/matrix"
)

func TestDefault(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if s.Width != 300 {
		t.Errorf("Width = %v, want 300", s.Width)
	}
	if s.ECC != matrix.LevelH {
		t.Errorf("ECC = %v, want H", s.ECC)
	}
	if !IsTransparent(s.Background) {
		t.Errorf("Background = %v, want transparent", s.Background)
	}
	if s.Overlay.Present() {
		t.Error("default overlay should not be present")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#292732", "#292732", false},
		{"#ABC", "#abc", false},
		{" #FFFFFF ", "#ffffff", false},
		{"red", "red", false},
		{"RebeccaPurple", "#663399", false},
		{"transparent", Transparent, false},
		{"", "", true},
		{"#12", "", true},
		{"#12345", "", true},
		{"#gggggg", "", true},
		{"notacolor", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeConfig) {
					t.Errorf("ParseColor(%q) error = %v, want CONFIG_INVALID", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewGradient(t *testing.T) {
	black := Stop{Offset: 0, Color: "#000000"}
	white := Stop{Offset: 1, Color: "#ffffff"}

	tests := []struct {
		name    string
		kind    GradientKind
		stops   []Stop
		wantErr bool
	}{
		{"no stops", Linear, nil, true},
		{"one stop", Linear, []Stop{black}, true},
		{"two stops", Linear, []Stop{black, white}, false},
		{"equal offsets", Radial, []Stop{black, {Offset: 0, Color: "red"}, white}, false},
		{"decreasing offsets", Linear, []Stop{white, black}, true},
		{"offset above one", Linear, []Stop{black, {Offset: 1.5, Color: "red"}}, true},
		{"offset below zero", Linear, []Stop{{Offset: -0.1, Color: "red"}, white}, true},
		{"bad stop color", Linear, []Stop{black, {Offset: 1, Color: "nope"}}, true},
		{"unknown kind", "conic", []Stop{black, white}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGradient(tt.kind, 0, tt.stops...)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeConfig) {
					t.Errorf("NewGradient() error = %v, want CONFIG_INVALID", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewGradient() error: %v", err)
			}
			if len(g.Stops()) != len(tt.stops) {
				t.Errorf("Stops() has %d entries, want %d", len(g.Stops()), len(tt.stops))
			}
		})
	}
}

func TestGradientImmutable(t *testing.T) {
	stops := []Stop{{0, "#000000"}, {1, "#ffffff"}}
	g, err := NewGradient("", math.Pi/2, stops...)
	if err != nil {
		t.Fatal(err)
	}
	if g.Kind() != Linear {
		t.Errorf("Kind() = %q, want linear", g.Kind())
	}

	stops[0].Color = "red"
	got := g.Stops()
	got[1].Color = "blue"
	if g.Stops()[0].Color != "#000000" || g.Stops()[1].Color != "#ffffff" {
		t.Error("gradient stops changed through a caller-held slice")
	}
}

func TestRadialIgnoresRotation(t *testing.T) {
	g, err := NewGradient(Radial, 1.2, Stop{0, "red"}, Stop{1, "blue"})
	if err != nil {
		t.Fatal(err)
	}
	if g.Rotation() != 0 {
		t.Errorf("Rotation() = %v, want 0 for radial", g.Rotation())
	}
}

func TestParseShapes(t *testing.T) {
	dots := map[string]DotShape{
		"":                 DotSquare,
		"Classy-Rounded":   DotClassyRounded,
		"connected":        DotFluid,
		"connected-smooth": DotFluidSmooth,
		"fluid-smooth":     DotFluidSmooth,
	}
	for in, want := range dots {
		got, err := ParseDotShape(in)
		if err != nil || got != want {
			t.Errorf("ParseDotShape(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseDotShape("hexagon"); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("ParseDotShape(hexagon) error = %v, want CONFIG_INVALID", err)
	}

	if got, _ := ParseLocatorShape("", true); got != LocatorInherit {
		t.Errorf("empty dot shape = %q, want inherit", got)
	}
	if got, _ := ParseLocatorShape("", false); got != LocatorSquare {
		t.Errorf("empty square shape = %q, want square", got)
	}
	if _, err := ParseLocatorShape("inherit", false); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("inherit on the square should be rejected, got %v", err)
	}
}

func TestBuilderIsImmutable(t *testing.T) {
	base := New().Width(500)
	a := base.Dots(DotRounded, Color("red"))
	b := base.Dots(DotDots, Color("blue"))

	sa, err := a.Build()
	if err != nil {
		t.Fatal(err)
	}
	sb, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	sbase, err := base.Build()
	if err != nil {
		t.Fatal(err)
	}

	if sa.Dots.Shape != DotRounded || sb.Dots.Shape != DotDots {
		t.Errorf("derived builders interfere: %q / %q", sa.Dots.Shape, sb.Dots.Shape)
	}
	if sbase.Dots.Shape != DotSquare || sbase.Width != 500 {
		t.Errorf("base builder changed: %+v", sbase)
	}
}

func TestBuildValidates(t *testing.T) {
	tests := []struct {
		name string
		b    Builder
	}{
		{"zero width", New().Width(0)},
		{"negative width", New().Width(-10)},
		{"nan width", New().Width(math.NaN())},
		{"bad dot shape", New().DotsShape("blob")},
		{"bad color literal", New().DotsPaint(Color("#12"))},
		{"inherit square", New().LocatorSquare(LocatorInherit, nil)},
		{"empty gradient", New().Background(&Gradient{kind: Linear})},
		{"overlay too big", New().Overlay(Overlay{RelativeSize: 1.5})},
		{"negative margin", New().Overlay(Overlay{RelativeSize: 0.2, Margin: -1})},
		{"bad image", New().OverlayImage("file:///etc/passwd")},
		{"bad ecc", New().ECC("X")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.b.Build(); !errors.Is(err, errors.ErrCodeConfig) {
				t.Errorf("Build() error = %v, want CONFIG_INVALID", err)
			}
		})
	}
}

func TestBuildCanonicalizesShapes(t *testing.T) {
	s, err := New().
		DotsShape(DotShape("Connected-Smooth")).
		LocatorSquareShape(LocatorShape("DOT")).
		LocatorDotShape(LocatorShape(" Rounded ")).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if s.Dots.Shape != DotFluidSmooth {
		t.Errorf("Dots.Shape = %q, want %q", s.Dots.Shape, DotFluidSmooth)
	}
	if s.LocatorSquare.Shape != LocatorDot {
		t.Errorf("LocatorSquare.Shape = %q, want %q", s.LocatorSquare.Shape, LocatorDot)
	}
	if s.LocatorDot.Shape != LocatorRounded {
		t.Errorf("LocatorDot.Shape = %q, want %q", s.LocatorDot.Shape, LocatorRounded)
	}
}

func TestCanonicalRejectsInvalid(t *testing.T) {
	s := Default()
	s.Dots.Shape = "hexagon"
	if _, err := s.Canonical(); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("Canonical() error = %v, want CONFIG_INVALID", err)
	}
}

func TestPaintInheritance(t *testing.T) {
	s := Default()
	s.Dots.Paint = Color("red")
	if s.SquarePaint() != Color("red") || s.DotPaint() != Color("red") {
		t.Errorf("locators should inherit the dots paint, got %v / %v", s.SquarePaint(), s.DotPaint())
	}

	s.LocatorSquare.Paint = Color("blue")
	if s.DotPaint() != Color("blue") {
		t.Errorf("DotPaint() = %v, want the square paint", s.DotPaint())
	}

	s.LocatorDot.Paint = Color("green")
	if s.DotPaint() != Color("green") {
		t.Errorf("DotPaint() = %v, want green", s.DotPaint())
	}

	s.LocatorSquare.Shape = LocatorClassy
	s.LocatorDot.Shape = LocatorInherit
	if s.DotShape() != LocatorClassy {
		t.Errorf("DotShape() = %q, want the square shape", s.DotShape())
	}
}

const tomlStyle = `
width = 600.0
ecc_level = "q"

[dots]
type = "classy-rounded"
color = "#112233"

[locator_square]
type = "dot"

[locator_dot]
type = "inherit"

[background]
[background.gradient]
type = "linear"
rotation = 1.5
stops = [
  { offset = 0.0, color = "#ffffff" },
  { offset = 1.0, color = "#eeeeee" },
]

[overlay]
image = "data:image/png;base64,AAAA"
relative_size = 0.3
margin = 4.0
occlude_modules = false
`

const jsonStyle = `{
  "width": 600,
  "ecc_level": "Q",
  "dots": {"type": "classy-rounded", "color": "#112233"},
  "locator_square": {"type": "dot"},
  "locator_dot": {"type": "inherit"},
  "background": {"gradient": {"type": "linear", "rotation": 1.5, "stops": [
    {"offset": 0, "color": "#ffffff"},
    {"offset": 1, "color": "#eeeeee"}
  ]}},
  "overlay": {"image": "data:image/png;base64,AAAA", "relative_size": 0.3, "margin": 4, "occlude_modules": false}
}`

func TestDecodeFormatsAgree(t *testing.T) {
	fromTOML, err := Decode(strings.NewReader(tomlStyle), FormatTOML, New())
	if err != nil {
		t.Fatalf("Decode(TOML) error: %v", err)
	}
	fromJSON, err := Decode(strings.NewReader(jsonStyle), FormatJSON, New())
	if err != nil {
		t.Fatalf("Decode(JSON) error: %v", err)
	}
	if diff := cmp.Diff(fromTOML, fromJSON); diff != "" {
		t.Errorf("TOML and JSON styles differ (-toml +json):\n%s", diff)
	}

	if fromTOML.Width != 600 || fromTOML.ECC != matrix.LevelQ {
		t.Errorf("Width/ECC = %v/%v, want 600/Q", fromTOML.Width, fromTOML.ECC)
	}
	if fromTOML.Dots.Shape != DotClassyRounded {
		t.Errorf("Dots.Shape = %q", fromTOML.Dots.Shape)
	}
	if fromTOML.LocatorSquare.Paint != nil {
		t.Errorf("locator square paint should stay inherited, got %v", fromTOML.LocatorSquare.Paint)
	}
	g, ok := fromTOML.Background.(*Gradient)
	if !ok || g.Kind() != Linear || g.Rotation() != 1.5 {
		t.Errorf("Background = %#v, want linear gradient rotated 1.5", fromTOML.Background)
	}
	if fromTOML.Overlay.OccludeModules {
		t.Error("occlude_modules = false was not applied")
	}
}

func TestDecodeKeepsBase(t *testing.T) {
	base := New().Width(123).Dots(DotDots, Color("red"))
	s, err := Decode(strings.NewReader(`{"dots": {"type": "rounded"}}`), FormatJSON, base)
	if err != nil {
		t.Fatal(err)
	}
	if s.Width != 123 || s.Dots.Paint != Color("red") || s.Dots.Shape != DotRounded {
		t.Errorf("Decode() = %+v, want base values with rounded dots", s)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
	}{
		{"color and gradient", FormatJSON, `{"dots": {"color": "red", "gradient": {"type": "linear", "stops": [{"offset": 0, "color": "red"}, {"offset": 1, "color": "blue"}]}}}`},
		{"gradient without stops", FormatJSON, `{"dots": {"gradient": {"type": "linear", "stops": []}}}`},
		{"gradient with one stop", FormatTOML, "[dots.gradient]\ntype = \"radial\"\nstops = [{ offset = 0.0, color = \"red\" }]\n"},
		{"unknown json key", FormatJSON, `{"widht": 300}`},
		{"unknown toml key", FormatTOML, "widht = 300\n"},
		{"negative width", FormatJSON, `{"width": -1}`},
		{"unknown shape", FormatTOML, "[dots]\ntype = \"stars\"\n"},
		{"typed background", FormatJSON, `{"background": {"type": "square", "color": "red"}}`},
		{"malformed", FormatJSON, `{"width": `},
		{"bad format", Format("yaml"), `width: 1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), tt.format, New())
			if !errors.Is(err, errors.ErrCodeConfig) {
				t.Errorf("Decode() error = %v, want CONFIG_INVALID", err)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	if f, err := FormatFromPath("a/b/style.TOML"); err != nil || f != FormatTOML {
		t.Errorf("FormatFromPath(.TOML) = %q, %v", f, err)
	}
	if f, err := FormatFromPath("style.json"); err != nil || f != FormatJSON {
		t.Errorf("FormatFromPath(.json) = %q, %v", f, err)
	}
	if _, err := FormatFromPath("style.yaml"); err == nil {
		t.Error("FormatFromPath(.yaml) should fail")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/style.toml"
	if err := os.WriteFile(path, []byte(tomlStyle), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Width != 600 {
		t.Errorf("Width = %v, want 600", s.Width)
	}

	if _, err := Load(dir + "/missing.json"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Load(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	grad, err := NewGradient(Radial, 0, Stop{0, "red"}, Stop{0.4, "#00ff00"}, Stop{1, "blue"})
	if err != nil {
		t.Fatal(err)
	}
	want, err := New().
		Width(420).
		Dots(DotFluidSmooth, grad).
		LocatorSquare(LocatorClassy, Color("navy")).
		LocatorDot(LocatorDot, nil).
		Background(Color("#ffffff")).
		Overlay(Overlay{Image: "https://example.com/x.png", RelativeSize: 0.25, Margin: 3, OccludeModules: true}).
		ECC(matrix.LevelM).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	for _, format := range []Format{FormatTOML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf strings.Builder
			if err := Encode(&buf, want, format); err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			// Decode on top of a base that differs everywhere.
			base := New().Width(1).Dots(DotSquare, Color("red")).Overlay(Overlay{RelativeSize: 1, Margin: 5, OccludeModules: false})
			got, err := Decode(strings.NewReader(buf.String()), format, base)
			if err != nil {
				t.Fatalf("Decode() error: %v\n%s", err, buf.String())
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
