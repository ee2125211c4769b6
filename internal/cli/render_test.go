package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsmith/pkg/cache"
	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/matrix"
	"github.com/matzehuels/qrsmith/pkg/style"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,png", []string{"svg", "png"}},
		{"spaces trimmed", "svg, png", []string{"svg", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"default single", "", []string{"svg"}, map[string]string{"svg": "qrcode.svg"}},
		{"default multiple", "", []string{"svg", "png"}, map[string]string{"svg": "qrcode.svg", "png": "qrcode.png"}},
		{"explicit single", "out/code.svg", []string{"svg"}, map[string]string{"svg": "out/code.svg"}},
		{"explicit single odd extension", "code.image", []string{"png"}, map[string]string{"png": "code.image"}},
		{"multiple strips extension", "out/code.svg", []string{"svg", "png"}, map[string]string{"svg": "out/code.svg", "png": "out/code.png"}},
		{"multiple without extension", "out/code", []string{"svg", "png"}, map[string]string{"svg": "out/code.svg", "png": "out/code.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, outputPaths(tt.output, tt.formats)); diff != "" {
				t.Errorf("outputPaths() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadPayload(t *testing.T) {
	file := filepath.Join(t.TempDir(), "payload.txt")
	if err := os.WriteFile(file, []byte("from file\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    []string
		input   string
		stdin   string
		want    string
		wantErr bool
	}{
		{name: "argument", args: []string{"HELLO"}, want: "HELLO"},
		{name: "file", input: file, want: "from file"},
		{name: "stdin", args: []string{"-"}, stdin: "piped\r\n", want: "piped"},
		{name: "none", wantErr: true},
		{name: "both", args: []string{"x"}, input: file, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPayload(tt.args, tt.input, strings.NewReader(tt.stdin))
			if (err != nil) != tt.wantErr {
				t.Fatalf("readPayload() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("readPayload() = %q, want %q", got, tt.want)
			}
		})
	}
}

// buildStyle parses args as style flags the way render does.
func buildStyle(t *testing.T, args ...string) (style.Style, bool, error) {
	t.Helper()
	var sf styleFlags
	cmd := &cobra.Command{Use: "test"}
	sf.register(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return sf.build(cmd)
}

func TestStyleFlagsDefaults(t *testing.T) {
	s, keepECC, err := buildStyle(t)
	if err != nil {
		t.Fatal(err)
	}
	if keepECC {
		t.Error("keepECC should be false without --ecc")
	}
	if diff := cmp.Diff(style.Default(), s, cmp.AllowUnexported(style.Gradient{})); diff != "" {
		t.Errorf("no flags should give the default style (-want +got):\n%s", diff)
	}
}

func TestStyleFlagsOverrideFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "brand.toml")
	doc := `
width = 500.0
ecc_level = "Q"

[dots]
type = "rounded"
color = "#112233"
`
	if err := os.WriteFile(file, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	s, keepECC, err := buildStyle(t, "--style", file, "--dots", "fluid-smooth", "--ecc", "m", "--locator", "dot", "--background", "white")
	if err != nil {
		t.Fatal(err)
	}
	if !keepECC {
		t.Error("--ecc should mark the level as explicit")
	}
	if s.Width != 500 {
		t.Errorf("Width = %v, want the file value 500", s.Width)
	}
	if s.Dots.Shape != style.DotFluidSmooth {
		t.Errorf("Dots.Shape = %s, want the flag value", s.Dots.Shape)
	}
	if s.Dots.Paint != style.Color("#112233") {
		t.Errorf("Dots.Paint = %v, want the file color", s.Dots.Paint)
	}
	if s.ECC != matrix.LevelM {
		t.Errorf("ECC = %s, want M", s.ECC)
	}
	if s.LocatorSquare.Shape != style.LocatorDot {
		t.Errorf("LocatorSquare.Shape = %s, want dot", s.LocatorSquare.Shape)
	}
	if s.Background == nil || style.IsTransparent(s.Background) {
		t.Error("--background white should set an opaque background")
	}
}

func TestStyleFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad dots", []string{"--dots", "hexagon"}, errors.ErrCodeConfig},
		{"bad ecc", []string{"--ecc", "X"}, errors.ErrCodeConfig},
		{"inherit square", []string{"--locator", "inherit"}, errors.ErrCodeConfig},
		{"bad color", []string{"--color", "#12"}, errors.ErrCodeConfig},
		{"bad logo size", []string{"--logo", "https://example.com/a.png", "--logo-size", "2"}, errors.ErrCodeConfig},
		{"missing logo", []string{"--logo", "/does/not/exist.png"}, errors.ErrCodeNotFound},
		{"missing style", []string{"--style", "/does/not/exist.toml"}, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := buildStyle(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("build() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLogoHref(t *testing.T) {
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	pngPath := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(pngPath, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	svgPath := filepath.Join(dir, "logo.svg")
	if err := os.WriteFile(svgPath, []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`), 0644); err != nil {
		t.Fatal(err)
	}
	txtPath := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txtPath, []byte("just text"), 0644); err != nil {
		t.Fatal(err)
	}

	href, err := logoHref(pngPath)
	if err != nil {
		t.Fatalf("logoHref(png): %v", err)
	}
	if !strings.HasPrefix(href, "data:image/png;base64,") {
		t.Errorf("png href = %.40s, want a PNG data URI", href)
	}

	href, err = logoHref(svgPath)
	if err != nil {
		t.Fatalf("logoHref(svg): %v", err)
	}
	if !strings.HasPrefix(href, "data:image/svg+xml;base64,") {
		t.Errorf("svg href = %.40s, want an SVG data URI", href)
	}

	if href, err := logoHref("https://example.com/logo.png"); err != nil || href != "https://example.com/logo.png" {
		t.Errorf("URL should pass through, got %q, %v", href, err)
	}
	if _, err := logoHref(txtPath); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("logoHref(txt) error = %v, want CONFIG_INVALID", err)
	}
	if _, err := logoHref("data:text/plain,hi"); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("non-image data URI error = %v, want CONFIG_INVALID", err)
	}
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommandWritesFiles(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "code")

	if _, err := execute(t, "--no-cache", "render", "https://example.com", "-o", base, "-f", "svg,png", "--dots", "rounded", "--scale", "1"); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg output starts with %.20q", svg)
	}
	pngData, err := os.ReadFile(base + ".png")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(pngData))
	if err != nil {
		t.Fatalf("png output: %v", err)
	}
	if cfg.Width != int(style.DefaultWidth) {
		t.Errorf("png width = %d, want %d at scale 1", cfg.Width, int(style.DefaultWidth))
	}
}

func TestRenderCommandStdout(t *testing.T) {
	out, err := execute(t, "--no-cache", "render", "HELLO", "-o", "-", "--width", "210")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, `<svg width="210" height="210"`) {
		t.Errorf("stdout = %.60q, want an SVG of width 210", out)
	}

	if _, err := execute(t, "--no-cache", "render", "HELLO", "-o", "-", "-f", "svg,png"); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("stdout with two formats error = %v, want CONFIG_INVALID", err)
	}
}

func TestRenderCommandUsesFileCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	out := filepath.Join(t.TempDir(), "code.svg")

	for i := 0; i < 2; i++ {
		if _, err := execute(t, "render", "HELLO", "-o", out); err != nil {
			t.Fatalf("render #%d: %v", i+1, err)
		}
	}

	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	st, err := fc.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// One encoded grid and one SVG artifact.
	if st.Entries != 2 {
		t.Errorf("cache holds %d entries, want 2", st.Entries)
	}
}

func TestStyleCommand(t *testing.T) {
	out, err := execute(t, "style", "--format", "json", "--dots", "classy", "--color", "navy")
	if err != nil {
		t.Fatal(err)
	}
	s, err := style.Decode(strings.NewReader(out), style.FormatJSON, style.New())
	if err != nil {
		t.Fatalf("style output does not decode: %v\n%s", err, out)
	}
	if s.Dots.Shape != style.DotClassy {
		t.Errorf("Dots.Shape = %s, want classy", s.Dots.Shape)
	}

	if _, err := execute(t, "style", "--format", "yaml"); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("style --format yaml error = %v, want CONFIG_INVALID", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "qrsmith") {
		t.Error("bash completion should mention the binary name")
	}
}
