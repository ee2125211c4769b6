package qr

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/qrsmith/pkg/geom"
	"github.com/matzehuels/qrsmith/pkg/style"
)

func TestModuleRadii(t *testing.T) {
	const m = 8.0
	all := Neighbors{Top: true, Right: true, Bottom: true, Left: true}
	topLeft := Neighbors{Top: true, Left: true}
	right := Neighbors{Right: true}

	tests := []struct {
		shape style.DotShape
		n     Neighbors
		want  geom.Radii
	}{
		{style.DotSquare, all, geom.Radii{}},
		{style.DotRounded, Neighbors{}, geom.Uniform(2)},
		{style.DotDots, all, geom.Uniform(4)},
		{style.DotExtraRounded, Neighbors{}, geom.Uniform(4)},
		{style.DotClassy, Neighbors{}, geom.Radii{}},
		{style.DotClassy, topLeft, geom.Radii{TL: 4}},
		{style.DotClassy, all, geom.Uniform(4)},
		{style.DotClassy, right, geom.Radii{}},
		{style.DotClassyRounded, Neighbors{}, geom.Radii{}},
		{style.DotClassyRounded, right, geom.Radii{TR: 4, BR: 4}},
		{style.DotClassyRounded, topLeft, geom.Radii{TL: 4, TR: 4, BL: 4}},
	}
	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			if got := ModuleRadii(tt.shape, tt.n, m); got != tt.want {
				t.Errorf("ModuleRadii(%s, %+v) = %+v, want %+v", tt.shape, tt.n, got, tt.want)
			}
		})
	}
}

func TestModulePath(t *testing.T) {
	m := gridWith(t, 21, [2]int{10, 10}, [2]int{10, 11})
	lay, err := NewLayout(m, 290, style.Overlay{})
	if err != nil {
		t.Fatal(err)
	}

	p := ModulePath(lay, style.DotSquare)
	want := "M140,140 H150 V150 H140 V140 Z M150,140 H160 V150 H150 V140 Z"
	if got := p.Data(3); got != want {
		t.Errorf("square path =\n%s\nwant\n%s", got, want)
	}

	// Locator cells are drawn by LocatorPatterns, never here.
	b := p.Bounds()
	if b.X < 110 || b.Y < 110 {
		t.Errorf("module path reaches into a locator region: %+v", b)
	}

	p = ModulePath(lay, style.DotClassyRounded)
	want = "M140,140 H145 A5,5 0 0 1 150,145 V145 A5,5 0 0 1 145,150 H140 V140 Z"
	if got := p.Data(3); !strings.HasPrefix(got, want) {
		t.Errorf("classy-rounded path starts\n%s\nwant prefix\n%s", got, want)
	}
}

func TestLocatorRadii(t *testing.T) {
	const m = 10.0
	tests := []struct {
		name  string
		shape style.LocatorShape
		role  Role
		inner bool
		want  geom.Radii
	}{
		{"dot square", style.LocatorDot, TopRight, false, geom.Uniform(35)},
		{"dot center", style.LocatorDot, TopRight, true, geom.Uniform(15)},
		{"rounded square", style.LocatorRounded, TopLeft, false, geom.Uniform(20)},
		{"rounded center", style.LocatorRounded, TopLeft, true, geom.Uniform(7.5)},
		{"extra-rounded square", style.LocatorExtraRounded, BottomLeft, false, geom.Uniform(30)},
		{"extra-rounded center", style.LocatorExtraRounded, BottomLeft, true, geom.Uniform(12.5)},
		{"square", style.LocatorSquare, TopLeft, false, geom.Radii{}},
		{"classy tl", style.LocatorClassy, TopLeft, false, geom.Radii{TL: 20}},
		{"classy tr", style.LocatorClassy, TopRight, false, geom.Radii{TR: 20}},
		{"classy bl", style.LocatorClassy, BottomLeft, false, geom.Radii{BL: 20}},
		{"classy bl center", style.LocatorClassy, BottomLeft, true, geom.Radii{BL: 7.5}},
		{"classy-rounded tl", style.LocatorClassyRounded, TopLeft, false, geom.Radii{TL: 20, TR: 20, BL: 20}},
		{"classy-rounded tr", style.LocatorClassyRounded, TopRight, false, geom.Radii{TL: 20, TR: 20, BR: 20}},
		{"classy-rounded bl", style.LocatorClassyRounded, BottomLeft, false, geom.Radii{TL: 20, BR: 20, BL: 20}},
		{"classy-rounded tr center", style.LocatorClassyRounded, TopRight, true, geom.Radii{TL: 7.5, TR: 7.5, BR: 7.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocatorRadii(tt.shape, tt.role, tt.inner, m); got != tt.want {
				t.Errorf("LocatorRadii() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLocatorPatternsDot(t *testing.T) {
	for _, width := range []float64{290, 300, 512.5} {
		lay, err := NewLayout(gridWith(t, 25), width, style.Overlay{})
		if err != nil {
			t.Fatal(err)
		}
		pats := LocatorPatterns(lay, style.LocatorDot, style.LocatorInherit)
		if len(pats) != 3 {
			t.Fatalf("got %d patterns, want 3", len(pats))
		}
		want := 3.5 * lay.Geometry.ModuleSize
		for _, p := range pats {
			r := p.SquareRadii
			if r.TL != want || r.TR != want || r.BR != want || r.BL != want {
				t.Errorf("width %v %s: square radii %+v, want all %v", width, p.Region.Role, r, want)
			}
			if p.DotRadii != geom.Uniform(1.5*lay.Geometry.ModuleSize) {
				t.Errorf("width %v %s: inherited dot radii %+v", width, p.Region.Role, p.DotRadii)
			}
		}
	}
}

func TestLocatorPatternsClassyAsymmetry(t *testing.T) {
	lay, err := NewLayout(gridWith(t, 21), 290, style.Overlay{})
	if err != nil {
		t.Fatal(err)
	}
	got := map[Role]geom.Radii{}
	for _, p := range LocatorPatterns(lay, style.LocatorClassy, style.LocatorSquare) {
		got[p.Region.Role] = p.SquareRadii
		if !p.DotRadii.IsZero() {
			t.Errorf("%s: square dot should have sharp corners, got %+v", p.Region.Role, p.DotRadii)
		}
	}
	want := map[Role]geom.Radii{
		TopLeft:    {TL: 20},
		TopRight:   {TR: 20},
		BottomLeft: {BL: 20},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("classy radii mismatch (-want +got):\n%s", diff)
	}
}

func TestLocatorRingGeometry(t *testing.T) {
	lay, err := NewLayout(gridWith(t, 21), 290, style.Overlay{})
	if err != nil {
		t.Fatal(err)
	}
	pats := LocatorPatterns(lay, style.LocatorRounded, style.LocatorSquare)
	tl := pats[0]

	// Outer 7×7 at (40,40) with r=20, inner 5×5 at (50,50) with r=10.
	want := "M60,40 H90 A20,20 0 0 1 110,60 V90 A20,20 0 0 1 90,110 H60 A20,20 0 0 1 40,90 V60 A20,20 0 0 1 60,40 Z " +
		"M60,50 H90 A10,10 0 0 1 100,60 V90 A10,10 0 0 1 90,100 H60 A10,10 0 0 1 50,90 V60 A10,10 0 0 1 60,50 Z"
	if got := tl.Ring.Data(3); got != want {
		t.Errorf("ring =\n%s\nwant\n%s", got, want)
	}
	if got, want := tl.Dot.Data(3), "M60,60 H90 V90 H60 V60 Z"; got != want {
		t.Errorf("dot = %s, want %s", got, want)
	}

	// Square-shaped rings have sharp inner corners too.
	sq := LocatorPatterns(lay, style.LocatorSquare, "")[1]
	if got, want := sq.Ring.Data(3), "M180,40 H250 V110 H180 V40 Z M190,50 H240 V100 H190 V50 Z"; got != want {
		t.Errorf("square ring = %s, want %s", got, want)
	}
}
