package raster

import (
	"bytes"
	"errors"
	"image/png"
	"path/filepath"
	"slices"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/nodeedit/visual"
)

// channel returns the 8-bit RGB of the pixel at (x, y).
func channel(t *testing.T, b *Backend, x, y int) (r, g, bl uint8) {
	t.Helper()
	cr, cg, cb, _ := b.Image().At(x, y).RGBA()
	return uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8)
}

func TestRenderFillsInZOrder(t *testing.T) {
	b := New(100, 100, WithBackground(gg.RGB(1, 1, 1)), WithFontSize(0))

	// A blue rectangle drawn above a red circle, spawned in reverse order.
	b.Spawn(visual.Desc{
		Shape:     visual.Rect{Width: 20, Height: 20},
		Transform: gg.Translate(50, 50),
		Fill:      gg.RGB(0, 0, 1),
		Z:         visual.Z(visual.LayerSocket, 0),
	})
	b.Spawn(visual.Desc{
		Shape:     visual.Circle{Radius: 30},
		Transform: gg.Translate(50, 50),
		Fill:      gg.RGB(1, 0, 0),
		Z:         visual.Z(visual.LayerBody, 0),
	})
	if err := b.Render(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		x, y    int
		r, g, b uint8
	}{
		{"rect on top", 50, 50, 0, 0, 255},
		{"circle ring", 50, 28, 255, 0, 0},
		{"background", 2, 2, 255, 255, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, bl := channel(t, b, tt.x, tt.y)
			if diff(r, tt.r) > 8 || diff(g, tt.g) > 8 || diff(bl, tt.b) > 8 {
				t.Errorf("pixel (%d,%d) = %d,%d,%d; want %d,%d,%d", tt.x, tt.y, r, g, bl, tt.r, tt.g, tt.b)
			}
		})
	}
}

func diff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestViewTransformApplies(t *testing.T) {
	b := New(100, 100, WithBackground(gg.RGB(0, 0, 0)), WithFontSize(0))
	b.Spawn(visual.Desc{
		Shape:     visual.Circle{Radius: 5},
		Transform: gg.Identity(),
		Fill:      gg.RGB(0, 1, 0),
		Pickable:  true,
	})
	b.SetView(gg.Translate(70, 30).Multiply(gg.Scale(2, 2)))
	if err := b.Render(); err != nil {
		t.Fatal(err)
	}
	if _, g, _ := channel(t, b, 70, 30); g < 200 {
		t.Errorf("view-translated centre not green: g=%d", g)
	}
	if _, g, _ := channel(t, b, 70, 39); g < 200 {
		t.Errorf("scaled radius not applied: g=%d at 9px", g)
	}
	if _, g, _ := channel(t, b, 0, 0); g != 0 {
		t.Errorf("world origin painted: g=%d", g)
	}
}

func TestHitTestTopmost(t *testing.T) {
	b := New(200, 200)
	low := b.Spawn(visual.Desc{
		Shape: visual.Rect{Width: 100, Height: 100}, Transform: gg.Translate(100, 100),
		Z: visual.Z(visual.LayerBody, 0), Pickable: true,
	})
	high := b.Spawn(visual.Desc{
		Shape: visual.Circle{Radius: 10}, Transform: gg.Translate(60, 100),
		Z: visual.Z(visual.LayerSocket, 0), Pickable: true,
	})
	b.Spawn(visual.Desc{
		Shape: visual.Rect{Width: 200, Height: 200}, Transform: gg.Translate(100, 100),
		Z: visual.Z(visual.LayerSocket, 9), Pickable: false,
	})

	tests := []struct {
		name string
		at   gg.Point
		want visual.Handle
		ok   bool
	}{
		{"socket over body", gg.Pt(60, 100), high, true},
		{"body only", gg.Pt(120, 120), low, true},
		{"nothing pickable", gg.Pt(5, 5), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := b.HitTest(tt.at)
			if got != tt.want || ok != tt.ok {
				t.Errorf("HitTest = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestUnknownHandle(t *testing.T) {
	b := New(10, 10)
	h := b.Spawn(visual.Desc{Shape: visual.Circle{Radius: 1}})
	if err := b.Release(h); err != nil {
		t.Fatal(err)
	}

	calls := map[string]error{
		"UpdateTransform": b.UpdateTransform(h, gg.Identity()),
		"UpdateFill":      b.UpdateFill(h, gg.RGB(1, 0, 0)),
		"UpdateGeometry":  b.UpdateGeometry(h, visual.Circle{Radius: 2}),
		"Release":         b.Release(h),
	}
	for name, err := range calls {
		if !errors.Is(err, visual.ErrUnknownHandle) {
			t.Errorf("%s: err = %v, want ErrUnknownHandle", name, err)
		}
	}
}

func TestUpdatesReachDesc(t *testing.T) {
	b := New(10, 10)
	h := b.Spawn(visual.Desc{Shape: visual.Circle{Radius: 1}})
	_ = b.UpdateTransform(h, gg.Translate(3, 4))
	_ = b.UpdateFill(h, gg.RGB(0, 1, 0))
	_ = b.UpdateGeometry(h, visual.Rect{Width: 2, Height: 2})

	d, ok := b.Desc(h)
	if !ok {
		t.Fatal("visual missing")
	}
	if d.Transform != gg.Translate(3, 4) || d.Fill != gg.RGB(0, 1, 0) {
		t.Errorf("desc = %+v", d)
	}
	if _, isRect := d.Shape.(visual.Rect); !isRect {
		t.Errorf("shape = %T, want Rect", d.Shape)
	}
}

func TestLabelsAndPNG(t *testing.T) {
	b := New(120, 60)
	b.Spawn(visual.Desc{
		Shape:     visual.Rect{Width: 100, Height: 40, Corner: 6},
		Transform: gg.Translate(60, 30),
		Fill:      gg.Hex("#303030"),
		Stroke:    visual.Stroke{Color: gg.Hex("#222222"), Width: 1.5},
		Label:     "and",
	})
	b.Spawn(visual.Desc{
		Shape:     visual.Polyline{Points: []gg.Point{{X: 0, Y: 0}, {X: 120, Y: 60}}},
		Transform: gg.Identity(),
		Stroke:    visual.Stroke{Color: gg.RGB(0.4, 0.4, 0.4), Width: 2},
	})
	if err := b.Render(); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := b.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds().Size(); got.X != 120 || got.Y != 60 {
		t.Errorf("size = %v", got)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := b.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
}

func TestRegistered(t *testing.T) {
	if !slices.Contains(visual.Backends(), Name) {
		t.Fatalf("%q not registered: %v", Name, visual.Backends())
	}
	theme := visual.DefaultTheme()
	theme.Background = gg.RGB(0, 0, 1)
	vb, err := visual.NewBackend(Name, 32, 16, theme)
	if err != nil {
		t.Fatal(err)
	}
	rb, ok := vb.(*Backend)
	if !ok {
		t.Fatalf("backend is %T", vb)
	}
	if rb.Width() != 32 || rb.Height() != 16 {
		t.Errorf("size = %dx%d", rb.Width(), rb.Height())
	}
	if err := rb.Render(); err != nil {
		t.Fatal(err)
	}
	if r, g, b, _ := rb.Image().At(1, 1).RGBA(); r != 0 || g != 0 || b != 0xffff {
		t.Errorf("background = %d,%d,%d, want the theme's blue", r, g, b)
	}
}
