package visual

import (
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/gg"
)

// nullBackend accepts every call and owns nothing.
type nullBackend struct{ w, h int }

func (nullBackend) Spawn(Desc) Handle                       { return 1 }
func (nullBackend) UpdateTransform(Handle, gg.Matrix) error { return nil }
func (nullBackend) UpdateFill(Handle, gg.RGBA) error        { return nil }
func (nullBackend) UpdateGeometry(Handle, Shape) error      { return nil }
func (nullBackend) Release(Handle) error                    { return nil }
func (nullBackend) SetView(gg.Matrix)                       {}

func resetDrivers(t *testing.T) {
	t.Helper()
	driversMu.Lock()
	saved := drivers
	drivers = make(map[string]BackendFactory)
	driversMu.Unlock()
	t.Cleanup(func() {
		driversMu.Lock()
		drivers = saved
		driversMu.Unlock()
	})
}

func TestRegisterAndNewBackend(t *testing.T) {
	resetDrivers(t)

	Register("null", func(w, h int, _ Theme) Backend { return nullBackend{w: w, h: h} })

	b, err := NewBackend("null", 640, 480, DefaultTheme())
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	nb, ok := b.(nullBackend)
	if !ok {
		t.Fatalf("backend is %T", b)
	}
	if nb.w != 640 || nb.h != 480 {
		t.Errorf("factory got %dx%d", nb.w, nb.h)
	}
	if got := Backends(); !slices.Equal(got, []string{"null"}) {
		t.Errorf("Backends() = %v", got)
	}
}

func TestNewBackendUnknown(t *testing.T) {
	resetDrivers(t)
	if _, err := NewBackend("svg", 1, 1, DefaultTheme()); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestNewRenderer(t *testing.T) {
	resetDrivers(t)
	Register("null", func(w, h int, _ Theme) Backend { return nullBackend{w: w, h: h} })

	if _, err := NewRenderer("null", 1, 1, DefaultTheme()); err == nil || !strings.Contains(err.Error(), "does not render") {
		t.Errorf("err = %v, want a non-rendering backend error", err)
	}
	if _, err := NewRenderer("svg", 1, 1, DefaultTheme()); err == nil || !strings.Contains(err.Error(), "unknown backend") {
		t.Errorf("err = %v, want an unknown backend error", err)
	}
}

func TestRegisterPanics(t *testing.T) {
	resetDrivers(t)
	factory := func(int, int, Theme) Backend { return nullBackend{} }

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil factory", func() { Register("nil", nil) }},
		{"duplicate", func() { Register("dup", factory); Register("dup", factory) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestThemeFill(t *testing.T) {
	th := DefaultTheme()
	tests := []struct {
		name           string
		role           Role
		state, hovered bool
		want           gg.RGBA
	}{
		{"node rest", RoleNode, false, false, th.Node},
		{"node hover", RoleNode, false, true, th.NodeHovered},
		{"socket rest", RoleSocket, false, false, th.Socket},
		{"socket hover", RoleSocket, false, true, th.SocketHovered},
		{"socket active", RoleSocket, true, false, th.Active},
		{"socket active hovered", RoleSocket, true, true, th.Active},
		{"edge", RoleEdge, true, true, gg.RGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := th.Fill(tt.role, tt.state, tt.hovered); got != tt.want {
				t.Errorf("Fill = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestZ(t *testing.T) {
	if !(Z(LayerEdge, 1000) < Z(LayerBody, 0) && Z(LayerBody, 1000) < Z(LayerSocket, 0)) {
		t.Error("layer offset must dominate the index tiebreak")
	}
	if !(Z(LayerBody, 1) < Z(LayerBody, 2)) {
		t.Error("index tiebreak must be increasing")
	}
}

func TestContains(t *testing.T) {
	view := gg.Translate(100, 100).Multiply(gg.Scale(2, 2))
	circle := Desc{Shape: Circle{Radius: 10}, Transform: gg.Translate(5, 0), Pickable: true}

	tests := []struct {
		name   string
		desc   Desc
		screen gg.Point
		want   bool
	}{
		{"circle centre", circle, gg.Pt(110, 100), true},
		{"circle scaled edge", circle, gg.Pt(128, 100), true},
		{"circle outside", circle, gg.Pt(135, 100), false},
		{"not pickable", Desc{Shape: Circle{Radius: 10}}, gg.Pt(100, 100), false},
		{"rect inside", Desc{Shape: Rect{Width: 20, Height: 10}, Transform: gg.Identity(), Pickable: true}, gg.Pt(115, 105), true},
		{"rect outside", Desc{Shape: Rect{Width: 20, Height: 10}, Transform: gg.Identity(), Pickable: true}, gg.Pt(125, 100), false},
		{"nil shape", Desc{Pickable: true}, gg.Pt(100, 100), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.desc, view, tt.screen); got != tt.want {
				t.Errorf("Contains = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolylinePath(t *testing.T) {
	p := Polyline{Points: []gg.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}}.Path()
	verbs := p.Verbs()
	if len(verbs) != 2 || verbs[0] != gg.MoveTo || verbs[1] != gg.LineTo {
		t.Fatalf("verbs = %v, want [MoveTo LineTo]", verbs)
	}
	want := []float64{1, 2, 3, 4}
	coords := p.Coords()
	if len(coords) != len(want) {
		t.Fatalf("coords = %v, want %v", coords, want)
	}
	for i := range want {
		if coords[i] != want[i] {
			t.Errorf("coords[%d] = %v, want %v", i, coords[i], want[i])
		}
	}
}

func TestShapePathsClose(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
	}{
		{"circle", Circle{Radius: 5}},
		{"rect", Rect{Width: 20, Height: 10}},
		{"rounded rect", Rect{Width: 20, Height: 10, Corner: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbs := tt.shape.Path().Verbs()
			if len(verbs) < 2 || verbs[0] != gg.MoveTo || verbs[len(verbs)-1] != gg.Close {
				t.Errorf("verbs = %v, want MoveTo ... Close", verbs)
			}
		})
	}
}

func TestElementString(t *testing.T) {
	if s := (Element{Kind: ElementKind(9)}).String(); s != "element(?)" {
		t.Errorf("String() = %q", s)
	}
	if ElementEdge.String() != "edge" {
		t.Errorf("ElementEdge.String() = %q", ElementEdge.String())
	}
}
