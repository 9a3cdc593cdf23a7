package picking

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/nodeedit/graph"
	"github.com/gogpu/nodeedit/interact"
	"github.com/gogpu/nodeedit/visual"
	"github.com/gogpu/nodeedit/visual/visualtest"
)

func setup(t *testing.T) (*Tracker, graph.NodeID, graph.NodeID) {
	t.Helper()
	g := graph.New()
	a := g.AddNode(graph.NewInput(false, gg.Pt(0, 0)))
	b := g.AddNode(graph.NewInput(false, gg.Pt(100, 0)))
	be := visualtest.New()
	reg := visual.NewRegistry(visual.DefaultTheme())
	reg.Sync(g, be)
	return NewTracker(be, reg), a, b
}

func TestHoverSequence(t *testing.T) {
	tr, a, b := setup(t)
	bodyA, bodyB := visual.BodyOf(a), visual.BodyOf(b)

	steps := []struct {
		name   string
		cursor gg.Point
		want   interact.Pick
		ok     bool
	}{
		{"empty space", gg.Pt(50, 50), interact.Pick{}, false},
		{"enter a", gg.Pt(2, 2), interact.Pick{Kind: interact.HoverEnter, Target: bodyA}, true},
		{"still on a", gg.Pt(-3, 1), interact.Pick{}, false},
		{"jump to b: leave a", gg.Pt(100, 0), interact.Pick{Kind: interact.HoverLeave, Target: bodyA}, true},
		{"jump to b: enter b", gg.Pt(100, 0), interact.Pick{Kind: interact.HoverEnter, Target: bodyB}, true},
		{"off b", gg.Pt(200, 200), interact.Pick{Kind: interact.HoverLeave, Target: bodyB}, true},
		{"idle", gg.Pt(200, 200), interact.Pick{}, false},
	}
	for _, s := range steps {
		got, ok := tr.Next(s.cursor)
		if ok != s.ok || got != s.want {
			t.Errorf("%s: Next = %v, %v; want %v, %v", s.name, got, ok, s.want, s.ok)
		}
	}
}

func TestClickSynthesis(t *testing.T) {
	tests := []struct {
		name      string
		down, up  gg.Point
		wantClick bool
	}{
		{"press and release on a", gg.Pt(0, 0), gg.Pt(1, 1), true},
		{"release elsewhere", gg.Pt(0, 0), gg.Pt(100, 0), false},
		{"press on empty space", gg.Pt(50, 50), gg.Pt(0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, a, _ := setup(t)
			if hit := tr.Down(tt.down); hit != (tt.down == gg.Pt(0, 0)) {
				t.Errorf("Down(%v) = %v", tt.down, hit)
			}
			tr.Up(tt.up)
			got, ok := tr.Next(gg.Pt(500, 500))
			isClick := ok && got.Kind == interact.Click
			if isClick != tt.wantClick {
				t.Fatalf("Next = %v, %v", got, ok)
			}
			if isClick && got.Target != visual.BodyOf(a) {
				t.Errorf("click target = %v", got.Target)
			}
		})
	}
}

func TestClickBeforeHover(t *testing.T) {
	tr, a, _ := setup(t)
	tr.Down(gg.Pt(0, 0))
	tr.Up(gg.Pt(0, 0))

	first, _ := tr.Next(gg.Pt(0, 0))
	second, _ := tr.Next(gg.Pt(0, 0))
	if first.Kind != interact.Click || second.Kind != interact.HoverEnter {
		t.Errorf("order = %v, %v; want click then hover_enter", first, second)
	}
	if h, ok := tr.Hovered(); !ok || h != visual.BodyOf(a) {
		t.Errorf("Hovered = %v, %v", h, ok)
	}
}

func TestLeaveResetsSilently(t *testing.T) {
	tr, _, _ := setup(t)
	_, _ = tr.Next(gg.Pt(0, 0))
	tr.Down(gg.Pt(0, 0))
	tr.Leave()
	tr.Up(gg.Pt(0, 0))

	if p, ok := tr.Next(gg.Pt(500, 500)); ok {
		t.Errorf("Next after Leave = %v", p)
	}
}
