package graph

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gg"
)

func TestAddNodeInsertionOrder(t *testing.T) {
	g := New()
	a := g.AddNode(NewInput(false, gg.Pt(0, 0)))
	b := g.AddNode(&Void{})
	c := g.AddNode(NewBinary("and", gg.Pt(300, 0), DefaultBinaryWidth, DefaultBinaryHeight))

	got := g.NodeIDs()
	want := []NodeID{a, b, c}
	if !slices.Equal(got, want) {
		t.Errorf("NodeIDs() = %v, want %v", got, want)
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
	if a.IsZero() || !(NodeID{}).IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestAddEdgeUnknownEndpoint(t *testing.T) {
	g := New()
	a := g.AddNode(&Void{})

	tests := []struct {
		name     string
		src, dst NodeID
	}{
		{"zero source", NodeID{}, a},
		{"zero target", a, NodeID{}},
		{"out of range", a, NodeID{index: 42, gen: 1}},
		{"wrong generation", NodeID{index: a.index, gen: a.gen + 1}, a},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.AddEdge(tt.src, tt.dst)
			if !errors.Is(err, ErrInvalidHandle) {
				t.Fatalf("AddEdge err = %v, want ErrInvalidHandle", err)
			}
			var he *HandleError
			if !errors.As(err, &he) || he.Op != "AddEdge" || he.Kind != "node" {
				t.Errorf("HandleError = %+v", he)
			}
		})
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d after failed adds, want 0", g.EdgeCount())
	}
}

func TestEdgesFromAndTo(t *testing.T) {
	g := New()
	a := g.AddNode(NewInput(false, gg.Pt(0, 0)))
	b := g.AddNode(NewInput(false, gg.Pt(0, 10)))
	v := g.AddNode(&Void{})

	e1, _ := g.AddEdge(a, v)
	e2, _ := g.AddEdge(b, v)
	e3, _ := g.AddEdge(a, b)

	from, err := g.EdgesFrom(a)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(from, []EdgeID{e1, e3}) {
		t.Errorf("EdgesFrom(a) = %v, want [%v %v]", from, e1, e3)
	}
	to, _ := g.EdgesTo(v)
	if !slices.Equal(to, []EdgeID{e1, e2}) {
		t.Errorf("EdgesTo(v) = %v, want [%v %v]", to, e1, e2)
	}
	edge, err := g.Edge(e3)
	if err != nil || edge.Source != a || edge.Target != b {
		t.Errorf("Edge(e3) = %+v, %v", edge, err)
	}
	if !slices.Equal(g.EdgeIDs(), []EdgeID{e1, e2, e3}) {
		t.Errorf("EdgeIDs() = %v", g.EdgeIDs())
	}
}

func TestNodeIsMutable(t *testing.T) {
	g := New()
	id := g.AddNode(NewInput(false, gg.Pt(1, 2)))

	rec, err := g.Node(id)
	if err != nil {
		t.Fatal(err)
	}
	rec.(*Input).Toggle()

	again, _ := g.Node(id)
	if !again.(*Input).Active {
		t.Error("mutation through Node() was not kept")
	}
}

func TestRemoveNodeReferentialIntegrity(t *testing.T) {
	g := New()
	a := g.AddNode(NewInput(false, gg.Pt(0, 0)))
	b := g.AddNode(NewInput(false, gg.Pt(0, 10)))
	v := g.AddNode(&Void{})
	eav, _ := g.AddEdge(a, v)
	ebv, _ := g.AddEdge(b, v)
	eab, _ := g.AddEdge(a, b)
	loop, _ := g.AddEdge(v, v)

	if err := g.RemoveNode(v); err != nil {
		t.Fatalf("RemoveNode: %v", err)
	}

	if _, err := g.Node(v); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("Node(removed) err = %v, want ErrInvalidHandle", err)
	}
	if _, err := g.EdgesFrom(v); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("EdgesFrom(removed) err = %v, want ErrInvalidHandle", err)
	}
	for _, e := range []EdgeID{eav, ebv, loop} {
		if _, err := g.Edge(e); !errors.Is(err, ErrInvalidHandle) {
			t.Errorf("Edge(%v) err = %v, want ErrInvalidHandle", e, err)
		}
	}
	for _, e := range g.EdgeIDs() {
		edge, _ := g.Edge(e)
		if edge.Source == v || edge.Target == v {
			t.Errorf("edge %v still references removed node", e)
		}
	}
	if !slices.Equal(g.EdgeIDs(), []EdgeID{eab}) {
		t.Errorf("EdgeIDs() = %v, want [%v]", g.EdgeIDs(), eab)
	}
	to, _ := g.EdgesTo(b)
	if !slices.Equal(to, []EdgeID{eab}) {
		t.Errorf("EdgesTo(b) = %v", to)
	}
	if err := g.RemoveNode(v); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("second RemoveNode err = %v", err)
	}
}

func TestSlotReuseDetectsStaleHandle(t *testing.T) {
	g := New()
	old := g.AddNode(&Void{})
	if err := g.RemoveNode(old); err != nil {
		t.Fatal(err)
	}
	fresh := g.AddNode(&Unary{})

	if fresh.Index() != old.Index() {
		t.Fatalf("slot not reused: %d vs %d", fresh.Index(), old.Index())
	}
	if _, err := g.Node(old); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("stale handle resolved: %v", err)
	}
	rec, err := g.Node(fresh)
	if err != nil || rec.Kind() != KindUnary {
		t.Errorf("Node(fresh) = %v, %v", rec, err)
	}
}

func TestRemoveEdge(t *testing.T) {
	g := New()
	a := g.AddNode(&Void{})
	b := g.AddNode(&Void{})
	e, _ := g.AddEdge(a, b)

	if err := g.RemoveEdge(e); err != nil {
		t.Fatal(err)
	}
	from, _ := g.EdgesFrom(a)
	if len(from) != 0 {
		t.Errorf("EdgesFrom(a) = %v after RemoveEdge", from)
	}
	if err := g.RemoveEdge(e); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("second RemoveEdge err = %v", err)
	}
}

func TestTakeRemoved(t *testing.T) {
	g := New()
	a := g.AddNode(&Void{})
	b := g.AddNode(&Void{})
	e, _ := g.AddEdge(a, b)

	if got := g.TakeRemoved(); len(got) != 0 {
		t.Fatalf("journal not empty: %v", got)
	}
	_ = g.RemoveNode(b)

	got := g.TakeRemoved()
	want := []Removed{{Edge: e}, {Node: b}}
	if !slices.Equal(got, want) {
		t.Errorf("TakeRemoved() = %v, want %v", got, want)
	}
	if len(g.TakeRemoved()) != 0 {
		t.Error("journal should be drained")
	}
}

func TestReaderNodeIsLive(t *testing.T) {
	g := New()
	id := g.AddNode(NewInput(false, gg.Pt(0, 0)))

	var r Reader = g
	rec, err := r.Node(id)
	if err != nil {
		t.Fatal(err)
	}
	rec.(*Input).Active = true

	again, _ := g.Node(id)
	if !again.(*Input).Active {
		t.Error("field write through Reader.Node not visible in the graph")
	}
}
