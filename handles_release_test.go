//go:build !nodeeditdebug

package nodeedit

import (
	"errors"
	"testing"

	"github.com/gogpu/nodeedit/graph"
)

func TestInvalidHandleIsLoggedNoop(t *testing.T) {
	ed, _, demo := newTestEditor(t)
	if err := ed.RemoveNode(demo.Sink); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		fn   func() error
	}{
		{"RemoveNode", func() error { return ed.RemoveNode(demo.Sink) }},
		{"AddEdge", func() error { _, err := ed.AddEdge(demo.Inputs[0], demo.Sink); return err }},
		{"RemoveEdge", func() error { return ed.RemoveEdge(demo.Edges[0]) }},
		{"Node", func() error { _, err := ed.Node(demo.Sink); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, graph.ErrInvalidHandle) {
				t.Errorf("err = %v, want ErrInvalidHandle", err)
			}
		})
	}
	if ed.Graph().NodeCount() != 5 {
		t.Errorf("NodeCount = %d, want 5", ed.Graph().NodeCount())
	}
}
