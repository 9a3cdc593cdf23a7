//go:build nodeeditdebug

package nodeedit

import "testing"

func TestInvalidHandlePanics(t *testing.T) {
	ed, _, demo := newTestEditor(t)
	if err := ed.RemoveNode(demo.Sink); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	_ = ed.RemoveNode(demo.Sink)
}
