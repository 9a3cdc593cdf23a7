// Package picking synthesizes hover and click events from raw pointer input.
//
// A Tracker asks a visual.HitTester for the topmost visual under the pointer
// and maps it back to a graph element through the registry. It emits at most
// one pick per frame; a pending transition is reported on a later frame
// rather than dropped.
package picking

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/nodeedit/interact"
	"github.com/gogpu/nodeedit/internal/logging"
	"github.com/gogpu/nodeedit/visual"
)

// Tracker is the picking collaborator. It is not safe for concurrent use.
type Tracker struct {
	hits visual.HitTester
	reg  *visual.Registry

	hovered  visual.Element
	hovering bool

	pressed  visual.Element
	pressing bool

	clicks []visual.Element
}

// NewTracker returns a tracker resolving hits through h and reg.
func NewTracker(h visual.HitTester, reg *visual.Registry) *Tracker {
	return &Tracker{hits: h, reg: reg}
}

// At returns the element under the screen point.
func (t *Tracker) At(screen gg.Point) (visual.Element, bool) {
	h, ok := t.hits.HitTest(screen)
	if !ok {
		return visual.Element{}, false
	}
	e, ok := t.reg.ElementOf(h)
	if !ok {
		logging.Logger().Warn("picking: hit visual has no element", "handle", h)
	}
	return e, ok
}

// Down records the element pressed at screen and reports whether there
// was one.
func (t *Tracker) Down(screen gg.Point) bool {
	t.pressed, t.pressing = t.At(screen)
	return t.pressing
}

// Up completes a press. Releasing over the pressed element queues a click.
func (t *Tracker) Up(screen gg.Point) {
	if !t.pressing {
		return
	}
	t.pressing = false
	if e, ok := t.At(screen); ok && e == t.pressed {
		t.clicks = append(t.clicks, e)
	}
}

// Leave forgets the hover and any press in progress without emitting a
// leave event; the consumer resets its own hover state.
func (t *Tracker) Leave() {
	t.hovering = false
	t.pressing = false
}

// Next returns the next pick for the pointer at screen. Queued clicks come
// first, then the hover transition, leave before enter.
func (t *Tracker) Next(screen gg.Point) (interact.Pick, bool) {
	if len(t.clicks) > 0 {
		e := t.clicks[0]
		t.clicks = t.clicks[1:]
		return interact.Pick{Kind: interact.Click, Target: e}, true
	}

	hit, ok := t.At(screen)
	switch {
	case t.hovering && (!ok || hit != t.hovered):
		t.hovering = false
		return interact.Pick{Kind: interact.HoverLeave, Target: t.hovered}, true
	case !t.hovering && ok:
		t.hovered, t.hovering = hit, true
		return interact.Pick{Kind: interact.HoverEnter, Target: hit}, true
	}
	return interact.Pick{}, false
}

// Hovered returns the element the tracker considers hovered.
func (t *Tracker) Hovered() (visual.Element, bool) {
	return t.hovered, t.hovering
}
