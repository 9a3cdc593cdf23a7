package nodeedit

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/nodeedit/backend/raster"
	"github.com/gogpu/nodeedit/graph"
	"github.com/gogpu/nodeedit/interact"
	"github.com/gogpu/nodeedit/picking"
	"github.com/gogpu/nodeedit/route"
	"github.com/gogpu/nodeedit/viewport"
	"github.com/gogpu/nodeedit/visual"
)

// Editor aggregates the graph, the viewport and the visual registry, and
// drives them once per frame.
//
// Editor is not safe for concurrent use.
type Editor struct {
	graph   *graph.Graph
	view    viewport.State
	reg     *visual.Registry
	backend visual.Backend

	machine *interact.Machine
	tracker *picking.Tracker // nil when picking is disabled
	router  *route.Router

	screen     gg.Point // last pointer position, screen space
	cursorSeen bool     // a pointer position has ever been delivered
	inside     bool     // the pointer is over the canvas

	frames uint64
}

// New creates an editor with an empty graph.
func New(opts ...Option) *Editor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = raster.New(o.width, o.height, raster.WithBackground(o.theme.Background), raster.WithLabelColor(o.theme.Label))
	}
	if !o.hitsSet {
		o.hits, _ = o.backend.(visual.HitTester)
	}

	e := &Editor{
		graph:   graph.New(),
		view:    *viewport.New(o.origin),
		reg:     visual.NewRegistry(o.theme),
		backend: o.backend,
		router:  route.New(),
	}
	if o.zoomSpeed != 0 {
		e.view.ZoomSpeed = o.zoomSpeed
	}
	e.machine = interact.New(e.graph, e.reg, e.backend)
	if o.hits != nil {
		e.tracker = picking.NewTracker(o.hits, e.reg)
	}
	return e
}

// Tick runs one frame. It returns the interaction errors of the frame;
// graph and visuals are synchronized regardless.
func (e *Editor) Tick(in FrameInput) error {
	var errs []error
	e.frames++

	for _, ev := range in.Pointer {
		if err := e.pointer(ev); err != nil {
			errs = append(errs, err)
		}
	}

	// Hit testing below resolves against this frame's camera.
	e.backend.SetView(e.view.Matrix())

	picks := in.Picks
	if len(picks) == 0 && e.tracker != nil && e.inside {
		if p, ok := e.tracker.Next(e.screen); ok {
			picks = []interact.Pick{p}
		}
	}
	if _, err := e.machine.Process(picks); err != nil {
		errs = append(errs, e.checkHandle("Tick", err))
	}

	e.reg.Sync(e.graph, e.backend)
	e.router.Route(e.graph, e.Cursor(), e.reg, e.backend)

	Logger().Debug("nodeedit: tick", "frame", e.frames, "events", len(in.Pointer), "picks", len(picks), "visuals", e.reg.Len())
	return errors.Join(errs...)
}

func (e *Editor) pointer(ev PointerEvent) error {
	switch ev := ev.(type) {
	case Wheel:
		e.setCursor(ev.Position)
		e.view.ApplyWheel(ev.DeltaY, ev.Position)
	case Move:
		e.setCursor(ev.Position)
		e.view.ApplyPan(ev.Delta)
	case Down:
		var onElement bool
		if e.tracker != nil && e.inside {
			// The hover pick for this position may not have reached the
			// machine yet; resolve against the current camera.
			e.backend.SetView(e.view.Matrix())
			onElement = e.tracker.Down(e.screen)
		}
		if !e.machine.PointerDown() && !onElement {
			e.view.BeginDrag()
		}
	case Up:
		if e.tracker != nil && e.inside {
			e.tracker.Up(e.screen)
		}
		e.machine.PointerUp()
		e.view.EndDrag()
	case Leave:
		e.inside = false
		if e.tracker != nil {
			e.tracker.Leave()
		}
		e.view.Leave()
		return e.machine.Leave()
	default:
		return fmt.Errorf("nodeedit: unknown pointer event %T", ev)
	}
	return nil
}

func (e *Editor) setCursor(p gg.Point) {
	e.screen = p
	e.cursorSeen = true
	e.inside = true
}

// Cursor returns the pointer's last known world position, or (0,0) if no
// pointer position was ever delivered.
func (e *Editor) Cursor() gg.Point {
	if !e.cursorSeen {
		return gg.Point{}
	}
	return e.view.ScreenToWorld(e.screen)
}

// Graph returns the graph for introspection. Records returned by Node are
// the live records; mutate the graph through the Editor so visuals follow.
func (e *Editor) Graph() graph.Reader { return e.graph }

// Viewport returns a copy of the viewport state.
func (e *Editor) Viewport() viewport.State { return e.view }

// Registry returns the visual registry.
func (e *Editor) Registry() *visual.Registry { return e.reg }

// Backend returns the render backend.
func (e *Editor) Backend() visual.Backend { return e.backend }

// Interaction returns the interaction state and its target, if any.
func (e *Editor) Interaction() (interact.State, visual.Element, bool) {
	target, ok := e.machine.Target()
	return e.machine.State(), target, ok
}

// Frames returns the number of ticks run.
func (e *Editor) Frames() uint64 { return e.frames }

// ResetView restores zoom 0 at origin.
func (e *Editor) ResetView(origin gg.Point) { e.view.Reset(origin) }

// AddNode adds a node. Its visuals appear on the next Tick.
func (e *Editor) AddNode(rec graph.Record) graph.NodeID {
	return e.graph.AddNode(rec)
}

// AddEdge connects src to dst.
func (e *Editor) AddEdge(src, dst graph.NodeID) (graph.EdgeID, error) {
	id, err := e.graph.AddEdge(src, dst)
	return id, e.checkHandle("AddEdge", err)
}

// RemoveNode removes a node and its edges. Their visuals are released on
// the next Tick.
func (e *Editor) RemoveNode(id graph.NodeID) error {
	return e.checkHandle("RemoveNode", e.graph.RemoveNode(id))
}

// RemoveEdge removes an edge.
func (e *Editor) RemoveEdge(id graph.EdgeID) error {
	return e.checkHandle("RemoveEdge", e.graph.RemoveEdge(id))
}

// Toggle flips the boolean state carried by el, as a click would, and
// returns the new value. The fill follows on the next Tick.
func (e *Editor) Toggle(el visual.Element) (bool, error) {
	v, err := e.machine.Toggle(el)
	return v, e.checkHandle("Toggle", err)
}

// Node returns the record of id.
func (e *Editor) Node(id graph.NodeID) (graph.Record, error) {
	rec, err := e.graph.Node(id)
	return rec, e.checkHandle("Node", err)
}

// checkHandle applies the invalid-handle policy to err and returns it.
func (e *Editor) checkHandle(op string, err error) error {
	if err == nil || !errors.Is(err, graph.ErrInvalidHandle) {
		return err
	}
	if debugHandles {
		panic(fmt.Sprintf("nodeedit: %s: %v", op, err))
	}
	Logger().Warn("nodeedit: invalid handle", "op", op, "err", err)
	return err
}
