// Package interact turns picking events into graph mutations and visual
// state transitions.
//
// A Machine is Idle, Hovering an element, or Pressed on an element. Each
// frame it consumes at most one pick; later picks of the same frame are
// dropped so that a single logical click cannot toggle a node twice.
package interact

import (
	"errors"
	"fmt"

	"github.com/gogpu/nodeedit/graph"
	"github.com/gogpu/nodeedit/internal/logging"
	"github.com/gogpu/nodeedit/visual"
)

// PickKind is the kind of a picking event.
type PickKind uint8

const (
	HoverEnter PickKind = iota
	HoverLeave
	Click
)

func (k PickKind) String() string {
	switch k {
	case HoverEnter:
		return "hover_enter"
	case HoverLeave:
		return "hover_leave"
	case Click:
		return "clicked"
	default:
		return "unknown"
	}
}

// Pick is a picking event resolved against the topmost visual under the
// pointer.
type Pick struct {
	Kind   PickKind
	Target visual.Element
}

func (p Pick) String() string { return p.Kind.String() + "(" + p.Target.String() + ")" }

// State is the machine's interaction state.
type State uint8

const (
	Idle State = iota
	Hovering
	Pressed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Hovering:
		return "Hovering"
	case Pressed:
		return "Pressed"
	default:
		return "Unknown"
	}
}

// ErrNotStateful is returned by Toggle for elements without a boolean state.
var ErrNotStateful = errors.New("interact: element has no state")

// Machine is the interaction state machine. It is not safe for concurrent
// use.
type Machine struct {
	g   *graph.Graph
	reg *visual.Registry
	b   visual.Backend

	state  State
	target visual.Element
}

// New returns an idle machine mutating g and restyling through reg and b.
func New(g *graph.Graph, reg *visual.Registry, b visual.Backend) *Machine {
	return &Machine{g: g, reg: reg, b: b}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Target returns the hovered or pressed element. ok is false when Idle.
func (m *Machine) Target() (e visual.Element, ok bool) {
	if m.state == Idle {
		return visual.Element{}, false
	}
	return m.target, true
}

// Process consumes the first pick of a frame and drops the rest.
// It reports whether a pick was consumed.
func (m *Machine) Process(picks []Pick) (bool, error) {
	if len(picks) == 0 {
		return false, nil
	}
	if len(picks) > 1 {
		logging.Logger().Debug("interact: dropped same-frame picks", "kept", picks[0], "dropped", len(picks)-1)
	}
	return true, m.handle(picks[0])
}

func (m *Machine) handle(p Pick) error {
	switch p.Kind {
	case HoverEnter:
		return m.enter(p.Target)
	case HoverLeave:
		return m.leave(p.Target)
	case Click:
		return m.click(p.Target)
	default:
		return fmt.Errorf("interact: unknown pick kind %d", p.Kind)
	}
}

func (m *Machine) enter(e visual.Element) error {
	switch m.state {
	case Idle:
	case Hovering:
		if m.target == e {
			return nil
		}
		// The leave for the previous element was lost; settle it first.
		if err := m.restyle(m.target, false); err != nil {
			logging.Logger().Warn("interact: restyle previous target", "element", m.target, "err", err)
		}
	case Pressed:
		return nil
	}
	m.state, m.target = Hovering, e
	return m.restyle(e, true)
}

func (m *Machine) leave(e visual.Element) error {
	if m.state == Idle || m.target != e {
		logging.Logger().Debug("interact: stray hover_leave", "element", e, "state", m.state)
		return nil
	}
	m.state = Idle
	return m.restyle(e, false)
}

func (m *Machine) click(e visual.Element) error {
	state, err := m.Toggle(e)
	if errors.Is(err, ErrNotStateful) {
		return nil
	}
	if errors.Is(err, graph.ErrInvalidHandle) {
		// Removed after it was hit; the visual is released on the next sync.
		logging.Logger().Debug("interact: click on removed element", "element", e)
		if m.state != Idle && m.target == e {
			m.state = Idle
		}
		return nil
	}
	if err != nil {
		return err
	}
	if err := m.reg.Restyle(e, false, state, m.b); err != nil {
		return fmt.Errorf("interact: click %v: %w", e, err)
	}
	return nil
}

// PointerDown presses the hovered element. It reports whether the press was
// consumed; an unconsumed press belongs to the viewport.
func (m *Machine) PointerDown() bool {
	if m.state != Hovering {
		return false
	}
	m.state = Pressed
	return true
}

// PointerUp releases a press back to hovering.
func (m *Machine) PointerUp() {
	if m.state == Pressed {
		m.state = Hovering
	}
}

// Leave returns to Idle when the pointer leaves the canvas.
func (m *Machine) Leave() error {
	if m.state == Idle {
		return nil
	}
	e := m.target
	m.state = Idle
	return m.restyle(e, false)
}

// Toggle flips the boolean state carried by e and returns the new value.
// It returns ErrNotStateful for elements that carry none.
func (m *Machine) Toggle(e visual.Element) (bool, error) {
	s, err := m.stateful(e)
	if err != nil {
		return false, err
	}
	return s.toggle(), nil
}

// StateOf returns the boolean state carried by e, false for stateless
// elements.
func (m *Machine) StateOf(e visual.Element) (bool, error) {
	s, err := m.stateful(e)
	if errors.Is(err, ErrNotStateful) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.get(), nil
}

func (m *Machine) restyle(e visual.Element, hovered bool) error {
	state, err := m.StateOf(e)
	if errors.Is(err, graph.ErrInvalidHandle) {
		// Removed while targeted; its visual goes with it.
		logging.Logger().Debug("interact: target removed", "element", e)
		return nil
	}
	if err != nil {
		return err
	}
	if err := m.reg.Restyle(e, hovered, state, m.b); err != nil {
		return fmt.Errorf("interact: restyle %v: %w", e, err)
	}
	return nil
}

// flag is a reference to a boolean state inside a record.
type flag struct {
	get    func() bool
	toggle func() bool
}

func (m *Machine) stateful(e visual.Element) (flag, error) {
	if e.Kind == visual.ElementEdge {
		return flag{}, ErrNotStateful
	}
	rec, err := m.g.Node(e.Node)
	if err != nil {
		return flag{}, err
	}
	switch n := rec.(type) {
	case *graph.Input:
		if e.Kind != visual.ElementBody {
			return flag{}, ErrNotStateful
		}
		return flag{get: func() bool { return n.Active }, toggle: n.Toggle}, nil
	case *graph.Binary:
		if e.Kind != visual.ElementSocket {
			return flag{}, ErrNotStateful
		}
		s := n.Socket(e.Socket)
		if s == nil || !s.HasState {
			return flag{}, ErrNotStateful
		}
		return flag{get: func() bool { return s.State }, toggle: s.Toggle}, nil
	case *graph.Unary, *graph.Void:
		return flag{}, ErrNotStateful
	default:
		return flag{}, ErrNotStateful
	}
}
