package nodeedit

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/nodeedit/interact"
)

// PointerEvent is a raw pointer event in screen coordinates. The variant set
// is closed: Wheel, Move, Down, Up and Leave.
type PointerEvent interface {
	isPointerEvent()
}

// Wheel is a scroll of the mouse wheel at Position. Only the sign of DeltaY
// matters; every event is one zoom tick.
type Wheel struct {
	DeltaY   float64
	Position gg.Point
}

// Move is a pointer motion by Delta, ending at Position.
type Move struct {
	Delta    gg.Point
	Position gg.Point
}

// Down is a primary button press at the current pointer position.
type Down struct{}

// Up is a primary button release.
type Up struct{}

// Leave is the pointer leaving the canvas.
type Leave struct{}

func (Wheel) isPointerEvent() {}
func (Move) isPointerEvent()  {}
func (Down) isPointerEvent()  {}
func (Up) isPointerEvent()    {}
func (Leave) isPointerEvent() {}

// FrameInput is everything delivered to one Tick.
type FrameInput struct {
	// Pointer events in arrival order.
	Pointer []PointerEvent

	// Picks resolved by an external picking collaborator. When set, the
	// built-in tracker is not consulted for this frame. Only the first pick
	// is processed.
	Picks []interact.Pick
}
