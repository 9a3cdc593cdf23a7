// Package viewport maps between world and screen coordinates.
//
// The mapping is a uniform scale followed by a translation:
//
//	screen = world*scale + origin
//	world  = (screen - origin) / scale
//
// where scale = 2^zoom. Zoom is perceptually linear (every wheel tick adds
// the same amount) while scale stays positive and multiplicative; integral
// zoom steps double or halve the scale.
package viewport

import (
	"math"

	"github.com/gogpu/gg"
)

// DefaultZoomSpeed is the zoom change per wheel tick. It is negative so that
// scrolling forward (negative delta) zooms in.
const DefaultZoomSpeed = -0.1

// ZoomToScale converts a zoom level to a scale factor: 2^zoom.
func ZoomToScale(zoom float64) float64 {
	return math.Exp2(zoom)
}

// State is the pan/zoom state of the canvas.
//
// State is not safe for concurrent use.
type State struct {
	Zoom     float64
	Origin   gg.Point
	Dragging bool

	// ZoomSpeed is added (times the wheel direction) per wheel event.
	// Zero means DefaultZoomSpeed.
	ZoomSpeed float64
}

// New returns a viewport at zoom 0 with the given origin.
func New(origin gg.Point) *State {
	return &State{Origin: origin, ZoomSpeed: DefaultZoomSpeed}
}

// Scale returns 2^Zoom.
func (s *State) Scale() float64 { return ZoomToScale(s.Zoom) }

func (s *State) zoomSpeed() float64 {
	if s.ZoomSpeed == 0 {
		return DefaultZoomSpeed
	}
	return s.ZoomSpeed
}

// ApplyWheel zooms by one tick around cursor. The world point under the
// cursor stays under the cursor. A zero delta is ignored.
func (s *State) ApplyWheel(deltaY float64, cursor gg.Point) {
	if deltaY == 0 {
		return
	}
	direction := -1.0
	if deltaY > 0 {
		direction = 1
	}

	pivot := s.ScreenToWorld(cursor)
	s.Zoom += direction * s.zoomSpeed()
	s.Origin = cursor.Sub(pivot.Mul(s.Scale()))
}

// ApplyPan translates the origin by a raw screen-space delta while a drag
// is in progress. Panning is not scale corrected.
func (s *State) ApplyPan(delta gg.Point) {
	if !s.Dragging {
		return
	}
	s.Origin = s.Origin.Add(delta)
}

// BeginDrag starts a pan drag.
func (s *State) BeginDrag() { s.Dragging = true }

// EndDrag stops a pan drag.
func (s *State) EndDrag() { s.Dragging = false }

// Leave handles the pointer leaving the canvas. It ends any drag so the
// state cannot stay stuck in dragging mode.
func (s *State) Leave() { s.EndDrag() }

// ScreenToWorld maps a screen position to world coordinates.
func (s *State) ScreenToWorld(p gg.Point) gg.Point {
	return p.Sub(s.Origin).Div(s.Scale())
}

// WorldToScreen maps a world position to screen coordinates.
func (s *State) WorldToScreen(p gg.Point) gg.Point {
	return p.Mul(s.Scale()).Add(s.Origin)
}

// Matrix returns the world-to-screen transform.
func (s *State) Matrix() gg.Matrix {
	scale := s.Scale()
	return gg.Translate(s.Origin.X, s.Origin.Y).Multiply(gg.Scale(scale, scale))
}

// Reset restores zoom 0 at origin and ends any drag.
func (s *State) Reset(origin gg.Point) {
	s.Zoom = 0
	s.Origin = origin
	s.Dragging = false
}
