package visual

import "github.com/gogpu/gg"

// Shape is a visual's geometry in local coordinates. The variant set is
// closed: Circle, Rect and Polyline.
type Shape interface {
	// Path builds the outline in local coordinates.
	Path() *gg.Path
	isShape()
}

// Circle is centred on the local origin.
type Circle struct {
	Radius float64
}

func (c Circle) Path() *gg.Path {
	p := gg.NewPath()
	p.Circle(0, 0, c.Radius)
	return p
}

func (Circle) isShape() {}

// Rect is centred on the local origin. Corner rounds the corners when > 0.
type Rect struct {
	Width, Height float64
	Corner        float64
}

func (r Rect) Path() *gg.Path {
	p := gg.NewPath()
	x, y := -r.Width/2, -r.Height/2
	if r.Corner > 0 {
		p.RoundedRectangle(x, y, r.Width, r.Height, r.Corner)
	} else {
		p.Rectangle(x, y, r.Width, r.Height)
	}
	return p
}

func (Rect) isShape() {}

// Polyline is an open path through Points. Edges use a two-point polyline.
type Polyline struct {
	Points []gg.Point
}

func (l Polyline) Path() *gg.Path {
	p := gg.NewPath()
	for i, pt := range l.Points {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
			continue
		}
		p.LineTo(pt.X, pt.Y)
	}
	return p
}

func (Polyline) isShape() {}

// Stroke is an outline style. A zero Width means no outline.
type Stroke struct {
	Color gg.RGBA
	Width float64
}

// Desc is everything a backend needs to spawn a visual.
type Desc struct {
	Shape     Shape
	Transform gg.Matrix // local to world
	Fill      gg.RGBA   // alpha 0 means no fill
	Stroke    Stroke
	Z         float64
	Pickable  bool
	Label     string
}

// Contains reports whether the screen point lies inside the visual drawn
// with desc under the world-to-screen view. Non-pickable visuals never
// contain anything.
func Contains(desc Desc, view gg.Matrix, screen gg.Point) bool {
	if !desc.Pickable || desc.Shape == nil {
		return false
	}
	m := view.Multiply(desc.Transform)
	return desc.Shape.Path().Transform(m).Contains(screen)
}
