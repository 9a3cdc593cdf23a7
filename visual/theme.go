package visual

import "github.com/gogpu/gg"

// Layer is the coarse draw-order bucket of a visual.
type Layer int

const (
	LayerEdge Layer = iota
	LayerBody
	LayerSocket
)

// Z returns the draw depth for a visual on layer belonging to the element
// at arena index. The index tiebreak keeps the order deterministic.
func Z(layer Layer, index int) float64 {
	return float64(layer) + float64(index)/float64(1<<32)
}

// Role selects the palette used for a visual's fill.
type Role uint8

const (
	RoleNode Role = iota
	RoleSocket
	RoleEdge
)

// Theme holds colors and sizes. Colors are gg.RGBA in [0, 1].
type Theme struct {
	Background    gg.RGBA
	Node          gg.RGBA
	NodeHovered   gg.RGBA
	Socket        gg.RGBA
	SocketHovered gg.RGBA
	Active        gg.RGBA
	Edge          gg.RGBA
	Label         gg.RGBA

	StrokeWidth  float64
	EdgeWidth    float64
	InputRadius  float64
	SocketRadius float64
	Corner       float64
}

// DefaultTheme returns the dark editor palette.
func DefaultTheme() Theme {
	return Theme{
		Background:    gg.Hex("#161616"),
		Node:          gg.Hex("#303030"),
		NodeHovered:   gg.Hex("#303030"),
		Socket:        gg.Hex("#222222"),
		SocketHovered: gg.Hex("#282828"),
		Active:        gg.RGB(1, 0.1, 0.1),
		Edge:          gg.RGB(0.4, 0.4, 0.4),
		Label:         gg.Hex("#dbdbdb"),

		StrokeWidth:  1.5,
		EdgeWidth:    2,
		InputRadius:  10,
		SocketRadius: 5,
		Corner:       6,
	}
}

// Fill returns the fill for a visual. An active state takes priority over
// hover.
func (t Theme) Fill(role Role, state, hovered bool) gg.RGBA {
	switch role {
	case RoleEdge:
		return gg.RGBA{}
	case RoleNode:
		if state {
			return t.Active
		}
		if hovered {
			return t.NodeHovered
		}
		return t.Node
	default:
		if state {
			return t.Active
		}
		if hovered {
			return t.SocketHovered
		}
		return t.Socket
	}
}

// EdgeStroke returns the fixed edge outline.
func (t Theme) EdgeStroke() Stroke {
	return Stroke{Color: t.Edge, Width: t.EdgeWidth}
}
