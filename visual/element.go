package visual

import (
	"fmt"

	"github.com/gogpu/nodeedit/graph"
)

// ElementKind distinguishes the graph elements that own visuals.
type ElementKind uint8

const (
	ElementBody ElementKind = iota
	ElementSocket
	ElementEdge
)

func (k ElementKind) String() string {
	switch k {
	case ElementBody:
		return "body"
	case ElementSocket:
		return "socket"
	case ElementEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// Element identifies one visual-bearing part of the graph. It is comparable
// and used as a map key.
type Element struct {
	Kind   ElementKind
	Node   graph.NodeID
	Socket int
	Edge   graph.EdgeID
}

// BodyOf returns the element for a node body.
func BodyOf(n graph.NodeID) Element {
	return Element{Kind: ElementBody, Node: n}
}

// SocketOf returns the element for socket i of node n.
func SocketOf(n graph.NodeID, i int) Element {
	return Element{Kind: ElementSocket, Node: n, Socket: i}
}

// EdgeOf returns the element for an edge.
func EdgeOf(e graph.EdgeID) Element {
	return Element{Kind: ElementEdge, Edge: e}
}

func (e Element) String() string {
	switch e.Kind {
	case ElementBody:
		return fmt.Sprintf("body(%v)", e.Node)
	case ElementSocket:
		return fmt.Sprintf("socket(%v#%d)", e.Node, e.Socket)
	case ElementEdge:
		return fmt.Sprintf("edge(%v)", e.Edge)
	default:
		return "element(?)"
	}
}
