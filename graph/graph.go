package graph

import (
	"fmt"
	"slices"
)

// NodeID is a generation-checked handle to a node. The zero value never
// refers to a node.
type NodeID struct {
	index uint32
	gen   uint32
}

// Index returns the arena slot. Slots are reused after removal, so the index
// alone does not identify a node; it is stable for the node's lifetime.
func (id NodeID) Index() int { return int(id.index) }

// IsZero reports whether id is the zero handle.
func (id NodeID) IsZero() bool { return id.gen == 0 }

func (id NodeID) String() string { return fmt.Sprintf("n%d@%d", id.index, id.gen) }

// EdgeID is a generation-checked handle to an edge.
type EdgeID struct {
	index uint32
	gen   uint32
}

// Index returns the arena slot.
func (id EdgeID) Index() int { return int(id.index) }

// IsZero reports whether id is the zero handle.
func (id EdgeID) IsZero() bool { return id.gen == 0 }

func (id EdgeID) String() string { return fmt.Sprintf("e%d@%d", id.index, id.gen) }

// Edge is a directed connection. It carries no payload.
type Edge struct {
	Source, Target NodeID
}

// Removed is a removal journal entry. Exactly one of Node and Edge is set.
type Removed struct {
	Node NodeID
	Edge EdgeID
}

// Reader is the query side of a Graph. It adds and removes nothing, but
// Node returns the live record, so field writes through it change the graph.
type Reader interface {
	Node(id NodeID) (Record, error)
	NodeIDs() []NodeID
	NodeCount() int
	Edge(id EdgeID) (Edge, error)
	EdgeIDs() []EdgeID
	EdgeCount() int
	EdgesFrom(id NodeID) ([]EdgeID, error)
	EdgesTo(id NodeID) ([]EdgeID, error)
}

type nodeSlot struct {
	gen  uint32
	live bool
	rec  Record
	out  []EdgeID
	in   []EdgeID
}

type edgeSlot struct {
	gen  uint32
	live bool
	edge Edge
}

// Graph is a directed graph of Records.
type Graph struct {
	nodes     []nodeSlot
	edges     []edgeSlot
	freeNodes []uint32
	freeEdges []uint32

	// Live handles in insertion order.
	nodeOrder []NodeID
	edgeOrder []EdgeID

	removed []Removed
}

var _ Reader = (*Graph)(nil)

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// AddNode stores rec and returns its handle.
func (g *Graph) AddNode(rec Record) NodeID {
	var idx uint32
	if n := len(g.freeNodes); n > 0 {
		idx = g.freeNodes[n-1]
		g.freeNodes = g.freeNodes[:n-1]
	} else {
		idx = uint32(len(g.nodes))
		g.nodes = append(g.nodes, nodeSlot{})
	}
	s := &g.nodes[idx]
	s.gen++
	s.live = true
	s.rec = rec
	s.out = s.out[:0]
	s.in = s.in[:0]

	id := NodeID{index: idx, gen: s.gen}
	g.nodeOrder = append(g.nodeOrder, id)
	return id
}

// AddEdge connects src to dst. Both endpoints must be live.
func (g *Graph) AddEdge(src, dst NodeID) (EdgeID, error) {
	if !g.Contains(src) {
		return EdgeID{}, nodeErr("AddEdge", src)
	}
	if !g.Contains(dst) {
		return EdgeID{}, nodeErr("AddEdge", dst)
	}

	var idx uint32
	if n := len(g.freeEdges); n > 0 {
		idx = g.freeEdges[n-1]
		g.freeEdges = g.freeEdges[:n-1]
	} else {
		idx = uint32(len(g.edges))
		g.edges = append(g.edges, edgeSlot{})
	}
	s := &g.edges[idx]
	s.gen++
	s.live = true
	s.edge = Edge{Source: src, Target: dst}

	id := EdgeID{index: idx, gen: s.gen}
	g.nodes[src.index].out = append(g.nodes[src.index].out, id)
	g.nodes[dst.index].in = append(g.nodes[dst.index].in, id)
	g.edgeOrder = append(g.edgeOrder, id)
	return id, nil
}

// Contains reports whether id refers to a live node.
func (g *Graph) Contains(id NodeID) bool {
	if id.gen == 0 || int(id.index) >= len(g.nodes) {
		return false
	}
	s := &g.nodes[id.index]
	return s.live && s.gen == id.gen
}

// ContainsEdge reports whether id refers to a live edge.
func (g *Graph) ContainsEdge(id EdgeID) bool {
	if id.gen == 0 || int(id.index) >= len(g.edges) {
		return false
	}
	s := &g.edges[id.index]
	return s.live && s.gen == id.gen
}

// Node returns the record stored for id. The record is returned by pointer
// and may be mutated in place.
func (g *Graph) Node(id NodeID) (Record, error) {
	if !g.Contains(id) {
		return nil, nodeErr("Node", id)
	}
	return g.nodes[id.index].rec, nil
}

// NodeIDs returns the live nodes in insertion order.
func (g *Graph) NodeIDs() []NodeID {
	return slices.Clone(g.nodeOrder)
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int { return len(g.nodeOrder) }

// Edge returns the endpoints of id.
func (g *Graph) Edge(id EdgeID) (Edge, error) {
	if !g.ContainsEdge(id) {
		return Edge{}, edgeErr("Edge", id)
	}
	return g.edges[id.index].edge, nil
}

// EdgeIDs returns the live edges in insertion order.
func (g *Graph) EdgeIDs() []EdgeID {
	return slices.Clone(g.edgeOrder)
}

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int { return len(g.edgeOrder) }

// EdgesFrom returns the outgoing edges of id in insertion order.
func (g *Graph) EdgesFrom(id NodeID) ([]EdgeID, error) {
	if !g.Contains(id) {
		return nil, nodeErr("EdgesFrom", id)
	}
	return slices.Clone(g.nodes[id.index].out), nil
}

// EdgesTo returns the incoming edges of id in insertion order.
func (g *Graph) EdgesTo(id NodeID) ([]EdgeID, error) {
	if !g.Contains(id) {
		return nil, nodeErr("EdgesTo", id)
	}
	return slices.Clone(g.nodes[id.index].in), nil
}

// RemoveEdge removes a single edge.
func (g *Graph) RemoveEdge(id EdgeID) error {
	if !g.ContainsEdge(id) {
		return edgeErr("RemoveEdge", id)
	}
	g.unlinkEdge(id)
	return nil
}

// RemoveNode removes id and every edge incident to it.
func (g *Graph) RemoveNode(id NodeID) error {
	if !g.Contains(id) {
		return nodeErr("RemoveNode", id)
	}
	s := &g.nodes[id.index]
	incident := make([]EdgeID, 0, len(s.out)+len(s.in))
	incident = append(incident, s.out...)
	incident = append(incident, s.in...)
	for _, e := range incident {
		// Self loops appear in both lists.
		if g.ContainsEdge(e) {
			g.unlinkEdge(e)
		}
	}

	s = &g.nodes[id.index]
	s.live = false
	s.rec = nil
	s.out = s.out[:0]
	s.in = s.in[:0]
	g.freeNodes = append(g.freeNodes, id.index)
	g.nodeOrder = slices.DeleteFunc(g.nodeOrder, func(n NodeID) bool { return n == id })
	g.removed = append(g.removed, Removed{Node: id})
	return nil
}

func (g *Graph) unlinkEdge(id EdgeID) {
	s := &g.edges[id.index]
	e := s.edge
	match := func(x EdgeID) bool { return x == id }
	src := &g.nodes[e.Source.index]
	src.out = slices.DeleteFunc(src.out, match)
	dst := &g.nodes[e.Target.index]
	dst.in = slices.DeleteFunc(dst.in, match)

	s.live = false
	s.edge = Edge{}
	g.freeEdges = append(g.freeEdges, id.index)
	g.edgeOrder = slices.DeleteFunc(g.edgeOrder, match)
	g.removed = append(g.removed, Removed{Edge: id})
}

// TakeRemoved returns the removals recorded since the previous call and
// clears the journal. Edges removed together with a node are reported
// before the node.
func (g *Graph) TakeRemoved() []Removed {
	out := g.removed
	g.removed = nil
	return out
}
