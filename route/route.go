// Package route computes edge geometry once per frame.
//
// Edges are visited by depth-first traversal from every source node (Input
// nodes, in insertion order). Nodes that are not sources but still have
// unvisited outgoing edges are traversed afterwards, so every live edge is
// routed exactly once per frame.
//
// An edge is drawn as a straight two-point polyline from the source's output
// to the target. A target without a fixed position (a Void sink) is drawn to
// the world-space cursor, which is the dangling half of a drag-to-connect
// interaction.
package route

import (
	"slices"

	"github.com/gogpu/gg"
	"github.com/gogpu/nodeedit/graph"
	"github.com/gogpu/nodeedit/internal/logging"
	"github.com/gogpu/nodeedit/visual"
)

// Router routes edges. The zero value is not usable; call New.
type Router struct {
	visited map[graph.EdgeID]struct{}
	g       graph.Reader
	cursor  gg.Point
	reg     *visual.Registry
	b       visual.Backend
	routed  int
}

// New returns a Router.
func New() *Router {
	return &Router{visited: make(map[graph.EdgeID]struct{})}
}

// Route writes the geometry of every edge of g into its visual, spawning
// visuals for edges seen for the first time. cursor is the world-space
// cursor position. It returns the number of edges routed.
func (rt *Router) Route(g graph.Reader, cursor gg.Point, reg *visual.Registry, b visual.Backend) int {
	clear(rt.visited)
	rt.g, rt.cursor, rt.reg, rt.b, rt.routed = g, cursor, reg, b, 0
	defer func() { rt.g, rt.reg, rt.b = nil, nil, nil }()

	ids := g.NodeIDs()
	for _, id := range ids {
		if rec, err := g.Node(id); err == nil && graph.IsSource(rec) {
			rt.walk(id)
		}
	}
	for _, id := range ids {
		rt.walk(id)
	}

	logging.Logger().Debug("route: frame", "edges", rt.routed)
	return rt.routed
}

func (rt *Router) walk(id graph.NodeID) {
	out, err := rt.g.EdgesFrom(id)
	if err != nil {
		logging.Logger().Warn("route: walk", "node", id, "err", err)
		return
	}
	for _, e := range out {
		if _, seen := rt.visited[e]; seen {
			continue
		}
		rt.visited[e] = struct{}{}
		edge, err := rt.g.Edge(e)
		if err != nil {
			logging.Logger().Warn("route: edge", "edge", e, "err", err)
			continue
		}
		rt.routeEdge(e, edge)
		rt.walk(edge.Target)
	}
}

func (rt *Router) routeEdge(id graph.EdgeID, edge graph.Edge) {
	src := rt.sourcePosition(edge.Source)
	dst := rt.targetPosition(id, edge.Target)
	theme := rt.reg.Theme()

	rt.reg.Ensure(visual.EdgeOf(id), visual.RoleEdge, visual.Desc{
		Shape:     visual.Polyline{Points: []gg.Point{src, dst}},
		Transform: gg.Identity(),
		Stroke:    theme.EdgeStroke(),
		Z:         visual.Z(visual.LayerEdge, id.Index()),
	}, rt.b)
	rt.routed++
}

// sourcePosition is where the edge leaves its source. A source without a
// position follows the cursor like an unfixed target does.
func (rt *Router) sourcePosition(id graph.NodeID) gg.Point {
	rec, err := rt.g.Node(id)
	if err != nil {
		return rt.cursor
	}
	if p, ok := graph.OutputPosition(rec); ok {
		return p
	}
	return rt.cursor
}

// targetPosition is where the edge ends. Binary targets take their first
// incoming edge on socket A and their second on socket B.
func (rt *Router) targetPosition(e graph.EdgeID, id graph.NodeID) gg.Point {
	rec, err := rt.g.Node(id)
	if err != nil {
		return rt.cursor
	}
	switch t := rec.(type) {
	case *graph.Input:
		return t.Position
	case *graph.Binary:
		in, _ := rt.g.EdgesTo(id)
		switch slices.Index(in, e) {
		case 0:
			return t.Center.Add(t.A.Offset)
		case 1:
			return t.Center.Add(t.B.Offset)
		default:
			return t.Center
		}
	case *graph.Unary, *graph.Void:
		return rt.cursor
	default:
		return rt.cursor
	}
}
