// Package chart renders a graph snapshot as an interactive HTML page.
//
// Nodes are placed at their world anchors; nodes without a position (sinks)
// are stacked in a column to the right of everything else. The page is
// self-contained apart from the ECharts script it loads.
package chart

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/gogpu/gg"
	"github.com/gogpu/nodeedit/graph"
	"github.com/gogpu/nodeedit/visual"
)

// sinkGap is the horizontal distance from the rightmost node to the sink
// column, and the vertical spacing inside it.
const sinkGap = 150

// Name returns the chart label of a node. It is unique per live node.
func Name(id graph.NodeID, rec graph.Record) string {
	switch n := rec.(type) {
	case *graph.Input:
		state := "off"
		if n.Active {
			state = "on"
		}
		return fmt.Sprintf("input %v (%s)", id, state)
	case *graph.Binary:
		op := n.Op
		if op == "" {
			op = "binary"
		}
		return fmt.Sprintf("%s %v", op, id)
	case *graph.Unary:
		return fmt.Sprintf("unary %v", id)
	case *graph.Void:
		return fmt.Sprintf("void %v", id)
	default:
		return id.String()
	}
}

// Graph builds the chart for g.
func Graph(g graph.Reader, theme visual.Theme, title string) *charts.Graph {
	nodes, links := snapshot(g, theme)

	c := charts.NewGraph()
	c.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Height:    "100vh",
			Width:     "100vw",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	c.AddSeries(
		"graph",
		nodes,
		links,
		charts.WithGraphChartOpts(
			opts.GraphChart{
				Layout:    "none",
				Draggable: opts.Bool(true),
				Roam:      opts.Bool(true),
			},
		),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    css(theme.Label),
			Position: "top",
		}),
	)
	return c
}

func snapshot(g graph.Reader, theme visual.Theme) ([]opts.GraphNode, []opts.GraphLink) {
	ids := g.NodeIDs()
	names := make(map[graph.NodeID]string, len(ids))
	nodes := make([]opts.GraphNode, 0, len(ids))

	maxX, minY := math.Inf(-1), math.Inf(1)
	for _, id := range ids {
		rec, err := g.Node(id)
		if err != nil {
			continue
		}
		if p, ok := graph.Anchor(rec); ok {
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
		}
	}
	if math.IsInf(maxX, -1) {
		maxX, minY = 0, 0
	}

	var sinks int
	for _, id := range ids {
		rec, err := g.Node(id)
		if err != nil {
			continue
		}
		name := Name(id, rec)
		names[id] = name

		pos, ok := graph.Anchor(rec)
		if !ok {
			pos = gg.Pt(maxX+sinkGap, minY+float64(sinks*sinkGap))
			sinks++
		}
		nodes = append(nodes, opts.GraphNode{
			Name:       name,
			X:          float32(pos.X),
			Y:          float32(pos.Y),
			Symbol:     symbol(rec),
			SymbolSize: 20,
			ItemStyle:  &opts.ItemStyle{Color: css(fill(rec, theme))},
		})
	}

	var links []opts.GraphLink
	for _, e := range g.EdgeIDs() {
		edge, err := g.Edge(e)
		if err != nil {
			continue
		}
		links = append(links, opts.GraphLink{
			Source: names[edge.Source],
			Target: names[edge.Target],
		})
	}
	return nodes, links
}

func symbol(rec graph.Record) string {
	switch rec.(type) {
	case *graph.Binary:
		return "roundRect"
	case *graph.Void:
		return "diamond"
	default:
		return "circle"
	}
}

func fill(rec graph.Record, theme visual.Theme) gg.RGBA {
	switch n := rec.(type) {
	case *graph.Input:
		return theme.Fill(visual.RoleSocket, n.Active, false)
	case *graph.Binary:
		return theme.Fill(visual.RoleNode, false, false)
	default:
		return theme.Edge
	}
}

// css formats an opaque color as #rrggbb.
func css(c gg.RGBA) string {
	b := func(v float64) int { return int(math.Round(math.Max(0, math.Min(1, v)) * 255)) }
	return fmt.Sprintf("#%02x%02x%02x", b(c.R), b(c.G), b(c.B))
}

// Render writes the chart page for g to w.
func Render(w io.Writer, g graph.Reader, theme visual.Theme, title string) error {
	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(Graph(g, theme, title))
	return page.Render(w)
}

// WriteFile renders the chart page for g to path.
func WriteFile(path string, g graph.Reader, theme visual.Theme, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(f, g, theme, title); err != nil {
		_ = f.Close()
		return fmt.Errorf("chart: render %s: %w", path, err)
	}
	return f.Close()
}
