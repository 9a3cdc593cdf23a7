package nodeedit

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/nodeedit/graph"
)

// Demo holds the handles of the graph built by BuildDemo.
type Demo struct {
	Inputs []graph.NodeID
	Binary graph.NodeID
	Sink   graph.NodeID
	Edges  []graph.EdgeID
}

// BuildDemo adds the sample circuit: four inputs stacked at x=0, y=0..30,
// an "and" block centred at (300,0) and a sink wired from every input, so
// the four edges trail the cursor.
func BuildDemo(e *Editor) Demo {
	var d Demo
	for i := range 4 {
		d.Inputs = append(d.Inputs, e.AddNode(graph.NewInput(false, gg.Pt(0, float64(i*10)))))
	}
	d.Binary = e.AddNode(graph.NewBinary("and", gg.Pt(300, 0), graph.DefaultBinaryWidth, graph.DefaultBinaryHeight))
	d.Sink = e.AddNode(&graph.Void{})
	for _, in := range d.Inputs {
		// Endpoints were just created; AddEdge cannot fail.
		id, _ := e.AddEdge(in, d.Sink)
		d.Edges = append(d.Edges, id)
	}
	return d
}
