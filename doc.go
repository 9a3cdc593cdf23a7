// Package nodeedit is the core of an interactive node-graph editor.
//
// # Overview
//
// An Editor owns a directed graph of logic nodes, the viewport through which
// it is seen, and a registry mapping every graph element to exactly one
// persistent visual in a render backend. Once per frame, Tick turns raw
// pointer input into viewport changes, hover and click transitions and graph
// mutations, then brings every visual in line with the graph.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/nodeedit"
//	    "github.com/gogpu/nodeedit/backend/raster"
//	)
//
//	b := raster.New(1600, 680)
//	ed := nodeedit.New(nodeedit.WithBackend(b))
//	nodeedit.BuildDemo(ed)
//
//	ed.Tick(nodeedit.FrameInput{
//	    Pointer: []nodeedit.PointerEvent{
//	        nodeedit.Wheel{DeltaY: -1, Position: gg.Pt(100, 100)},
//	    },
//	})
//	b.Render()
//	b.SavePNG("frame.png")
//
// # Frame order
//
// Tick runs, in order: pointer events as delivered; the pick for this frame
// (an explicit pick from FrameInput, or one synthesized by the picking
// tracker); the interaction state machine, which consumes only the first
// pick; the camera; node visual sync; edge routing.
//
// # Architecture
//
// The library is organized into:
//   - graph: arena-indexed directed graph with generation-checked handles
//   - viewport: logarithmic zoom and pan
//   - visual: element to visual registry, backend interface, theme
//   - interact: hover/press/click state machine
//   - picking: hover and click synthesis from hit testing
//   - route: per-frame edge geometry
//   - backend/raster: software backend on gg
//
// # Invalid handles
//
// Referencing a removed or unknown node is a programming error. Builds with
// the nodeeditdebug tag panic; other builds log a warning and return the
// error, leaving the graph untouched.
//
// # Concurrency
//
// An Editor is single-threaded and frame-driven. It is not safe for
// concurrent use; hosts serving several clients create one Editor each.
package nodeedit
