// Package visual keeps render-backend visuals in step with the graph.
//
// Every graph element that has an on-screen form (a node body, a socket, an
// edge) is identified by an Element. The Registry maps each Element to at
// most one Handle issued by a Backend. Sync runs once per frame: an element
// seen for the first time is spawned, every later frame updates the same
// visual in place. The Registry never owns a visual; the Backend does, and
// the Registry only keeps a weak handle that it releases when the graph
// element is removed.
//
// # Draw order
//
// Visuals carry a Z value made of a fixed layer offset (edges < bodies <
// sockets) plus a per-index tiebreak, so draw order and topmost-wins hit
// testing agree and stay stable across frames.
//
// # Backends
//
// Backends register themselves by name, following the database/sql driver
// pattern:
//
//	import _ "github.com/gogpu/nodeedit/backend/raster"
//
//	b, err := visual.NewBackend("raster", 1600, 680, visual.DefaultTheme())
package visual
