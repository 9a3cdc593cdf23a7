// Package graph is the editor's data model: a directed graph of typed logic
// nodes connected by payload-free edges.
//
// Nodes and edges live in slot arenas and are addressed by generation-checked
// handles (NodeID, EdgeID). Removing a node removes every incident edge, frees
// the slots and bumps their generation, so a handle kept past removal fails
// with ErrInvalidHandle instead of silently aliasing a newer element.
//
// Node payloads form a closed variant set (Input, Binary, Unary, Void)
// expressed as the sealed Record interface. Consumers dispatch with an
// exhaustive type switch.
//
// A Graph is not safe for concurrent use.
package graph
