package graph

import (
	"errors"
	"fmt"
)

// ErrInvalidHandle is returned when an operation references a node or edge
// that does not exist (never existed, or was removed).
var ErrInvalidHandle = errors.New("graph: invalid handle")

// HandleError describes the offending handle.
// It wraps ErrInvalidHandle for errors.Is() checks.
type HandleError struct {
	Op    string // operation that failed, e.g. "AddEdge"
	Kind  string // "node" or "edge"
	Index uint32
	Gen   uint32
}

func (e *HandleError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("graph: %s: invalid %s handle %d@%d", e.Op, e.Kind, e.Index, e.Gen)
}

func (e *HandleError) Unwrap() error { return ErrInvalidHandle }

func nodeErr(op string, id NodeID) error {
	return &HandleError{Op: op, Kind: "node", Index: id.index, Gen: id.gen}
}

func edgeErr(op string, id EdgeID) error {
	return &HandleError{Op: op, Kind: "edge", Index: id.index, Gen: id.gen}
}
