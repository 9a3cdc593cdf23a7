package graph

import "github.com/gogpu/gg"

// Kind identifies a Record variant.
type Kind uint8

const (
	KindInput Kind = iota
	KindBinary
	KindUnary
	KindVoid
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindInput:
		return "Input"
	case KindBinary:
		return "Binary"
	case KindUnary:
		return "Unary"
	case KindVoid:
		return "Void"
	default:
		return "Unknown"
	}
}

// Record is the payload of a node. The variant set is closed: *Input,
// *Binary, *Unary and *Void are the only implementations.
//
// Records are stored by pointer, so the value returned by Graph.Node is the
// live record and may be mutated in place.
type Record interface {
	Kind() Kind
	isRecord()
}

// Socket is an attachment point owned by exactly one node.
// Offset is relative to the owning node's anchor.
type Socket struct {
	Offset   gg.Point
	HasState bool
	State    bool
}

// Toggle flips the socket state and reports the new value.
// Sockets without state are left untouched and report false.
func (s *Socket) Toggle() bool {
	if !s.HasState {
		return false
	}
	s.State = !s.State
	return s.State
}

// Input is a toggle switch with a single output socket at its position.
type Input struct {
	Active   bool
	Position gg.Point
	Out      Socket
}

// NewInput returns an input node at pos.
func NewInput(active bool, pos gg.Point) *Input {
	return &Input{Active: active, Position: pos}
}

func (*Input) Kind() Kind { return KindInput }
func (*Input) isRecord()  {}

// Toggle flips Active and reports the new value.
func (n *Input) Toggle() bool {
	n.Active = !n.Active
	return n.Active
}

// Default Binary footprint.
const (
	DefaultBinaryWidth  = 200.0
	DefaultBinaryHeight = 80.0
)

// Socket indices of a Binary node.
const (
	SocketA = iota
	SocketB
	SocketOut
)

// Binary is a two-input, one-output operator block with a rectangular
// footprint centred on Center.
type Binary struct {
	Op            string
	Center        gg.Point
	Width, Height float64
	A, B, Out     Socket
}

// NewBinary returns a binary block of the given size. Inputs sit on the left
// edge a quarter height above and below the centre line, the output on the
// right edge. Both inputs carry a boolean state.
func NewBinary(op string, center gg.Point, width, height float64) *Binary {
	return &Binary{
		Op:     op,
		Center: center,
		Width:  width,
		Height: height,
		A:      Socket{Offset: gg.Pt(-width/2, -height/4), HasState: true},
		B:      Socket{Offset: gg.Pt(-width/2, height/4), HasState: true},
		Out:    Socket{Offset: gg.Pt(width/2, 0)},
	}
}

func (*Binary) Kind() Kind { return KindBinary }
func (*Binary) isRecord()  {}

// Socket returns the socket at index i (SocketA, SocketB, SocketOut).
func (n *Binary) Socket(i int) *Socket {
	switch i {
	case SocketA:
		return &n.A
	case SocketB:
		return &n.B
	case SocketOut:
		return &n.Out
	default:
		return nil
	}
}

// Unary is reserved. It has no sockets and no behavior.
type Unary struct{}

func (*Unary) Kind() Kind { return KindUnary }
func (*Unary) isRecord()  {}

// Void is a sink with no geometry of its own.
type Void struct{}

func (*Void) Kind() Kind { return KindVoid }
func (*Void) isRecord()  {}

// Anchor returns the record's anchor position. Unary and Void have no
// position and report false.
func Anchor(rec Record) (gg.Point, bool) {
	switch r := rec.(type) {
	case *Input:
		return r.Position, true
	case *Binary:
		return r.Center, true
	case *Unary, *Void:
		return gg.Point{}, false
	default:
		return gg.Point{}, false
	}
}

// SetAnchor moves a positioned record. Socket positions follow because
// they are stored relative to the anchor.
func SetAnchor(rec Record, p gg.Point) bool {
	switch r := rec.(type) {
	case *Input:
		r.Position = p
		return true
	case *Binary:
		r.Center = p
		return true
	default:
		return false
	}
}

// Sockets returns the record's sockets in index order.
func Sockets(rec Record) []*Socket {
	switch r := rec.(type) {
	case *Input:
		return []*Socket{&r.Out}
	case *Binary:
		return []*Socket{&r.A, &r.B, &r.Out}
	default:
		return nil
	}
}

// SocketPosition returns the absolute position of socket i:
// anchor + relative offset.
func SocketPosition(rec Record, i int) (gg.Point, bool) {
	anchor, ok := Anchor(rec)
	if !ok {
		return gg.Point{}, false
	}
	sockets := Sockets(rec)
	if i < 0 || i >= len(sockets) {
		return gg.Point{}, false
	}
	return anchor.Add(sockets[i].Offset), true
}

// OutputPosition returns where outgoing edges leave the record.
func OutputPosition(rec Record) (gg.Point, bool) {
	switch r := rec.(type) {
	case *Input:
		return r.Position.Add(r.Out.Offset), true
	case *Binary:
		return r.Center.Add(r.Out.Offset), true
	default:
		return gg.Point{}, false
	}
}

// IsSource reports whether edge routing starts from this record.
func IsSource(rec Record) bool {
	_, ok := rec.(*Input)
	return ok
}
