// Package visualtest provides an in-memory visual.Backend for tests.
package visualtest

import (
	"fmt"
	"sort"

	"github.com/gogpu/gg"
	"github.com/gogpu/nodeedit/visual"
)

// Visual is the backend's copy of a spawned visual.
type Visual struct {
	Handle visual.Handle
	Desc   visual.Desc
}

// Backend records every call it receives. It also implements
// visual.HitTester using the same containment test as the raster backend.
type Backend struct {
	visuals map[visual.Handle]*Visual
	next    visual.Handle
	view    gg.Matrix

	Spawns           int
	TransformUpdates int
	FillUpdates      int
	GeometryUpdates  int
	Releases         int
}

var (
	_ visual.Backend   = (*Backend)(nil)
	_ visual.HitTester = (*Backend)(nil)
)

// New returns an empty recording backend with an identity view.
func New() *Backend {
	return &Backend{
		visuals: make(map[visual.Handle]*Visual),
		view:    gg.Identity(),
	}
}

func (b *Backend) Spawn(d visual.Desc) visual.Handle {
	b.next++
	b.Spawns++
	b.visuals[b.next] = &Visual{Handle: b.next, Desc: d}
	return b.next
}

func (b *Backend) get(h visual.Handle) (*Visual, error) {
	v, ok := b.visuals[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", visual.ErrUnknownHandle, h)
	}
	return v, nil
}

func (b *Backend) UpdateTransform(h visual.Handle, m gg.Matrix) error {
	v, err := b.get(h)
	if err != nil {
		return err
	}
	b.TransformUpdates++
	v.Desc.Transform = m
	return nil
}

func (b *Backend) UpdateFill(h visual.Handle, c gg.RGBA) error {
	v, err := b.get(h)
	if err != nil {
		return err
	}
	b.FillUpdates++
	v.Desc.Fill = c
	return nil
}

func (b *Backend) UpdateGeometry(h visual.Handle, s visual.Shape) error {
	v, err := b.get(h)
	if err != nil {
		return err
	}
	b.GeometryUpdates++
	v.Desc.Shape = s
	return nil
}

func (b *Backend) Release(h visual.Handle) error {
	if _, err := b.get(h); err != nil {
		return err
	}
	b.Releases++
	delete(b.visuals, h)
	return nil
}

func (b *Backend) SetView(m gg.Matrix) { b.view = m }

// View returns the last view set.
func (b *Backend) View() gg.Matrix { return b.view }

// Len returns the number of live visuals.
func (b *Backend) Len() int { return len(b.visuals) }

// Visual returns the live visual for h.
func (b *Backend) Visual(h visual.Handle) (*Visual, bool) {
	v, ok := b.visuals[h]
	return v, ok
}

// Drop forgets a visual without going through Release, simulating a
// backend that lost it.
func (b *Backend) Drop(h visual.Handle) { delete(b.visuals, h) }

// Sorted returns the live visuals in draw order (Z, then spawn order).
func (b *Backend) Sorted() []*Visual {
	out := make([]*Visual, 0, len(b.visuals))
	for _, v := range b.visuals {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Desc.Z != out[j].Desc.Z {
			return out[i].Desc.Z < out[j].Desc.Z
		}
		return out[i].Handle < out[j].Handle
	})
	return out
}

// HitTest returns the topmost pickable visual containing screen.
func (b *Backend) HitTest(screen gg.Point) (visual.Handle, bool) {
	sorted := b.Sorted()
	for i := len(sorted) - 1; i >= 0; i-- {
		if visual.Contains(sorted[i].Desc, b.view, screen) {
			return sorted[i].Handle, true
		}
	}
	return 0, false
}
