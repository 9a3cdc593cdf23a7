package visual

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/nodeedit/graph"
	"github.com/gogpu/nodeedit/internal/logging"
)

// maxSockets bounds the socket indices released with a node.
const maxSockets = graph.SocketOut + 1

type entry struct {
	handle  Handle
	role    Role
	fill    gg.RGBA
	hovered bool
}

// Registry maps graph elements to backend visuals, one visual per element.
//
// Registry is not safe for concurrent use.
type Registry struct {
	theme    Theme
	entries  map[Element]*entry
	elements map[Handle]Element
}

// NewRegistry returns an empty registry styled with theme.
func NewRegistry(theme Theme) *Registry {
	return &Registry{
		theme:    theme,
		entries:  make(map[Element]*entry),
		elements: make(map[Handle]Element),
	}
}

// Theme returns the registry's theme.
func (r *Registry) Theme() Theme { return r.theme }

// SetTheme replaces the theme. Visuals pick it up on the next Sync.
func (r *Registry) SetTheme(t Theme) { r.theme = t }

// Len returns the number of registered visuals.
func (r *Registry) Len() int { return len(r.entries) }

// Lookup returns the visual registered for e.
func (r *Registry) Lookup(e Element) (Handle, bool) {
	en, ok := r.entries[e]
	if !ok {
		return 0, false
	}
	return en.handle, true
}

// ElementOf returns the element a visual was spawned for.
func (r *Registry) ElementOf(h Handle) (Element, bool) {
	e, ok := r.elements[h]
	return e, ok
}

// Hovered reports whether e is currently styled as hovered.
func (r *Registry) Hovered(e Element) bool {
	en, ok := r.entries[e]
	return ok && en.hovered
}

// Sync brings every node visual in line with g. Visuals of elements removed
// since the previous Sync are released first. Elements seen for the first
// time are spawned; all others are updated in place.
func (r *Registry) Sync(g *graph.Graph, b Backend) {
	r.releaseRemoved(g.TakeRemoved(), b)

	for _, id := range g.NodeIDs() {
		rec, err := g.Node(id)
		if err != nil {
			logging.Logger().Warn("visual: sync skipped node", "node", id, "err", err)
			continue
		}
		r.syncNode(id, rec, b)
	}
}

func (r *Registry) syncNode(id graph.NodeID, rec graph.Record, b Backend) {
	t := r.theme
	switch n := rec.(type) {
	case *graph.Input:
		body := BodyOf(id)
		r.Ensure(body, RoleSocket, Desc{
			Shape:     Circle{Radius: t.InputRadius},
			Transform: gg.Translate(n.Position.X, n.Position.Y),
			Fill:      t.Fill(RoleSocket, n.Active, r.Hovered(body)),
			Stroke:    Stroke{Color: t.Socket, Width: t.StrokeWidth},
			Z:         Z(LayerBody, id.Index()),
			Pickable:  true,
		}, b)

	case *graph.Binary:
		body := BodyOf(id)
		r.Ensure(body, RoleNode, Desc{
			Shape:     Rect{Width: n.Width, Height: n.Height, Corner: t.Corner},
			Transform: gg.Translate(n.Center.X, n.Center.Y),
			Fill:      t.Fill(RoleNode, false, r.Hovered(body)),
			Stroke:    Stroke{Color: t.Socket, Width: t.StrokeWidth},
			Z:         Z(LayerBody, id.Index()),
			Pickable:  true,
			Label:     n.Op,
		}, b)
		for i, s := range graph.Sockets(n) {
			pos := n.Center.Add(s.Offset)
			el := SocketOf(id, i)
			r.Ensure(el, RoleSocket, Desc{
				Shape:     Circle{Radius: t.SocketRadius},
				Transform: gg.Translate(pos.X, pos.Y),
				Fill:      t.Fill(RoleSocket, s.HasState && s.State, r.Hovered(el)),
				Stroke:    Stroke{Color: t.Socket, Width: t.StrokeWidth},
				Z:         Z(LayerSocket, id.Index()),
				Pickable:  true,
			}, b)
		}

	case *graph.Unary, *graph.Void:
		// Not rendered.
	}
}

// Ensure spawns a visual for e if none exists, otherwise updates the
// existing one in place. It returns the element's handle.
func (r *Registry) Ensure(e Element, role Role, d Desc, b Backend) Handle {
	if en, ok := r.entries[e]; ok {
		err := r.update(en, d, b)
		if err == nil {
			return en.handle
		}
		if !errors.Is(err, ErrUnknownHandle) {
			logging.Logger().Warn("visual: update failed", "element", e, "err", err)
			return en.handle
		}
		// The backend lost the visual; respawn it.
		logging.Logger().Warn("visual: backend dropped visual, respawning", "element", e, "handle", en.handle)
		r.forget(e)
	}
	return r.spawn(e, role, d, b)
}

// Update updates the visual of e in place. If e was never spawned it is
// spawned now and the returned error wraps ErrMissingVisual.
func (r *Registry) Update(e Element, role Role, d Desc, b Backend) (Handle, error) {
	if _, ok := r.entries[e]; !ok {
		h := r.spawn(e, role, d, b)
		err := fmt.Errorf("%w: %v", ErrMissingVisual, e)
		logging.Logger().Warn("visual: spawned on demand", "element", e, "err", err)
		return h, err
	}
	return r.Ensure(e, role, d, b), nil
}

// Restyle recomputes the fill of e for the given hover and boolean state
// and pushes it to the backend when it changed.
func (r *Registry) Restyle(e Element, hovered, state bool, b Backend) error {
	en, ok := r.entries[e]
	if !ok {
		return fmt.Errorf("%w: %v", ErrMissingVisual, e)
	}
	en.hovered = hovered
	fill := r.theme.Fill(en.role, state, hovered)
	if fill == en.fill {
		return nil
	}
	if err := b.UpdateFill(en.handle, fill); err != nil {
		return fmt.Errorf("visual: restyle %v: %w", e, err)
	}
	en.fill = fill
	return nil
}

// Release destroys the visual of e and forgets it.
func (r *Registry) Release(e Element, b Backend) error {
	en, ok := r.entries[e]
	if !ok {
		return fmt.Errorf("%w: %v", ErrMissingVisual, e)
	}
	r.forget(e)
	if err := b.Release(en.handle); err != nil {
		return fmt.Errorf("visual: release %v: %w", e, err)
	}
	return nil
}

func (r *Registry) spawn(e Element, role Role, d Desc, b Backend) Handle {
	h := b.Spawn(d)
	r.entries[e] = &entry{handle: h, role: role, fill: d.Fill}
	r.elements[h] = e
	logging.Logger().Debug("visual: spawn", "element", e, "handle", h)
	return h
}

func (r *Registry) update(en *entry, d Desc, b Backend) error {
	if err := b.UpdateTransform(en.handle, d.Transform); err != nil {
		return err
	}
	if err := b.UpdateGeometry(en.handle, d.Shape); err != nil {
		return err
	}
	if d.Fill != en.fill {
		if err := b.UpdateFill(en.handle, d.Fill); err != nil {
			return err
		}
		en.fill = d.Fill
	}
	return nil
}

func (r *Registry) forget(e Element) {
	if en, ok := r.entries[e]; ok {
		delete(r.elements, en.handle)
		delete(r.entries, e)
	}
}

func (r *Registry) releaseRemoved(removed []graph.Removed, b Backend) {
	for _, rm := range removed {
		var targets []Element
		if !rm.Edge.IsZero() {
			targets = append(targets, EdgeOf(rm.Edge))
		}
		if !rm.Node.IsZero() {
			targets = append(targets, BodyOf(rm.Node))
			for i := 0; i < maxSockets; i++ {
				targets = append(targets, SocketOf(rm.Node, i))
			}
		}
		for _, e := range targets {
			if _, ok := r.entries[e]; !ok {
				continue
			}
			if err := r.Release(e, b); err != nil {
				logging.Logger().Warn("visual: release failed", "element", e, "err", err)
			}
		}
	}
}
