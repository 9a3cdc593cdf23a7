package visual

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/gogpu/gg"
)

// Handle refers to a visual owned by a Backend. The zero Handle is never
// issued.
type Handle uint64

var (
	// ErrUnknownHandle is returned by a Backend asked to touch a visual it
	// does not own (never spawned, or already released).
	ErrUnknownHandle = errors.New("visual: unknown handle")

	// ErrMissingVisual is returned when the registry is asked to update an
	// element that was never spawned. It signals a synchronization bug;
	// the registry recovers by spawning on demand.
	ErrMissingVisual = errors.New("visual: missing visual")
)

// Backend is the render collaborator. It owns every visual it spawns.
//
// Implementations are driven from a single frame loop and need not be safe
// for concurrent use.
type Backend interface {
	// Spawn creates a visual and returns its handle.
	Spawn(desc Desc) Handle

	// UpdateTransform replaces the local-to-world transform.
	UpdateTransform(h Handle, m gg.Matrix) error

	// UpdateFill replaces the fill color.
	UpdateFill(h Handle, c gg.RGBA) error

	// UpdateGeometry replaces the shape.
	UpdateGeometry(h Handle, s Shape) error

	// Release destroys the visual.
	Release(h Handle) error

	// SetView sets the world-to-screen camera transform.
	SetView(m gg.Matrix)
}

// HitTester is implemented by backends that can resolve which visual is
// topmost at a screen position.
type HitTester interface {
	HitTest(screen gg.Point) (Handle, bool)
}

// BackendFactory creates a backend for a canvas of the given size. Backends
// that paint a background or labels take their colors from theme.
type BackendFactory func(width, height int, theme Theme) Backend

// Renderer is a backend that rasterizes its visuals into an image.
type Renderer interface {
	Backend
	Render() error
	EncodePNG(w io.Writer) error
	SavePNG(path string) error
	Close() error
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]BackendFactory)
)

// Register makes a backend available by name. It is typically called from
// an init function in the backend package.
//
// Register panics if factory is nil or name is already registered.
func Register(name string, factory BackendFactory) {
	driversMu.Lock()
	defer driversMu.Unlock()

	if factory == nil {
		panic("visual: Register factory is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("visual: Register called twice for " + name)
	}
	drivers[name] = factory
}

// NewBackend creates a registered backend by name.
func NewBackend(name string, width, height int, theme Theme) (Backend, error) {
	driversMu.RLock()
	factory, ok := drivers[name]
	driversMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("visual: unknown backend %q (forgotten import?)", name)
	}
	return factory(width, height, theme), nil
}

// NewRenderer creates a registered backend by name that can produce frames.
func NewRenderer(name string, width, height int, theme Theme) (Renderer, error) {
	b, err := NewBackend(name, width, height, theme)
	if err != nil {
		return nil, err
	}
	r, ok := b.(Renderer)
	if !ok {
		return nil, fmt.Errorf("visual: backend %q does not render frames", name)
	}
	return r, nil
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
