package nodeedit

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/nodeedit/visual"
)

// Default canvas and camera.
const (
	DefaultWidth  = 1600
	DefaultHeight = 680
)

// DefaultOrigin puts world (0,0) at the centre of the default canvas.
var DefaultOrigin = gg.Pt(DefaultWidth/2, DefaultHeight/2)

// Option configures an Editor during creation.
//
// Example:
//
//	// Default raster backend, 1600x680
//	ed := nodeedit.New()
//
//	// Custom backend and camera
//	ed := nodeedit.New(nodeedit.WithBackend(b), nodeedit.WithViewport(gg.Pt(400, 300)))
type Option func(*options)

type options struct {
	backend   visual.Backend
	hits      visual.HitTester
	hitsSet   bool
	theme     visual.Theme
	origin    gg.Point
	zoomSpeed float64
	width     int
	height    int
}

func defaultOptions() options {
	return options{
		theme:  visual.DefaultTheme(),
		origin: DefaultOrigin,
		width:  DefaultWidth,
		height: DefaultHeight,
	}
}

// WithBackend sets the render backend. Without it the editor creates a
// raster backend of the canvas size.
func WithBackend(b visual.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithHitTester sets the hit tester used to synthesize picks from pointer
// input. By default the backend is used when it implements
// visual.HitTester. Pass nil to disable picking; picks then only arrive
// through FrameInput.Picks.
func WithHitTester(h visual.HitTester) Option {
	return func(o *options) {
		o.hits = h
		o.hitsSet = true
	}
}

// WithTheme sets the palette and sizes.
func WithTheme(t visual.Theme) Option {
	return func(o *options) {
		o.theme = t
	}
}

// WithViewport sets the initial screen position of world (0,0).
func WithViewport(origin gg.Point) Option {
	return func(o *options) {
		o.origin = origin
	}
}

// WithZoomSpeed sets the zoom change per wheel tick. Negative values make
// forward scrolling zoom in.
func WithZoomSpeed(speed float64) Option {
	return func(o *options) {
		o.zoomSpeed = speed
	}
}

// WithCanvas sets the size of the default raster backend.
func WithCanvas(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}
