// Package raster is a visual.Backend drawing with the gg software
// rasterizer.
//
// Visuals are retained between frames and redrawn in Z order by Render.
// The backend also implements visual.HitTester, so the picking tracker
// resolves hits against exactly what was drawn.
//
// Importing the package registers it under the name "raster":
//
//	import _ "github.com/gogpu/nodeedit/backend/raster"
//
//	b, err := visual.NewBackend("raster", 1600, 680, visual.DefaultTheme())
package raster

import (
	"fmt"
	"image"
	"io"
	"sort"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/nodeedit/internal/logging"
	"github.com/gogpu/nodeedit/visual"
	"golang.org/x/image/font/gofont/goregular"
)

// Name is the registered backend name.
const Name = "raster"

func init() {
	visual.Register(Name, func(width, height int, theme visual.Theme) visual.Backend {
		return New(width, height, WithBackground(theme.Background), WithLabelColor(theme.Label))
	})
}

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

// labelSource loads the embedded Go Regular face once per process.
func labelSource() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
	})
	return fontSource, fontErr
}

type item struct {
	handle visual.Handle
	desc   visual.Desc
}

// Backend owns a gg.Context and the visuals drawn into it.
// It is not safe for concurrent use.
type Backend struct {
	ctx  *gg.Context
	opts options
	face text.Face

	items map[visual.Handle]*item
	next  visual.Handle
	view  gg.Matrix
}

var (
	_ visual.Backend   = (*Backend)(nil)
	_ visual.HitTester = (*Backend)(nil)
	_ visual.Renderer  = (*Backend)(nil)
)

// New returns a backend with a width x height canvas.
func New(width, height int, opts ...Option) *Backend {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	b := &Backend{
		ctx:   gg.NewContext(width, height),
		opts:  o,
		items: make(map[visual.Handle]*item),
		view:  gg.Identity(),
	}
	if o.fontSize > 0 {
		src, err := labelSource()
		if err != nil {
			logging.Logger().Warn("raster: labels disabled", "err", err)
		} else {
			b.face = src.Face(o.fontSize)
		}
	}
	return b
}

// Width returns the canvas width in pixels.
func (b *Backend) Width() int { return b.ctx.Width() }

// Height returns the canvas height in pixels.
func (b *Backend) Height() int { return b.ctx.Height() }

// Len returns the number of live visuals.
func (b *Backend) Len() int { return len(b.items) }

func (b *Backend) Spawn(d visual.Desc) visual.Handle {
	b.next++
	b.items[b.next] = &item{handle: b.next, desc: d}
	return b.next
}

func (b *Backend) lookup(h visual.Handle) (*item, error) {
	it, ok := b.items[h]
	if !ok {
		return nil, fmt.Errorf("raster: %w: %d", visual.ErrUnknownHandle, h)
	}
	return it, nil
}

func (b *Backend) UpdateTransform(h visual.Handle, m gg.Matrix) error {
	it, err := b.lookup(h)
	if err != nil {
		return err
	}
	it.desc.Transform = m
	return nil
}

func (b *Backend) UpdateFill(h visual.Handle, c gg.RGBA) error {
	it, err := b.lookup(h)
	if err != nil {
		return err
	}
	it.desc.Fill = c
	return nil
}

func (b *Backend) UpdateGeometry(h visual.Handle, s visual.Shape) error {
	it, err := b.lookup(h)
	if err != nil {
		return err
	}
	it.desc.Shape = s
	return nil
}

func (b *Backend) Release(h visual.Handle) error {
	if _, err := b.lookup(h); err != nil {
		return err
	}
	delete(b.items, h)
	return nil
}

func (b *Backend) SetView(m gg.Matrix) { b.view = m }

// Desc returns the current description of a visual.
func (b *Backend) Desc(h visual.Handle) (visual.Desc, bool) {
	it, ok := b.items[h]
	if !ok {
		return visual.Desc{}, false
	}
	return it.desc, true
}

// sorted returns the visuals back to front: ascending Z, spawn order on ties.
func (b *Backend) sorted() []*item {
	out := make([]*item, 0, len(b.items))
	for _, it := range b.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].desc.Z != out[j].desc.Z {
			return out[i].desc.Z < out[j].desc.Z
		}
		return out[i].handle < out[j].handle
	})
	return out
}

// HitTest returns the topmost pickable visual containing the screen point.
func (b *Backend) HitTest(screen gg.Point) (visual.Handle, bool) {
	items := b.sorted()
	for i := len(items) - 1; i >= 0; i-- {
		if visual.Contains(items[i].desc, b.view, screen) {
			return items[i].handle, true
		}
	}
	return 0, false
}

// Render clears the canvas and draws every visual back to front.
func (b *Backend) Render() error {
	b.ctx.ClearWithColor(b.opts.background)
	for _, it := range b.sorted() {
		if err := b.draw(it); err != nil {
			return fmt.Errorf("raster: draw %d: %w", it.handle, err)
		}
	}
	return nil
}

func (b *Backend) draw(it *item) error {
	d := it.desc
	if d.Shape == nil {
		return nil
	}
	m := b.view.Multiply(d.Transform)
	b.trace(d.Shape.Path().Transform(m))

	fill := d.Fill.A > 0
	stroke := d.Stroke.Width > 0 && d.Stroke.Color.A > 0
	if fill {
		b.ctx.SetColor(d.Fill.Color())
		var err error
		if stroke {
			err = b.ctx.FillPreserve()
		} else {
			err = b.ctx.Fill()
		}
		if err != nil {
			return err
		}
	}
	if stroke {
		b.ctx.SetColor(d.Stroke.Color.Color())
		b.ctx.SetLineWidth(d.Stroke.Width)
		if err := b.ctx.Stroke(); err != nil {
			return err
		}
	}
	if !fill && !stroke {
		b.ctx.ClearPath()
	}

	if d.Label != "" && b.face != nil {
		at := m.TransformPoint(gg.Pt(0, 0))
		b.ctx.SetFont(b.face)
		b.ctx.SetColor(b.opts.label.Color())
		b.ctx.DrawStringAnchored(d.Label, at.X, at.Y, 0.5, 0.5)
	}
	return nil
}

// trace replays a screen-space path into the context's current path.
func (b *Backend) trace(p *gg.Path) {
	b.ctx.ClearPath()
	p.Iterate(func(v gg.PathVerb, c []float64) {
		switch v {
		case gg.MoveTo:
			b.ctx.MoveTo(c[0], c[1])
		case gg.LineTo:
			b.ctx.LineTo(c[0], c[1])
		case gg.QuadTo:
			b.ctx.QuadraticTo(c[0], c[1], c[2], c[3])
		case gg.CubicTo:
			b.ctx.CubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		case gg.Close:
			b.ctx.ClosePath()
		}
	})
}

// Image returns the canvas as of the last Render.
func (b *Backend) Image() image.Image { return b.ctx.Image() }

// EncodePNG writes the canvas as PNG.
func (b *Backend) EncodePNG(w io.Writer) error { return b.ctx.EncodePNG(w) }

// SavePNG writes the canvas to a PNG file.
func (b *Backend) SavePNG(path string) error { return b.ctx.SavePNG(path) }

// Close releases the drawing context.
func (b *Backend) Close() error { return b.ctx.Close() }
