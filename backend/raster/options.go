package raster

import "github.com/gogpu/gg"

// DefaultFontSize is the label size in pixels.
const DefaultFontSize = 14.0

type options struct {
	background gg.RGBA
	label      gg.RGBA
	fontSize   float64
}

func defaultOptions() options {
	return options{
		background: gg.Hex("#161616"),
		label:      gg.Hex("#dbdbdb"),
		fontSize:   DefaultFontSize,
	}
}

// Option configures a Backend.
type Option func(*options)

// WithBackground sets the clear color.
func WithBackground(c gg.RGBA) Option {
	return func(o *options) { o.background = c }
}

// WithLabelColor sets the color of node labels.
func WithLabelColor(c gg.RGBA) Option {
	return func(o *options) { o.label = c }
}

// WithFontSize sets the label size. Zero disables labels.
func WithFontSize(size float64) Option {
	return func(o *options) { o.fontSize = size }
}
