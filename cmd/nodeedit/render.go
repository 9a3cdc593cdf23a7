package main

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/nodeedit"
	"github.com/gogpu/nodeedit/internal/ui"
	"github.com/gogpu/nodeedit/visual"
	"github.com/spf13/cobra"
)

// scene is an editor holding the demo circuit and drawing into the
// configured backend.
type scene struct {
	ed    *nodeedit.Editor
	b     visual.Renderer
	demo  nodeedit.Demo
	theme visual.Theme
}

// newScene builds the demo scene for the configured canvas.
func (g *globals) newScene() (*scene, error) {
	theme, err := g.cfg.Theme.Visual()
	if err != nil {
		return nil, err
	}
	b, err := visual.NewRenderer(g.cfg.Canvas.Backend, g.cfg.Canvas.Width, g.cfg.Canvas.Height, theme)
	if err != nil {
		return nil, err
	}
	ed := nodeedit.New(
		nodeedit.WithBackend(b),
		nodeedit.WithTheme(theme),
		nodeedit.WithViewport(g.cfg.Origin()),
		nodeedit.WithZoomSpeed(g.cfg.Viewport.ZoomSpeed),
	)
	return &scene{ed: ed, b: b, demo: nodeedit.BuildDemo(ed), theme: theme}, nil
}

func renderCmd(g *globals) *cobra.Command {
	var (
		output string
		wheel  []float64
		at     []float64
		toggle []int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo circuit to a PNG",
		Long: `Build the demo circuit, replay wheel events and input toggles, then
render one frame.

  nodeedit render                          # initial frame
  nodeedit render --wheel 1 --wheel 1      # zoom out twice at the pointer
  nodeedit render --at 900,340             # pointer position (edges trail it)
  nodeedit render --toggle 0 --toggle 2    # activate inputs 0 and 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(at) != 0 && len(at) != 2 {
				return fmt.Errorf("--at wants x,y; got %d values", len(at))
			}
			sc, err := g.newScene()
			if err != nil {
				return err
			}
			defer sc.b.Close()
			ed, b, inputs := sc.ed, sc.b, sc.demo.Inputs

			for _, i := range toggle {
				if i < 0 || i >= len(inputs) {
					return fmt.Errorf("--toggle %d: want an input index in [0, %d)", i, len(inputs))
				}
			}

			// The first frame spawns the visuals.
			if err := ed.Tick(nodeedit.FrameInput{}); err != nil {
				return err
			}
			for _, i := range toggle {
				if _, err := ed.Toggle(visual.BodyOf(inputs[i])); err != nil {
					return err
				}
			}

			var in nodeedit.FrameInput
			if len(at) == 2 {
				pos := gg.Pt(at[0], at[1])
				in.Pointer = append(in.Pointer, nodeedit.Move{Position: pos})
				for _, dy := range wheel {
					in.Pointer = append(in.Pointer, nodeedit.Wheel{DeltaY: dy, Position: pos})
				}
			} else {
				for _, dy := range wheel {
					in.Pointer = append(in.Pointer, nodeedit.Wheel{DeltaY: dy, Position: g.cfg.Origin()})
				}
			}
			if err := ed.Tick(in); err != nil {
				return err
			}

			if err := b.Render(); err != nil {
				return err
			}
			if err := b.SavePNG(output); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ui.Banner(out, "render")
			view := ed.Viewport()
			ui.Fields(out,
				"Output", ui.Brand.Sprint(output),
				"Canvas", fmt.Sprintf("%dx%d %s", g.cfg.Canvas.Width, g.cfg.Canvas.Height, g.cfg.Canvas.Backend),
				"Zoom", fmt.Sprintf("%.3f (scale %.3f)", view.Zoom, view.Scale()),
				"Origin", fmt.Sprintf("(%.1f, %.1f)", view.Origin.X, view.Origin.Y),
				"Visuals", fmt.Sprint(ed.Registry().Len()),
				"Frames", fmt.Sprint(ed.Frames()),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "nodeedit.png", "output PNG file")
	cmd.Flags().Float64SliceVar(&wheel, "wheel", nil, "wheel deltaY to replay (repeatable)")
	cmd.Flags().Float64SliceVar(&at, "at", nil, "pointer position x,y in screen pixels")
	cmd.Flags().IntSliceVar(&toggle, "toggle", nil, "input index to toggle (repeatable)")
	return cmd
}
