package main

import (
	"fmt"

	"github.com/gogpu/nodeedit/internal/chart"
	"github.com/gogpu/nodeedit/internal/ui"
	"github.com/spf13/cobra"
)

func chartCmd(g *globals) *cobra.Command {
	var (
		output string
		title  string
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Export the demo circuit topology as an HTML chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := g.newScene()
			if err != nil {
				return err
			}
			defer sc.b.Close()

			if err := chart.WriteFile(output, sc.ed.Graph(), sc.theme, title); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ui.Banner(out, "chart")
			ui.Fields(out,
				"Output", ui.Brand.Sprint(output),
				"Nodes", fmt.Sprint(sc.ed.Graph().NodeCount()),
				"Edges", fmt.Sprint(sc.ed.Graph().EdgeCount()),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "nodeedit.html", "output HTML file")
	cmd.Flags().StringVar(&title, "title", "nodeedit", "page title")
	return cmd
}
