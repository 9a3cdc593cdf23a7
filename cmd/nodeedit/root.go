package main

import (
	"strings"

	"github.com/gogpu/nodeedit"
	_ "github.com/gogpu/nodeedit/backend/raster"
	"github.com/gogpu/nodeedit/config"
	"github.com/gogpu/nodeedit/internal/logging"
	"github.com/gogpu/nodeedit/internal/ui"
	"github.com/gogpu/nodeedit/visual"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

// globals holds the persistent flags and the config they resolve to.
type globals struct {
	configPath string
	logLevel   string
	backend    string

	cfg *config.Config
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "nodeedit",
		Short: "nodeedit: node graph editor engine",
		Long: ui.Brand.Sprint("nodeedit") + " drives the node editor demo circuit.\n" +
			ui.Subtle.Sprint("Render frames to PNG, serve live sessions over a websocket, export topology charts"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
	}
	cmd.SetVersionTemplate("nodeedit {{ .Version }}\n")
	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", config.Path(), "config file")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.backend, "backend", "", "visual backend override ("+strings.Join(visual.Backends(), ", ")+")")

	cmd.AddCommand(
		renderCmd(g),
		serveCmd(g),
		chartCmd(g),
		versionCmd(),
	)

	return cmd
}

// load reads the config file and installs the logger.
func (g *globals) load(cmd *cobra.Command) error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.backend != "" {
		cfg.Canvas.Backend = g.backend
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	nodeedit.SetLogger(logging.NewText(cmd.ErrOrStderr(), level))
	g.cfg = cfg
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("nodeedit %s\n", version)
		},
	}
}
