package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/nodeedit"
	"github.com/gogpu/nodeedit/internal/ui"
	"github.com/gogpu/nodeedit/internal/wshost"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func serveCmd(g *globals) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve live editor sessions over a websocket",
		Long: `Each websocket connection on /ws gets its own editor holding the demo
circuit. Clients send JSON frames of pointer events and receive a PNG frame
followed by a JSON status.

  nodeedit serve                        # listen on the configured address
  nodeedit serve --addr :9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = g.cfg.Server.Addr
			}
			theme, err := g.cfg.Theme.Visual()
			if err != nil {
				return err
			}
			host, err := wshost.New(wshost.Config{
				Backend:   g.cfg.Canvas.Backend,
				Width:     g.cfg.Canvas.Width,
				Height:    g.cfg.Canvas.Height,
				Theme:     theme,
				Origin:    g.cfg.Origin(),
				ZoomSpeed: g.cfg.Viewport.ZoomSpeed,
			})
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           host.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			ui.Banner(out, "serve")
			ui.Fields(out,
				"Listen", ui.Brand.Sprint("ws://"+addr+"/ws"),
				"Health", "http://"+addr+"/healthz",
				"Canvas", fmt.Sprintf("%dx%d", g.cfg.Canvas.Width, g.cfg.Canvas.Height),
			)

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			nodeedit.Logger().Info("serve: shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
