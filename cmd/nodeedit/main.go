// Command nodeedit renders, serves and exports the node editor demo circuit.
//
// Usage:
//
//	nodeedit render -o frame.png --wheel 1 --at 800,340
//	nodeedit serve --addr 127.0.0.1:8080
//	nodeedit chart -o graph.html
package main

import (
	"os"

	"github.com/gogpu/nodeedit/internal/ui"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		ui.Bad.Fprintf(os.Stderr, "nodeedit: %v\n", err)
		os.Exit(1)
	}
}
