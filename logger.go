package nodeedit

import (
	"log/slog"

	"github.com/gogpu/nodeedit/internal/logging"
)

// SetLogger configures the logger for nodeedit and all its sub-packages.
// By default, nodeedit produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by nodeedit:
//   - [slog.LevelDebug]: per-frame diagnostics (spawns, dropped picks, routed edges)
//   - [slog.LevelInfo]: lifecycle events (websocket sessions)
//   - [slog.LevelWarn]: recovered faults (invalid handles, visuals respawned on demand)
//
// Example:
//
//	nodeedit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by nodeedit.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
