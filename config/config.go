// Package config loads the editor host configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gg"
	"github.com/gogpu/nodeedit/internal/logging"
	"github.com/gogpu/nodeedit/visual"
)

// Config holds nodeedit configuration.
type Config struct {
	Canvas   CanvasConfig   `toml:"canvas"`
	Viewport ViewportConfig `toml:"viewport"`
	Theme    ThemeConfig    `toml:"theme"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// CanvasConfig sets the render target: a registered backend name and its
// size in pixels.
type CanvasConfig struct {
	Backend string `toml:"backend"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
}

// ViewportConfig sets the initial camera.
type ViewportConfig struct {
	OriginX   float64 `toml:"origin_x"`
	OriginY   float64 `toml:"origin_y"`
	ZoomSpeed float64 `toml:"zoom_speed"`
}

// ThemeConfig holds colors as hex strings ("#rrggbb" or "#rrggbbaa") and
// sizes in world units. Empty colors and zero sizes keep the built-in
// palette.
type ThemeConfig struct {
	Background    string  `toml:"background"`
	Node          string  `toml:"node"`
	NodeHovered   string  `toml:"node_hovered"`
	Socket        string  `toml:"socket"`
	SocketHovered string  `toml:"socket_hovered"`
	Active        string  `toml:"active"`
	Edge          string  `toml:"edge"`
	Label         string  `toml:"label"`
	StrokeWidth   float64 `toml:"stroke_width"`
	EdgeWidth     float64 `toml:"edge_width"`
	InputRadius   float64 `toml:"input_radius"`
	SocketRadius  float64 `toml:"socket_radius"`
	Corner        float64 `toml:"corner"`
}

// ServerConfig controls the websocket host.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Canvas:   CanvasConfig{Backend: "raster", Width: 1600, Height: 680},
		Viewport: ViewportConfig{OriginX: 800, OriginY: 340, ZoomSpeed: -0.1},
		Server:   ServerConfig{Addr: "127.0.0.1:8080"},
		Log:      LogConfig{Level: "warn"},
	}
}

// Dir returns the nodeedit config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "nodeedit")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Logger().Debug("config: no file, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logging.Logger().Warn("config: unknown keys ignored", "path", path, "keys", undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks ranges and parses every color.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.Backend == "" {
		return errors.New("canvas backend is empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	_, err := c.Theme.Visual()
	return err
}

// Origin returns the initial viewport origin.
func (c *Config) Origin() gg.Point {
	return gg.Pt(c.Viewport.OriginX, c.Viewport.OriginY)
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// Visual converts the theme to a visual.Theme.
func (t ThemeConfig) Visual() (visual.Theme, error) {
	out := visual.DefaultTheme()
	colors := []struct {
		name string
		hex  string
		dst  *gg.RGBA
	}{
		{"background", t.Background, &out.Background},
		{"node", t.Node, &out.Node},
		{"node_hovered", t.NodeHovered, &out.NodeHovered},
		{"socket", t.Socket, &out.Socket},
		{"socket_hovered", t.SocketHovered, &out.SocketHovered},
		{"active", t.Active, &out.Active},
		{"edge", t.Edge, &out.Edge},
		{"label", t.Label, &out.Label},
	}
	for _, c := range colors {
		if c.hex == "" {
			continue
		}
		if !validHex(c.hex) {
			return visual.Theme{}, fmt.Errorf("theme.%s: invalid color %q", c.name, c.hex)
		}
		*c.dst = gg.Hex(c.hex)
	}

	sizes := []struct {
		v   float64
		dst *float64
	}{
		{t.StrokeWidth, &out.StrokeWidth},
		{t.EdgeWidth, &out.EdgeWidth},
		{t.InputRadius, &out.InputRadius},
		{t.SocketRadius, &out.SocketRadius},
		{t.Corner, &out.Corner},
	}
	for _, s := range sizes {
		if s.v > 0 {
			*s.dst = s.v
		}
	}
	return out, nil
}

// validHex accepts the forms gg.Hex understands: 3, 4, 6 or 8 hex digits
// with an optional leading '#'.
func validHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
