// Package wshost serves an Editor over a websocket.
//
// Each connection gets its own Editor and rendering backend. The client sends
// JSON text messages carrying one frame of pointer events; the server ticks
// the editor, then replies with the rendered frame as a binary PNG message
// followed by a JSON status text message. The initial frame is sent right
// after the upgrade.
package wshost

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"github.com/gogpu/gg"
	"github.com/gogpu/nodeedit"
	"github.com/gogpu/nodeedit/backend/raster"
	"github.com/gogpu/nodeedit/internal/logging"
	"github.com/gogpu/nodeedit/visual"
	"github.com/gorilla/websocket"
)

// Event is one pointer event on the wire.
type Event struct {
	Type   string  `json:"type"` // "wheel", "move", "down", "up", "leave"
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
}

// Message is one client frame.
type Message struct {
	Events []Event `json:"events"`
}

// Status is sent after every rendered frame.
type Status struct {
	Frame   uint64  `json:"frame"`
	State   string  `json:"state"`
	Target  string  `json:"target,omitempty"`
	Zoom    float64 `json:"zoom"`
	Visuals int     `json:"visuals"`
	Error   string  `json:"error,omitempty"`
}

// FrameInput converts the message to editor input.
func (m Message) FrameInput() (nodeedit.FrameInput, error) {
	var in nodeedit.FrameInput
	for i, ev := range m.Events {
		pos := gg.Pt(ev.X, ev.Y)
		switch ev.Type {
		case "wheel":
			in.Pointer = append(in.Pointer, nodeedit.Wheel{DeltaY: ev.DeltaY, Position: pos})
		case "move":
			in.Pointer = append(in.Pointer, nodeedit.Move{Delta: gg.Pt(ev.DX, ev.DY), Position: pos})
		case "down":
			in.Pointer = append(in.Pointer, nodeedit.Down{})
		case "up":
			in.Pointer = append(in.Pointer, nodeedit.Up{})
		case "leave":
			in.Pointer = append(in.Pointer, nodeedit.Leave{})
		default:
			return nodeedit.FrameInput{}, fmt.Errorf("wshost: event %d: unknown type %q", i, ev.Type)
		}
	}
	return in, nil
}

// Config configures the sessions of a Server.
type Config struct {
	// Backend names a registered visual backend. Empty selects raster.
	Backend       string
	Width, Height int
	Theme         visual.Theme
	Origin        gg.Point
	ZoomSpeed     float64

	// Scene populates each new session's editor. Nil builds the demo.
	Scene func(*nodeedit.Editor)
}

// Server upgrades requests to editor sessions.
type Server struct {
	cfg      Config
	upgrader websocket.Upgrader
}

// New returns a server. Cross-origin clients are accepted. A zero canvas
// size or theme takes the editor defaults. The backend must be registered.
func New(cfg Config) (*Server, error) {
	if cfg.Backend == "" {
		cfg.Backend = raster.Name
	}
	if !slices.Contains(visual.Backends(), cfg.Backend) {
		return nil, fmt.Errorf("wshost: unknown backend %q", cfg.Backend)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = nodeedit.DefaultWidth, nodeedit.DefaultHeight
	}
	if cfg.Theme == (visual.Theme{}) {
		cfg.Theme = visual.DefaultTheme()
	}
	if cfg.Scene == nil {
		cfg.Scene = func(e *nodeedit.Editor) { nodeedit.BuildDemo(e) }
	}
	return &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}, nil
}

// Handler returns a mux serving sessions on /ws and a liveness check on
// /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

// ServeHTTP runs one session until the client disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger().Warn("wshost: upgrade", "err", err)
		return
	}
	defer c.Close()

	log := logging.Logger().With("remote", r.RemoteAddr)
	log.Info("wshost: session start")

	sess, err := s.newSession()
	if err != nil {
		log.Warn("wshost: new session", "err", err)
		msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error())
		_ = c.WriteMessage(websocket.CloseMessage, msg)
		return
	}
	defer sess.close()

	if err := sess.frame(c, nodeedit.FrameInput{}); err != nil {
		log.Warn("wshost: initial frame", "err", err)
		return
	}
	for {
		kind, msg, err := c.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("wshost: session end")
			} else {
				log.Warn("wshost: read", "err", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		var m Message
		if err := json.Unmarshal(msg, &m); err != nil {
			if err := sess.status(c, fmt.Errorf("wshost: decode: %w", err)); err != nil {
				return
			}
			continue
		}
		in, err := m.FrameInput()
		if err != nil {
			if err := sess.status(c, err); err != nil {
				return
			}
			continue
		}
		if err := sess.frame(c, in); err != nil {
			log.Warn("wshost: frame", "err", err)
			return
		}
	}
}

type session struct {
	ed *nodeedit.Editor
	b  visual.Renderer
}

func (s *Server) newSession() (*session, error) {
	b, err := visual.NewRenderer(s.cfg.Backend, s.cfg.Width, s.cfg.Height, s.cfg.Theme)
	if err != nil {
		return nil, err
	}
	ed := nodeedit.New(
		nodeedit.WithBackend(b),
		nodeedit.WithTheme(s.cfg.Theme),
		nodeedit.WithViewport(s.cfg.Origin),
		nodeedit.WithZoomSpeed(s.cfg.ZoomSpeed),
	)
	s.cfg.Scene(ed)
	return &session{ed: ed, b: b}, nil
}

func (s *session) close() {
	if err := s.b.Close(); err != nil {
		logging.Logger().Warn("wshost: close backend", "err", err)
	}
}

// frame ticks, renders and sends the PNG and status. Interaction errors go
// to the client in the status; only transport and render failures end the
// session.
func (s *session) frame(c *websocket.Conn, in nodeedit.FrameInput) error {
	tickErr := s.ed.Tick(in)
	if err := s.b.Render(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := s.b.EncodePNG(&buf); err != nil {
		return err
	}
	if err := c.WriteMessage(websocket.BinaryMessage, buf.Bytes()); err != nil {
		return err
	}
	return s.status(c, tickErr)
}

func (s *session) status(c *websocket.Conn, err error) error {
	state, target, ok := s.ed.Interaction()
	st := Status{
		Frame:   s.ed.Frames(),
		State:   state.String(),
		Zoom:    s.ed.Viewport().Zoom,
		Visuals: s.ed.Registry().Len(),
	}
	if ok {
		st.Target = target.String()
	}
	if err != nil {
		st.Error = err.Error()
	}
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, data)
}
