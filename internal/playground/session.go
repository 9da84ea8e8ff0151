package playground

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-go/popup/internal/config"
	"github.com/vango-go/popup/pkg/dom"
	"github.com/vango-go/popup/pkg/middleware"
	"github.com/vango-go/popup/pkg/popup"
	"github.com/vango-go/popup/pkg/position"
	"github.com/vango-go/popup/pkg/schedule"
	"github.com/vango-go/popup/pkg/transition"
)

// arrowID is the popup container's arrow element ID.
const arrowID = "arrow"

// refreshEcho is how long after an open the session re-sends a state
// snapshot. The controller defers its position refresh, so the snapshot
// sent from the command handler can predate the reposition.
const refreshEcho = 15 * time.Millisecond

// Command is a client request driving the session's popup.
type Command struct {
	// Op is one of "open", "close", "toggle", "anchor", "configure".
	Op string `json:"op"`

	// Anchor carries the anchor geometry for the "anchor" op.
	Anchor *RectPayload `json:"anchor,omitempty"`

	// Viewport optionally updates the viewport bounds.
	Viewport *RectPayload `json:"viewport,omitempty"`

	// Size optionally updates the popup container size.
	Size *RectPayload `json:"size,omitempty"`

	// Config carries replacement settings for the "configure" op.
	Config *ConfigPayload `json:"config,omitempty"`
}

// RectPayload mirrors dom.Rect on the wire.
type RectPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r RectPayload) rect() dom.Rect {
	return dom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

func payload(r dom.Rect) RectPayload {
	return RectPayload{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// ConfigPayload mirrors popup.Config on the wire.
type ConfigPayload struct {
	Placement            string `json:"placement,omitempty"`
	Transition           string `json:"transition,omitempty"`
	TransitionDurationMS int    `json:"transitionDurationMs,omitempty"`
	Inverted             bool   `json:"inverted,omitempty"`
	Basic                bool   `json:"basic,omitempty"`
	Header               string `json:"header,omitempty"`
	Text                 string `json:"text,omitempty"`
}

// Message is a server push: a state snapshot, a lifecycle event, or an
// animation frame.
type Message struct {
	Type string `json:"type"` // "state", "event", "frame"

	// state fields
	IsOpen    bool         `json:"isOpen,omitempty"`
	Direction string       `json:"direction,omitempty"`
	Alignment string       `json:"alignment,omitempty"`
	Classes   []string     `json:"classes,omitempty"`
	Container *RectPayload `json:"container,omitempty"`

	// event fields
	Name string `json:"name,omitempty"`

	// frame fields
	Opacity float64 `json:"opacity,omitempty"`
	Scale   float64 `json:"scale,omitempty"`
	OffsetX float64 `json:"offsetX,omitempty"`
	OffsetY float64 `json:"offsetY,omitempty"`
	Visible bool    `json:"visible,omitempty"`
}

// Session drives one popup controller over a WebSocket connection. All
// command handling runs on the read loop; pushes from timers and the
// animation engine are serialized by the write lock.
type Session struct {
	conn *websocket.Conn
	log  *slog.Logger

	ctrl *popup.Controller
	root *dom.Element

	mu           sync.Mutex
	positioner   *position.Anchored
	viewport     dom.Rect
	closePending bool

	writeMu sync.Mutex
	onClose func(*Session)
}

// newSession builds the element tree, engine, and controller for one
// connection.
func newSession(conn *websocket.Conn, cfg *config.Config, log *slog.Logger) *Session {
	s := &Session{
		conn: conn,
		log:  log,
	}

	root := dom.NewElement("div")
	root.SetRect(dom.Rect{W: 200, H: 80})
	arrow := dom.NewElement("div")
	arrow.ID = arrowID
	arrow.SetRect(dom.Rect{X: 12, Y: 0, W: 12, H: 12})
	root.AppendChild(arrow)
	input := dom.NewElement("input")
	input.SetAttr(dom.AttrAutoFocus, "")
	root.AppendChild(input)
	s.root = root

	engine := transition.NewRunner(transition.SinkFunc(s.pushFrame), true)

	s.ctrl = popup.New(root, engine,
		popup.WithConfig(popup.Config{
			Placement:          cfg.Popup.Placement,
			Transition:         cfg.Popup.Transition,
			TransitionDuration: cfg.Popup.TransitionDuration(),
			Inverted:           cfg.Popup.Inverted,
			Basic:              cfg.Popup.Basic,
		}),
		popup.WithArrowSelector(arrowID),
		popup.WithPositionerFactory(s.buildPositioner),
	)

	s.ctrl.OnOpen(func() {
		middleware.RecordOpen(s.ctrl.Config().TransitionDuration)
		s.recordReopen()
		s.push(Message{Type: "event", Name: "open"})
	})
	s.ctrl.OnClose(func() {
		s.setClosePending(false)
		s.push(Message{Type: "event", Name: "close"})
		s.pushState()
	})

	return s
}

// buildPositioner is the controller's positioner factory; it keeps a
// handle on the current positioner so viewport updates reach it.
func (s *Session) buildPositioner(anchor, container *dom.Element, preferred, arrowSelector string) position.Positioner {
	pos := position.NewAnchored(anchor, container, preferred, arrowSelector)

	s.mu.Lock()
	pos.SetViewport(s.viewport)
	s.positioner = pos
	s.mu.Unlock()

	return pos
}

// run reads commands until the connection drops.
func (s *Session) run() {
	defer s.teardown()

	for {
		var cmd Command
		if err := s.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("session read failed", "error", err)
			}
			return
		}
		s.handle(cmd)
	}
}

// handle applies one client command and answers with a state snapshot.
func (s *Session) handle(cmd Command) {
	if cmd.Viewport != nil {
		s.setViewport(cmd.Viewport.rect())
	}
	if cmd.Size != nil {
		r := s.root.Rect()
		r.W, r.H = cmd.Size.W, cmd.Size.H
		s.root.SetRect(r)
	}

	switch cmd.Op {
	case "open":
		if s.ctrl.IsOpen() {
			middleware.RecordRedundant("open")
		}
		s.ctrl.Open()
	case "close":
		if !s.ctrl.IsOpen() {
			middleware.RecordRedundant("close")
		} else {
			middleware.RecordClose(s.ctrl.Config().TransitionDuration)
			s.setClosePending(true)
		}
		s.ctrl.Close()
	case "toggle":
		s.ctrl.Toggle()
	case "anchor":
		if cmd.Anchor == nil {
			s.ctrl.SetAnchor(nil)
			break
		}
		anchor := dom.NewElement("button")
		anchor.SetRect(cmd.Anchor.rect())
		s.ctrl.SetAnchor(anchor)
	case "configure":
		if cmd.Config != nil {
			s.ctrl.SetConfig(popup.Config{
				Placement:          cmd.Config.Placement,
				Transition:         cmd.Config.Transition,
				TransitionDuration: time.Duration(cmd.Config.TransitionDurationMS) * time.Millisecond,
				Inverted:           cmd.Config.Inverted,
				Basic:              cmd.Config.Basic,
				Header:             cmd.Config.Header,
				Text:               cmd.Config.Text,
			})
		}
	default:
		s.log.Debug("unknown command", "op", cmd.Op)
	}

	s.pushState()
	switch cmd.Op {
	case "open", "toggle":
		schedule.After(refreshEcho, s.pushState)
	}
}

// setViewport forwards viewport bounds to the live positioner.
func (s *Session) setViewport(r dom.Rect) {
	s.mu.Lock()
	s.viewport = r
	if s.positioner != nil {
		s.positioner.SetViewport(r)
	}
	s.mu.Unlock()
}

func (s *Session) setClosePending(pending bool) {
	s.mu.Lock()
	s.closePending = pending
	s.mu.Unlock()
}

// recordReopen counts a reopen that cancelled a pending close timer.
func (s *Session) recordReopen() {
	s.mu.Lock()
	pending := s.closePending
	s.closePending = false
	s.mu.Unlock()

	if pending {
		middleware.RecordTimerCancelled()
	}
}

// pushState sends the controller's externally observable state.
func (s *Session) pushState() {
	container := payload(s.root.Rect())
	s.push(Message{
		Type:      "state",
		IsOpen:    s.ctrl.IsOpen(),
		Direction: s.ctrl.Direction(),
		Alignment: s.ctrl.Alignment(),
		Classes:   s.ctrl.DynamicClasses(),
		Container: &container,
	})
}

// pushFrame forwards an animation frame to the client.
func (s *Session) pushFrame(f transition.Frame) {
	s.push(Message{
		Type:    "frame",
		Opacity: f.Opacity,
		Scale:   f.Scale,
		OffsetX: f.OffsetX,
		OffsetY: f.OffsetY,
		Visible: f.Visible,
	})
}

// push writes one message; writes are serialized because frames, timers,
// and the read loop all send.
func (s *Session) push(msg Message) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(msg); err != nil {
		s.log.Debug("session write failed", "error", err)
	}
}

// teardown closes the connection and releases the session.
func (s *Session) teardown() {
	s.ctrl.Close()
	s.conn.Close()
	if s.onClose != nil {
		s.onClose(s)
	}
	middleware.RecordSessionEnd()
}
