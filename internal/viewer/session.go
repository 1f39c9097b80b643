package viewer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/polgraph/internal/engine"
	"github.com/ziadkadry99/polgraph/internal/geom"
	"github.com/ziadkadry99/polgraph/internal/interaction"
	"github.com/ziadkadry99/polgraph/internal/panel"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is the incoming WebSocket message format.
type clientMessage struct {
	Type   string    `json:"type"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Rect   geom.Rect `json:"rect"`
	DeltaY float64   `json:"deltaY"`
	Group  string    `json:"group"`
	Node   string    `json:"node"`
	Tab    string    `json:"tab"`
	Route  string    `json:"route"`
}

func (m clientMessage) pointer() interaction.PointerEvent {
	return interaction.PointerEvent{Client: geom.Point{X: m.X, Y: m.Y}, Rect: m.Rect}
}

// serverMessage is the outgoing WebSocket message format.
type serverMessage struct {
	Type      string       `json:"type"` // "view", "navigate" or "error"
	SessionID string       `json:"session_id"`
	View      *engine.View `json:"view,omitempty"`
	SVG       string       `json:"svg,omitempty"`
	Route     string       `json:"route,omitempty"`
	Error     string       `json:"error,omitempty"`
}

var errUnknownMessage = errors.New("unknown message type")

// session is one connection and the engine it owns.
type session struct {
	id     string
	conn   *websocket.Conn
	engine *engine.Engine
	v      *Viewer
}

func (v *Viewer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		v.logger.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	s := &session{id: uuid.NewString(), conn: conn, v: v}
	s.engine = engine.New(v.data, engine.Options{
		Theme:      v.theme,
		OnNavigate: s.navigate,
		Logger:     v.logger.With("session", s.id),
	})
	if err := s.engine.SetFilter(v.initialFilter); err != nil {
		v.logger.Warn("initial filter ignored", "filter", v.initialFilter, "error", err)
	}

	v.logger.Debug("session opened", "session", s.id)
	defer v.logger.Debug("session closed", "session", s.id)

	s.sendView()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				v.logger.Warn("websocket read", "session", s.id, "error", err)
			}
			return
		}

		var req clientMessage
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendError("invalid message format")
			continue
		}
		if err := s.apply(req); err != nil {
			s.sendError(err.Error())
			continue
		}
		if req.Type != "navigate" {
			s.sendView()
		}
	}
}

// apply forwards one client message to the engine.
func (s *session) apply(m clientMessage) error {
	e := s.engine
	switch m.Type {
	case "pointerdown":
		e.PointerDown(m.pointer())
	case "pointermove":
		e.PointerMove(m.pointer())
	case "pointerup":
		e.PointerUp(m.pointer())
	case "pointerleave":
		e.PointerLeave()
	case "wheel":
		// The page already cancelled scrolling before sending.
		e.Wheel(interaction.WheelEvent{DeltaY: m.DeltaY})
	case "filter":
		return e.SetFilter(m.Group)
	case "select":
		return e.Select(m.Node)
	case "clear":
		e.ClearSelection()
	case "reset":
		e.ResetView()
	case "reset_layout":
		e.ResetLayout()
	case "tab":
		tab, err := panel.ParseTab(m.Tab)
		if err != nil {
			return err
		}
		e.SetTab(tab)
	case "navigate":
		if m.Route == "" {
			return errors.New("route is required")
		}
		e.Navigate(m.Route)
	default:
		return fmt.Errorf("%w: %q", errUnknownMessage, m.Type)
	}
	return nil
}

func (s *session) sendView() {
	view := s.engine.View()
	svg, err := view.Scene.SVG()
	if err != nil {
		s.sendError(err.Error())
		return
	}
	s.send(serverMessage{Type: "view", SessionID: s.id, View: &view, SVG: svg})
}

func (s *session) navigate(route string) {
	s.send(serverMessage{Type: "navigate", SessionID: s.id, Route: route})
}

func (s *session) sendError(message string) {
	s.send(serverMessage{Type: "error", SessionID: s.id, Error: message})
}

func (s *session) send(m serverMessage) {
	if err := s.conn.WriteJSON(m); err != nil {
		s.v.logger.Warn("websocket write", "session", s.id, "error", err)
	}
}
