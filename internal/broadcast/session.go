package broadcast

import (
	"log/slog"

	"github.com/gorilla/websocket"
)

const (
	pingToken = "ping"
	pongToken = "pong"
)

// MessageHook receives inbound payloads the session does not handle itself.
type MessageHook func(data []byte)

// Session drives the inbound half of one subscriber connection. The outbound
// half lives in the hub's clientWriter; the two meet only at the bounded send
// buffer, so neither loop can block the other.
type Session struct {
	hub  *Hub
	conn *websocket.Conn
	hook MessageHook
}

// NewSession wraps an already-registered connection. hook may be nil, in which
// case non-keep-alive payloads are ignored.
func NewSession(hub *Hub, conn *websocket.Conn, hook MessageHook) *Session {
	return &Session{hub: hub, conn: conn, hook: hook}
}

// Run reads inbound frames until the connection closes or errors, answering
// the keep-alive token and forwarding anything else to the hook. It always
// unregisters the connection before returning, so the caller owns nothing
// afterwards. Safe against a concurrent Unregister from the hub side: the
// second unregister is a no-op.
func (s *Session) Run() {
	defer s.hub.Unregister(s.conn)

	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("WebSocket read error", "error", err)
			}
			return
		}

		if msgType != websocket.TextMessage {
			continue
		}

		if string(data) == pingToken {
			s.hub.Send(s.conn, []byte(pongToken))
			continue
		}

		if s.hook != nil {
			s.hook(data)
		}
	}
}
