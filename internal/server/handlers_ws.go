package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/mhagen/ordercast/internal/broadcast"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Order feed is public; browsers connect from any page
	},
}

func (s *Server) handleOrdersWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}

	if err := s.hub.Register(conn); err != nil {
		slog.Warn("Rejecting WebSocket subscriber", "error", err, "remote", conn.RemoteAddr())
		_ = conn.Close()
		return nil
	}

	// Blocks until the connection closes; unregisters itself on exit.
	broadcast.NewSession(s.hub, conn, nil).Run()

	return nil
}
