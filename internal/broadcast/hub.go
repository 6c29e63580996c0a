package broadcast

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/mhagen/ordercast/internal/domain"
	"github.com/mhagen/ordercast/internal/metrics"
)

const (
	commandBuffer  = 256
	commandTimeout = 5 * time.Second
	stopTimeout    = 10 * time.Second
	depthWarnLimit = 200 // 80% of commandBuffer
)

// ErrHubClosed is returned by Register after the hub has been stopped.
var ErrHubClosed = errors.New("hub is closed")

// hubCmd is the command interface for the Hub actor.
type hubCmd interface{ isHubCmd() }

type baseHubCmd struct{}

func (baseHubCmd) isHubCmd() {}

type registerCmd struct {
	baseHubCmd
	connection   *websocket.Conn
	errorChannel chan error
}

type unregisterCmd struct {
	baseHubCmd
	connection *websocket.Conn
}

type broadcastCmd struct {
	baseHubCmd
	data []byte
}

type sendCmd struct {
	baseHubCmd
	connection *websocket.Conn
	data       []byte
}

type clientCountCmd struct {
	baseHubCmd
	replyChannel chan int
}

type stopCmd struct {
	baseHubCmd
}

// Hub owns the live subscriber set and delivers every broadcast order to each
// connected client. The *websocket.Conn passed to Register doubles as the
// handle for Unregister.
type Hub struct {
	cmdCh      chan hubCmd
	clock      clockwork.Clock
	clients    map[*websocket.Conn]*clientWriter
	maxClients int
	done       chan struct{}
}

// NewHub creates a hub and starts its actor goroutine.
// maxClients caps concurrent subscribers (prevents resource exhaustion).
func NewHub(clock clockwork.Clock, maxClients int) *Hub {
	h := &Hub{
		cmdCh:      make(chan hubCmd, commandBuffer),
		clock:      clock,
		clients:    make(map[*websocket.Conn]*clientWriter),
		maxClients: maxClients,
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

// Register admits a new subscriber and starts its write goroutine.
// Returns ErrHubClosed after Stop, or an error when the client cap is reached.
func (h *Hub) Register(conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	select {
	case h.cmdCh <- registerCmd{connection: conn, errorChannel: errCh}:
	case <-h.done:
		return ErrHubClosed
	}

	// Timeout prevents blocking forever if the actor is stuck
	timer := h.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case err := <-errCh:
		return err
	case <-h.done:
		return ErrHubClosed
	case <-timer.Chan():
		return fmt.Errorf("register command timed out after %v", commandTimeout)
	}
}

// Unregister removes a subscriber, stopping its writer and closing the
// connection. Idempotent: unknown connections are a no-op.
func (h *Hub) Unregister(conn *websocket.Conn) {
	select {
	case h.cmdCh <- unregisterCmd{connection: conn}:
	case <-h.done:
	}
}

// Broadcast delivers an order to every currently registered subscriber.
// Returns without waiting for wire delivery; subscribers whose send buffer is
// full are evicted. After Stop the message is dropped.
func (h *Hub) Broadcast(order domain.Order) {
	data, err := json.Marshal(order)
	if err != nil {
		slog.Error("Failed to marshal broadcast message", "error", err)
		return
	}

	metrics.HubBroadcastsTotal.Inc()

	select {
	case h.cmdCh <- broadcastCmd{data: data}:
	case <-h.done:
		slog.Debug("Broadcast dropped, hub closed", "symbol", order.Symbol)
	}
}

// Send queues a message for a single subscriber, serialized through the actor
// so it cannot race with broadcasts. Used for ping/pong replies.
func (h *Hub) Send(conn *websocket.Conn, data []byte) {
	select {
	case h.cmdCh <- sendCmd{connection: conn, data: data}:
	case <-h.done:
	}
}

// ClientCount returns the number of connected subscribers.
// Returns -1 if the command times out.
func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	select {
	case h.cmdCh <- clientCountCmd{replyChannel: replyCh}:
	case <-h.done:
		return 0
	}

	timer := h.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case count := <-replyCh:
		return count
	case <-h.done:
		return 0
	case <-timer.Chan():
		slog.Warn("ClientCount timed out", "timeout", commandTimeout)
		return -1
	}
}

// Stop disconnects every subscriber and shuts the actor down. Further
// registrations fail with ErrHubClosed. Blocks until the actor goroutine has
// exited or the stop timeout is reached.
func (h *Hub) Stop() {
	select {
	case h.cmdCh <- stopCmd{}:
	case <-h.done:
		return
	}

	timer := h.clock.NewTimer(stopTimeout)
	defer timer.Stop()

	select {
	case <-h.done:
		slog.Info("Hub stopped gracefully")
	case <-timer.Chan():
		slog.Warn("Hub stop timeout exceeded", "timeout", stopTimeout)
		metrics.HubStopTimeoutsTotal.Inc()
	}
}

func (h *Hub) run() {
	defer close(h.done)
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Hub panic recovered", "panic", r)
			metrics.HubPanicsTotal.Inc()
			h.closeAllClients("hub panic")
		}
	}()

	// Track command channel depth every second
	depthTicker := h.clock.NewTicker(1 * time.Second)
	defer depthTicker.Stop()

	for {
		select {
		case <-depthTicker.Chan():
			depth := len(h.cmdCh)
			metrics.HubCommandChannelDepth.Set(float64(depth))
			if depth > depthWarnLimit {
				slog.Warn("Hub command channel near capacity", "depth", depth, "capacity", cap(h.cmdCh))
			}

		case cmd := <-h.cmdCh:
			switch c := cmd.(type) {
			case registerCmd:
				h.handleRegister(c)
			case unregisterCmd:
				h.handleUnregister(c.connection)
			case broadcastCmd:
				h.handleBroadcast(c.data)
			case sendCmd:
				h.handleSend(c)
			case clientCountCmd:
				c.replyChannel <- len(h.clients)
			case stopCmd:
				h.handleStop()
				return
			default:
				slog.Warn("Hub received unknown command type", "command_type", fmt.Sprintf("%T", cmd))
			}
		}
	}
}

func (h *Hub) handleRegister(c registerCmd) {
	if len(h.clients) >= h.maxClients {
		slog.Warn("Rejecting client: max clients reached", "max_clients", h.maxClients)
		c.connection.Close()
		c.errorChannel <- fmt.Errorf("max clients (%d) reached", h.maxClients)
		return
	}

	cw := newClientWriter(c.connection, h.clock)
	h.clients[c.connection] = cw

	metrics.HubConnectedClients.Set(float64(len(h.clients)))

	slog.Debug("Client registered", "client_id", cw.id.String(), "total_clients", len(h.clients))
	c.errorChannel <- nil
}

func (h *Hub) handleUnregister(conn *websocket.Conn) {
	cw, exists := h.clients[conn]
	if !exists {
		return
	}

	cw.stop()
	delete(h.clients, conn)

	metrics.HubConnectedClients.Set(float64(len(h.clients)))
	slog.Debug("Client unregistered", "client_id", cw.id.String(), "remaining_clients", len(h.clients))
}

func (h *Hub) handleBroadcast(data []byte) {
	var slow []*websocket.Conn
	for conn, writer := range h.clients {
		select {
		case writer.sendChannel <- data:
		default:
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		h.evictSlowClient(conn)
	}
}

func (h *Hub) handleSend(c sendCmd) {
	writer, exists := h.clients[c.connection]
	if !exists {
		return
	}

	select {
	case writer.sendChannel <- c.data:
	default:
		h.evictSlowClient(c.connection)
	}
}

// evictSlowClient treats a full send buffer as a dead connection.
func (h *Hub) evictSlowClient(conn *websocket.Conn) {
	if cw, exists := h.clients[conn]; exists {
		slog.Warn("Disconnecting slow client", "client_id", cw.id.String())
	}
	metrics.HubSlowClientsEvicted.Inc()
	h.handleUnregister(conn)
}

func (h *Hub) handleStop() {
	slog.Info("Hub shutting down", "connected_clients", len(h.clients))
	h.closeAllClients("server shutting down")
	slog.Info("Hub shutdown complete")
}

// closeAllClients closes all client connections with the given reason.
// Used during panic recovery and graceful shutdown.
func (h *Hub) closeAllClients(reason string) {
	for conn, cw := range h.clients {
		cw.stopGraceful(reason)
		delete(h.clients, conn)
	}
	metrics.HubConnectedClients.Set(0)
}
