package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Hub Metrics
var (
	// HubConnectedClients tracks the current number of connected WebSocket clients
	HubConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_connected_clients",
			Help: "Current number of connected WebSocket clients",
		},
	)

	// HubBroadcastsTotal tracks total broadcast calls
	HubBroadcastsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_broadcasts_total",
			Help: "Total number of broadcast calls",
		},
	)

	// HubSlowClientsEvicted tracks clients disconnected because their send buffer filled up
	HubSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_slow_clients_evicted_total",
			Help: "Total clients disconnected due to a full send buffer",
		},
	)

	// HubCommandChannelDepth tracks the hub command channel backlog
	HubCommandChannelDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_command_channel_depth",
			Help: "Current depth of the hub command channel",
		},
	)

	// HubStopTimeoutsTotal tracks shutdowns that exceeded the stop timeout
	HubStopTimeoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_stop_timeouts_total",
			Help: "Total hub shutdowns that exceeded the stop timeout",
		},
	)

	// HubPanicsTotal tracks recovered panics in the hub goroutine
	HubPanicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_panics_total",
			Help: "Total recovered panics in the hub goroutine",
		},
	)
)

// WebSocket Metrics
var (
	// WebSocketMessageSendDuration tracks how long wire writes take
	WebSocketMessageSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "websocket_message_send_duration_seconds",
			Help:    "WebSocket message send duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
	)

	// WebSocketPingFailures tracks failed keep-alive pings
	WebSocketPingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_ping_failures_total",
			Help: "Total failed WebSocket keep-alive pings",
		},
	)
)

// Order Metrics
var (
	// OrdersCreatedTotal tracks successfully persisted orders by side
	OrdersCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total orders persisted, by side",
		},
		[]string{"side"},
	)

	// OrdersRejectedTotal tracks validation rejections
	OrdersRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Total orders rejected by validation",
		},
	)

	// StorageErrorsTotal tracks failed persistence attempts
	StorageErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storage_errors_total",
			Help: "Total failed order persistence attempts",
		},
	)
)

// Circuit Breaker Metrics
var (
	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)
