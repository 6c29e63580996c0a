package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mhagen/ordercast/internal/domain"
	"github.com/mhagen/ordercast/internal/metrics"
)

// Circuit breaker settings: 60% failure rate over min 5 requests in a 10s
// rolling window opens the circuit; 30s delay before half-open; one success
// closes it again.
const (
	breakerFailureRate = 0.6
	breakerMinRequests = 5
	breakerWindow      = 10 * time.Second
	breakerDelay       = 30 * time.Second
)

// OrderRepo persists orders in PostgreSQL. All queries go through a circuit
// breaker so a down database fast-fails instead of piling up connections.
type OrderRepo struct {
	pool *pgxpool.Pool
	cb   circuitbreaker.CircuitBreaker[any]
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	cb := circuitbreaker.NewBuilder[any]().
		WithFailureRateThreshold(breakerFailureRate, breakerMinRequests, breakerWindow).
		WithDelay(breakerDelay).
		WithSuccessThreshold(1).
		OnStateChanged(func(e circuitbreaker.StateChangedEvent) {
			slog.Warn("Circuit breaker state changed",
				"component", "postgres",
				"from", e.OldState.String(),
				"to", e.NewState.String(),
			)
			metrics.CircuitBreakerStateChanges.WithLabelValues("postgres", e.NewState.String()).Inc()
			metrics.CircuitBreakerState.WithLabelValues("postgres").Set(stateToFloat(e.NewState))
		}).
		Build()

	return &OrderRepo{pool: pool, cb: cb}
}

func stateToFloat(state circuitbreaker.State) float64 {
	switch state {
	case circuitbreaker.ClosedState:
		return 0
	case circuitbreaker.HalfOpenState:
		return 1
	case circuitbreaker.OpenState:
		return 2
	default:
		return -1
	}
}

// Insert stores an order and returns the persisted row.
func (r *OrderRepo) Insert(ctx context.Context, order domain.Order) (domain.Order, error) {
	if !r.cb.TryAcquirePermit() {
		return domain.Order{}, fmt.Errorf("order insert rejected: %w", circuitbreaker.ErrOpen)
	}

	var stored domain.Order
	var side string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO orders (symbol, price, quantity, order_type)
		VALUES ($1, $2, $3, $4)
		RETURNING symbol, price, quantity, order_type
	`, order.Symbol, order.Price, order.Quantity, string(order.Side)).Scan(
		&stored.Symbol, &stored.Price, &stored.Quantity, &side,
	)
	if err != nil {
		r.cb.RecordError(err)
		return domain.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}
	r.cb.RecordSuccess()

	stored.Side = domain.Side(side)
	return stored, nil
}

// List returns all persisted orders in insertion order.
func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	if !r.cb.TryAcquirePermit() {
		return nil, fmt.Errorf("order list rejected: %w", circuitbreaker.ErrOpen)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT symbol, price, quantity, order_type
		FROM orders
		ORDER BY id
	`)
	if err != nil {
		r.cb.RecordError(err)
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		var side string
		if err := rows.Scan(&order.Symbol, &order.Price, &order.Quantity, &side); err != nil {
			r.cb.RecordError(err)
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.Side = domain.Side(side)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		r.cb.RecordError(err)
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	r.cb.RecordSuccess()

	return orders, nil
}
