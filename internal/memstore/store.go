// Package memstore provides an in-memory OrderRepository for tests and for
// development without a database.
package memstore

import (
	"context"
	"sync"

	"github.com/mhagen/ordercast/internal/domain"
)

// OrderRepo keeps orders in a mutex-guarded slice, preserving insertion order.
type OrderRepo struct {
	mu     sync.Mutex
	orders []domain.Order
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{}
}

func (r *OrderRepo) Insert(_ context.Context, order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, order)
	return order, nil
}

func (r *OrderRepo) List(_ context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

// Ping satisfies the health check interface used by the HTTP server.
func (r *OrderRepo) Ping(_ context.Context) error {
	return nil
}
