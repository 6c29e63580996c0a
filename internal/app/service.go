// Package app contains the order ingestion service: validate, persist, fan out.
package app

import (
	"context"
	"log/slog"

	"github.com/mhagen/ordercast/internal/domain"
	apperrors "github.com/mhagen/ordercast/internal/errors"
	"github.com/mhagen/ordercast/internal/metrics"
)

// Service orchestrates the ingestion path. Validation failures and storage
// failures surface to the caller; broadcast problems never do, because the
// order is already durable by the time fan-out happens.
type Service struct {
	repo domain.OrderRepository
	hub  domain.OrderBroadcaster
}

func NewService(repo domain.OrderRepository, hub domain.OrderBroadcaster) *Service {
	return &Service{repo: repo, hub: hub}
}

// Submit validates a candidate order, persists it, and broadcasts the stored
// record to all live subscribers. Never broadcasts an order that did not
// durably persist.
func (s *Service) Submit(ctx context.Context, candidate domain.Order) (domain.Order, error) {
	if err := domain.ValidateOrder(candidate); err != nil {
		metrics.OrdersRejectedTotal.Inc()
		return domain.Order{}, apperrors.ValidationError(err.Error()).WithField("symbol", candidate.Symbol)
	}

	order, err := s.repo.Insert(ctx, candidate)
	if err != nil {
		metrics.StorageErrorsTotal.Inc()
		return domain.Order{}, apperrors.StorageError("failed to persist order", err).WithField("symbol", candidate.Symbol)
	}

	metrics.OrdersCreatedTotal.WithLabelValues(string(order.Side)).Inc()
	slog.Info("Order created", "symbol", order.Symbol, "side", order.Side, "quantity", order.Quantity)

	// Best-effort: a stopped hub drops the message, the order stays committed.
	s.hub.Broadcast(order)

	return order, nil
}

// ListOrders returns every persisted order in insertion order.
func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.StorageError("failed to list orders", err)
	}
	return orders, nil
}
