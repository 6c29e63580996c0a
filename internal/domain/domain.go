package domain

import "context"

// OrderRepository abstracts durable order persistence.
type OrderRepository interface {
	Insert(ctx context.Context, order Order) (Order, error)
	List(ctx context.Context) ([]Order, error)
}

// OrderBroadcaster fans a persisted order out to live subscribers.
// Delivery is best-effort; implementations must never block on slow subscribers.
type OrderBroadcaster interface {
	Broadcast(order Order)
}

// OrderService is the ingestion-path contract used by the HTTP layer.
type OrderService interface {
	Submit(ctx context.Context, candidate Order) (Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
}
