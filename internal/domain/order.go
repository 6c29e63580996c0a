package domain

// Side is the direction of a trade order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// MaxSymbolLength is the longest symbol the order book accepts.
const MaxSymbolLength = 5

// Order is a trade order as submitted and persisted. Immutable once validated;
// the JSON shape matches the stored record exactly.
type Order struct {
	Symbol   string  `json:"symbol"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
	Side     Side    `json:"order_type"`
}
