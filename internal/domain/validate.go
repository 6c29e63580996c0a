package domain

import (
	"fmt"
	"strings"
)

// ValidationError collects all reasons a candidate order was rejected.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "invalid order: " + strings.Join(e.Reasons, "; ")
}

// ValidateOrder checks a candidate order's fields and returns a
// *ValidationError naming every violated rule, or nil if the order is valid.
func ValidateOrder(o Order) error {
	var reasons []string

	switch {
	case o.Symbol == "":
		reasons = append(reasons, "symbol must not be empty")
	case len(o.Symbol) > MaxSymbolLength:
		reasons = append(reasons, fmt.Sprintf("symbol must be at most %d characters", MaxSymbolLength))
	case !isUpperAlpha(o.Symbol):
		reasons = append(reasons, "symbol must contain only uppercase letters")
	}

	if o.Price <= 0 {
		reasons = append(reasons, "price must be positive")
	}
	if o.Quantity <= 0 {
		reasons = append(reasons, "quantity must be positive")
	}
	if o.Side != SideBuy && o.Side != SideSell {
		reasons = append(reasons, fmt.Sprintf("order_type must be %q or %q", SideBuy, SideSell))
	}

	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}
	return nil
}

func isUpperAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
