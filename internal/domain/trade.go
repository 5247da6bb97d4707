package domain

import (
	"fmt"

	"treasury_go/pkg/price"
)

// Side is the direction of a trade or customer inquiry.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ParseSide accepts "BUY" or "SELL".
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideBuy, SideSell:
		return Side(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSide, s)
	}
}

// Sign is +1 for BUY and -1 for SELL.
func (s Side) Sign() int64 {
	if s == SideBuy {
		return 1
	}
	return -1
}

// Trade is a booked trade. Stores key trades by product, so only the latest per product is kept.
type Trade struct {
	Product  Product     `json:"product"`
	TradeID  string      `json:"trade_id"`
	Price    price.Value `json:"price"`
	Book     string      `json:"book"`
	Quantity int64       `json:"quantity"`
	Side     Side        `json:"side"`
}

func (t Trade) Key() string {
	return t.Product.ID
}

// SignedQuantity is +Quantity for BUY and -Quantity for SELL.
func (t Trade) SignedQuantity() int64 {
	return t.Side.Sign() * t.Quantity
}
