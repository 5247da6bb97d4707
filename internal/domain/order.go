package domain

import (
	"fmt"

	"treasury_go/pkg/price"
)

// PricingSide is the side of a resting order in a book.
type PricingSide string

const (
	Bid   PricingSide = "BID"
	Offer PricingSide = "OFFER"
)

// ParsePricingSide accepts "BID" or "OFFER".
func ParsePricingSide(s string) (PricingSide, error) {
	switch PricingSide(s) {
	case Bid, Offer:
		return PricingSide(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSide, s)
	}
}

// Opposite flips BID and OFFER.
func (s PricingSide) Opposite() PricingSide {
	if s == Bid {
		return Offer
	}
	return Bid
}

// Order is one resting price level entry. Immutable once constructed.
type Order struct {
	Price    price.Value `json:"price"`
	Quantity int64       `json:"quantity"`
	Side     PricingSide `json:"side"`
}

func NewOrder(p price.Value, qty int64, side PricingSide) Order {
	return Order{Price: p, Quantity: qty, Side: side}
}

// OrderBook holds unordered bid and offer collections for one product.
// Duplicate price levels are legal.
type OrderBook struct {
	Product Product `json:"product"`
	Bids    []Order `json:"bids"`
	Offers  []Order `json:"offers"`
}

func NewOrderBook(product Product, bids, offers []Order) OrderBook {
	return OrderBook{Product: product, Bids: bids, Offers: offers}
}

func (b OrderBook) Key() string {
	return b.Product.ID
}

// BidOffer is the best bid and best offer of a book.
type BidOffer struct {
	Bid   Order `json:"bid"`
	Offer Order `json:"offer"`
}

// Spread returns offer minus bid, normalized.
func (bo BidOffer) Spread() price.Value {
	return bo.Offer.Price.Sub(bo.Bid.Price)
}
