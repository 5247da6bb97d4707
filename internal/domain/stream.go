package domain

import "github.com/shopspring/decimal"

// PriceStreamOrder is one leg of a two-way quote.
type PriceStreamOrder struct {
	Price           decimal.Decimal `json:"price"`
	VisibleQuantity int64           `json:"visible_quantity"`
	HiddenQuantity  int64           `json:"hidden_quantity"`
	Side            PricingSide     `json:"side"`
}

// PriceStream is a two-way quote for a product.
type PriceStream struct {
	Product Product          `json:"product"`
	Bid     PriceStreamOrder `json:"bid"`
	Offer   PriceStreamOrder `json:"offer"`
}

func (s PriceStream) Key() string {
	return s.Product.ID
}

// AlgoStream wraps a stream produced by the streaming algo.
type AlgoStream struct {
	Stream PriceStream `json:"stream"`
}

func (a AlgoStream) Key() string {
	return a.Stream.Key()
}
