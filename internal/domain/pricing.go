package domain

import (
	"github.com/shopspring/decimal"

	"treasury_go/pkg/price"
)

var two = decimal.NewFromInt(2)

// Price is an internal mid/spread quote for a product.
type Price struct {
	Product        Product         `json:"product"`
	Mid            decimal.Decimal `json:"mid"`
	BidOfferSpread decimal.Decimal `json:"spread"`
}

// NewPriceFromBidOffer derives mid = (bid+offer)/2 and spread = offer-bid.
func NewPriceFromBidOffer(product Product, bid, offer price.Value) Price {
	b, o := bid.Decimal(), offer.Decimal()
	return Price{
		Product:        product,
		Mid:            b.Add(o).Div(two),
		BidOfferSpread: o.Sub(b),
	}
}

func (p Price) Key() string {
	return p.Product.ID
}

// BidPrice is mid - spread/2.
func (p Price) BidPrice() decimal.Decimal {
	return p.Mid.Sub(p.BidOfferSpread.Div(two))
}

// OfferPrice is mid + spread/2.
func (p Price) OfferPrice() decimal.Decimal {
	return p.Mid.Add(p.BidOfferSpread.Div(two))
}
