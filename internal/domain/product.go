package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaturityLayout is the yyyymmdd form maturities are configured in.
const MaturityLayout = "20060102"

// Product is an immutable treasury bond identity.
type Product struct {
	ID       string          `json:"id"` // CUSIP
	Ticker   string          `json:"ticker"`
	Coupon   decimal.Decimal `json:"coupon"` // Annual coupon in percent
	Maturity time.Time       `json:"maturity"`
}

// NewBond builds a product from configuration fields.
func NewBond(id, ticker string, coupon decimal.Decimal, maturity time.Time) Product {
	return Product{ID: id, Ticker: ticker, Coupon: coupon, Maturity: maturity}
}

func (p Product) Key() string {
	return p.ID
}

// YearsToMaturity is the whole-year tenor measured from asOf.
func (p Product) YearsToMaturity(asOf time.Time) int {
	years := p.Maturity.Year() - asOf.Year()
	if p.Maturity.YearDay() < asOf.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func (p Product) String() string {
	return p.ID
}
