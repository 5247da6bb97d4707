package domain

import "github.com/shopspring/decimal"

// PV01 is the risk of a product or a sector bucket.
// Coefficient is fixed at creation; only Quantity is refreshed afterwards.
type PV01 struct {
	Name        string          `json:"name"` // Product id, or sector name for a bucket
	Coefficient decimal.Decimal `json:"coefficient"`
	Quantity    int64           `json:"quantity"`
}

func NewPV01(name string, coefficient decimal.Decimal, quantity int64) PV01 {
	return PV01{Name: name, Coefficient: coefficient, Quantity: quantity}
}

func (r PV01) Key() string {
	return r.Name
}

// Risk returns coefficient * quantity.
func (r PV01) Risk() decimal.Decimal {
	return r.Coefficient.Mul(decimal.NewFromInt(r.Quantity))
}

// Sector is a named group of products for bucketed risk.
type Sector struct {
	Name       string   `yaml:"name" json:"name"`
	ProductIDs []string `yaml:"products" json:"products"`
}
