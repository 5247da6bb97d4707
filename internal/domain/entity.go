package domain

import (
	"time"
)

// ProductInfo is the storage row for a product of the universe
type ProductInfo struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Ticker    string    `json:"ticker" gorm:"index"`
	Coupon    string    `json:"coupon"`   // Decimal text
	Maturity  string    `json:"maturity"` // yyyymmdd
	IsActive  bool      `json:"is_active" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProductInfo converts a product to its storage row
func NewProductInfo(p Product) *ProductInfo {
	return &ProductInfo{
		ID:       p.ID,
		Ticker:   p.Ticker,
		Coupon:   p.Coupon.String(),
		Maturity: p.Maturity.Format(MaturityLayout),
		IsActive: true,
	}
}

// HistoryRecord is the latest history line of a given kind and key (e.g., "positions", "91282CFX4")
type HistoryRecord struct {
	Kind      string    `gorm:"primaryKey" json:"kind"`
	EntityKey string    `gorm:"primaryKey" json:"key"`
	Line      string    `json:"line"`
	Sequence  uint64    `json:"sequence"` // Per-kind count of lines written
	UpdatedAt time.Time `json:"updated_at"`
}
