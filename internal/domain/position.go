package domain

import (
	"encoding/json"
	"sort"
)

// Position is a per-book signed quantity ledger for one product.
// It is treated as a value: ApplyTrade returns an updated copy.
type Position struct {
	Product Product
	books   map[string]int64
}

func NewPosition(product Product) Position {
	return Position{Product: product, books: map[string]int64{}}
}

func (p Position) Key() string {
	return p.Product.ID
}

// Quantity returns the book's signed quantity; a missing book is 0.
func (p Position) Quantity(book string) int64 {
	return p.books[book]
}

// Aggregate is the sum over every book.
func (p Position) Aggregate() int64 {
	var total int64
	for _, q := range p.books {
		total += q
	}
	return total
}

// Books returns book names in sorted order.
func (p Position) Books() []string {
	names := make([]string, 0, len(p.books))
	for name := range p.books {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithDelta returns a copy with delta added to book.
func (p Position) WithDelta(book string, delta int64) Position {
	next := Position{Product: p.Product, books: make(map[string]int64, len(p.books)+1)}
	for k, v := range p.books {
		next.books[k] = v
	}
	next.books[book] += delta
	return next
}

// ApplyTrade is WithDelta(trade.Book, trade.SignedQuantity()).
func (p Position) ApplyTrade(t Trade) Position {
	return p.WithDelta(t.Book, t.SignedQuantity())
}

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Product   Product          `json:"product"`
		Books     map[string]int64 `json:"books"`
		Aggregate int64            `json:"aggregate"`
	}{p.Product, p.books, p.Aggregate()})
}
