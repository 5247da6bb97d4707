package service

import (
	"fmt"
	"log/slog"

	"treasury_go/internal/domain"
)

// Universe is the product reference data every feed line is resolved against.
type Universe struct {
	products map[string]domain.Product
	order    []string
	repo     domain.ProductRepository
}

// NewUniverse indexes products in the given order. When repo is non-nil every product
// is mirrored into it.
func NewUniverse(products []domain.Product, repo domain.ProductRepository) (*Universe, error) {
	u := &Universe{
		products: make(map[string]domain.Product, len(products)),
		order:    make([]string, 0, len(products)),
		repo:     repo,
	}

	for _, p := range products {
		if err := u.Add(p); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// Add registers or replaces a product.
func (u *Universe) Add(p domain.Product) error {
	if _, ok := u.products[p.ID]; !ok {
		u.order = append(u.order, p.ID)
	}
	u.products[p.ID] = p

	if u.repo != nil {
		if err := u.repo.UpsertProduct(domain.NewProductInfo(p)); err != nil {
			return fmt.Errorf("mirror product %s: %w", p.ID, err)
		}
	}
	slog.Debug("Product registered", slog.String("id", p.ID), slog.String("maturity", p.Maturity.Format(domain.MaturityLayout)))
	return nil
}

// Product returns the product for id, or domain.ErrUnknownProduct.
func (u *Universe) Product(id string) (domain.Product, error) {
	p, ok := u.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrUnknownProduct, id)
	}
	return p, nil
}

// Products returns every product in registration order.
func (u *Universe) Products() []domain.Product {
	out := make([]domain.Product, 0, len(u.order))
	for _, id := range u.order {
		out = append(out, u.products[id])
	}
	return out
}

func (u *Universe) Len() int {
	return len(u.products)
}
