package service

import (
	"treasury_go/internal/domain"
	"treasury_go/internal/store"
)

// PricingService keeps the latest internal price per product.
type PricingService struct {
	prices *store.Store[domain.Price]
}

func NewPricingService() *PricingService {
	return &PricingService{prices: store.New[domain.Price]("pricing")}
}

func (s *PricingService) Store() *store.Store[domain.Price] {
	return s.prices
}

func (s *PricingService) OnMessage(p domain.Price) {
	s.prices.Publish(p)
}

func (s *PricingService) Get(productID string) (domain.Price, error) {
	return s.prices.Get(productID)
}
