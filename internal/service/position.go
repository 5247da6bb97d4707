package service

import (
	"treasury_go/internal/domain"
	"treasury_go/internal/store"
)

// PositionService keeps one per-book position per product.
type PositionService struct {
	positions *store.Store[domain.Position]
}

func NewPositionService() *PositionService {
	return &PositionService{positions: store.New[domain.Position]("position")}
}

func (s *PositionService) Store() *store.Store[domain.Position] {
	return s.positions
}

// AddTrade applies t to the product's position (creating it on first sighting) and
// republishes the whole position.
func (s *PositionService) AddTrade(t domain.Trade) domain.Position {
	pos, ok := s.positions.Lookup(t.Product.ID)
	if !ok {
		pos = domain.NewPosition(t.Product)
	}

	next := pos.ApplyTrade(t)
	s.positions.Publish(next)
	return next
}

func (s *PositionService) Get(productID string) (domain.Position, error) {
	return s.positions.Get(productID)
}

// Listener subscribes the service to a trade store.
func (s *PositionService) Listener() store.Listener[domain.Trade] {
	return store.OnAdd(func(t domain.Trade) {
		s.AddTrade(t)
	})
}
