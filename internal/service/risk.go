package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"treasury_go/internal/domain"
	"treasury_go/internal/store"
)

// DefaultPV01Coefficient is assigned to a product the first time its position is seen.
var DefaultPV01Coefficient = decimal.RequireFromString("0.025")

// RiskService keeps the PV01 of every product with a position.
type RiskService struct {
	risks       *store.Store[domain.PV01]
	coefficient decimal.Decimal
}

// NewRiskService uses coefficient for new products; zero means DefaultPV01Coefficient.
func NewRiskService(coefficient decimal.Decimal) *RiskService {
	if coefficient.IsZero() {
		coefficient = DefaultPV01Coefficient
	}
	return &RiskService{
		risks:       store.New[domain.PV01]("risk"),
		coefficient: coefficient,
	}
}

func (s *RiskService) Store() *store.Store[domain.PV01] {
	return s.risks
}

// AddPosition sets the PV01 quantity to the position's aggregate. The coefficient is
// fixed on first sighting and kept thereafter.
func (s *RiskService) AddPosition(p domain.Position) domain.PV01 {
	pv, ok := s.risks.Lookup(p.Product.ID)
	if !ok {
		pv = domain.NewPV01(p.Product.ID, s.coefficient, 0)
	}
	pv.Quantity = p.Aggregate()

	s.risks.Publish(pv)
	return pv
}

func (s *RiskService) Get(productID string) (domain.PV01, error) {
	return s.risks.Get(productID)
}

// BucketedRisk sums coefficient × quantity and quantity over every member of sector.
// The result is a PV01 named after the sector whose Coefficient holds the total risk.
func (s *RiskService) BucketedRisk(sector domain.Sector) (domain.PV01, error) {
	total := decimal.Zero
	var qty int64

	for _, id := range sector.ProductIDs {
		pv, ok := s.risks.Lookup(id)
		if !ok {
			return domain.PV01{}, fmt.Errorf("bucket %s: %w: %s", sector.Name, domain.ErrUnknownProduct, id)
		}
		total = total.Add(pv.Risk())
		qty += pv.Quantity
	}

	return domain.NewPV01(sector.Name, total, qty), nil
}

// Listener subscribes the service to a position store.
func (s *RiskService) Listener() store.Listener[domain.Position] {
	return store.OnAdd(func(p domain.Position) {
		s.AddPosition(p)
	})
}
