package algo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"treasury_go/internal/book"
	"treasury_go/internal/domain"
)

// ExecutorConfig tunes the crossing check and the venue rotation.
type ExecutorConfig struct {
	Threshold decimal.Decimal // 1/128 of a point
	Tolerance decimal.Decimal // Float slack kept from the reference comparison

	// SymmetricCrossCheck compares |offer-bid| instead of the literal (offer-bid).
	SymmetricCrossCheck bool

	Venues []domain.Venue
}

// DefaultExecutorConfig returns the reference parameters.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		Threshold: decimal.NewFromInt(1).Div(decimal.NewFromInt(128)),
		Tolerance: decimal.New(1, -9),
		Venues:    domain.Venues,
	}
}

// Executor alternates sides and rotates venues, sending a market order whenever the
// book is tight enough. It is stateful and deterministic; state is shared across products.
type Executor struct {
	cfg      ExecutorConfig
	newID    func() string
	side     domain.PricingSide
	venueIdx int
}

// NewExecutor creates an executor starting on BID at the first venue.
// newID may be nil, in which case order ids are random UUIDs.
func NewExecutor(cfg ExecutorConfig, newID func() string) *Executor {
	if len(cfg.Venues) == 0 {
		cfg.Venues = domain.Venues
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &Executor{
		cfg:   cfg,
		newID: newID,
		side:  domain.Bid,
	}
}

// Side returns the side the next execution will take.
func (e *Executor) Side() domain.PricingSide {
	return e.side
}

// Venue returns the venue the next execution will be routed to.
func (e *Executor) Venue() domain.Venue {
	return e.cfg.Venues[e.venueIdx]
}

// Crossed reports whether bo passes the execution threshold.
func (e *Executor) Crossed(bo domain.BidOffer) bool {
	diff := bo.Offer.Price.Decimal().Sub(bo.Bid.Price.Decimal())
	if e.cfg.SymmetricCrossCheck {
		diff = diff.Abs()
	}
	return diff.LessThan(e.cfg.Threshold.Add(e.cfg.Tolerance))
}

// OnOrderBook evaluates one book update. ok is false when nothing was sent.
// An empty book side is returned as domain.ErrEmptyBook and leaves the state untouched.
func (e *Executor) OnOrderBook(ob domain.OrderBook) (exec domain.AlgoExecution, ok bool, err error) {
	bo, err := book.BestBidOffer(ob)
	if err != nil {
		return domain.AlgoExecution{}, false, err
	}
	if !e.Crossed(bo) {
		return domain.AlgoExecution{}, false, nil
	}

	// Lift the offer when on BID, hit the bid when on OFFER.
	hit := bo.Offer
	if e.side == domain.Offer {
		hit = bo.Bid
	}

	exec = domain.AlgoExecution{
		Order: domain.ExecutionOrder{
			Product:         ob.Product,
			Side:            e.side,
			OrderID:         e.newID(),
			Type:            domain.OrderTypeMarket,
			Price:           hit.Price,
			VisibleQuantity: hit.Quantity,
			HiddenQuantity:  0,
		},
		Venue: e.Venue(),
	}

	e.side = e.side.Opposite()
	e.venueIdx = (e.venueIdx + 1) % len(e.cfg.Venues)
	return exec, true, nil
}
