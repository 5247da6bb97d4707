package algo

import "treasury_go/internal/domain"

// DefaultVisibleQuantity is the lower of the two alternating visible sizes.
const DefaultVisibleQuantity int64 = 1_000_000

// Streamer turns internal prices into two-way quotes, alternating the visible size
// between V and 2V on each quote. Hidden size is always twice the visible size.
type Streamer struct {
	base    int64
	visible int64
}

// NewStreamer creates a streamer whose first quote shows base.
func NewStreamer(base int64) *Streamer {
	if base <= 0 {
		base = DefaultVisibleQuantity
	}
	return &Streamer{base: base, visible: base}
}

// Visible returns the size the next quote will show.
func (s *Streamer) Visible() int64 {
	return s.visible
}

// OnPrice builds the quote for p and toggles the visible size.
func (s *Streamer) OnPrice(p domain.Price) domain.AlgoStream {
	visible, hidden := s.visible, 2*s.visible

	stream := domain.PriceStream{
		Product: p.Product,
		Bid: domain.PriceStreamOrder{
			Price:           p.BidPrice(),
			VisibleQuantity: visible,
			HiddenQuantity:  hidden,
			Side:            domain.Bid,
		},
		Offer: domain.PriceStreamOrder{
			Price:           p.OfferPrice(),
			VisibleQuantity: visible,
			HiddenQuantity:  hidden,
			Side:            domain.Offer,
		},
	}

	if s.visible == s.base {
		s.visible = 2 * s.base
	} else {
		s.visible = s.base
	}
	return domain.AlgoStream{Stream: stream}
}
