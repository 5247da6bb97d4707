package book

import (
	"fmt"

	"github.com/tidwall/btree"

	"treasury_go/internal/domain"
)

// level is one consolidated price level keyed by 256ths.
type level struct {
	ticks int
	order domain.Order
}

type levels = btree.BTreeG[*level]

func newLevels() *levels {
	// Sorted least first.
	return btree.NewBTreeG(func(a, b *level) bool {
		return a.ticks < b.ticks
	})
}

// BestBidOffer scans for the strictly highest bid and strictly lowest offer.
// On ties the first order encountered wins.
func BestBidOffer(ob domain.OrderBook) (domain.BidOffer, error) {
	if len(ob.Bids) == 0 || len(ob.Offers) == 0 {
		return domain.BidOffer{}, fmt.Errorf("book %s: %w", ob.Product.ID, domain.ErrEmptyBook)
	}

	best := domain.BidOffer{Bid: ob.Bids[0], Offer: ob.Offers[0]}
	for _, o := range ob.Bids[1:] {
		if best.Bid.Price.Less(o.Price) {
			best.Bid = o
		}
	}
	for _, o := range ob.Offers[1:] {
		if o.Price.Less(best.Offer.Price) {
			best.Offer = o
		}
	}
	return best, nil
}

// AggregateDepth merges orders at identical prices into one order per price.
// Each side of the result is sorted by ascending price.
func AggregateDepth(ob domain.OrderBook) (domain.OrderBook, error) {
	if len(ob.Bids) == 0 || len(ob.Offers) == 0 {
		return domain.OrderBook{}, fmt.Errorf("book %s: %w", ob.Product.ID, domain.ErrEmptyBook)
	}

	return domain.OrderBook{
		Product: ob.Product,
		Bids:    aggregate(ob.Bids, domain.Bid),
		Offers:  aggregate(ob.Offers, domain.Offer),
	}, nil
}

func aggregate(orders []domain.Order, side domain.PricingSide) []domain.Order {
	tree := newLevels()
	for _, o := range orders {
		// Comparator only looks at ticks, so a dummy level is enough for the search.
		ticks := o.Price.Ticks()
		if lv, ok := tree.GetMut(&level{ticks: ticks}); ok {
			lv.order.Quantity += o.Quantity
			continue
		}
		tree.Set(&level{
			ticks: ticks,
			order: domain.NewOrder(o.Price.Normalize(), o.Quantity, side),
		})
	}

	out := make([]domain.Order, 0, tree.Len())
	tree.Scan(func(lv *level) bool {
		out = append(out, lv.order)
		return true
	})
	return out
}

// TotalQuantity sums order quantities.
func TotalQuantity(orders []domain.Order) int64 {
	var total int64
	for _, o := range orders {
		total += o.Quantity
	}
	return total
}
