package book

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treasury_go/internal/domain"
	"treasury_go/pkg/price"
)

// --- Setup & Helpers --------------------------------------------------------

var testBond = domain.Product{ID: "91282CFX4", Ticker: "T"}

func orders(side domain.PricingSide, levels ...any) []domain.Order {
	out := make([]domain.Order, 0, len(levels)/2)
	for i := 0; i+1 < len(levels); i += 2 {
		out = append(out, domain.NewOrder(price.MustParse(levels[i].(string)), int64(levels[i+1].(int)), side))
	}
	return out
}

// --- Tests ------------------------------------------------------------------

func TestBestBidOffer(t *testing.T) {
	ob := domain.NewOrderBook(testBond,
		orders(domain.Bid, "99-150", 10_000_000, "99-160", 20_000_000, "99-157", 30_000_000),
		orders(domain.Offer, "99-170", 10_000_000, "99-162", 20_000_000, "99-164", 30_000_000),
	)

	bo, err := BestBidOffer(ob)
	require.NoError(t, err)
	assert.Equal(t, "99-160", bo.Bid.Price.String())
	assert.Equal(t, int64(20_000_000), bo.Bid.Quantity)
	assert.Equal(t, "99-162", bo.Offer.Price.String())
	assert.Equal(t, int64(20_000_000), bo.Offer.Quantity)
	assert.Equal(t, price.New(0, 0, 2), bo.Spread())
}

func TestBestBidOffer_TiesKeepFirst(t *testing.T) {
	ob := domain.NewOrderBook(testBond,
		orders(domain.Bid, "99-160", 1, "99-160", 2),
		orders(domain.Offer, "99-162", 3, "99-162", 4),
	)

	bo, err := BestBidOffer(ob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bo.Bid.Quantity, "first max bid wins")
	assert.Equal(t, int64(3), bo.Offer.Quantity, "first min offer wins")
}

func TestBestBidOffer_EmptySide(t *testing.T) {
	tests := []struct {
		name string
		book domain.OrderBook
	}{
		{"no bids", domain.NewOrderBook(testBond, nil, orders(domain.Offer, "99-162", 1))},
		{"no offers", domain.NewOrderBook(testBond, orders(domain.Bid, "99-160", 1), nil)},
		{"empty", domain.NewOrderBook(testBond, nil, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BestBidOffer(tt.book)
			assert.True(t, errors.Is(err, domain.ErrEmptyBook))

			_, err = AggregateDepth(tt.book)
			assert.True(t, errors.Is(err, domain.ErrEmptyBook))
		})
	}
}

func TestAggregateDepth_Scenario(t *testing.T) {
	ob := domain.NewOrderBook(testBond,
		orders(domain.Bid, "99-160", 10_000_000, "99-160", 5_000_000),
		orders(domain.Offer, "99-162", 1_000_000),
	)

	agg, err := AggregateDepth(ob)
	require.NoError(t, err)
	require.Len(t, agg.Bids, 1)
	assert.Equal(t, "99-160", agg.Bids[0].Price.String())
	assert.Equal(t, int64(15_000_000), agg.Bids[0].Quantity)
	assert.Equal(t, domain.Bid, agg.Bids[0].Side)
}

func TestAggregateDepth_OrderingAndConservation(t *testing.T) {
	ob := domain.NewOrderBook(testBond,
		orders(domain.Bid,
			"99-157", 30, "99-160", 10, "99-150", 20, "99-157", 5, "99-160", 7,
		),
		orders(domain.Offer,
			"99-170", 1, "99-162", 2, "99-164", 3, "99-162", 4, "99-170", 5, "99-16+", 6,
		),
	)

	agg, err := AggregateDepth(ob)
	require.NoError(t, err)

	var bidPrices, offerPrices []string
	for _, o := range agg.Bids {
		bidPrices = append(bidPrices, o.Price.String())
	}
	for _, o := range agg.Offers {
		offerPrices = append(offerPrices, o.Price.String())
	}

	assert.Equal(t, []string{"99-150", "99-157", "99-160"}, bidPrices, "Bids should be sorted Low -> High")
	assert.Equal(t, []string{"99-162", "99-16+", "99-170"}, offerPrices, "Offers should be sorted Low -> High")

	assert.Equal(t, TotalQuantity(ob.Bids), TotalQuantity(agg.Bids))
	assert.Equal(t, TotalQuantity(ob.Offers), TotalQuantity(agg.Offers))
	assert.Equal(t, int64(6), agg.Offers[0].Quantity)
	assert.Equal(t, int64(9), agg.Offers[1].Quantity)
}

func TestAggregateDepth_NormalizesEquivalentPrices(t *testing.T) {
	ob := domain.NewOrderBook(testBond,
		[]domain.Order{
			domain.NewOrder(price.New(99, 32, 0), 1, domain.Bid),
			domain.NewOrder(price.New(100, 0, 0), 2, domain.Bid),
		},
		orders(domain.Offer, "100-010", 1),
	)

	agg, err := AggregateDepth(ob)
	require.NoError(t, err)
	require.Len(t, agg.Bids, 1)
	assert.Equal(t, "100-000", agg.Bids[0].Price.String())
	assert.Equal(t, int64(3), agg.Bids[0].Quantity)
}

func BenchmarkBestBidOffer(b *testing.B) {
	ob := domain.NewOrderBook(testBond,
		orders(domain.Bid, "99-150", 10, "99-152", 20, "99-154", 30, "99-156", 40, "99-160", 50),
		orders(domain.Offer, "99-162", 10, "99-164", 20, "99-166", 30, "99-170", 40, "99-172", 50),
	)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = BestBidOffer(ob)
	}
}
