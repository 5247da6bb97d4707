package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"treasury_go/pkg/price"
)

func testBond() Product {
	return Product{ID: "91282CFX4", Ticker: "T"}
}

func TestPosition_Scenario(t *testing.T) {
	bond := testBond()
	pos := NewPosition(bond)

	pos = pos.ApplyTrade(Trade{Product: bond, TradeID: "T1", Book: "TRSY1", Quantity: 1_000_000, Side: SideBuy})
	pos = pos.ApplyTrade(Trade{Product: bond, TradeID: "T2", Book: "TRSY2", Quantity: 400_000, Side: SideSell})

	assert.Equal(t, int64(600_000), pos.Aggregate())
	assert.Equal(t, int64(1_000_000), pos.Quantity("TRSY1"))
	assert.Equal(t, int64(-400_000), pos.Quantity("TRSY2"))
	assert.Equal(t, int64(0), pos.Quantity("TRSY3"), "missing book is zero")
	assert.Equal(t, []string{"TRSY1", "TRSY2"}, pos.Books())
}

func TestPosition_Conservation(t *testing.T) {
	bond := testBond()
	deltas := []struct {
		book  string
		delta int64
	}{
		{"TRSY1", 500}, {"TRSY2", -200}, {"TRSY3", 700}, {"TRSY1", -50}, {"TRSY2", 1_000},
	}

	var want int64
	forward := NewPosition(bond)
	for _, d := range deltas {
		forward = forward.WithDelta(d.book, d.delta)
		want += d.delta
	}

	backward := NewPosition(bond)
	for i := len(deltas) - 1; i >= 0; i-- {
		backward = backward.WithDelta(deltas[i].book, deltas[i].delta)
	}

	assert.Equal(t, want, forward.Aggregate())
	assert.Equal(t, want, backward.Aggregate())
}

func TestPosition_WithDeltaCopies(t *testing.T) {
	before := NewPosition(testBond()).WithDelta("TRSY1", 10)
	after := before.WithDelta("TRSY1", 5)

	assert.Equal(t, int64(10), before.Quantity("TRSY1"), "original must not change")
	assert.Equal(t, int64(15), after.Quantity("TRSY1"))
}

func TestPosition_ZeroValue(t *testing.T) {
	var pos Position
	assert.Equal(t, int64(0), pos.Aggregate())
	assert.Equal(t, int64(3), pos.WithDelta("TRSY1", 3).Aggregate())
}

func TestTrade_SignedQuantity(t *testing.T) {
	buy := Trade{Quantity: 100, Side: SideBuy, Price: price.MustParse("99-000")}
	sell := Trade{Quantity: 100, Side: SideSell}

	assert.Equal(t, int64(100), buy.SignedQuantity())
	assert.Equal(t, int64(-100), sell.SignedQuantity())
}
