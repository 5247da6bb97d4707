package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"treasury_go/pkg/price"
)

func TestParseSides(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"BID", false},
		{"OFFER", false},
		{"bid", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run("pricing "+tt.input, func(t *testing.T) {
			_, err := ParsePricingSide(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParsePricingSide(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSide) {
				t.Errorf("Expected ErrInvalidSide, got %v", err)
			}
		})
	}

	if s, err := ParseSide("SELL"); err != nil || s != SideSell {
		t.Errorf("ParseSide(SELL) = %v, %v", s, err)
	}
	if _, err := ParseSide("HOLD"); !errors.Is(err, ErrInvalidSide) {
		t.Errorf("Expected ErrInvalidSide, got %v", err)
	}
	if Bid.Opposite() != Offer || Offer.Opposite() != Bid {
		t.Error("Opposite should flip BID and OFFER")
	}
}

func TestNewPriceFromBidOffer(t *testing.T) {
	p := NewPriceFromBidOffer(testBond(), price.MustParse("99-160"), price.MustParse("99-162"))

	// 99.5 and 99.5078125
	wantMid := decimal.RequireFromString("99.50390625")
	wantSpread := decimal.RequireFromString("0.0078125")

	if !p.Mid.Equal(wantMid) {
		t.Errorf("Expected mid %s, got %s", wantMid, p.Mid)
	}
	if !p.BidOfferSpread.Equal(wantSpread) {
		t.Errorf("Expected spread %s, got %s", wantSpread, p.BidOfferSpread)
	}
	if !p.BidPrice().Equal(decimal.RequireFromString("99.5")) {
		t.Errorf("Expected bid 99.5, got %s", p.BidPrice())
	}
	if !p.OfferPrice().Equal(decimal.RequireFromString("99.5078125")) {
		t.Errorf("Expected offer 99.5078125, got %s", p.OfferPrice())
	}
}

func TestKeys(t *testing.T) {
	bond := testBond()

	if NewOrderBook(bond, nil, nil).Key() != bond.ID {
		t.Error("OrderBook key should be product id")
	}
	if (Inquiry{ID: "INQ7", Product: bond}).Key() != "INQ7" {
		t.Error("Inquiry key should be inquiry id")
	}
	if (AlgoExecution{Order: ExecutionOrder{Product: bond}}).Key() != bond.ID {
		t.Error("AlgoExecution key should be product id")
	}
	if (AlgoStream{Stream: PriceStream{Product: bond}}).Key() != bond.ID {
		t.Error("AlgoStream key should be product id")
	}
	if NewPV01("Belly", decimal.Zero, 0).Key() != "Belly" {
		t.Error("PV01 key should be its name")
	}
}

func TestPV01_Risk(t *testing.T) {
	r := NewPV01("91282CFX4", decimal.RequireFromString("0.025"), 600_000)
	if !r.Risk().Equal(decimal.NewFromInt(15_000)) {
		t.Errorf("Expected risk 15000, got %s", r.Risk())
	}
}

func TestInquiry_Transitions(t *testing.T) {
	inq := Inquiry{ID: "1", State: InquiryReceived}
	quoted := inq.WithQuote(price.MustParse("100-000"))

	if quoted.State != InquiryQuoted || quoted.Price != price.New(100, 0, 0) {
		t.Errorf("Unexpected quoted inquiry %+v", quoted)
	}
	if inq.State != InquiryReceived {
		t.Error("WithQuote must not modify the receiver")
	}
	if quoted.WithState(InquiryDone).State != InquiryDone {
		t.Error("WithState should set the state")
	}
	if _, err := ParseInquiryState("PENDING"); err == nil {
		t.Error("Expected error for unknown state")
	}
}

func TestProduct_YearsToMaturity(t *testing.T) {
	p := Product{ID: "912810TL2", Maturity: time.Date(2052, 11, 15, 0, 0, 0, 0, time.UTC)}
	asOf := time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC)

	if got := p.YearsToMaturity(asOf); got != 29 {
		t.Errorf("Expected 29 years, got %d", got)
	}
	if got := p.YearsToMaturity(time.Date(2060, 1, 1, 0, 0, 0, 0, time.UTC)); got != 0 {
		t.Errorf("Expected 0 after maturity, got %d", got)
	}
}

func TestNewProductInfo(t *testing.T) {
	p := NewBond("91282CGA3", "T", decimal.RequireFromString("4.0"), time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC))
	info := NewProductInfo(p)

	if info.Maturity != "20251215" {
		t.Errorf("Expected maturity 20251215, got %s", info.Maturity)
	}
	if info.Coupon != "4" {
		t.Errorf("Expected coupon 4, got %s", info.Coupon)
	}
}
