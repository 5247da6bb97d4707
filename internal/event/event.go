package event

import "treasury_go/internal/domain"

// Type identifies the feed an event came from.
type Type uint8

const (
	TypeMarketData Type = iota + 1
	TypePrice
	TypeTrade
	TypeInquiry
)

func (t Type) String() string {
	switch t {
	case TypeMarketData:
		return "MARKET_DATA"
	case TypePrice:
		return "PRICE"
	case TypeTrade:
		return "TRADE"
	case TypeInquiry:
		return "INQUIRY"
	default:
		return "UNKNOWN"
	}
}

// Event is anything the sequencer can process.
type Event interface {
	GetSeq() uint64
	GetType() Type
}

// BaseEvent carries the sequence number and the source line number.
type BaseEvent struct {
	Seq  uint64 `json:"seq"`
	Line int    `json:"line"`
}

func (e *BaseEvent) GetSeq() uint64 {
	return e.Seq
}

// MarketDataEvent carries one full order book snapshot.
type MarketDataEvent struct {
	BaseEvent
	Book domain.OrderBook `json:"book"`
}

func (e *MarketDataEvent) GetType() Type { return TypeMarketData }

// PriceEvent carries one internal price.
type PriceEvent struct {
	BaseEvent
	Price domain.Price `json:"price"`
}

func (e *PriceEvent) GetType() Type { return TypePrice }

// TradeEvent carries one booked trade.
type TradeEvent struct {
	BaseEvent
	Trade domain.Trade `json:"trade"`
}

func (e *TradeEvent) GetType() Type { return TypeTrade }

// InquiryEvent carries one customer inquiry.
type InquiryEvent struct {
	BaseEvent
	Inquiry domain.Inquiry `json:"inquiry"`
}

func (e *InquiryEvent) GetType() Type { return TypeInquiry }
