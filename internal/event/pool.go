package event

import (
	"sync"

	"treasury_go/internal/domain"
)

// Order book and price events are the high-volume feeds, so they are pooled.
//
// Usage:
//
//	ev := AcquireMarketDataEvent()
//	ev.Book = book
//	// ... dispatch ...
//	ReleaseMarketDataEvent(ev)  // Return to pool after processing
var marketDataPool = sync.Pool{
	New: func() interface{} {
		return &MarketDataEvent{}
	},
}

// AcquireMarketDataEvent gets a MarketDataEvent from the pool.
// The returned event has zero values and must be initialized.
func AcquireMarketDataEvent() *MarketDataEvent {
	return marketDataPool.Get().(*MarketDataEvent)
}

// ReleaseMarketDataEvent returns a MarketDataEvent to the pool.
// The event is reset to zero values before being pooled.
func ReleaseMarketDataEvent(ev *MarketDataEvent) {
	if ev == nil {
		return
	}
	ev.Seq = 0
	ev.Line = 0
	ev.Book = domain.OrderBook{}

	marketDataPool.Put(ev)
}

var pricePool = sync.Pool{
	New: func() interface{} {
		return &PriceEvent{}
	},
}

// AcquirePriceEvent gets a PriceEvent from the pool.
func AcquirePriceEvent() *PriceEvent {
	return pricePool.Get().(*PriceEvent)
}

// ReleasePriceEvent returns a PriceEvent to the pool.
func ReleasePriceEvent(ev *PriceEvent) {
	if ev == nil {
		return
	}
	ev.Seq = 0
	ev.Line = 0
	ev.Price = domain.Price{}

	pricePool.Put(ev)
}

// Release returns pooled events to their pool and ignores the rest.
func Release(ev Event) {
	switch e := ev.(type) {
	case *MarketDataEvent:
		ReleaseMarketDataEvent(e)
	case *PriceEvent:
		ReleasePriceEvent(e)
	}
}

// Warmup pre-allocates event objects to reduce GC pressure at startup.
func Warmup() {
	const batchSize = 1000

	mdEvs := make([]*MarketDataEvent, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		mdEvs = append(mdEvs, AcquireMarketDataEvent())
	}
	for _, ev := range mdEvs {
		ReleaseMarketDataEvent(ev)
	}

	priceEvs := make([]*PriceEvent, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		priceEvs = append(priceEvs, AcquirePriceEvent())
	}
	for _, ev := range priceEvs {
		ReleasePriceEvent(ev)
	}
}
