package engine

import (
	"context"
	"testing"

	"treasury_go/internal/domain"
	"treasury_go/internal/event"
)

type nopSink struct{}

func (nopSink) OnOrderBook(domain.OrderBook) {}
func (nopSink) OnPrice(domain.Price)         {}
func (nopSink) OnTrade(domain.Trade)         {}
func (nopSink) OnInquiry(domain.Inquiry)     {}

// BenchmarkSequencer_ProcessEvent measures dispatch cost without channel overhead.
func BenchmarkSequencer_ProcessEvent(b *testing.B) {
	seq := NewSequencer(1000, nopSink{}, nil)
	product := domain.Product{ID: "91282CFX4", Ticker: "T"}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		ev := event.AcquirePriceEvent()
		ev.Seq = uint64(i + 1)
		ev.Price = domain.Price{Product: product}

		seq.processEvent(ev)
	}
}

// BenchmarkSequencer_FullPipeline measures end-to-end event processing.
// Note: This benchmark includes channel overhead.
func BenchmarkSequencer_FullPipeline(b *testing.B) {
	seq := NewSequencer(b.N+100, nopSink{}, nil)
	inbox := seq.Inbox()
	product := domain.Product{ID: "91282CFX4", Ticker: "T"}

	done := make(chan struct{})
	go func() {
		seq.Run(context.Background())
		close(done)
	}()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		ev := event.AcquireMarketDataEvent()
		ev.Seq = uint64(i + 1)
		ev.Book = domain.OrderBook{Product: product}

		inbox <- ev
	}
	close(inbox)
	<-done
}
