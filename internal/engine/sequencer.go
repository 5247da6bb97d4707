package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"treasury_go/internal/domain"
	"treasury_go/internal/event"
)

// Sink receives every feed event in sequence order. Implementations publish into the
// keyed stores, so they run entirely on the sequencer goroutine.
type Sink interface {
	OnOrderBook(ob domain.OrderBook)
	OnPrice(p domain.Price)
	OnTrade(t domain.Trade)
	OnInquiry(inq domain.Inquiry)
}

// EventRecorder observes processing latency.
type EventRecorder interface {
	RecordEvent(latencyNs int64)
}

// Sequencer is the core single-threaded event processor.
type Sequencer struct {
	inbox   chan event.Event
	sink    Sink
	metrics EventRecorder
	nextSeq uint64

	counts map[string]uint64

	// Optional: extra state written into the dump file (store contents).
	snapshot func() any
	dumpFile string
}

// NewSequencer creates a new sequencer instance.
func NewSequencer(inboxSize int, sink Sink, metrics EventRecorder) *Sequencer {
	return &Sequencer{
		inbox:    make(chan event.Event, inboxSize),
		sink:     sink,
		metrics:  metrics,
		nextSeq:  1,
		counts:   make(map[string]uint64),
		dumpFile: "panic_dump.json",
	}
}

// WithDump sets the dump file path and an optional state snapshot for post-mortems.
func (s *Sequencer) WithDump(path string, snapshot func() any) *Sequencer {
	if path != "" {
		s.dumpFile = path
	}
	s.snapshot = snapshot
	return s
}

// Inbox returns the event channel. Feed readers send events here and close it when done.
func (s *Sequencer) Inbox() chan event.Event {
	return s.inbox
}

// NextSeq is the sequence number the sequencer expects next.
func (s *Sequencer) NextSeq() uint64 {
	return s.nextSeq
}

// Run processes events until the inbox is closed or ctx is done.
// This MUST be run in a single goroutine.
func (s *Sequencer) Run(ctx context.Context) {
	slog.Info("Sequencer started")

	defer func() {
		if r := recover(); r != nil {
			slog.Error("CRITICAL_PANIC_DETECTED", slog.Any("panic", r))
			s.DumpState(s.dumpFile)
			panic(fmt.Sprintf("HALTED: %v", r))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Sequencer stopping...", slog.Uint64("next_seq", s.nextSeq))
			return
		case ev, ok := <-s.inbox:
			if !ok {
				slog.Info("Sequencer drained inbox", slog.Uint64("processed", s.nextSeq-1))
				return
			}
			s.processEvent(ev)
		}
	}
}

func (s *Sequencer) processEvent(ev event.Event) {
	// 1. Sequence Gap Check (Halt Policy)
	if ev.GetSeq() != s.nextSeq {
		panic(fmt.Sprintf("SEQUENCE_GAP_DETECTED: expected %d, got %d", s.nextSeq, ev.GetSeq()))
	}

	start := time.Now()

	// 2. Dispatch
	switch e := ev.(type) {
	case *event.MarketDataEvent:
		s.sink.OnOrderBook(e.Book)
	case *event.PriceEvent:
		s.sink.OnPrice(e.Price)
	case *event.TradeEvent:
		s.sink.OnTrade(e.Trade)
	case *event.InquiryEvent:
		s.sink.OnInquiry(e.Inquiry)
	default:
		slog.Warn("Unknown event type", slog.Any("type", ev.GetType()))
	}

	if s.metrics != nil {
		s.metrics.RecordEvent(time.Since(start).Nanoseconds())
	}
	s.counts[ev.GetType().String()]++

	// 3. Increment Sequence
	s.nextSeq++

	event.Release(ev)
}

// Counts returns how many events of each type were processed.
// Only safe once Run has returned.
func (s *Sequencer) Counts() map[string]uint64 {
	out := make(map[string]uint64, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// DumpState writes the sequencer position and the optional snapshot to a file (for post-mortem).
func (s *Sequencer) DumpState(filename string) {
	slog.Info("Dumping internal state...", slog.String("file", filename))

	data := struct {
		NextSeq uint64            `json:"next_seq"`
		Counts  map[string]uint64 `json:"counts"`
		State   any               `json:"state,omitempty"`
	}{
		NextSeq: s.nextSeq,
		Counts:  s.counts,
	}
	if s.snapshot != nil {
		data.State = s.snapshot()
	}

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		slog.Error("Failed to marshal state", slog.Any("error", err))
		return
	}

	err = os.WriteFile(filename, b, 0644)
	if err != nil {
		slog.Error("Failed to write state dump", slog.Any("error", err))
	}
}
