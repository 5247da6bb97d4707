package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight pipeline counters without external dependencies.
// Uses atomic operations so snapshots can be taken from any goroutine.
type Metrics struct {
	// Counters
	eventsProcessed atomic.Uint64
	executions      atomic.Uint64
	quotes          atomic.Uint64
	tradesBooked    atomic.Uint64
	inquiriesQuoted atomic.Uint64
	guiUpdates      atomic.Uint64
	parseErrors     atomic.Uint64
	errorsTotal     atomic.Uint64

	// Latency tracking
	latencySumNs atomic.Int64
	latencyCount atomic.Uint64
}

// NewMetrics returns zeroed counters.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordEvent records an event processing with latency.
func (m *Metrics) RecordEvent(latencyNs int64) {
	m.eventsProcessed.Add(1)
	m.latencySumNs.Add(latencyNs)
	m.latencyCount.Add(1)
}

// RecordError records a core error hit inside a listener.
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

// RecordParseError records a skipped feed line.
func (m *Metrics) RecordParseError() {
	m.parseErrors.Add(1)
}

func (m *Metrics) RecordExecution() {
	m.executions.Add(1)
}

func (m *Metrics) RecordQuote() {
	m.quotes.Add(1)
}

func (m *Metrics) RecordTradeBooked() {
	m.tradesBooked.Add(1)
}

func (m *Metrics) RecordInquiryQuoted() {
	m.inquiriesQuoted.Add(1)
}

func (m *Metrics) RecordGUIUpdate() {
	m.guiUpdates.Add(1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	EventsProcessed uint64    `json:"events_processed"`
	Executions      uint64    `json:"executions"`
	Quotes          uint64    `json:"quotes"`
	TradesBooked    uint64    `json:"trades_booked"`
	InquiriesQuoted uint64    `json:"inquiries_quoted"`
	GUIUpdates      uint64    `json:"gui_updates"`
	ParseErrors     uint64    `json:"parse_errors"`
	ErrorsTotal     uint64    `json:"errors_total"`
	AvgLatencyNs    int64     `json:"avg_latency_ns"`
	Timestamp       time.Time `json:"timestamp"`
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgLatency int64
	count := m.latencyCount.Load()
	if count > 0 {
		avgLatency = m.latencySumNs.Load() / int64(count)
	}

	return MetricsSnapshot{
		EventsProcessed: m.eventsProcessed.Load(),
		Executions:      m.executions.Load(),
		Quotes:          m.quotes.Load(),
		TradesBooked:    m.tradesBooked.Load(),
		InquiriesQuoted: m.inquiriesQuoted.Load(),
		GUIUpdates:      m.guiUpdates.Load(),
		ParseErrors:     m.parseErrors.Load(),
		ErrorsTotal:     m.errorsTotal.Load(),
		AvgLatencyNs:    avgLatency,
		Timestamp:       time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.eventsProcessed.Store(0)
	m.executions.Store(0)
	m.quotes.Store(0)
	m.tradesBooked.Store(0)
	m.inquiriesQuoted.Store(0)
	m.guiUpdates.Store(0)
	m.parseErrors.Store(0)
	m.errorsTotal.Store(0)
	m.latencySumNs.Store(0)
	m.latencyCount.Store(0)
}
