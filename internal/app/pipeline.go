package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/tomb.v2"

	"treasury_go/internal/algo"
	"treasury_go/internal/domain"
	"treasury_go/internal/engine"
	"treasury_go/internal/event"
	"treasury_go/internal/feed"
	"treasury_go/internal/infra"
	"treasury_go/internal/infra/storage"
	"treasury_go/internal/service"
)

// Pipeline is the composition root: every store, listener and connector of the
// trading flow, wired once and driven by the sequencer.
type Pipeline struct {
	cfg     *infra.Config
	storage *storage.Storage
	Metrics *infra.Metrics

	Universe      *service.Universe
	MarketData    *service.MarketDataService
	Pricing       *service.PricingService
	TradeBooking  *service.TradeBookingService
	Positions     *service.PositionService
	Risk          *service.RiskService
	AlgoExecution *service.AlgoExecutionService
	Execution     *service.ExecutionService
	Booker        *service.ExecutionBooker
	AlgoStreaming *service.AlgoStreamingService
	Streaming     *service.StreamingService
	Inquiries     *service.InquiryService
	GUI           *service.GUIService

	ExecutionHistory *service.HistoryService[domain.ExecutionOrder]
	StreamingHistory *service.HistoryService[domain.PriceStream]
	InquiryHistory   *service.HistoryService[domain.Inquiry]
	PositionHistory  *service.HistoryService[domain.Position]
	RiskHistory      *service.HistoryService[domain.PV01]

	outputs []*infra.LineWriter
}

// NewPipeline builds and wires the pipeline. st may be nil, in which case nothing is indexed.
// History and GUI files left by a previous run are removed.
func NewPipeline(cfg *infra.Config, st *storage.Storage, metrics *infra.Metrics) (*Pipeline, error) {
	if metrics == nil {
		metrics = infra.NewMetrics()
	}
	p := &Pipeline{cfg: cfg, storage: st, Metrics: metrics}

	var (
		repo  domain.ProductRepository
		index domain.HistoryIndex
	)
	if st != nil {
		repo, index = st, st
	}

	// 1. Reference data
	products := make([]domain.Product, 0, len(cfg.Products))
	for _, pc := range cfg.Products {
		bond, err := pc.Bond()
		if err != nil {
			return nil, err
		}
		products = append(products, bond)
	}
	universe, err := service.NewUniverse(products, repo)
	if err != nil {
		return nil, err
	}
	p.Universe = universe

	// 2. Output files
	open := func(name string) (*infra.LineWriter, error) {
		w, err := infra.NewFileLineWriter(cfg.Output.Dir, name, cfg.Output.MaxSizeMB, true)
		if err != nil {
			return nil, err
		}
		p.outputs = append(p.outputs, w)
		return w, nil
	}
	files := make(map[string]*infra.LineWriter)
	for _, name := range []string{
		cfg.Output.Executions, cfg.Output.Streaming, cfg.Output.Inquiries,
		cfg.Output.Positions, cfg.Output.Risk, cfg.Output.GUI,
	} {
		w, err := open(name)
		if err != nil {
			p.Close()
			return nil, err
		}
		files[name] = w
	}

	// 3. Connectors
	var (
		execConnector   domain.Publisher[domain.ExecutionOrder]
		streamConnector domain.Publisher[domain.PriceStream]
		quoteConnector  domain.Publisher[domain.Inquiry]
	)
	if cfg.Output.Console {
		execConnector = infra.NewExecutionConsole(os.Stdout)
		streamConnector = infra.NewStreamingConsole(os.Stdout)
		quoteConnector = infra.NewQuoteConsole(os.Stdout)
	}

	// 4. Services
	venues := make([]domain.Venue, 0, len(cfg.Algo.Execution.Venues))
	for _, v := range cfg.Algo.Execution.Venues {
		venues = append(venues, domain.Venue(v))
	}
	executor := algo.NewExecutor(algo.ExecutorConfig{
		Threshold:           cfg.Algo.Execution.Threshold,
		Tolerance:           cfg.Algo.Execution.Tolerance,
		SymmetricCrossCheck: cfg.Algo.Execution.SymmetricCrossCheck,
		Venues:              venues,
	}, nil)
	throttle := algo.NewThrottle(algo.ThrottleConfig{
		Tick:           cfg.GUI.TickMS,
		Interval:       cfg.GUI.IntervalMS,
		MaxForwarded:   cfg.GUI.MaxUpdates,
		StrictInterval: cfg.GUI.StrictInterval,
	})

	p.MarketData = service.NewMarketDataService()
	p.Pricing = service.NewPricingService()
	p.TradeBooking = service.NewTradeBookingService(metrics)
	p.Positions = service.NewPositionService()
	p.Risk = service.NewRiskService(cfg.Risk.Coefficient)
	p.AlgoExecution = service.NewAlgoExecutionService(executor, metrics)
	p.Execution = service.NewExecutionService(execConnector, metrics)
	p.Booker = service.NewExecutionBooker(p.TradeBooking, cfg.Booking.Books, nil)
	p.AlgoStreaming = service.NewAlgoStreamingService(algo.NewStreamer(cfg.Algo.Streaming.VisibleQuantity))
	p.Streaming = service.NewStreamingService(streamConnector, metrics)
	p.Inquiries = service.NewInquiryService(quoteConnector, cfg.Inquiry.QuotePrice, metrics)
	p.GUI = service.NewGUIService(throttle, files[cfg.Output.GUI], metrics)

	p.ExecutionHistory = service.NewHistoryService(service.HistoryExecutions, service.FormatExecution, files[cfg.Output.Executions], index, metrics)
	p.StreamingHistory = service.NewHistoryService(service.HistoryStreaming, service.FormatStream, files[cfg.Output.Streaming], index, metrics)
	p.InquiryHistory = service.NewHistoryService(service.HistoryInquiries, service.FormatInquiry, files[cfg.Output.Inquiries], index, metrics)
	p.PositionHistory = service.NewHistoryService(service.HistoryPositions, service.PositionFormatter(cfg.Booking.Books), files[cfg.Output.Positions], index, metrics)
	p.RiskHistory = service.NewHistoryService(service.HistoryRisk, service.FormatRisk, files[cfg.Output.Risk], index, metrics)

	// 5. Wiring (registration order is notification order)
	p.TradeBooking.Store().AddListener(p.Positions.Listener())
	p.Positions.Store().AddListener(p.Risk.Listener())

	p.MarketData.Store().AddListener(p.AlgoExecution.Listener())
	p.AlgoExecution.Store().AddListener(p.Execution.Listener())
	p.Execution.Store().AddListener(p.Booker.Listener())

	p.Pricing.Store().AddListener(p.AlgoStreaming.Listener())
	p.AlgoStreaming.Store().AddListener(p.Streaming.Listener())
	p.Pricing.Store().AddListener(p.GUI.Listener())

	p.Execution.Store().AddListener(p.ExecutionHistory.Listener())
	p.Streaming.Store().AddListener(p.StreamingHistory.Listener())
	p.Inquiries.Store().AddListener(p.InquiryHistory.Listener())
	p.Positions.Store().AddListener(p.PositionHistory.Listener())
	p.Risk.Store().AddListener(p.RiskHistory.Listener())

	slog.Info("✅ Pipeline wired",
		slog.Int("products", universe.Len()),
		slog.String("output_dir", cfg.Output.Dir),
		slog.Bool("console", cfg.Output.Console),
	)
	return p, nil
}

// Storage is the index the pipeline mirrors into, nil when disabled.
func (p *Pipeline) Storage() *storage.Storage {
	return p.storage
}

// OnOrderBook, OnPrice, OnTrade and OnInquiry make the pipeline the sequencer's sink.
func (p *Pipeline) OnOrderBook(ob domain.OrderBook) { p.MarketData.OnMessage(ob) }
func (p *Pipeline) OnPrice(pr domain.Price)         { p.Pricing.OnMessage(pr) }
func (p *Pipeline) OnTrade(t domain.Trade)          { p.TradeBooking.BookTrade(t) }
func (p *Pipeline) OnInquiry(inq domain.Inquiry)    { p.Inquiries.OnMessage(inq) }

// Sources lists the feed files in processing order.
func (p *Pipeline) Sources() []feed.Source {
	dir := p.cfg.Feeds.Dir
	return []feed.Source{
		{Type: event.TypeMarketData, Path: filepath.Join(dir, p.cfg.Feeds.MarketData)},
		{Type: event.TypePrice, Path: filepath.Join(dir, p.cfg.Feeds.Prices)},
		{Type: event.TypeTrade, Path: filepath.Join(dir, p.cfg.Feeds.Trades)},
		{Type: event.TypeInquiry, Path: filepath.Join(dir, p.cfg.Feeds.Inquiries)},
	}
}

// Run reads every feed through the sequencer and returns once all events are processed,
// a reader fails, or ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	seq := engine.NewSequencer(p.cfg.Feeds.InboxSize, p, p.Metrics).
		WithDump(filepath.Join(p.cfg.Output.Dir, p.cfg.Output.DumpFile), p.Snapshot)
	parser := feed.NewParser(p.Universe).WithBounds(p.cfg.PriceBounds())
	reader := feed.NewReader(parser, p.Metrics)

	t, ctx := tomb.WithContext(ctx)

	t.Go(func() error {
		return reader.Run(ctx, p.Sources(), seq.Inbox())
	})
	t.Go(func() error {
		seq.Run(ctx)
		return nil
	})

	err := t.Wait()
	slog.Info("📊 Pipeline finished",
		slog.Any("events", seq.Counts()),
		slog.Uint64("prices_out_of_range", parser.OutOfRange()),
		slog.Any("metrics", p.Metrics.Snapshot()),
	)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	return nil
}

// BucketedRisks computes the configured sectors. Sectors with a product that never
// traded are skipped.
func (p *Pipeline) BucketedRisks() []domain.PV01 {
	out := make([]domain.PV01, 0, len(p.cfg.Risk.Sectors))
	for _, sector := range p.cfg.Risk.Sectors {
		pv, err := p.Risk.BucketedRisk(sector)
		if err != nil {
			slog.Warn("Bucketed risk unavailable", slog.String("sector", sector.Name), slog.Any("error", err))
			continue
		}
		out = append(out, pv)
	}
	return out
}

// Report writes final positions and bucketed risk to w.
func (p *Pipeline) Report(w io.Writer) {
	for _, pos := range p.Positions.Store().Values() {
		fmt.Fprintf(w, "Position %s aggregate=%d\n", pos.Key(), pos.Aggregate())
	}
	for _, pv := range p.BucketedRisks() {
		fmt.Fprintf(w, "Bucket %s pv01=%s quantity=%d\n", pv.Name, pv.Coefficient.String(), pv.Quantity)
	}
}

// Snapshot is the state written into the panic dump.
func (p *Pipeline) Snapshot() any {
	return map[string]any{
		"positions":  p.Positions.Store().Values(),
		"risk":       p.Risk.Store().Values(),
		"executions": p.Execution.Store().Values(),
		"inquiries":  p.Inquiries.Store().Values(),
		"metrics":    p.Metrics.Snapshot(),
	}
}

// Close flushes and closes every output file.
func (p *Pipeline) Close() {
	for _, w := range p.outputs {
		if err := w.Close(); err != nil {
			slog.Error("Failed to close output", slog.String("path", w.Path()), slog.Any("error", err))
		}
	}
}
