package service

import (
	"log/slog"

	"github.com/google/uuid"

	"treasury_go/internal/domain"
	"treasury_go/internal/store"
)

// TradeBookingService keeps the latest booked trade per product.
type TradeBookingService struct {
	trades  *store.Store[domain.Trade]
	metrics Recorder
}

func NewTradeBookingService(metrics Recorder) *TradeBookingService {
	return &TradeBookingService{
		trades:  store.New[domain.Trade]("trade_booking"),
		metrics: orNop(metrics),
	}
}

func (s *TradeBookingService) Store() *store.Store[domain.Trade] {
	return s.trades
}

// BookTrade records t and notifies listeners (positions).
func (s *TradeBookingService) BookTrade(t domain.Trade) {
	s.metrics.RecordTradeBooked()
	slog.Debug("Trade booked",
		slog.String("product", t.Product.ID),
		slog.String("trade_id", t.TradeID),
		slog.String("book", t.Book),
		slog.Int64("quantity", t.SignedQuantity()),
	)
	s.trades.Publish(t)
}

// ExecutionBooker turns executed orders into trades, rotating across books.
// BID executions are booked as buys, OFFER executions as sells, for the full
// visible plus hidden quantity.
type ExecutionBooker struct {
	booking *TradeBookingService
	books   []string
	next    int
	newID   func() string
}

// NewExecutionBooker books into books in turn. newID defaults to random UUIDs.
func NewExecutionBooker(booking *TradeBookingService, books []string, newID func() string) *ExecutionBooker {
	if len(books) == 0 {
		books = []string{"TRSY1", "TRSY2", "TRSY3"}
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &ExecutionBooker{booking: booking, books: books, newID: newID}
}

// Book converts o into a trade and books it.
func (b *ExecutionBooker) Book(o domain.ExecutionOrder) domain.Trade {
	side := domain.SideSell
	if o.Side == domain.Bid {
		side = domain.SideBuy
	}

	t := domain.Trade{
		Product:  o.Product,
		TradeID:  b.newID(),
		Price:    o.Price,
		Book:     b.books[b.next],
		Quantity: o.TotalQuantity(),
		Side:     side,
	}
	b.next = (b.next + 1) % len(b.books)

	b.booking.BookTrade(t)
	return t
}

// Listener subscribes the booker to an execution store.
func (b *ExecutionBooker) Listener() store.Listener[domain.ExecutionOrder] {
	return store.OnAdd(func(o domain.ExecutionOrder) {
		b.Book(o)
	})
}
