package service

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"treasury_go/internal/domain"
	"treasury_go/internal/store"
)

// History kinds, also used as index keys.
const (
	HistoryExecutions = "executions"
	HistoryStreaming  = "streaming"
	HistoryInquiries  = "inquiries"
	HistoryPositions  = "positions"
	HistoryRisk       = "risk"
)

// HistoryService appends one line per update of V to its output, and mirrors the
// latest line per key into an optional index.
type HistoryService[V domain.Keyed] struct {
	kind    string
	format  func(V) string
	out     LineSink
	index   domain.HistoryIndex
	metrics Recorder
}

func NewHistoryService[V domain.Keyed](kind string, format func(V) string, out LineSink, index domain.HistoryIndex, metrics Recorder) *HistoryService[V] {
	return &HistoryService[V]{
		kind:    kind,
		format:  format,
		out:     out,
		index:   index,
		metrics: orNop(metrics),
	}
}

func (h *HistoryService[V]) Kind() string {
	return h.kind
}

// Persist writes v.
func (h *HistoryService[V]) Persist(v V) error {
	line := h.format(v)
	if err := h.out.WriteLine(line); err != nil {
		return fmt.Errorf("%s history: %w", h.kind, err)
	}

	if h.index != nil {
		rec := &domain.HistoryRecord{Kind: h.kind, EntityKey: v.Key(), Line: line, UpdatedAt: time.Now()}
		if err := h.index.SaveHistory(rec); err != nil {
			return fmt.Errorf("%s history index: %w", h.kind, err)
		}
	}
	return nil
}

// Listener subscribes the history to a store of V.
func (h *HistoryService[V]) Listener() store.Listener[V] {
	return store.OnAdd(func(v V) {
		if err := h.Persist(v); err != nil {
			listenerError(h.metrics, "history", err, slog.String("kind", h.kind), slog.String("key", v.Key()))
		}
	})
}

// FormatExecution renders "product,orderId,type,side,price,visible,hidden,parentOrderId,isChild".
func FormatExecution(o domain.ExecutionOrder) string {
	return strings.Join([]string{
		o.Product.ID,
		o.OrderID,
		string(o.Type),
		string(o.Side),
		o.Price.String(),
		strconv.FormatInt(o.VisibleQuantity, 10),
		strconv.FormatInt(o.HiddenQuantity, 10),
		o.ParentOrderID,
		strconv.FormatBool(o.IsChildOrder),
	}, ",")
}

// FormatInquiry renders "inquiryId,product,side,quantity,price,state".
func FormatInquiry(i domain.Inquiry) string {
	return strings.Join([]string{
		i.ID,
		i.Product.ID,
		string(i.Side),
		strconv.FormatInt(i.Quantity, 10),
		i.Price.String(),
		string(i.State),
	}, ",")
}

// PositionFormatter renders "product,<qty per book>,aggregate" with one column per book,
// in the given order. Books the position never traded show 0.
func PositionFormatter(books []string) func(domain.Position) string {
	return func(p domain.Position) string {
		fields := make([]string, 0, len(books)+2)
		fields = append(fields, p.Product.ID)
		for _, b := range books {
			fields = append(fields, strconv.FormatInt(p.Quantity(b), 10))
		}
		fields = append(fields, strconv.FormatInt(p.Aggregate(), 10))
		return strings.Join(fields, ",")
	}
}

// FormatStream renders "product,BID,price,visible,hidden,OFFER,price,visible,hidden".
func FormatStream(s domain.PriceStream) string {
	leg := func(o domain.PriceStreamOrder) string {
		return fmt.Sprintf("%s,%s,%d,%d", o.Side, o.Price.String(), o.VisibleQuantity, o.HiddenQuantity)
	}
	return s.Product.ID + "," + leg(s.Bid) + "," + leg(s.Offer)
}

// FormatRisk renders "product,pv01,quantity".
func FormatRisk(r domain.PV01) string {
	return fmt.Sprintf("%s,%s,%d", r.Name, r.Coefficient.String(), r.Quantity)
}
