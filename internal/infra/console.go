package infra

import (
	"fmt"
	"io"

	"treasury_go/internal/domain"
)

// ExecutionConsole prints one summary line per execution order.
type ExecutionConsole struct {
	out *LineWriter
}

func NewExecutionConsole(w io.Writer) *ExecutionConsole {
	return &ExecutionConsole{out: NewLineWriter(w)}
}

func (c *ExecutionConsole) Publish(o domain.ExecutionOrder) error {
	return c.out.WriteLine(fmt.Sprintf(
		"Executing order: bond=%s order_id=%s type=%s side=%s price=%s quantity=%d",
		o.Product.ID, o.OrderID, o.Type, o.Side, o.Price, o.TotalQuantity(),
	))
}

// StreamingConsole prints one summary line per two-way quote.
type StreamingConsole struct {
	out *LineWriter
}

func NewStreamingConsole(w io.Writer) *StreamingConsole {
	return &StreamingConsole{out: NewLineWriter(w)}
}

func (c *StreamingConsole) Publish(s domain.PriceStream) error {
	return c.out.WriteLine(fmt.Sprintf(
		"Streaming: bond=%s bid=%s bid_qty=%d offer=%s offer_qty=%d",
		s.Product.ID,
		s.Bid.Price.StringFixed(8), s.Bid.VisibleQuantity+s.Bid.HiddenQuantity,
		s.Offer.Price.StringFixed(8), s.Offer.VisibleQuantity+s.Offer.HiddenQuantity,
	))
}

// QuoteConsole prints the quotes sent back to clients for inquiries.
type QuoteConsole struct {
	out *LineWriter
}

func NewQuoteConsole(w io.Writer) *QuoteConsole {
	return &QuoteConsole{out: NewLineWriter(w)}
}

func (c *QuoteConsole) Publish(i domain.Inquiry) error {
	return c.out.WriteLine(fmt.Sprintf(
		"Quote: inquiry=%s bond=%s side=%s quantity=%d price=%s",
		i.ID, i.Product.ID, i.Side, i.Quantity, i.Price,
	))
}
