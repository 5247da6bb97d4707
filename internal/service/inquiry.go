package service

import (
	"fmt"
	"log/slog"

	"treasury_go/internal/domain"
	"treasury_go/internal/store"
	"treasury_go/pkg/price"
)

// DefaultQuotePrice is the price every received inquiry is answered with.
var DefaultQuotePrice = price.New(100, 0, 0)

// InquiryService answers customer inquiries. A RECEIVED inquiry is quoted straight
// away: the quote goes out through the connector and comes back as QUOTED, which the
// service completes to DONE.
type InquiryService struct {
	inquiries  *store.Store[domain.Inquiry]
	connector  domain.Publisher[domain.Inquiry]
	quotePrice price.Value
	metrics    Recorder
}

// NewInquiryService registers the auto-quote listener before any other listener.
func NewInquiryService(connector domain.Publisher[domain.Inquiry], quotePrice price.Value, metrics Recorder) *InquiryService {
	s := &InquiryService{
		inquiries:  store.New[domain.Inquiry]("inquiry"),
		connector:  connector,
		quotePrice: quotePrice,
		metrics:    orNop(metrics),
	}
	s.inquiries.AddListener(store.OnAdd(s.autoQuote))
	return s
}

func (s *InquiryService) Store() *store.Store[domain.Inquiry] {
	return s.inquiries
}

// OnMessage stores inq and notifies listeners. A QUOTED inquiry is stored as DONE.
func (s *InquiryService) OnMessage(inq domain.Inquiry) {
	if inq.State == domain.InquiryQuoted {
		inq = inq.WithState(domain.InquiryDone)
	}
	s.inquiries.Publish(inq)
}

// SendQuote prices the inquiry, sends it to the client and feeds the quoted inquiry back in.
func (s *InquiryService) SendQuote(inquiryID string, px price.Value) error {
	inq, err := s.inquiries.Get(inquiryID)
	if err != nil {
		return fmt.Errorf("send quote: %w", err)
	}

	quoted := inq.WithQuote(px)
	if s.connector != nil {
		if err := s.connector.Publish(quoted); err != nil {
			return fmt.Errorf("send quote %s: %w", inquiryID, err)
		}
	}

	s.metrics.RecordInquiryQuoted()
	s.OnMessage(quoted)
	return nil
}

// RejectInquiry marks the stored inquiry REJECTED without notifying listeners.
func (s *InquiryService) RejectInquiry(inquiryID string) error {
	inq, err := s.inquiries.Get(inquiryID)
	if err != nil {
		return fmt.Errorf("reject inquiry: %w", err)
	}

	// Upsert would fan out; rejection is silent.
	s.inquiries.Replace(inquiryID, inq.WithState(domain.InquiryRejected))
	slog.Info("Inquiry rejected", slog.String("inquiry_id", inquiryID))
	return nil
}

func (s *InquiryService) Get(inquiryID string) (domain.Inquiry, error) {
	return s.inquiries.Get(inquiryID)
}

func (s *InquiryService) autoQuote(inq domain.Inquiry) {
	if inq.State != domain.InquiryReceived {
		return
	}
	if err := s.SendQuote(inq.ID, s.quotePrice); err != nil {
		listenerError(s.metrics, "inquiry", err, slog.String("inquiry_id", inq.ID))
	}
}
