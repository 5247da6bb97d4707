package service

import (
	"fmt"
	"log/slog"

	"treasury_go/internal/algo"
	"treasury_go/internal/domain"
	"treasury_go/internal/store"
)

// LineSink is an append-only text output (history files, GUI file).
type LineSink interface {
	WriteLine(line string) error
}

// GUIService forwards a throttled subset of prices to the GUI file as
// "virtualMillis,productId,mid,spread".
type GUIService struct {
	throttle *algo.Throttle
	out      LineSink
	metrics  Recorder
}

func NewGUIService(throttle *algo.Throttle, out LineSink, metrics Recorder) *GUIService {
	return &GUIService{throttle: throttle, out: out, metrics: orNop(metrics)}
}

// OnPrice advances the virtual clock and writes p when the throttle lets it through.
// It reports whether p was forwarded.
func (s *GUIService) OnPrice(p domain.Price) (bool, error) {
	now, forward := s.throttle.Next()
	if !forward {
		return false, nil
	}

	line := fmt.Sprintf("%d,%s,%s,%s", now, p.Product.ID, p.Mid.String(), p.BidOfferSpread.String())
	if err := s.out.WriteLine(line); err != nil {
		return true, fmt.Errorf("gui write: %w", err)
	}
	s.metrics.RecordGUIUpdate()

	if s.throttle.Exhausted() {
		slog.Info("GUI update cap reached", slog.Int("forwarded", s.throttle.Forwarded()))
	}
	return true, nil
}

// Listener subscribes the service to a pricing store.
func (s *GUIService) Listener() store.Listener[domain.Price] {
	return store.OnAdd(func(p domain.Price) {
		if _, err := s.OnPrice(p); err != nil {
			listenerError(s.metrics, "gui", err, slog.String("product", p.Key()))
		}
	})
}
