package service

import (
	"log/slog"

	"treasury_go/internal/algo"
	"treasury_go/internal/domain"
	"treasury_go/internal/store"
)

// AlgoStreamingService turns every internal price into a two-way quote.
type AlgoStreamingService struct {
	streamer *algo.Streamer
	streams  *store.Store[domain.AlgoStream]
}

func NewAlgoStreamingService(streamer *algo.Streamer) *AlgoStreamingService {
	return &AlgoStreamingService{
		streamer: streamer,
		streams:  store.New[domain.AlgoStream]("algo_streaming"),
	}
}

func (s *AlgoStreamingService) Store() *store.Store[domain.AlgoStream] {
	return s.streams
}

func (s *AlgoStreamingService) OnPrice(p domain.Price) domain.AlgoStream {
	as := s.streamer.OnPrice(p)
	s.streams.Publish(as)
	return as
}

// Listener subscribes the service to a pricing store.
func (s *AlgoStreamingService) Listener() store.Listener[domain.Price] {
	return store.OnAdd(func(p domain.Price) {
		s.OnPrice(p)
	})
}

// StreamingService publishes quotes to the streaming connector and keeps the latest per product.
type StreamingService struct {
	streams   *store.Store[domain.PriceStream]
	connector domain.Publisher[domain.PriceStream]
	metrics   Recorder
}

func NewStreamingService(connector domain.Publisher[domain.PriceStream], metrics Recorder) *StreamingService {
	return &StreamingService{
		streams:   store.New[domain.PriceStream]("streaming"),
		connector: connector,
		metrics:   orNop(metrics),
	}
}

func (s *StreamingService) Store() *store.Store[domain.PriceStream] {
	return s.streams
}

// PublishPrice sends ps to the connector, then stores it and notifies listeners.
func (s *StreamingService) PublishPrice(ps domain.PriceStream) error {
	var err error
	if s.connector != nil {
		err = s.connector.Publish(ps)
	}

	s.metrics.RecordQuote()
	s.streams.Publish(ps)
	return err
}

// Listener subscribes the service to an algo stream store.
func (s *StreamingService) Listener() store.Listener[domain.AlgoStream] {
	return store.OnAdd(func(as domain.AlgoStream) {
		if err := s.PublishPrice(as.Stream); err != nil {
			listenerError(s.metrics, "streaming", err, slog.String("product", as.Key()))
		}
	})
}
