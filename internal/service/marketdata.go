package service

import (
	"fmt"

	"treasury_go/internal/book"
	"treasury_go/internal/domain"
	"treasury_go/internal/store"
)

// MarketDataService keeps the latest order book per product.
type MarketDataService struct {
	books *store.Store[domain.OrderBook]
}

func NewMarketDataService() *MarketDataService {
	return &MarketDataService{books: store.New[domain.OrderBook]("market_data")}
}

func (s *MarketDataService) Store() *store.Store[domain.OrderBook] {
	return s.books
}

// OnMessage replaces the product's book and notifies listeners.
func (s *MarketDataService) OnMessage(ob domain.OrderBook) {
	s.books.Publish(ob)
}

// BestBidOffer returns the best bid and offer of the latest book for productID.
func (s *MarketDataService) BestBidOffer(productID string) (domain.BidOffer, error) {
	ob, err := s.books.Get(productID)
	if err != nil {
		return domain.BidOffer{}, err
	}
	bo, err := book.BestBidOffer(ob)
	if err != nil {
		return domain.BidOffer{}, fmt.Errorf("best bid/offer: %w", err)
	}
	return bo, nil
}

// AggregateDepth returns the latest book for productID with one order per price level.
func (s *MarketDataService) AggregateDepth(productID string) (domain.OrderBook, error) {
	ob, err := s.books.Get(productID)
	if err != nil {
		return domain.OrderBook{}, err
	}
	agg, err := book.AggregateDepth(ob)
	if err != nil {
		return domain.OrderBook{}, fmt.Errorf("aggregate depth: %w", err)
	}
	return agg, nil
}
