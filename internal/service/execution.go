package service

import (
	"errors"
	"log/slog"

	"treasury_go/internal/algo"
	"treasury_go/internal/domain"
	"treasury_go/internal/store"
)

// AlgoExecutionService runs the execution algo on every order book update.
type AlgoExecutionService struct {
	executor   *algo.Executor
	executions *store.Store[domain.AlgoExecution]
	metrics    Recorder
}

func NewAlgoExecutionService(executor *algo.Executor, metrics Recorder) *AlgoExecutionService {
	return &AlgoExecutionService{
		executor:   executor,
		executions: store.New[domain.AlgoExecution]("algo_execution"),
		metrics:    orNop(metrics),
	}
}

func (s *AlgoExecutionService) Store() *store.Store[domain.AlgoExecution] {
	return s.executions
}

// OnOrderBook publishes an algo execution when the book is tight enough.
// ok is false when the algo decided not to trade.
func (s *AlgoExecutionService) OnOrderBook(ob domain.OrderBook) (domain.AlgoExecution, bool, error) {
	exec, ok, err := s.executor.OnOrderBook(ob)
	if err != nil || !ok {
		return exec, ok, err
	}
	s.executions.Publish(exec)
	return exec, true, nil
}

// Listener subscribes the service to a market data store.
// One-sided books are skipped with a warning.
func (s *AlgoExecutionService) Listener() store.Listener[domain.OrderBook] {
	return store.OnAdd(func(ob domain.OrderBook) {
		_, _, err := s.OnOrderBook(ob)
		if errors.Is(err, domain.ErrEmptyBook) {
			slog.Warn("Skipping one-sided book", slog.String("product", ob.Key()))
			return
		}
		if err != nil {
			listenerError(s.metrics, "algo_execution", err, slog.String("product", ob.Key()))
		}
	})
}

// ExecutionService sends orders to the execution connector and keeps the latest one per product.
type ExecutionService struct {
	orders    *store.Store[domain.ExecutionOrder]
	connector domain.Publisher[domain.ExecutionOrder]
	metrics   Recorder
}

// NewExecutionService publishes every executed order to connector; nil means no connector.
func NewExecutionService(connector domain.Publisher[domain.ExecutionOrder], metrics Recorder) *ExecutionService {
	return &ExecutionService{
		orders:    store.New[domain.ExecutionOrder]("execution"),
		connector: connector,
		metrics:   orNop(metrics),
	}
}

func (s *ExecutionService) Store() *store.Store[domain.ExecutionOrder] {
	return s.orders
}

// ExecuteOrder routes order to venue: the connector sees it first, then the store's listeners.
func (s *ExecutionService) ExecuteOrder(order domain.ExecutionOrder, venue domain.Venue) error {
	slog.Info("⚡ Executing order",
		slog.String("product", order.Product.ID),
		slog.String("order_id", order.OrderID),
		slog.String("side", string(order.Side)),
		slog.String("price", order.Price.String()),
		slog.String("venue", string(venue)),
	)

	var err error
	if s.connector != nil {
		err = s.connector.Publish(order)
	}

	s.metrics.RecordExecution()
	s.orders.Publish(order)
	return err
}

// Listener subscribes the service to an algo execution store.
func (s *ExecutionService) Listener() store.Listener[domain.AlgoExecution] {
	return store.OnAdd(func(a domain.AlgoExecution) {
		if err := s.ExecuteOrder(a.Order, a.Venue); err != nil {
			listenerError(s.metrics, "execution", err, slog.String("order_id", a.Order.OrderID))
		}
	})
}
