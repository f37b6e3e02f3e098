// Package service orchestrates the order and product stores behind the API.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Ant-man74/HeraWebMono/internal/awsx"
	"github.com/Ant-man74/HeraWebMono/internal/metrics"
	"github.com/Ant-man74/HeraWebMono/internal/orders"
	"github.com/Ant-man74/HeraWebMono/internal/pagination"
)

// OrderService manages order persistence and confirmation dispatch.
type OrderService struct {
	store     *orders.Store
	publisher *awsx.Publisher
	metrics   *metrics.Recorder
	logger    *slog.Logger
}

func NewOrderService(store *orders.Store, publisher *awsx.Publisher, rec *metrics.Recorder, logger *slog.Logger) *OrderService {
	return &OrderService{
		store:     store,
		publisher: publisher,
		metrics:   rec,
		logger:    logger,
	}
}

// Save persists the order (insert when the id is absent, replace when
// present) and enqueues exactly one confirmation for the persisted result.
// The confirmation is dispatched here and nowhere else; a failed enqueue is
// logged and does not fail the save.
func (s *OrderService) Save(ctx context.Context, o orders.Order) (orders.Order, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	saved, err := s.store.Put(ctx, o)
	if err != nil {
		return orders.Order{}, fmt.Errorf("save order: %w", err)
	}

	msg := awsx.ConfirmationMessage{OrderID: saved.ID, User: saved.User}
	attrs := map[string]string{"order_id": saved.ID}
	if err := s.publisher.SendOrderConfirmation(ctx, msg, attrs); err != nil {
		s.logger.Error("enqueue order confirmation", "order_id", saved.ID, "error", err)
	}

	s.metrics.Count(ctx, "OrdersSaved", 1)
	s.logger.Debug("saved order", "order_id", saved.ID)
	return saved, nil
}

// FindAll returns one page of orders.
func (s *OrderService) FindAll(ctx context.Context, req pagination.Request) (pagination.Page[orders.Order], error) {
	return s.store.List(ctx, req)
}

// FindOne returns the order, or nil when absent.
func (s *OrderService) FindOne(ctx context.Context, id string) (*orders.Order, error) {
	return s.store.Get(ctx, id)
}

// Delete removes the order by id; deleting an absent id succeeds.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	s.logger.Debug("deleting order", "order_id", id)
	return s.store.Delete(ctx, id)
}

// FindOrdersByUser returns one page of the user's orders, newest first.
func (s *OrderService) FindOrdersByUser(ctx context.Context, user string, req pagination.Request) (pagination.Page[orders.Order], error) {
	return s.store.ListByUser(ctx, user, req)
}
