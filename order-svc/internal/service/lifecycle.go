package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"campus-canteen/apperr"
	"campus-canteen/auth"
	"campus-canteen/metrics"
	"campus-canteen/order-svc/internal/domain"
)

// Lifecycle moves orders through the status graph. Every write is a
// compare-and-set on the status the caller observed, so two concurrent
// transitions from the same state cannot both succeed.
type Lifecycle struct {
	repo      OrderRepository
	publisher OrderPublisher
}

func NewLifecycle(repo OrderRepository, publisher OrderPublisher) *Lifecycle {
	return &Lifecycle{repo: repo, publisher: publisher}
}

func (l *Lifecycle) ApplyTransition(ctx context.Context, orderID int, to domain.Status) (*domain.Order, error) {
	if !to.Valid() {
		return nil, apperr.Invalid("status", fmt.Sprintf("unknown status %q", to))
	}
	order, err := l.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return l.transition(ctx, order, to)
}

func (l *Lifecycle) Advance(ctx context.Context, orderID int) (*domain.Order, error) {
	order, err := l.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	next, ok := domain.NextStatus(order.Status)
	if !ok {
		return nil, fmt.Errorf("%w: order %d is already %s", apperr.ErrInvalidTransition, orderID, order.Status)
	}
	return l.transition(ctx, order, next)
}

// Cancel lets admins cancel any open order. Students may cancel only their
// own orders and only before preparation starts.
func (l *Lifecycle) Cancel(ctx context.Context, orderID int, actor auth.Identity) (*domain.Order, error) {
	order, err := l.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		if order.UserID != actor.UID {
			return nil, apperr.NotFound(fmt.Sprintf("order %d", orderID))
		}
		if order.Status != domain.StatusPlaced {
			return nil, fmt.Errorf("%w: order %d is already %s and can only be cancelled by staff",
				apperr.ErrInvalidTransition, orderID, order.Status)
		}
	}
	return l.transition(ctx, order, domain.StatusCancelled)
}

func (l *Lifecycle) transition(ctx context.Context, order *domain.Order, to domain.Status) (*domain.Order, error) {
	from := order.Status
	if !domain.CanTransition(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, from, to)
	}

	updated, err := l.repo.UpdateStatus(ctx, order.ID, from, to)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("%w: order %d is no longer %s", apperr.ErrInvalidTransition, order.ID, from)
	}

	order.Status = to
	metrics.OrderTransitions.WithLabelValues(string(to)).Inc()
	log.Printf("Order %d: %s -> %s", order.ID, from, to)

	publish(ctx, l.publisher, domain.OrderEvent{
		Type:      domain.EventStatusChanged,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Status:    to,
		Items:     order.Items,
		Total:     order.TotalAmount,
		Timestamp: time.Now(),
	})
	return order, nil
}
