package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"campus-canteen/apperr"
	"campus-canteen/metrics"
	"campus-canteen/order-svc/internal/domain"
)

type OrderService struct {
	repo      OrderRepository
	publisher OrderPublisher
	qrEncoder QRGenerator
}

func NewOrderService(repo OrderRepository, publisher OrderPublisher, qr QRGenerator) *OrderService {
	return &OrderService{repo: repo, publisher: publisher, qrEncoder: qr}
}

// Place validates the draft against the current checkout rules and stores it
// with status Order Placed. Item names and prices come from the catalog and
// the stored total is the server's quote.
func (s *OrderService) Place(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error) {
	if draft.UserID == "" {
		return nil, apperr.Invalid("user_id", "is required")
	}
	if err := apperr.Validate(draft); err != nil {
		return nil, err
	}

	rules, err := s.repo.CheckoutRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout rules: %w", err)
	}
	if !rules.IsOpen {
		return nil, apperr.Invalid("", "the canteen is currently closed")
	}

	items, err := s.snapshot(ctx, draft.Items)
	if err != nil {
		return nil, err
	}

	quote := domain.NewQuote(items, rules.TaxRate)
	if quote.Subtotal < rules.MinimumOrderAmount {
		return nil, apperr.Invalid("items", fmt.Sprintf("minimum order amount is %.2f", rules.MinimumOrderAmount))
	}
	if !quote.Reconciles(draft.TotalAmount) {
		return nil, apperr.Invalid("total_amount", fmt.Sprintf("expected %.2f, got %.2f", quote.Total, draft.TotalAmount))
	}

	order := &domain.Order{
		UserID:        draft.UserID,
		Items:         items,
		TotalAmount:   quote.Total,
		Status:        domain.StatusPlaced,
		OrderType:     draft.OrderType,
		PaymentMethod: draft.PaymentMethod,
	}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	metrics.OrdersPlaced.Inc()

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.ID); err == nil {
			if err := s.repo.SaveQRCode(ctx, order.ID, qr); err != nil {
				log.Printf("Warning: failed to save pickup code for order %d: %v", order.ID, err)
			}
		}
	}

	publish(ctx, s.publisher, domain.OrderEvent{
		Type:      domain.EventOrderPlaced,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Status:    order.Status,
		Items:     order.Items,
		Total:     order.TotalAmount,
		Timestamp: time.Now(),
	})

	log.Printf("Order %d placed by %s (%.2f)", order.ID, order.UserID, order.TotalAmount)
	return order, nil
}

func (s *OrderService) Quote(ctx context.Context, items []domain.OrderItem) (domain.Quote, error) {
	cart := struct {
		Items []domain.OrderItem `json:"items" validate:"required,min=1,dive"`
	}{Items: items}
	if err := apperr.Validate(cart); err != nil {
		return domain.Quote{}, err
	}

	rules, err := s.repo.CheckoutRules(ctx)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("failed to load checkout rules: %w", err)
	}
	priced, err := s.snapshot(ctx, items)
	if err != nil {
		return domain.Quote{}, err
	}
	return domain.NewQuote(priced, rules.TaxRate), nil
}

func (s *OrderService) snapshot(ctx context.Context, items []domain.OrderItem) ([]domain.OrderItem, error) {
	ids := make([]int, len(items))
	for i, item := range items {
		ids[i] = item.MenuItemID
	}
	catalog, err := s.repo.MenuItemsByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}
	return domain.Snapshot(items, catalog)
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListOrdersByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *OrderService) Get(ctx context.Context, orderID int) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, orderID)
}

func (s *OrderService) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	qr, err := s.repo.GetQRCode(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(orderID); err == nil {
			_ = s.repo.SaveQRCode(ctx, orderID, regenerated)
			return regenerated, nil
		}
	}
	return qr, nil
}

func (s *OrderService) QRLink(orderID int) string {
	return fmt.Sprintf("/api/orders/%d/qrcode", orderID)
}

func publish(ctx context.Context, publisher OrderPublisher, event domain.OrderEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishOrderEvent(ctx, event); err != nil {
		log.Printf("Warning: failed to publish %s for order %d: %v", event.Type, event.OrderID, err)
	}
}
