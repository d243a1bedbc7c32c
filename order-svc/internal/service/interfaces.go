package service

import (
	"context"

	"campus-canteen/auth"
	"campus-canteen/order-svc/internal/domain"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, orderID int) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int, from, to domain.Status) (bool, error)
	SaveQRCode(ctx context.Context, orderID int, qr []byte) error
	GetQRCode(ctx context.Context, orderID int) ([]byte, error)
	CheckoutRules(ctx context.Context) (domain.CheckoutRules, error)
	MenuItemsByID(ctx context.Context, ids []int) (map[int]domain.CatalogItem, error)
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type OrderServiceInterface interface {
	Place(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error)
	Quote(ctx context.Context, items []domain.OrderItem) (domain.Quote, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, orderID int) (*domain.Order, error)
	GetQRCode(ctx context.Context, orderID int) ([]byte, error)
	QRLink(orderID int) string
}

type LifecycleInterface interface {
	ApplyTransition(ctx context.Context, orderID int, to domain.Status) (*domain.Order, error)
	Advance(ctx context.Context, orderID int) (*domain.Order, error)
	Cancel(ctx context.Context, orderID int, actor auth.Identity) (*domain.Order, error)
}

var (
	_ OrderServiceInterface = (*OrderService)(nil)
	_ LifecycleInterface    = (*Lifecycle)(nil)
)
