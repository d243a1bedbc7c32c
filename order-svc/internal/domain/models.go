package domain

import (
	"fmt"
	"math"
	"time"

	"campus-canteen/apperr"
)

type OrderType string

const (
	OrderTypeDineIn   OrderType = "Dine-In"
	OrderTypeTakeAway OrderType = "Take Away"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentOnline PaymentMethod = "Online"
)

// OrderItem is a value snapshot of a menu item taken when the order is placed.
// Name and Price sent by a client are replaced from the catalog.
type OrderItem struct {
	MenuItemID int     `json:"menu_item_id" validate:"gt=0"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity" validate:"gt=0"`
	Price      float64 `json:"price" validate:"gte=0"`
}

// CatalogItem is the part of a menu item an order snapshots.
type CatalogItem struct {
	ID      int
	Name    string
	Price   float64
	InStock bool
}

// Snapshot prices items from the catalog. Every item must exist and be in
// stock; the returned slice is a fresh copy.
func Snapshot(items []OrderItem, catalog map[int]CatalogItem) ([]OrderItem, error) {
	out := make([]OrderItem, len(items))
	for i, item := range items {
		entry, ok := catalog[item.MenuItemID]
		if !ok {
			return nil, apperr.Invalid("items", fmt.Sprintf("menu item %d does not exist", item.MenuItemID))
		}
		if !entry.InStock {
			return nil, apperr.Invalid("items", fmt.Sprintf("%s is out of stock", entry.Name))
		}
		out[i] = OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       entry.Name,
			Quantity:   item.Quantity,
			Price:      entry.Price,
		}
	}
	return out, nil
}

type OrderDraft struct {
	UserID        string        `json:"-"`
	Items         []OrderItem   `json:"items" validate:"required,min=1,dive"`
	TotalAmount   float64       `json:"total_amount" validate:"gt=0"`
	OrderType     OrderType     `json:"order_type" validate:"oneof='Dine-In' 'Take Away'"`
	PaymentMethod PaymentMethod `json:"payment_method" validate:"oneof=Cash Online"`
}

type Order struct {
	ID            int           `json:"id"`
	UserID        string        `json:"user_id"`
	Items         []OrderItem   `json:"items"`
	TotalAmount   float64       `json:"total_amount"`
	Status        Status        `json:"status"`
	OrderType     OrderType     `json:"order_type"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	QRCode        string        `json:"qr_code,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// CheckoutRules are the settings that gate order placement.
type CheckoutRules struct {
	TaxRate            float64 `json:"tax_rate"`
	IsOpen             bool    `json:"is_open"`
	MinimumOrderAmount float64 `json:"minimum_order_amount"`
}

func DefaultCheckoutRules() CheckoutRules {
	return CheckoutRules{TaxRate: 5, IsOpen: true}
}

type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// TotalTolerance is how far a client-computed total may drift from the
// server's quote.
const TotalTolerance = 0.01

// NewQuote prices items with a percentage tax rate (5 means 5%).
func NewQuote(items []OrderItem, taxRate float64) Quote {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	subtotal = round2(subtotal)
	tax := round2(subtotal * taxRate / 100)
	return Quote{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    round2(subtotal + tax),
	}
}

func (q Quote) Reconciles(total float64) bool {
	return math.Abs(q.Total-total) <= TotalTolerance+1e-9
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// OrderEvent is published to the orders topic after each write.
type OrderEvent struct {
	Type      string      `json:"type"`
	OrderID   int         `json:"order_id"`
	UserID    string      `json:"user_id"`
	Status    Status      `json:"status"`
	Items     []OrderItem `json:"items,omitempty"`
	Total     float64     `json:"total_amount"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	EventOrderPlaced   = "order_placed"
	EventStatusChanged = "order_status_changed"
)
