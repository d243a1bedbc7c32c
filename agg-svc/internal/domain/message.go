package domain

import "time"

const (
	EventRatingAverageUpdated = "rating_average_updated"
	EventOrderStatusChanged   = "order_status_changed"

	StatusCompleted = "Completed"
)

type EventItem struct {
	MenuItemID int    `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

// Event is the union of the JSON payloads published on the orders and
// ratings topics. Fields that do not apply to a given type stay zero.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	OrderID int         `json:"order_id"`
	Status  string      `json:"status"`
	Items   []EventItem `json:"items"`

	MenuItemID  int     `json:"menu_item_id"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}
