package domain

import "time"

type MenuCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required,max=64"`
}

// Availability restricts an item to a daily HH:MM window. A window whose end
// is before its start wraps past midnight.
type Availability struct {
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

func (a Availability) Contains(t time.Time) bool {
	hm := t.Format("15:04")
	if a.StartTime <= a.EndTime {
		return a.StartTime <= hm && hm < a.EndTime
	}
	return hm >= a.StartTime || hm < a.EndTime
}

// MenuItem is a catalog entry. AvgRating and RatingCount are maintained by
// the rating service and ignored on writes from this service.
type MenuItem struct {
	ID                    int           `json:"id"`
	Name                  string        `json:"name" validate:"required"`
	Price                 float64       `json:"price" validate:"gt=0"`
	CategoryID            int           `json:"category_id" validate:"gte=0"`
	Ingredients           []string      `json:"ingredients" validate:"dive,required"`
	ImageURL              string        `json:"image_url"`
	IsVegetarian          bool          `json:"is_vegetarian"`
	InStock               bool          `json:"in_stock"`
	AvgRating             float64       `json:"avg_rating"`
	RatingCount           int           `json:"rating_count"`
	ScheduledAvailability *Availability `json:"scheduled_availability,omitempty"`
	CreatedAt             time.Time     `json:"created_at"`
}

// AvailableAt reports whether the item can be ordered at t (local time).
func (m MenuItem) AvailableAt(t time.Time) bool {
	if !m.InStock {
		return false
	}
	if m.ScheduledAvailability == nil {
		return true
	}
	return m.ScheduledAvailability.Contains(t)
}

type CanteenSettings struct {
	CanteenName          string  `json:"canteen_name" validate:"required"`
	OpeningTime          string  `json:"opening_time" validate:"required,datetime=15:04"`
	ClosingTime          string  `json:"closing_time" validate:"required,datetime=15:04"`
	IsOpen               bool    `json:"is_open"`
	TaxRate              float64 `json:"tax_rate" validate:"gte=0,lte=100"`
	DeliveryFee          float64 `json:"delivery_fee" validate:"gte=0"`
	MinimumOrderAmount   float64 `json:"minimum_order_amount" validate:"gte=0"`
	OrderPreparationTime int     `json:"order_preparation_time" validate:"gte=0"`
}

func DefaultSettings() CanteenSettings {
	return CanteenSettings{
		CanteenName:          "Campus Canteen",
		OpeningTime:          "08:00",
		ClosingTime:          "20:00",
		IsOpen:               true,
		TaxRate:              5,
		OrderPreparationTime: 15,
	}
}
