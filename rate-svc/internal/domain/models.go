package domain

import "time"

// Rating is one user's score for one menu item. A user has at most one
// rating per item; resubmitting overwrites the value and keeps CreatedAt.
type Rating struct {
	MenuItemID int       `json:"menu_item_id"`
	UserID     string    `json:"user_id"`
	Rating     int       `json:"rating" validate:"min=1,max=5"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ItemStats struct {
	MenuItemID  int     `json:"menu_item_id"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}

// Average is the arithmetic mean of the ratings, or zero when there are none.
func Average(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(ratings))
}

const EventAverageUpdated = "rating_average_updated"

type RatingEvent struct {
	Type        string    `json:"type"`
	MenuItemID  int       `json:"menu_item_id"`
	AvgRating   float64   `json:"avg_rating"`
	RatingCount int       `json:"rating_count"`
	Timestamp   time.Time `json:"timestamp"`
}
