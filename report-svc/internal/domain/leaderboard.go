package domain

// RankedItem is one leaderboard row. For top-rated boards Score is the
// average rating; for popularity boards it is the quantity ordered.
type RankedItem struct {
	MenuItemID  int     `json:"menu_item_id,omitempty"`
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	RatingCount int     `json:"rating_count,omitempty"`
}
