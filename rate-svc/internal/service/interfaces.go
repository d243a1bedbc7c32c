package service

import (
	"context"

	"campus-canteen/rate-svc/internal/domain"
)

type RatingRepository interface {
	MenuItemExists(ctx context.Context, menuItemID int) (bool, error)
	UpsertRating(ctx context.Context, rating *domain.Rating) error
	ListRatings(ctx context.Context, menuItemID int) ([]domain.Rating, error)
	SaveAverage(ctx context.Context, stats domain.ItemStats) error
}

// CatalogCache drops cached catalog entries whose rating fields went stale.
type CatalogCache interface {
	InvalidateMenuItem(ctx context.Context, menuItemID int) error
}

type RatingPublisher interface {
	PublishRatingEvent(ctx context.Context, event domain.RatingEvent) error
}

type RatingServiceInterface interface {
	Submit(ctx context.Context, rating *domain.Rating) error
	RecomputeAverage(ctx context.Context, menuItemID int) (*domain.ItemStats, error)
	List(ctx context.Context, menuItemID int) ([]domain.Rating, error)
}

var _ RatingServiceInterface = (*RatingService)(nil)
