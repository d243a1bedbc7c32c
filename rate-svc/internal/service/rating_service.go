package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"campus-canteen/apperr"
	"campus-canteen/metrics"
	"campus-canteen/rate-svc/internal/domain"
)

type RatingService struct {
	repository RatingRepository
	cache      CatalogCache
	publisher  RatingPublisher
}

func NewRatingService(repository RatingRepository, cache CatalogCache, publisher RatingPublisher) *RatingService {
	return &RatingService{
		repository: repository,
		cache:      cache,
		publisher:  publisher,
	}
}

// Submit upserts the caller's rating. It does not touch the item's average;
// callers follow up with RecomputeAverage.
func (s *RatingService) Submit(ctx context.Context, rating *domain.Rating) error {
	if rating.UserID == "" {
		return apperr.Invalid("user_id", "is required")
	}
	if err := apperr.Validate(rating); err != nil {
		return err
	}

	exists, err := s.repository.MenuItemExists(ctx, rating.MenuItemID)
	if err != nil {
		return fmt.Errorf("failed to look up menu item: %w", err)
	}
	if !exists {
		return apperr.NotFound(fmt.Sprintf("menu item %d", rating.MenuItemID))
	}

	if err := s.repository.UpsertRating(ctx, rating); err != nil {
		return err
	}
	metrics.RatingsSubmitted.Inc()
	return nil
}

// RecomputeAverage rescans every rating of the item and stores the mean and
// count on the menu item.
func (s *RatingService) RecomputeAverage(ctx context.Context, menuItemID int) (*domain.ItemStats, error) {
	ratings, err := s.repository.ListRatings(ctx, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}

	stats := domain.ItemStats{
		MenuItemID:  menuItemID,
		AvgRating:   domain.Average(ratings),
		RatingCount: len(ratings),
	}
	if err := s.repository.SaveAverage(ctx, stats); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateMenuItem(ctx, menuItemID); err != nil {
			log.Printf("Warning: failed to invalidate cached menu item %d: %v", menuItemID, err)
		}
	}

	if s.publisher != nil {
		event := domain.RatingEvent{
			Type:        domain.EventAverageUpdated,
			MenuItemID:  menuItemID,
			AvgRating:   stats.AvgRating,
			RatingCount: stats.RatingCount,
			Timestamp:   time.Now(),
		}
		if err := s.publisher.PublishRatingEvent(ctx, event); err != nil {
			log.Printf("Warning: failed to publish rating event for menu item %d: %v", menuItemID, err)
		}
	}

	return &stats, nil
}

func (s *RatingService) List(ctx context.Context, menuItemID int) ([]domain.Rating, error) {
	return s.repository.ListRatings(ctx, menuItemID)
}
