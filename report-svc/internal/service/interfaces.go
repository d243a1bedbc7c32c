package service

import (
	"context"
	"time"

	"campus-canteen/report-svc/internal/domain"
)

type ReportRepository interface {
	ListCompletedOrders(ctx context.Context, start, end time.Time) ([]domain.Order, error)
	ListMenuItems(ctx context.Context) ([]domain.MenuItemRef, error)
	ListCategories(ctx context.Context) (map[int]string, error)
}

// Leaderboard reads the rankings agg-svc maintains from order and rating
// events.
type Leaderboard interface {
	TopRated(ctx context.Context, limit int) ([]domain.RankedItem, error)
	PopularOn(ctx context.Context, day string, limit int) ([]domain.RankedItem, error)
}

type ReportServiceInterface interface {
	Daily(ctx context.Context, day time.Time) (*domain.DailyReport, error)
	TopRated(ctx context.Context, limit int) ([]domain.RankedItem, error)
	PopularToday(ctx context.Context, limit int) ([]domain.RankedItem, error)
}

var _ ReportServiceInterface = (*ReportService)(nil)
