package service

import (
	"context"
	"fmt"
	"time"

	"campus-canteen/metrics"
	"campus-canteen/report-svc/internal/domain"

	"golang.org/x/sync/errgroup"
)

type ReportService struct {
	repo     ReportRepository
	board    Leaderboard
	location *time.Location
	now      func() time.Time
}

func NewReportService(repo ReportRepository, board Leaderboard, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{repo: repo, board: board, location: loc, now: time.Now}
}

// Daily builds the report for the calendar day containing day, evaluated in
// the service's report time zone. Orders, menu items and categories are
// fetched concurrently; the catalog snapshot is taken once per report.
func (s *ReportService) Daily(ctx context.Context, day time.Time) (*domain.DailyReport, error) {
	start, end := domain.DayWindow(day.In(s.location))

	var (
		orders     []domain.Order
		items      []domain.MenuItemRef
		categories map[int]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.repo.ListCompletedOrders(gctx, start, end)
		if err != nil {
			return fmt.Errorf("failed to load orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		items, err = s.repo.ListMenuItems(gctx)
		if err != nil {
			return fmt.Errorf("failed to load menu items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = s.repo.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := domain.Aggregate(start, orders, domain.NewCatalog(items, categories))
	metrics.ReportsGenerated.Inc()
	return &report, nil
}

// TopRated reads the rating leaderboard and names each entry from the current
// catalog. Entries for deleted menu items are dropped.
func (s *ReportService) TopRated(ctx context.Context, limit int) ([]domain.RankedItem, error) {
	ranked, err := s.board.TopRated(ctx, limit)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}
	names := make(map[int]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}

	named := make([]domain.RankedItem, 0, len(ranked))
	for _, entry := range ranked {
		name, ok := names[entry.MenuItemID]
		if !ok {
			continue
		}
		entry.Name = name
		named = append(named, entry)
	}
	return named, nil
}

func (s *ReportService) PopularToday(ctx context.Context, limit int) ([]domain.RankedItem, error) {
	return s.board.PopularOn(ctx, s.now().In(s.location).Format("2006-01-02"), limit)
}
