package storage

import (
	"context"
	"strconv"
	"time"

	"campus-canteen/agg-svc/internal/domain"
	"campus-canteen/apperr"
	"campus-canteen/config"

	"github.com/redis/go-redis/v9"
)

// dailyRetention keeps a week of popularity boards.
const dailyRetention = 7 * 24 * time.Hour

type Store struct {
	rdb     *redis.Client
	timeout time.Duration
}

func NewStore(rdb *redis.Client, timeout time.Duration) *Store {
	return &Store{rdb: rdb, timeout: timeout}
}

// MirrorRatingStats writes the stats hash and the all-time leaderboard entry
// for one menu item in a single transaction.
func (s *Store) MirrorRatingStats(ctx context.Context, menuItemID int, avgRating float64, ratingCount int) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	member := strconv.Itoa(menuItemID)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, config.MenuItemStatsKey(menuItemID), map[string]interface{}{
			"avg_rating":   avgRating,
			"rating_count": ratingCount,
			"last_updated": time.Now().Unix(),
		})
		if ratingCount == 0 {
			pipe.ZRem(ctx, config.KeyRatingsAllTime, member)
		} else {
			pipe.ZAdd(ctx, config.KeyRatingsAllTime, redis.Z{Score: avgRating, Member: member})
		}
		return nil
	})
	return apperr.FromStore(err)
}

func (s *Store) RecordPopularity(ctx context.Context, day string, items []domain.EventItem) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := config.DailyPopularityKey(day)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, item := range items {
			if item.Quantity <= 0 || item.Name == "" {
				continue
			}
			pipe.ZIncrBy(ctx, key, float64(item.Quantity), item.Name)
		}
		pipe.Expire(ctx, key, dailyRetention)
		return nil
	})
	return apperr.FromStore(err)
}
