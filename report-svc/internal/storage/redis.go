package storage

import (
	"context"
	"strconv"

	"campus-canteen/apperr"
	"campus-canteen/config"
	"campus-canteen/report-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

type RedisLeaderboard struct {
	Client *redis.Client
}

func NewRedisLeaderboard(client *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{Client: client}
}

// TopRated returns menu item ids by average rating, highest first. Names are
// left empty for the caller to resolve.
func (l *RedisLeaderboard) TopRated(ctx context.Context, limit int) ([]domain.RankedItem, error) {
	members, err := l.Client.ZRevRangeWithScores(ctx, config.KeyRatingsAllTime, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	ranked := make([]domain.RankedItem, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m.Member.(string))
		if err != nil {
			continue
		}
		entry := domain.RankedItem{MenuItemID: id, Score: m.Score}
		if count, err := l.Client.HGet(ctx, config.MenuItemStatsKey(id), "rating_count").Int(); err == nil {
			entry.RatingCount = count
		}
		ranked = append(ranked, entry)
	}
	return ranked, nil
}

func (l *RedisLeaderboard) PopularOn(ctx context.Context, day string, limit int) ([]domain.RankedItem, error) {
	members, err := l.Client.ZRevRangeWithScores(ctx, config.DailyPopularityKey(day), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	ranked := make([]domain.RankedItem, 0, len(members))
	for _, m := range members {
		ranked = append(ranked, domain.RankedItem{Name: m.Member.(string), Score: m.Score})
	}
	return ranked, nil
}
