package tests

import (
	"context"
	"testing"
	"time"

	"campus-canteen/agg-svc/internal/domain"
	"campus-canteen/agg-svc/internal/storage"
	"campus-canteen/apperr"
	"campus-canteen/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*storage.Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return storage.NewStore(client, time.Second), mr
}

func TestStore_MirrorRatingStats(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.MirrorRatingStats(ctx, 4, 4.5, 2))

	assert.Equal(t, "4.5", mr.HGet(config.MenuItemStatsKey(4), "avg_rating"))
	assert.Equal(t, "2", mr.HGet(config.MenuItemStatsKey(4), "rating_count"))
	score, err := mr.ZScore(config.KeyRatingsAllTime, "4")
	require.NoError(t, err)
	assert.Equal(t, 4.5, score)

	require.NoError(t, store.MirrorRatingStats(ctx, 4, 3, 3))
	score, err = mr.ZScore(config.KeyRatingsAllTime, "4")
	require.NoError(t, err)
	assert.Equal(t, 3.0, score)
}

func TestStore_MirrorRatingStatsZeroCountDropsFromBoard(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.MirrorRatingStats(ctx, 4, 4.5, 2))
	require.NoError(t, store.MirrorRatingStats(ctx, 4, 0, 0))

	assert.False(t, mr.Exists(config.KeyRatingsAllTime))
	assert.Equal(t, "0", mr.HGet(config.MenuItemStatsKey(4), "rating_count"))
}

func TestStore_RecordPopularity(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	key := config.DailyPopularityKey("2024-03-14")

	require.NoError(t, store.RecordPopularity(ctx, "2024-03-14", []domain.EventItem{
		{MenuItemID: 1, Name: "Masala Dosa", Quantity: 2},
		{MenuItemID: 2, Name: "Filter Coffee", Quantity: 1},
	}))
	require.NoError(t, store.RecordPopularity(ctx, "2024-03-14", []domain.EventItem{
		{MenuItemID: 1, Name: "Masala Dosa", Quantity: 3},
		{MenuItemID: 5, Name: "", Quantity: 4},
	}))

	dosa, err := mr.ZScore(key, "Masala Dosa")
	require.NoError(t, err)
	assert.Equal(t, 5.0, dosa)
	coffee, err := mr.ZScore(key, "Filter Coffee")
	require.NoError(t, err)
	assert.Equal(t, 1.0, coffee)
	assert.Equal(t, 7*24*time.Hour, mr.TTL(key))
}

func TestStore_RedisDown(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	err := store.MirrorRatingStats(context.Background(), 1, 5, 1)
	assert.ErrorIs(t, err, apperr.ErrBackendUnavailable)
}
