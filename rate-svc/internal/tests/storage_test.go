package tests

import (
	"context"
	"regexp"
	"testing"
	"time"

	"campus-canteen/apperr"
	"campus-canteen/config"
	"campus-canteen/rate-svc/internal/domain"
	"campus-canteen/rate-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*storage.PostgresRepository, sqlmock.Sqlmock) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storage.NewPostgresRepository(db, time.Second), sqlMock
}

func TestPostgres_UpsertRating(t *testing.T) {
	repo, sqlMock := newMockRepo(t)
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(48 * time.Hour)

	sqlMock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (menu_item_id, user_id)")).
		WithArgs(4, "stud-1", 5).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, updated))

	rating := &domain.Rating{MenuItemID: 4, UserID: "stud-1", Rating: 5}
	require.NoError(t, repo.UpsertRating(context.Background(), rating))
	assert.Equal(t, created, rating.CreatedAt)
	assert.Equal(t, updated, rating.UpdatedAt)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPostgres_UpsertRatingDeletedItem(t *testing.T) {
	repo, sqlMock := newMockRepo(t)
	sqlMock.ExpectQuery(regexp.QuoteMeta("INSERT INTO ratings")).
		WillReturnError(&pq.Error{Code: "23503"})

	err := repo.UpsertRating(context.Background(), &domain.Rating{MenuItemID: 4, UserID: "stud-1", Rating: 5})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPostgres_ListRatings(t *testing.T) {
	repo, sqlMock := newMockRepo(t)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM ratings")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"menu_item_id", "user_id", "rating", "created_at", "updated_at"}).
			AddRow(4, "stud-1", 5, at, at).
			AddRow(4, "stud-2", 3, at, at))

	ratings, err := repo.ListRatings(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.Equal(t, 4.0, domain.Average(ratings))
}

func TestPostgres_SaveAverage(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, sqlMock := newMockRepo(t)
		sqlMock.ExpectExec(regexp.QuoteMeta("UPDATE menu_items SET avg_rating = $1, rating_count = $2 WHERE id = $3")).
			WithArgs(4.5, 2, 4).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SaveAverage(context.Background(), domain.ItemStats{MenuItemID: 4, AvgRating: 4.5, RatingCount: 2}))
	})

	t.Run("missing_item", func(t *testing.T) {
		repo, sqlMock := newMockRepo(t)
		sqlMock.ExpectExec(regexp.QuoteMeta("UPDATE menu_items")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveAverage(context.Background(), domain.ItemStats{MenuItemID: 4})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestRedisCatalogCache_InvalidateMenuItem(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	require.NoError(t, mr.Set(config.CacheKeyMenuItems, "[]"))
	require.NoError(t, mr.Set(config.MenuItemCacheKey(4), "{}"))
	require.NoError(t, mr.Set(config.MenuItemCacheKey(5), "{}"))

	cache := storage.NewRedisCatalogCache(client)
	require.NoError(t, cache.InvalidateMenuItem(context.Background(), 4))

	assert.False(t, mr.Exists(config.CacheKeyMenuItems))
	assert.False(t, mr.Exists(config.MenuItemCacheKey(4)))
	assert.True(t, mr.Exists(config.MenuItemCacheKey(5)))
}
