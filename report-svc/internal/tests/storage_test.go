package tests

import (
	"context"
	"regexp"
	"testing"
	"time"

	"campus-canteen/config"
	"campus-canteen/report-svc/internal/domain"
	"campus-canteen/report-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
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

func TestPostgres_ListCompletedOrders(t *testing.T) {
	repo, sqlMock := newMockRepo(t)
	start, end := domain.DayWindow(time.Date(2024, 3, 14, 9, 0, 0, 0, ist))
	at := start.Add(10 * time.Hour)

	require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, ist), end)

	sqlMock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 AND created_at >= $2 AND created_at < $3")).
		WithArgs(domain.StatusCompleted, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "total_amount", "created_at"}).
			AddRow(7, "Completed", 105.0, at).
			AddRow(8, "Completed", 47.25, at))
	sqlMock.ExpectQuery(regexp.QuoteMeta("WHERE order_id = ANY($1)")).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "menu_item_id", "name", "quantity", "price"}).
			AddRow(7, 1, "Masala Dosa", 2, 45.0).
			AddRow(7, 2, "Filter Coffee", 1, 15.0).
			AddRow(8, 2, "Filter Coffee", 3, 15.0))

	orders, err := repo.ListCompletedOrders(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Len(t, orders[0].Items, 2)
	assert.Equal(t, domain.OrderItem{MenuItemID: 2, Name: "Filter Coffee", Quantity: 3, Price: 15}, orders[1].Items[0])
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPostgres_ListCompletedOrdersEmptyDay(t *testing.T) {
	repo, sqlMock := newMockRepo(t)
	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "total_amount", "created_at"}))

	orders, err := repo.ListCompletedOrders(context.Background(), time.Now(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPostgres_CatalogSnapshot(t *testing.T) {
	repo, sqlMock := newMockRepo(t)
	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM menu_items")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_id", "is_vegetarian"}).
			AddRow(1, "Masala Dosa", 1, true).
			AddRow(4, "Samosa", 0, true))
	sqlMock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM categories")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "South Indian"))

	items, err := repo.ListMenuItems(context.Background())
	require.NoError(t, err)
	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)

	catalog := domain.NewCatalog(items, categories)
	assert.Equal(t, "South Indian", catalog[1].CategoryName)
	assert.Equal(t, "Uncategorized", catalog[4].CategoryName)
}

func TestRedisLeaderboard(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	ctx := context.Background()

	_, err := mr.ZAdd(config.KeyRatingsAllTime, 4.2, "1")
	require.NoError(t, err)
	_, err = mr.ZAdd(config.KeyRatingsAllTime, 4.8, "2")
	require.NoError(t, err)
	mr.HSet(config.MenuItemStatsKey(2), "rating_count", "12")

	_, err = mr.ZAdd(config.DailyPopularityKey("2024-03-14"), 9, "Filter Coffee")
	require.NoError(t, err)
	_, err = mr.ZAdd(config.DailyPopularityKey("2024-03-14"), 14, "Masala Dosa")
	require.NoError(t, err)

	board := storage.NewRedisLeaderboard(client)

	top, err := board.TopRated(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.RankedItem{
		{MenuItemID: 2, Score: 4.8, RatingCount: 12},
		{MenuItemID: 1, Score: 4.2},
	}, top)

	popular, err := board.PopularOn(ctx, "2024-03-14", 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.RankedItem{{Name: "Masala Dosa", Score: 14}}, popular)

	empty, err := board.PopularOn(ctx, "2024-03-15", 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
