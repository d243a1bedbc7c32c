package tests

import (
	"context"
	"testing"
	"time"

	"campus-canteen/config"
	"campus-canteen/menu-svc/internal/domain"
	"campus-canteen/menu-svc/internal/mocks"
	"campus-canteen/menu-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCachedCatalog(t *testing.T) (*storage.CachedCatalog, *mocks.CatalogRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := mocks.NewCatalogRepository(t)
	return storage.NewCachedCatalog(repo, client, time.Minute), repo, mr
}

func TestCachedCatalog_ListMenuItemsReadsThrough(t *testing.T) {
	cache, repo, mr := newCachedCatalog(t)
	repo.On("ListMenuItems", mock.Anything).Return([]domain.MenuItem{dosa()}, nil).Once()

	first, err := cache.ListMenuItems(context.Background())
	require.NoError(t, err)
	second, err := cache.ListMenuItems(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first[0].Name, second[0].Name)
	assert.True(t, mr.Exists(config.CacheKeyMenuItems))
	assert.Equal(t, time.Minute, mr.TTL(config.CacheKeyMenuItems))
}

func TestCachedCatalog_RacedFillExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := mocks.NewCatalogRepository(t)
	cache := storage.NewCachedCatalog(repo, client, config.CatalogCacheTTL)

	stale := dosa()
	fresh := dosa()
	fresh.Price = 50
	repo.On("ListMenuItems", mock.Anything).
		Run(func(mock.Arguments) { mr.Del(config.CacheKeyMenuItems) }).
		Return([]domain.MenuItem{stale}, nil).Once()
	repo.On("ListMenuItems", mock.Anything).Return([]domain.MenuItem{fresh}, nil).Once()

	_, err := cache.ListMenuItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.CatalogCacheTTL, mr.TTL(config.CacheKeyMenuItems))

	mr.FastForward(config.CatalogCacheTTL)
	items, err := cache.ListMenuItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50.0, items[0].Price)
}

func TestCachedCatalog_WriteInvalidates(t *testing.T) {
	cache, repo, mr := newCachedCatalog(t)
	item := dosa()
	repo.On("GetMenuItem", mock.Anything, 1).Return(&item, nil).Once()
	repo.On("ListMenuItems", mock.Anything).Return([]domain.MenuItem{item}, nil).Once()
	repo.On("UpdateMenuItem", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := cache.GetMenuItem(context.Background(), 1)
	require.NoError(t, err)
	_, err = cache.ListMenuItems(context.Background())
	require.NoError(t, err)
	require.True(t, mr.Exists(config.MenuItemCacheKey(1)))

	updated := item
	updated.Price = 50
	require.NoError(t, cache.UpdateMenuItem(context.Background(), &updated))

	assert.False(t, mr.Exists(config.MenuItemCacheKey(1)))
	assert.False(t, mr.Exists(config.CacheKeyMenuItems))
}

func TestCachedCatalog_FailedWriteKeepsCache(t *testing.T) {
	cache, repo, mr := newCachedCatalog(t)
	repo.On("ListCategories", mock.Anything).Return([]domain.MenuCategory{{ID: 1, Name: "Snacks"}}, nil).Once()
	repo.On("DeleteCategory", mock.Anything, 1).Return(assert.AnError).Once()

	_, err := cache.ListCategories(context.Background())
	require.NoError(t, err)

	assert.Error(t, cache.DeleteCategory(context.Background(), 1))
	assert.True(t, mr.Exists(config.CacheKeyCategories))
}

func TestCachedCatalog_RedisDownFallsBack(t *testing.T) {
	cache, repo, mr := newCachedCatalog(t)
	mr.Close()
	repo.On("ListCategories", mock.Anything).Return([]domain.MenuCategory{{ID: 1, Name: "Snacks"}}, nil).Twice()

	for i := 0; i < 2; i++ {
		categories, err := cache.ListCategories(context.Background())
		require.NoError(t, err)
		assert.Len(t, categories, 1)
	}
}
