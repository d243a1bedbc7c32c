package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"campus-canteen/config"
	"campus-canteen/menu-svc/internal/domain"
	"campus-canteen/menu-svc/internal/service"

	"github.com/redis/go-redis/v9"
)

// CachedCatalog is a read-through Redis cache in front of the catalog
// repository. Every write invalidates the affected keys after the underlying
// write succeeds. Redis failures degrade to direct reads.
type CachedCatalog struct {
	service.CatalogRepository
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedCatalog(repo service.CatalogRepository, client *redis.Client, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{CatalogRepository: repo, redis: client, ttl: ttl}
}

var _ service.CatalogRepository = (*CachedCatalog)(nil)

func (c *CachedCatalog) ListCategories(ctx context.Context) ([]domain.MenuCategory, error) {
	var categories []domain.MenuCategory
	if c.get(ctx, config.CacheKeyCategories, &categories) {
		return categories, nil
	}
	categories, err := c.CatalogRepository.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, config.CacheKeyCategories, categories)
	return categories, nil
}

func (c *CachedCatalog) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	if c.get(ctx, config.CacheKeyMenuItems, &items) {
		return items, nil
	}
	items, err := c.CatalogRepository.ListMenuItems(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, config.CacheKeyMenuItems, items)
	return items, nil
}

func (c *CachedCatalog) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	key := config.MenuItemCacheKey(id)
	var item domain.MenuItem
	if c.get(ctx, key, &item) {
		return &item, nil
	}
	fetched, err := c.CatalogRepository.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, fetched)
	return fetched, nil
}

func (c *CachedCatalog) CreateCategory(ctx context.Context, category *domain.MenuCategory) error {
	if err := c.CatalogRepository.CreateCategory(ctx, category); err != nil {
		return err
	}
	c.invalidate(ctx, config.CacheKeyCategories)
	return nil
}

func (c *CachedCatalog) UpdateCategory(ctx context.Context, category *domain.MenuCategory) error {
	if err := c.CatalogRepository.UpdateCategory(ctx, category); err != nil {
		return err
	}
	c.invalidate(ctx, config.CacheKeyCategories)
	return nil
}

func (c *CachedCatalog) DeleteCategory(ctx context.Context, id int) error {
	if err := c.CatalogRepository.DeleteCategory(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, config.CacheKeyCategories)
	return nil
}

func (c *CachedCatalog) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	if err := c.CatalogRepository.CreateMenuItem(ctx, item); err != nil {
		return err
	}
	c.invalidate(ctx, config.CacheKeyMenuItems)
	return nil
}

func (c *CachedCatalog) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	if err := c.CatalogRepository.UpdateMenuItem(ctx, item); err != nil {
		return err
	}
	c.invalidate(ctx, config.CacheKeyMenuItems, config.MenuItemCacheKey(item.ID))
	return nil
}

func (c *CachedCatalog) DeleteMenuItem(ctx context.Context, id int) error {
	if err := c.CatalogRepository.DeleteMenuItem(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, config.CacheKeyMenuItems, config.MenuItemCacheKey(id))
	return nil
}

func (c *CachedCatalog) UpdateMenuItemImage(ctx context.Context, id int, imageURL string) error {
	if err := c.CatalogRepository.UpdateMenuItemImage(ctx, id, imageURL); err != nil {
		return err
	}
	c.invalidate(ctx, config.CacheKeyMenuItems, config.MenuItemCacheKey(id))
	return nil
}

func (c *CachedCatalog) get(ctx context.Context, key string, dest any) bool {
	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if err := json.Unmarshal(data, dest); err != nil {
			log.Printf("Failed to unmarshal cached %s (continuing with DB): %v", key, err)
			return false
		}
		return true
	case errors.Is(err, redis.Nil):
	default:
		log.Printf("Redis error (continuing with DB): %v", err)
	}
	return false
}

func (c *CachedCatalog) set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("Failed to marshal %s: %v", key, err)
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("Failed to cache %s: %v", key, err)
	}
}

func (c *CachedCatalog) invalidate(ctx context.Context, keys ...string) {
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate %v: %v", keys, err)
	}
}
