package storage

import (
	"context"

	"campus-canteen/config"

	"github.com/redis/go-redis/v9"
)

// RedisCatalogCache evicts the menu service's cached catalog entries.
type RedisCatalogCache struct {
	Client *redis.Client
}

func NewRedisCatalogCache(client *redis.Client) *RedisCatalogCache {
	return &RedisCatalogCache{Client: client}
}

func (c *RedisCatalogCache) InvalidateMenuItem(ctx context.Context, menuItemID int) error {
	return c.Client.Del(ctx, config.CacheKeyMenuItems, config.MenuItemCacheKey(menuItemID)).Err()
}
