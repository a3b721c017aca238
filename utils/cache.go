package utils

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

var cacheClient *redis.Client

// InitCache connects the redis client used for cached order/admin views.
// Caching is optional; without REDIS_ADDR every cache call is a no-op.
func InitCache() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		LogInfo("REDIS_ADDR not set, view caching disabled")
		return
	}
	cacheClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cacheClient.Ping(ctx).Err(); err != nil {
		LogError("Redis ping failed, view caching disabled: %v", err)
		cacheClient = nil
	}
}

// CacheGet returns the cached payload for a view key, if any
func CacheGet(key string) (string, bool) {
	if cacheClient == nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	val, err := cacheClient.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// CacheSet stores a rendered view payload under a key
func CacheSet(key, value string, ttl time.Duration) {
	if cacheClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := cacheClient.Set(ctx, key, value, ttl).Err(); err != nil {
		LogError("Failed to cache %s: %v", key, err)
	}
}

// InvalidateOrderCaches drops the cached order, admin-order and payment views
// affected by a committed order write. Best-effort.
func InvalidateOrderCaches(userID uint) {
	if cacheClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	keys := []string{
		fmt.Sprintf("views:orders:user:%d", userID),
		fmt.Sprintf("views:payments:user:%d", userID),
		"views:orders:admin",
	}
	if err := cacheClient.Del(ctx, keys...).Err(); err != nil {
		LogError("Failed to invalidate order caches for user %d: %v", userID, err)
	}
}
