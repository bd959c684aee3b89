package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/stylegen-service/pkg/utils"
)

const renderCachePrefix = "render:"

// RenderCacheImpl provides a concrete implementation for the RenderCacheRepository interface using Redis.
type RenderCacheImpl struct {
	client *redis.Client
}

// NewRenderCache creates a new instance of RenderCacheImpl.
func NewRenderCache(client *redis.Client) *RenderCacheImpl {
	return &RenderCacheImpl{client: client}
}

// generateKey creates a consistent Redis key for a (url, rendering mode) pair.
func (r *RenderCacheImpl) generateKey(rawURL string, renderJS bool) string {
	return fmt.Sprintf("%s%s", renderCachePrefix, utils.HashURL(fmt.Sprintf("%s|js=%t", rawURL, renderJS)))
}

// Get returns the cached rendered HTML for a URL, if present.
func (r *RenderCacheImpl) Get(ctx context.Context, rawURL string, renderJS bool) (string, bool, error) {
	val, err := r.client.Get(ctx, r.generateKey(rawURL, renderJS)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores rendered HTML with an expiry.
func (r *RenderCacheImpl) Set(ctx context.Context, rawURL string, renderJS bool, html string, ttl time.Duration) error {
	return r.client.SetEx(ctx, r.generateKey(rawURL, renderJS), html, ttl).Err()
}
