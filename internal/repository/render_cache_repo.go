package repository

import (
	"context"
	"time"
)

// RenderCacheRepository defines the interface for caching rendered HTML,
// keyed by target URL and rendering mode.
type RenderCacheRepository interface {
	// Get returns the cached HTML and whether the key was present.
	Get(ctx context.Context, rawURL string, renderJS bool) (string, bool, error)
	// Set stores rendered HTML with an expiry.
	Set(ctx context.Context, rawURL string, renderJS bool, html string, ttl time.Duration) error
}
