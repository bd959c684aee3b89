package repository

import (
	"context"

	"github.com/user/stylegen-service/internal/entity"
)

// RendererRepository defines the contract for fetching the fully rendered
// HTML (or raw text, for stylesheet resources) of a URL.
type RendererRepository interface {
	// FetchRendered fetches rawURL, executing JavaScript when renderJS is
	// true. Fails with ErrInvalidInput for non-absolute URLs, with
	// ErrQuotaExhausted when the backend reports its quota is spent, and
	// with ErrUpstream after retryable failures are exhausted.
	FetchRendered(ctx context.Context, rawURL string, renderJS bool) (*entity.RenderedPage, error)
}
