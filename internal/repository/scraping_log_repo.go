package repository

import (
	"context"

	"github.com/user/stylegen-service/internal/entity"
)

// ScrapingLogRepository defines the interface for the append-only scrape
// audit log. Entries are never updated or deleted.
type ScrapingLogRepository interface {
	Save(ctx context.Context, entry *entity.ScrapingLogEntry) error
}
