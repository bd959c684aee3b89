package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/stylegen-service/internal/entity"
)

// ScrapingLogRepoImpl provides a concrete implementation for the ScrapingLogRepository interface using PostgreSQL.
type ScrapingLogRepoImpl struct {
	db *pgxpool.Pool
}

// NewScrapingLogRepo creates a new instance of ScrapingLogRepoImpl.
func NewScrapingLogRepo(db *pgxpool.Pool) *ScrapingLogRepoImpl {
	return &ScrapingLogRepoImpl{db: db}
}

// Save appends one scrape audit entry. Entries are never updated.
func (r *ScrapingLogRepoImpl) Save(ctx context.Context, entry *entity.ScrapingLogEntry) error {
	assetsJSON, err := json.Marshal(entry.AssetsFound)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO scraping_logs (url, success, assets_found, errors, duration_ms, retries, using_default_styles, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.db.Exec(ctx, query,
		entry.URL,
		entry.Success,
		assetsJSON,
		entry.Errors,
		entry.DurationMS,
		entry.Retries,
		entry.UsingDefaultStyles,
		entry.Timestamp,
	)
	return err
}
