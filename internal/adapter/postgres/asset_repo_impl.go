package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/stylegen-service/internal/entity"
)

// AssetRepoImpl provides a concrete implementation for the AssetRepository interface using PostgreSQL.
type AssetRepoImpl struct {
	db *pgxpool.Pool
}

// NewAssetRepo creates a new instance of AssetRepoImpl.
func NewAssetRepo(db *pgxpool.Pool) *AssetRepoImpl {
	return &AssetRepoImpl{db: db}
}

// CreateAssetRecord records one accepted asset URL for a project. Re-recording
// the same (project, type, url) triple is a no-op.
func (r *AssetRepoImpl) CreateAssetRecord(ctx context.Context, projectID string, assetType entity.AssetType, url string) error {
	query := `
		INSERT INTO assets (project_id, type, url, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (project_id, type, url) DO NOTHING;
	`
	_, err := r.db.Exec(ctx, query, projectID, string(assetType), url)
	return err
}
