package repository

import (
	"context"

	"github.com/user/stylegen-service/internal/entity"
)

// AssetRepository defines the interface for recording stored project assets.
type AssetRepository interface {
	// CreateAssetRecord records one accepted image/logo URL for a project.
	CreateAssetRecord(ctx context.Context, projectID string, assetType entity.AssetType, url string) error
}
