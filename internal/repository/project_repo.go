package repository

import (
	"context"

	"github.com/user/stylegen-service/internal/entity"
)

// ProjectRepository defines the interface for persisting the extracted
// style profile on its owning project.
type ProjectRepository interface {
	SaveStyleProfile(ctx context.Context, projectID string, profile *entity.StyleProfile) error
}
