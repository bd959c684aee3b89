package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/stylegen-service/internal/entity"
)

// ProjectRepoImpl provides a concrete implementation for the ProjectRepository interface using PostgreSQL.
type ProjectRepoImpl struct {
	db *pgxpool.Pool
}

// NewProjectRepo creates a new instance of ProjectRepoImpl.
func NewProjectRepo(db *pgxpool.Pool) *ProjectRepoImpl {
	return &ProjectRepoImpl{db: db}
}

// SaveStyleProfile stores the extracted profile on the project row as JSONB.
func (r *ProjectRepoImpl) SaveStyleProfile(ctx context.Context, projectID string, profile *entity.StyleProfile) error {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	query := `
		UPDATE projects
		SET style_profile = $2, updated_at = NOW()
		WHERE id = $1;
	`
	_, err = r.db.Exec(ctx, query, projectID, profileJSON)
	return err
}
