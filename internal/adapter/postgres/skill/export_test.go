package skill

import (
	"context"

	"github.com/heartmarshall/skillhub-backend/internal/domain"
)

func (r *Repo) GetByRepoID(ctx context.Context, repoID int64) (*domain.Skill, error) {
	return r.getByRepoID(ctx, repoID)
}
