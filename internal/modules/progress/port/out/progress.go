package out

import (
	"context"

	"jornada/internal/modules/progress/domain"
)

// ProgressStore persists the single progress record. Load reports
// apperrors.ErrNoProgress when nothing has been stored yet.
type ProgressStore interface {
	Load(ctx context.Context) (domain.UserProgress, error)
	Save(ctx context.Context, progress domain.UserProgress) error
	Delete(ctx context.Context) error
}
