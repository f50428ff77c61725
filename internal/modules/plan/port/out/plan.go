package out

import (
	"context"

	"jornada/internal/modules/plan/domain"
)

type PlanSource interface {
	Load(ctx context.Context) (domain.Plan, error)
}
