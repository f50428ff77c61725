package out

import (
	"context"
	"errors"

	"jornada/internal/modules/journal/domain"
	journalout "jornada/internal/modules/journal/port/out"
	planin "jornada/internal/modules/plan/port/in"
	progressin "jornada/internal/modules/progress/port/in"
	apperrors "jornada/internal/platform/errors"
)

// ReflectionAdapter joins stored reflections with their plan entries.
type ReflectionAdapter struct {
	progress progressin.Usecase
	plan     planin.Usecase
}

func NewReflectionAdapter(progress progressin.Usecase, plan planin.Usecase) journalout.ReflectionSource {
	return &ReflectionAdapter{progress: progress, plan: plan}
}

func (a *ReflectionAdapter) Entries(ctx context.Context) ([]domain.Entry, error) {
	progress, err := a.progress.Load(ctx)
	if err != nil {
		return nil, err
	}
	completed := make(map[string]bool, len(progress.CompletedDates))
	for _, key := range progress.CompletedDates {
		completed[key] = true
	}
	out := make([]domain.Entry, 0, len(progress.Reflections))
	for key, reflection := range progress.Reflections {
		entry := domain.Entry{DateKey: key, Reflection: reflection, Completed: completed[key], Reading: key}
		planEntry, err := a.plan.Entry(ctx, key)
		switch {
		case err == nil:
			entry.Reading = planEntry.Reading
			entry.PhaseName = planEntry.PhaseName
			entry.Quarter = planEntry.Quarter
			entry.Focus = planEntry.Focus
		case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrInvalidInput):
		default:
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}
