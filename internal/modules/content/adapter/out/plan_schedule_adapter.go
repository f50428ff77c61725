package out

import (
	"context"

	"jornada/internal/modules/content/domain"
	contentout "jornada/internal/modules/content/port/out"
	plandto "jornada/internal/modules/plan/dto"
	planin "jornada/internal/modules/plan/port/in"
)

type PlanScheduleAdapter struct {
	plan planin.Usecase
}

func NewPlanScheduleAdapter(plan planin.Usecase) contentout.ReadingSchedule {
	return &PlanScheduleAdapter{plan: plan}
}

func (a *PlanScheduleAdapter) Entry(ctx context.Context, dateKey string) (domain.ReadingRef, error) {
	entry, err := a.plan.Entry(ctx, dateKey)
	if err != nil {
		return domain.ReadingRef{}, err
	}
	return toRef(entry), nil
}

func (a *PlanScheduleAdapter) Today(ctx context.Context) (domain.ReadingRef, bool, error) {
	today, err := a.plan.Today(ctx)
	if err != nil {
		return domain.ReadingRef{}, false, err
	}
	if !today.Found {
		return domain.ReadingRef{}, false, nil
	}
	return toRef(today.Entry), true, nil
}

func (a *PlanScheduleAdapter) Preceding(ctx context.Context, dateKey string, n int) ([]domain.ReadingRef, error) {
	entries, err := a.plan.Preceding(ctx, dateKey, n)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ReadingRef, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toRef(entry))
	}
	return out, nil
}

func toRef(entry plandto.EntryOutput) domain.ReadingRef {
	return domain.ReadingRef{
		DateKey:         entry.Date,
		Reading:         entry.Reading,
		Focus:           entry.Focus,
		PhaseName:       entry.PhaseName,
		Quarter:         entry.Quarter,
		IsMeditationDay: entry.IsMeditationDay,
	}
}
