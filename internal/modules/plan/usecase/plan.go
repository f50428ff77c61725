package usecase

import (
	"context"
	"time"

	"jornada/internal/modules/plan/domain"
	"jornada/internal/modules/plan/dto"
	planin "jornada/internal/modules/plan/port/in"
	"jornada/internal/modules/plan/service"
)

type Interactor struct {
	svc *service.PlanService
}

func NewInteractor(svc *service.PlanService) planin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Today(_ context.Context) (dto.TodayOutput, error) {
	now := i.svc.Now()
	out := dto.TodayOutput{Today: now}
	entry, ok := i.svc.Plan().EntryForDate(now)
	if !ok {
		return out, nil
	}
	out.Found = true
	out.Entry = i.toEntry(entry)
	if info, ok := i.svc.Plan().QuarterInfo(entry.Quarter); ok {
		out.Quarter = i.toQuarter(info)
	}
	return out, nil
}

func (i *Interactor) Entry(_ context.Context, key string) (dto.EntryOutput, error) {
	entry, err := i.svc.Entry(key)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return i.toEntry(entry), nil
}

func (i *Interactor) Resolve(_ context.Context, date time.Time) (dto.EntryOutput, error) {
	return i.toEntry(i.svc.Plan().Resolve(date)), nil
}

func (i *Interactor) Schedule(_ context.Context, quarter string) ([]dto.EntryOutput, error) {
	entries := i.svc.Plan().Entries()
	if quarter != "" {
		q, err := service.ParseQuarter(quarter)
		if err != nil {
			return nil, err
		}
		entries = i.svc.Plan().ByQuarter(q)
	}
	return i.toEntries(entries), nil
}

func (i *Interactor) Quarters(_ context.Context) ([]dto.QuarterOutput, error) {
	infos := i.svc.Plan().Quarters()
	out := make([]dto.QuarterOutput, 0, len(infos))
	for _, info := range infos {
		out = append(out, i.toQuarter(info))
	}
	return out, nil
}

func (i *Interactor) Phases(_ context.Context, completed []string) ([]dto.PhaseOutput, error) {
	plan := i.svc.Plan()
	phases := plan.Phases()
	out := make([]dto.PhaseOutput, 0, len(phases))
	for _, phase := range phases {
		progress := plan.PhaseProgress(phase.ID, completed)
		out = append(out, dto.PhaseOutput{
			ID:          phase.ID,
			Name:        phase.Name,
			Description: phase.Description,
			Books:       phase.Books,
			Completed:   progress.CompletedCount,
			Total:       progress.TotalCount,
			Percentage:  progress.Percentage,
		})
	}
	return out, nil
}

func (i *Interactor) Week(_ context.Context, ref time.Time, completed []string) (dto.WeekOutput, error) {
	if ref.IsZero() {
		ref = i.svc.Now()
	}
	from, to := domain.WeekBounds(ref)
	return dto.WeekOutput{
		From:    from,
		To:      to,
		Pending: i.toEntries(i.svc.Plan().WeeklyPending(ref, completed)),
	}, nil
}

func (i *Interactor) Preceding(_ context.Context, key string, n int) ([]dto.EntryOutput, error) {
	if _, err := i.svc.Entry(key); err != nil {
		return nil, err
	}
	return i.toEntries(i.svc.Plan().PrecedingReadings(key, n)), nil
}

func (i *Interactor) Streaks(_ context.Context, ref time.Time, completed []string) (dto.StreakOutput, error) {
	if ref.IsZero() {
		ref = i.svc.Now()
	}
	plan := i.svc.Plan()
	return dto.StreakOutput{
		Current: plan.CurrentStreak(ref, completed),
		Longest: plan.LongestStreak(completed),
	}, nil
}

func (i *Interactor) Overall(_ context.Context, completed []string) (dto.ProgressOutput, error) {
	progress := i.svc.Plan().OverallProgress(completed)
	return dto.ProgressOutput{Completed: progress.CompletedCount, Total: progress.TotalCount, Percentage: progress.Percentage}, nil
}

func (i *Interactor) toEntry(entry domain.ReadingEntry) dto.EntryOutput {
	out := dto.EntryOutput{
		Date:            entry.Date,
		Reading:         entry.Reading,
		IsMeditationDay: entry.IsMeditationDay,
		Quarter:         string(entry.Quarter),
		PhaseID:         entry.PhaseID,
		Focus:           entry.Focus,
	}
	if phase, ok := i.svc.Plan().PhaseOf(entry); ok {
		out.PhaseName = phase.Name
	}
	return out
}

func (i *Interactor) toEntries(entries []domain.ReadingEntry) []dto.EntryOutput {
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, i.toEntry(entry))
	}
	return out
}

func (i *Interactor) toQuarter(info domain.QuarterInfo) dto.QuarterOutput {
	return dto.QuarterOutput{
		Tag:     string(info.Tag),
		Title:   info.Title,
		Focus:   info.Focus,
		Entries: len(i.svc.Plan().ByQuarter(info.Tag)),
	}
}
