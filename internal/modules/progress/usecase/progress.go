package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"jornada/internal/modules/progress/domain"
	"jornada/internal/modules/progress/dto"
	progressin "jornada/internal/modules/progress/port/in"
	"jornada/internal/modules/progress/service"
	apperrors "jornada/internal/platform/errors"
)

type Interactor struct {
	svc *service.ProgressService
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Load(ctx context.Context) (dto.ProgressOutput, error) {
	progress, err := i.svc.Load(ctx)
	if err != nil {
		return dto.ProgressOutput{}, err
	}
	return toProgress(progress), nil
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	progress, err := i.svc.Load(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	plan := i.svc.Plan()
	now := i.svc.Now()
	overall := plan.OverallProgress(progress.CompletedDates)
	out := dto.StatusOutput{
		Progress:      toProgress(progress),
		Today:         now,
		Completed:     overall.CompletedCount,
		Total:         overall.TotalCount,
		Percentage:    overall.Percentage,
		CurrentStreak: plan.CurrentStreak(now, progress.CompletedDates),
		LongestStreak: plan.LongestStreak(progress.CompletedDates),
	}
	for _, phase := range plan.Phases() {
		p := plan.PhaseProgress(phase.ID, progress.CompletedDates)
		out.Phases = append(out.Phases, dto.PhaseStatus{ID: phase.ID, Name: phase.Name, Completed: p.CompletedCount, Total: p.TotalCount, Percentage: p.Percentage})
	}
	for _, entry := range plan.WeeklyPending(now, progress.CompletedDates) {
		out.WeekPending = append(out.WeekPending, entry.Date)
	}
	for _, kind := range domain.GoalKinds {
		if progress.DailyGoalProgress.Done(kind) {
			out.GoalsDone++
		}
	}
	return out, nil
}

func (i *Interactor) Onboard(ctx context.Context, userName string) (dto.CommitOutput, error) {
	return i.commit(i.svc.Onboard(ctx, userName))
}

func (i *Interactor) MarkCompleted(ctx context.Context, input dto.CompleteInput) (dto.CompleteOutput, error) {
	progress, awarded, err := i.svc.MarkCompleted(ctx, input.DateKey, input.Reflection)
	if err != nil && !isPersistence(err) {
		return dto.CompleteOutput{}, err
	}
	return dto.CompleteOutput{Progress: toProgress(progress), SyncFor: i.svc.SyncIndicator(), NewBadges: awarded}, err
}

func (i *Interactor) ToggleDailyGoal(ctx context.Context, kind string) (dto.CommitOutput, error) {
	goal, err := parseGoal(kind)
	if err != nil {
		return dto.CommitOutput{}, err
	}
	return i.commit(i.svc.ToggleDailyGoal(ctx, goal))
}

func (i *Interactor) SetGoalConfig(ctx context.Context, kind string, value int) (dto.CommitOutput, error) {
	goal, err := parseGoal(kind)
	if err != nil {
		return dto.CommitOutput{}, err
	}
	return i.commit(i.svc.SetGoalConfig(ctx, goal, value))
}

func (i *Interactor) AdjustGoalConfig(ctx context.Context, kind string, delta int) (dto.CommitOutput, error) {
	goal, err := parseGoal(kind)
	if err != nil {
		return dto.CommitOutput{}, err
	}
	return i.commit(i.svc.AdjustGoalConfig(ctx, goal, delta))
}

func (i *Interactor) CacheDevotional(ctx context.Context, dateKey string, devotional dto.DevotionalOutput) error {
	_, err := i.svc.CacheDevotional(ctx, dateKey, domain.Devotional{
		Title:           devotional.Title,
		Verse:           devotional.Verse,
		Reflection:      devotional.Reflection,
		PracticalPoints: devotional.PracticalPoints,
		Prayer:          devotional.Prayer,
	})
	return err
}

func (i *Interactor) SavedDevotional(ctx context.Context, dateKey string) (dto.DevotionalOutput, bool, error) {
	devotional, ok, err := i.svc.SavedDevotional(ctx, dateKey)
	if err != nil || !ok {
		return dto.DevotionalOutput{}, false, err
	}
	return toDevotional(devotional), true, nil
}

func (i *Interactor) SetVersion(ctx context.Context, edition string) (dto.CommitOutput, error) {
	parsed, err := domain.ParseEdition(edition)
	if err != nil {
		return dto.CommitOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return i.commit(i.svc.SetVersion(ctx, parsed))
}

func (i *Interactor) SetLastViewed(ctx context.Context, dateKey string) error {
	_, err := i.svc.SetLastViewed(ctx, dateKey)
	return err
}

func (i *Interactor) Badges(ctx context.Context) ([]dto.BadgeOutput, error) {
	progress, err := i.svc.Load(ctx)
	if err != nil {
		return nil, err
	}
	earned := make(map[string]bool, len(progress.Badges))
	for _, name := range progress.Badges {
		earned[name] = true
	}
	catalog := domain.Catalog(i.svc.Plan())
	out := make([]dto.BadgeOutput, 0, len(catalog))
	for _, badge := range catalog {
		out = append(out, dto.BadgeOutput{Name: badge.Name, Description: badge.Description, Earned: earned[badge.Name]})
	}
	return out, nil
}

func (i *Interactor) Reminders(ctx context.Context) ([]dto.ReminderOutput, error) {
	progress, err := i.svc.Load(ctx)
	if err != nil {
		return nil, err
	}
	reminders := append([]domain.Reminder(nil), progress.Reminders...)
	sort.SliceStable(reminders, func(a, b int) bool { return reminders[a].Time < reminders[b].Time })
	out := make([]dto.ReminderOutput, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, toReminder(r))
	}
	return out, nil
}

func (i *Interactor) AddReminder(ctx context.Context, input dto.ReminderInput) (dto.ReminderOutput, error) {
	reminder, err := i.svc.AddReminder(ctx, input.Time, input.Label, domain.ReminderKind(input.Type))
	if err != nil && !isPersistence(err) {
		return dto.ReminderOutput{}, err
	}
	return toReminder(reminder), err
}

func (i *Interactor) ToggleReminder(ctx context.Context, reminderID string) (dto.ReminderOutput, error) {
	reminder, err := i.svc.ToggleReminder(ctx, reminderID)
	if err != nil && !isPersistence(err) {
		return dto.ReminderOutput{}, err
	}
	return toReminder(reminder), err
}

func (i *Interactor) RemoveReminder(ctx context.Context, reminderID string) error {
	return i.svc.RemoveReminder(ctx, reminderID)
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.svc.Reset(ctx)
}

// commit maps a service write result. A persistence failure still carries
// the in-memory state so callers can keep rendering it.
func (i *Interactor) commit(progress domain.UserProgress, err error) (dto.CommitOutput, error) {
	if err != nil && !isPersistence(err) {
		return dto.CommitOutput{}, err
	}
	return dto.CommitOutput{Progress: toProgress(progress), SyncFor: i.svc.SyncIndicator()}, err
}

func parseGoal(kind string) (domain.GoalKind, error) {
	goal, err := domain.ParseGoalKind(kind)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return goal, nil
}

func isPersistence(err error) bool {
	return err != nil && errors.Is(err, apperrors.ErrPersistence)
}

func toProgress(p domain.UserProgress) dto.ProgressOutput {
	out := dto.ProgressOutput{
		UserName:       p.UserName,
		StartDate:      p.StartDate,
		CompletedDates: append([]string{}, p.CompletedDates...),
		Reflections:    make(map[string]string, len(p.Reflections)),
		Badges:         append([]string{}, p.Badges...),
		LastViewedDate: p.LastViewedDate,
		Version:        string(p.Version),
		Goals: dto.GoalsOutput{
			ReadingMinutes: p.DailyGoalsConfig.ReadingMinutes,
			PrayerMinutes:  p.DailyGoalsConfig.PrayerMinutes,
			ExtraChapters:  p.DailyGoalsConfig.ExtraChapters,
		},
		Daily: dto.DailyOutput{
			Date:        p.DailyGoalProgress.Date,
			ReadingDone: p.DailyGoalProgress.ReadingDone,
			PrayerDone:  p.DailyGoalProgress.PrayerDone,
			ExtraDone:   p.DailyGoalProgress.ExtraDone,
		},
	}
	for k, v := range p.Reflections {
		out.Reflections[k] = v
	}
	for k := range p.SavedDevotionals {
		out.SavedDevotionals = append(out.SavedDevotionals, k)
	}
	sort.Strings(out.SavedDevotionals)
	for _, r := range p.Reminders {
		out.Reminders = append(out.Reminders, toReminder(r))
	}
	return out
}

func toReminder(r domain.Reminder) dto.ReminderOutput {
	return dto.ReminderOutput{ID: r.ID, Time: r.Time, Label: r.Label, Type: string(r.Type), Active: r.Active}
}

func toDevotional(d domain.Devotional) dto.DevotionalOutput {
	return dto.DevotionalOutput{
		Title:           d.Title,
		Verse:           d.Verse,
		Reflection:      d.Reflection,
		PracticalPoints: append([]string(nil), d.PracticalPoints...),
		Prayer:          d.Prayer,
	}
}
