package in

import (
	"context"

	progressdto "jornada/internal/modules/progress/dto"
	progressin "jornada/internal/modules/progress/port/in"
)

// OfflineClearer drops downloaded texts when the user resets everything.
type OfflineClearer interface {
	ClearDownloads(ctx context.Context) (int, error)
}

type CLIHandler struct {
	usecase progressin.Usecase
	offline OfflineClearer
}

func NewCLIHandler(usecase progressin.Usecase, offline OfflineClearer) CLIHandler {
	return CLIHandler{usecase: usecase, offline: offline}
}

func (h CLIHandler) Init(ctx context.Context, name string) (progressdto.CommitOutput, error) {
	return h.usecase.Onboard(ctx, name)
}

func (h CLIHandler) Load(ctx context.Context) (progressdto.ProgressOutput, error) {
	return h.usecase.Load(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (progressdto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Complete(ctx context.Context, dateKey, reflection string) (progressdto.CompleteOutput, error) {
	return h.usecase.MarkCompleted(ctx, progressdto.CompleteInput{DateKey: dateKey, Reflection: reflection})
}

func (h CLIHandler) ToggleGoal(ctx context.Context, kind string) (progressdto.CommitOutput, error) {
	return h.usecase.ToggleDailyGoal(ctx, kind)
}

func (h CLIHandler) SetGoal(ctx context.Context, kind string, value int) (progressdto.CommitOutput, error) {
	return h.usecase.SetGoalConfig(ctx, kind, value)
}

func (h CLIHandler) AdjustGoal(ctx context.Context, kind string, delta int) (progressdto.CommitOutput, error) {
	return h.usecase.AdjustGoalConfig(ctx, kind, delta)
}

func (h CLIHandler) SetVersion(ctx context.Context, edition string) (progressdto.CommitOutput, error) {
	return h.usecase.SetVersion(ctx, edition)
}

func (h CLIHandler) SetLastViewed(ctx context.Context, dateKey string) error {
	return h.usecase.SetLastViewed(ctx, dateKey)
}

func (h CLIHandler) Badges(ctx context.Context) ([]progressdto.BadgeOutput, error) {
	return h.usecase.Badges(ctx)
}

func (h CLIHandler) Reminders(ctx context.Context) ([]progressdto.ReminderOutput, error) {
	return h.usecase.Reminders(ctx)
}

func (h CLIHandler) AddReminder(ctx context.Context, at, label, kind string) (progressdto.ReminderOutput, error) {
	return h.usecase.AddReminder(ctx, progressdto.ReminderInput{Time: at, Label: label, Type: kind})
}

func (h CLIHandler) ToggleReminder(ctx context.Context, reminderID string) (progressdto.ReminderOutput, error) {
	return h.usecase.ToggleReminder(ctx, reminderID)
}

func (h CLIHandler) RemoveReminder(ctx context.Context, reminderID string) error {
	return h.usecase.RemoveReminder(ctx, reminderID)
}

// Reset deletes the progress record and every downloaded text. It returns
// how many downloads were removed.
func (h CLIHandler) Reset(ctx context.Context) (int, error) {
	if err := h.usecase.Reset(ctx); err != nil {
		return 0, err
	}
	if h.offline == nil {
		return 0, nil
	}
	return h.offline.ClearDownloads(ctx)
}
