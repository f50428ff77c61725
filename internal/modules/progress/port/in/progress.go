package in

import (
	"context"

	"jornada/internal/modules/progress/dto"
)

type Usecase interface {
	Load(ctx context.Context) (dto.ProgressOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Onboard(ctx context.Context, userName string) (dto.CommitOutput, error)
	MarkCompleted(ctx context.Context, input dto.CompleteInput) (dto.CompleteOutput, error)
	ToggleDailyGoal(ctx context.Context, kind string) (dto.CommitOutput, error)
	SetGoalConfig(ctx context.Context, kind string, value int) (dto.CommitOutput, error)
	AdjustGoalConfig(ctx context.Context, kind string, delta int) (dto.CommitOutput, error)
	CacheDevotional(ctx context.Context, dateKey string, devotional dto.DevotionalOutput) error
	SavedDevotional(ctx context.Context, dateKey string) (dto.DevotionalOutput, bool, error)
	SetVersion(ctx context.Context, edition string) (dto.CommitOutput, error)
	SetLastViewed(ctx context.Context, dateKey string) error
	Badges(ctx context.Context) ([]dto.BadgeOutput, error)
	Reminders(ctx context.Context) ([]dto.ReminderOutput, error)
	AddReminder(ctx context.Context, input dto.ReminderInput) (dto.ReminderOutput, error)
	ToggleReminder(ctx context.Context, reminderID string) (dto.ReminderOutput, error)
	RemoveReminder(ctx context.Context, reminderID string) error
	Reset(ctx context.Context) error
}
