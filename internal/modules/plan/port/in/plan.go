package in

import (
	"context"
	"time"

	"jornada/internal/modules/plan/dto"
)

type Usecase interface {
	Today(ctx context.Context) (dto.TodayOutput, error)
	Entry(ctx context.Context, key string) (dto.EntryOutput, error)
	Resolve(ctx context.Context, date time.Time) (dto.EntryOutput, error)
	Schedule(ctx context.Context, quarter string) ([]dto.EntryOutput, error)
	Quarters(ctx context.Context) ([]dto.QuarterOutput, error)
	Phases(ctx context.Context, completed []string) ([]dto.PhaseOutput, error)
	Week(ctx context.Context, ref time.Time, completed []string) (dto.WeekOutput, error)
	Preceding(ctx context.Context, key string, n int) ([]dto.EntryOutput, error)
	Streaks(ctx context.Context, ref time.Time, completed []string) (dto.StreakOutput, error)
	Overall(ctx context.Context, completed []string) (dto.ProgressOutput, error)
}
