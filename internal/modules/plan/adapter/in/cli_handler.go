package in

import (
	"context"
	"time"

	plandto "jornada/internal/modules/plan/dto"
	planin "jornada/internal/modules/plan/port/in"
)

type CLIHandler struct {
	usecase planin.Usecase
}

func NewCLIHandler(usecase planin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Today(ctx context.Context) (plandto.TodayOutput, error) {
	return h.usecase.Today(ctx)
}

func (h CLIHandler) Show(ctx context.Context, key string) (plandto.EntryOutput, error) {
	return h.usecase.Entry(ctx, key)
}

func (h CLIHandler) Schedule(ctx context.Context, quarter string) ([]plandto.EntryOutput, error) {
	return h.usecase.Schedule(ctx, quarter)
}

func (h CLIHandler) Quarters(ctx context.Context) ([]plandto.QuarterOutput, error) {
	return h.usecase.Quarters(ctx)
}

func (h CLIHandler) Phases(ctx context.Context, completed []string) ([]plandto.PhaseOutput, error) {
	return h.usecase.Phases(ctx, completed)
}

func (h CLIHandler) Week(ctx context.Context, ref time.Time, completed []string) (plandto.WeekOutput, error) {
	return h.usecase.Week(ctx, ref, completed)
}
