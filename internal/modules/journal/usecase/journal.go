package usecase

import (
	"context"

	"jornada/internal/modules/journal/dto"
	journalin "jornada/internal/modules/journal/port/in"
	"jornada/internal/modules/journal/service"
)

type Interactor struct {
	svc        *service.JournalService
	defaultDir string
}

// NewInteractor exports into defaultDir when the input names no directory.
func NewInteractor(svc *service.JournalService, defaultDir string) journalin.Usecase {
	return &Interactor{svc: svc, defaultDir: defaultDir}
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	dir := input.Dir
	if dir == "" {
		dir = i.defaultDir
	}
	result, err := i.svc.Export(ctx, dir)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Dir: result.Dir, Notes: result.Notes, IndexPath: result.IndexPath}, nil
}
