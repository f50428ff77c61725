package in

import (
	"context"

	"jornada/internal/modules/journal/dto"
)

type Usecase interface {
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
