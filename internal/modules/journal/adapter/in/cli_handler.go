package in

import (
	"context"

	journaldto "jornada/internal/modules/journal/dto"
	journalin "jornada/internal/modules/journal/port/in"
)

type CLIHandler struct {
	usecase journalin.Usecase
}

func NewCLIHandler(usecase journalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Export(ctx context.Context, dir string) (journaldto.ExportOutput, error) {
	return h.usecase.Export(ctx, journaldto.ExportInput{Dir: dir})
}
