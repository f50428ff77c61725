package in

import (
	"context"

	dictionarydto "jornada/internal/modules/dictionary/dto"
	dictionaryin "jornada/internal/modules/dictionary/port/in"
)

type CLIHandler struct {
	usecase dictionaryin.Usecase
}

func NewCLIHandler(usecase dictionaryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Search(ctx context.Context, query string) ([]dictionarydto.TermOutput, error) {
	return h.usecase.Search(ctx, query)
}

func (h CLIHandler) Lookup(ctx context.Context, term string) (dictionarydto.TermOutput, error) {
	return h.usecase.Lookup(ctx, term)
}
