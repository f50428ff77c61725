package in

import (
	"context"

	"jornada/internal/modules/dictionary/dto"
)

type Usecase interface {
	Search(ctx context.Context, query string) ([]dto.TermOutput, error)
	Lookup(ctx context.Context, term string) (dto.TermOutput, error)
}
