package usecase

import (
	"context"

	"jornada/internal/modules/dictionary/dto"
	dictionaryin "jornada/internal/modules/dictionary/port/in"
	"jornada/internal/modules/dictionary/service"
)

type Interactor struct {
	svc *service.DictionaryService
}

func NewInteractor(svc *service.DictionaryService) dictionaryin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Search(_ context.Context, query string) ([]dto.TermOutput, error) {
	terms := i.svc.Search(query)
	out := make([]dto.TermOutput, 0, len(terms))
	for _, t := range terms {
		out = append(out, dto.TermOutput{Term: t.Term, Definition: t.Definition})
	}
	return out, nil
}

func (i *Interactor) Lookup(ctx context.Context, term string) (dto.TermOutput, error) {
	found, err := i.svc.Lookup(ctx, term)
	if err != nil {
		return dto.TermOutput{}, err
	}
	return dto.TermOutput{Term: found.Term, Definition: found.Definition, Online: true}, nil
}
