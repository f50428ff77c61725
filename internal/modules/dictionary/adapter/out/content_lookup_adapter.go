package out

import (
	"context"

	contentin "jornada/internal/modules/content/port/in"
	"jornada/internal/modules/dictionary/domain"
	dictionaryout "jornada/internal/modules/dictionary/port/out"
)

type ContentLookupAdapter struct {
	content contentin.Usecase
}

func NewContentLookupAdapter(content contentin.Usecase) dictionaryout.OnlineLookup {
	return &ContentLookupAdapter{content: content}
}

func (a *ContentLookupAdapter) Lookup(ctx context.Context, term string) (domain.Term, error) {
	found, err := a.content.LookupTerm(ctx, term)
	if err != nil {
		return domain.Term{}, err
	}
	return domain.Term{Term: found.Term, Definition: found.Definition}, nil
}
