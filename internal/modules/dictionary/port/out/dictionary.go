package out

import (
	"context"

	"jornada/internal/modules/dictionary/domain"
)

type TermSource interface {
	Load(ctx context.Context) ([]domain.Term, error)
}

// OnlineLookup defines terms missing from the embedded glossary.
type OnlineLookup interface {
	Lookup(ctx context.Context, term string) (domain.Term, error)
}
