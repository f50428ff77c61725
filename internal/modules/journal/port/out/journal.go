package out

import (
	"context"

	"jornada/internal/modules/journal/domain"
)

type ReflectionSource interface {
	Entries(ctx context.Context) ([]domain.Entry, error)
}

type NoteStore interface {
	WriteEntry(ctx context.Context, dir string, entry domain.Entry) (string, error)
	WriteIndex(ctx context.Context, dir string, entries []domain.Entry) (string, error)
}
