package out

import (
	"context"

	"jornada/internal/modules/content/domain"
)

type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string, schema domain.Schema) (string, error)
}

type TextCache interface {
	Get(ctx context.Context, key string) (domain.CachedText, bool, error)
	Put(ctx context.Context, text domain.CachedText) error
	Remove(ctx context.Context, key string) (bool, error)
	List(ctx context.Context) ([]domain.CachedText, error)
	Clear(ctx context.Context) (int, error)
}

type ReadingSchedule interface {
	Entry(ctx context.Context, dateKey string) (domain.ReadingRef, error)
	Today(ctx context.Context) (domain.ReadingRef, bool, error)
	Preceding(ctx context.Context, dateKey string, n int) ([]domain.ReadingRef, error)
}

// ProgressKeeper exposes the parts of the user's progress record the
// content module reads and writes.
type ProgressKeeper interface {
	Edition(ctx context.Context) (string, error)
	SetLastViewed(ctx context.Context, dateKey string) error
	SavedDevotional(ctx context.Context, dateKey string) (domain.Devotional, bool, error)
	CacheDevotional(ctx context.Context, dateKey string, devotional domain.Devotional) error
}
