package in

import (
	"context"

	"jornada/internal/modules/content/dto"
)

// Usecase is keyed by plan date keys; an empty key means today's entry.
type Usecase interface {
	OpenReading(ctx context.Context, input dto.OpenReadingInput) (dto.ReadingOutput, error)
	Devotional(ctx context.Context, dateKey string) (dto.DevotionalOutput, error)
	Download(ctx context.Context, dateKey string) (dto.DownloadOutput, error)
	RemoveDownload(ctx context.Context, dateKey string) (bool, error)
	Downloads(ctx context.Context) ([]dto.DownloadOutput, error)
	ClearDownloads(ctx context.Context) (int, error)
	Phrase(ctx context.Context, dateKey string) (dto.PhraseOutput, error)
	Messiah(ctx context.Context, dateKey string) (dto.MessiahOutput, error)
	LookupTerm(ctx context.Context, term string) (dto.TermOutput, error)
}
