package in

import (
	"context"

	contentdto "jornada/internal/modules/content/dto"
	contentin "jornada/internal/modules/content/port/in"
)

type CLIHandler struct {
	usecase contentin.Usecase
}

func NewCLIHandler(usecase contentin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Read(ctx context.Context, dateKey, edition string) (contentdto.ReadingOutput, error) {
	return h.usecase.OpenReading(ctx, contentdto.OpenReadingInput{DateKey: dateKey, Edition: edition})
}

func (h CLIHandler) Devotional(ctx context.Context, dateKey string) (contentdto.DevotionalOutput, error) {
	return h.usecase.Devotional(ctx, dateKey)
}

func (h CLIHandler) Phrase(ctx context.Context, dateKey string) (contentdto.PhraseOutput, error) {
	return h.usecase.Phrase(ctx, dateKey)
}

func (h CLIHandler) Messiah(ctx context.Context, dateKey string) (contentdto.MessiahOutput, error) {
	return h.usecase.Messiah(ctx, dateKey)
}

func (h CLIHandler) Download(ctx context.Context, dateKey string) (contentdto.DownloadOutput, error) {
	return h.usecase.Download(ctx, dateKey)
}

func (h CLIHandler) RemoveDownload(ctx context.Context, dateKey string) (bool, error) {
	return h.usecase.RemoveDownload(ctx, dateKey)
}

func (h CLIHandler) Downloads(ctx context.Context) ([]contentdto.DownloadOutput, error) {
	return h.usecase.Downloads(ctx)
}

func (h CLIHandler) ClearDownloads(ctx context.Context) (int, error) {
	return h.usecase.ClearDownloads(ctx)
}
