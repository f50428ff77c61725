package usecase

import (
	"context"

	"jornada/internal/modules/content/domain"
	"jornada/internal/modules/content/dto"
	contentin "jornada/internal/modules/content/port/in"
	"jornada/internal/modules/content/service"
)

type Interactor struct {
	svc *service.ReadingService
}

func NewInteractor(svc *service.ReadingService) contentin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) OpenReading(ctx context.Context, input dto.OpenReadingInput) (dto.ReadingOutput, error) {
	key, err := i.svc.ResolveKey(ctx, input.DateKey)
	if err != nil {
		return dto.ReadingOutput{}, err
	}
	opened, err := i.svc.Open(ctx, key, input.Edition)
	if opened.Ref.DateKey == "" {
		return dto.ReadingOutput{}, err
	}
	return dto.ReadingOutput{
		DateKey:         opened.Ref.DateKey,
		Reading:         opened.Ref.Reading,
		Focus:           opened.Ref.Focus,
		PhaseName:       opened.Ref.PhaseName,
		Quarter:         opened.Ref.Quarter,
		IsMeditationDay: opened.Ref.IsMeditationDay,
		Edition:         opened.Text.Edition,
		Text:            opened.Text.Text,
		Cached:          opened.Downloaded,
		Fallback:        opened.Text.Fallback,
	}, err
}

func (i *Interactor) Devotional(ctx context.Context, dateKey string) (dto.DevotionalOutput, error) {
	key, err := i.svc.ResolveKey(ctx, dateKey)
	if err != nil {
		return dto.DevotionalOutput{}, err
	}
	devotional, fromCache, err := i.svc.Devotional(ctx, key)
	if devotional.Title == "" {
		return dto.DevotionalOutput{}, err
	}
	return dto.DevotionalOutput{
		DateKey:         key,
		Title:           devotional.Title,
		Verse:           devotional.Verse,
		Reflection:      devotional.Reflection,
		PracticalPoints: devotional.PracticalPoints,
		Prayer:          devotional.Prayer,
		FromCache:       fromCache,
	}, err
}

func (i *Interactor) Download(ctx context.Context, dateKey string) (dto.DownloadOutput, error) {
	key, err := i.svc.ResolveKey(ctx, dateKey)
	if err != nil {
		return dto.DownloadOutput{}, err
	}
	text, err := i.svc.Download(ctx, key)
	if err != nil {
		return dto.DownloadOutput{}, err
	}
	return dto.DownloadOutput{
		Key:       domain.OfflineKey(text.Edition, text.Reference),
		Reference: text.Reference,
		Edition:   text.Edition,
	}, nil
}

func (i *Interactor) RemoveDownload(ctx context.Context, dateKey string) (bool, error) {
	key, err := i.svc.ResolveKey(ctx, dateKey)
	if err != nil {
		return false, err
	}
	return i.svc.RemoveDownload(ctx, key)
}

func (i *Interactor) Downloads(ctx context.Context) ([]dto.DownloadOutput, error) {
	items, err := i.svc.Downloads(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DownloadOutput, 0, len(items))
	for _, item := range items {
		out = append(out, dto.DownloadOutput{
			Key:       item.Key,
			Reference: item.Reference,
			Edition:   item.Edition,
			SavedAt:   item.SavedAt,
		})
	}
	return out, nil
}

func (i *Interactor) ClearDownloads(ctx context.Context) (int, error) {
	return i.svc.ClearDownloads(ctx)
}

func (i *Interactor) Phrase(ctx context.Context, dateKey string) (dto.PhraseOutput, error) {
	key, err := i.svc.ResolveKey(ctx, dateKey)
	if err != nil {
		return dto.PhraseOutput{}, err
	}
	phrase, theme, err := i.svc.Phrase(ctx, key)
	if err != nil {
		return dto.PhraseOutput{}, err
	}
	return dto.PhraseOutput{DateKey: key, Theme: theme, Phrase: phrase}, nil
}

func (i *Interactor) Messiah(ctx context.Context, dateKey string) (dto.MessiahOutput, error) {
	key, err := i.svc.ResolveKey(ctx, dateKey)
	if err != nil {
		return dto.MessiahOutput{}, err
	}
	ref, text, err := i.svc.Messiah(ctx, key)
	if err != nil {
		return dto.MessiahOutput{}, err
	}
	return dto.MessiahOutput{DateKey: ref.DateKey, Reading: ref.Reading, Text: text}, nil
}

func (i *Interactor) LookupTerm(ctx context.Context, term string) (dto.TermOutput, error) {
	found, err := i.svc.LookupTerm(ctx, term)
	if err != nil {
		return dto.TermOutput{}, err
	}
	return dto.TermOutput{Term: found.Term, Definition: found.Definition}, nil
}
