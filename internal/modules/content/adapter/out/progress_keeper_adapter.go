package out

import (
	"context"
	"errors"

	"jornada/internal/modules/content/domain"
	contentout "jornada/internal/modules/content/port/out"
	progressdto "jornada/internal/modules/progress/dto"
	progressin "jornada/internal/modules/progress/port/in"
	apperrors "jornada/internal/platform/errors"
)

// DefaultEdition is read when nobody has onboarded yet.
const DefaultEdition = "ARC"

type ProgressKeeperAdapter struct {
	progress progressin.Usecase
}

func NewProgressKeeperAdapter(progress progressin.Usecase) contentout.ProgressKeeper {
	return &ProgressKeeperAdapter{progress: progress}
}

func (a *ProgressKeeperAdapter) Edition(ctx context.Context) (string, error) {
	progress, err := a.progress.Load(ctx)
	if errors.Is(err, apperrors.ErrNoProgress) {
		return DefaultEdition, nil
	}
	if err != nil {
		return "", err
	}
	if progress.Version == "" {
		return DefaultEdition, nil
	}
	return progress.Version, nil
}

func (a *ProgressKeeperAdapter) SetLastViewed(ctx context.Context, dateKey string) error {
	err := a.progress.SetLastViewed(ctx, dateKey)
	if errors.Is(err, apperrors.ErrNoProgress) {
		return nil
	}
	return err
}

func (a *ProgressKeeperAdapter) SavedDevotional(ctx context.Context, dateKey string) (domain.Devotional, bool, error) {
	saved, ok, err := a.progress.SavedDevotional(ctx, dateKey)
	if errors.Is(err, apperrors.ErrNoProgress) {
		return domain.Devotional{}, false, nil
	}
	if err != nil || !ok {
		return domain.Devotional{}, false, err
	}
	return domain.Devotional{
		Title:           saved.Title,
		Verse:           saved.Verse,
		Reflection:      saved.Reflection,
		PracticalPoints: saved.PracticalPoints,
		Prayer:          saved.Prayer,
	}, true, nil
}

func (a *ProgressKeeperAdapter) CacheDevotional(ctx context.Context, dateKey string, devotional domain.Devotional) error {
	return a.progress.CacheDevotional(ctx, dateKey, progressdto.DevotionalOutput{
		Title:           devotional.Title,
		Verse:           devotional.Verse,
		Reflection:      devotional.Reflection,
		PracticalPoints: devotional.PracticalPoints,
		Prayer:          devotional.Prayer,
	})
}
