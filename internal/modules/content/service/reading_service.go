package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"jornada/internal/modules/content/domain"
	contentout "jornada/internal/modules/content/port/out"
	apperrors "jornada/internal/platform/errors"
	"jornada/internal/platform/logging"
)

// ReadingService ties plan entries and the user's edition to the gateway.
type ReadingService struct {
	gateway  *GatewayService
	schedule contentout.ReadingSchedule
	keeper   contentout.ProgressKeeper
	logger   *zap.Logger
}

func NewReadingService(gateway *GatewayService, schedule contentout.ReadingSchedule, keeper contentout.ProgressKeeper, logger *zap.Logger) *ReadingService {
	return &ReadingService{
		gateway:  gateway,
		schedule: schedule,
		keeper:   keeper,
		logger:   logging.OrNop(logger).Named("reading"),
	}
}

// ResolveKey turns an empty date key into today's.
func (s *ReadingService) ResolveKey(ctx context.Context, dateKey string) (string, error) {
	dateKey = strings.TrimSpace(dateKey)
	if dateKey != "" {
		return dateKey, nil
	}
	ref, ok, err := s.schedule.Today(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: no reading scheduled today", apperrors.ErrNotFound)
	}
	return ref.DateKey, nil
}

func (s *ReadingService) edition(ctx context.Context, override string) (string, error) {
	if strings.TrimSpace(override) == "" {
		return s.keeper.Edition(ctx)
	}
	edition, err := domain.ParseEdition(override)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return edition, nil
}

// Open returns the entry for dateKey with its text and records it as the
// last viewed reading. A failed lastViewed write is returned alongside the
// opened reading.
func (s *ReadingService) Open(ctx context.Context, dateKey, edition string) (domain.Opened, error) {
	ref, err := s.schedule.Entry(ctx, dateKey)
	if err != nil {
		return domain.Opened{}, err
	}
	edition, err = s.edition(ctx, edition)
	if err != nil {
		return domain.Opened{}, err
	}
	opened := domain.Opened{Ref: ref, Text: domain.ReadingText{Reference: ref.Reading, Edition: edition}}
	if !ref.IsMeditationDay {
		opened.Text = s.gateway.FetchReadingText(ctx, ref.Reading, edition)
		opened.Downloaded = opened.Text.Cached
	}
	if err := s.keeper.SetLastViewed(ctx, ref.DateKey); err != nil {
		return opened, err
	}
	return opened, nil
}

// Devotional returns the saved devotional for dateKey or generates one from
// the readings that precede it. Only a successful generation is saved.
func (s *ReadingService) Devotional(ctx context.Context, dateKey string) (domain.Devotional, bool, error) {
	ref, err := s.schedule.Entry(ctx, dateKey)
	if err != nil {
		return domain.Devotional{}, false, err
	}
	saved, ok, err := s.keeper.SavedDevotional(ctx, ref.DateKey)
	if err != nil {
		return domain.Devotional{}, false, err
	}
	if ok {
		return saved, true, nil
	}

	preceding, err := s.schedule.Preceding(ctx, ref.DateKey, domain.DevotionalWindow)
	if err != nil {
		return domain.Devotional{}, false, err
	}
	readings := make([]string, 0, len(preceding))
	for _, p := range preceding {
		readings = append(readings, p.Reading)
	}
	devotional, ok := s.gateway.GenerateDevotional(ctx, readings, ref.Focus)
	if !ok {
		return domain.Devotional{}, false, fmt.Errorf("%w: devotional for %s", apperrors.ErrGenerationUnavailable, ref.DateKey)
	}
	if err := s.keeper.CacheDevotional(ctx, ref.DateKey, devotional); err != nil {
		if errors.Is(err, apperrors.ErrNoProgress) {
			return devotional, false, nil
		}
		s.logger.Warn("devotional not saved", zap.String("date", ref.DateKey), zap.Error(err))
		return devotional, false, err
	}
	return devotional, false, nil
}

// Download stores the text of dateKey's reading for offline use.
func (s *ReadingService) Download(ctx context.Context, dateKey string) (domain.ReadingText, error) {
	ref, err := s.readable(ctx, dateKey)
	if err != nil {
		return domain.ReadingText{}, err
	}
	edition, err := s.keeper.Edition(ctx)
	if err != nil {
		return domain.ReadingText{}, err
	}
	text := s.gateway.FetchReadingText(ctx, ref.Reading, edition)
	if text.Fallback {
		return text, fmt.Errorf("%w: text for %s is unavailable", apperrors.ErrGenerationUnavailable, ref.Reading)
	}
	if text.Cached {
		return text, nil
	}
	if err := s.gateway.SaveText(ctx, text); err != nil {
		return text, err
	}
	return text, nil
}

func (s *ReadingService) RemoveDownload(ctx context.Context, dateKey string) (bool, error) {
	ref, err := s.readable(ctx, dateKey)
	if err != nil {
		return false, err
	}
	edition, err := s.keeper.Edition(ctx)
	if err != nil {
		return false, err
	}
	return s.gateway.RemoveText(ctx, ref.Reading, edition)
}

func (s *ReadingService) Downloads(ctx context.Context) ([]domain.CachedText, error) {
	return s.gateway.StoredTexts(ctx)
}

func (s *ReadingService) ClearDownloads(ctx context.Context) (int, error) {
	return s.gateway.ClearTexts(ctx)
}

// Phrase returns a motivational phrase for the theme of dateKey's entry
// along with that theme.
func (s *ReadingService) Phrase(ctx context.Context, dateKey string) (string, string, error) {
	ref, err := s.schedule.Entry(ctx, dateKey)
	if err != nil {
		return "", "", err
	}
	return s.gateway.GenerateShortPhrase(ctx, ref.Focus), ref.Focus, nil
}

func (s *ReadingService) Messiah(ctx context.Context, dateKey string) (domain.ReadingRef, string, error) {
	ref, err := s.readable(ctx, dateKey)
	if err != nil {
		return domain.ReadingRef{}, "", err
	}
	return ref, s.gateway.MessianicConnection(ctx, ref.Reading), nil
}

func (s *ReadingService) LookupTerm(ctx context.Context, term string) (domain.Term, error) {
	if strings.TrimSpace(term) == "" {
		return domain.Term{}, fmt.Errorf("%w: term is required", apperrors.ErrInvalidInput)
	}
	found, ok := s.gateway.LookupTerm(ctx, term)
	if !ok {
		return domain.Term{}, fmt.Errorf("%w: definition for %q", apperrors.ErrGenerationUnavailable, term)
	}
	return found, nil
}

func (s *ReadingService) readable(ctx context.Context, dateKey string) (domain.ReadingRef, error) {
	ref, err := s.schedule.Entry(ctx, dateKey)
	if err != nil {
		return domain.ReadingRef{}, err
	}
	if ref.IsMeditationDay {
		return domain.ReadingRef{}, fmt.Errorf("%w: %s is a meditation day", apperrors.ErrInvalidInput, ref.DateKey)
	}
	return ref, nil
}
