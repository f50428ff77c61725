package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"jornada/internal/modules/content/domain"
	contentout "jornada/internal/modules/content/port/out"
	"jornada/internal/platform/clock"
	apperrors "jornada/internal/platform/errors"
	"jornada/internal/platform/logging"
)

// GatewayService is the only path to the generator and the offline cache.
// Every generator failure turns into a fallback value and a warn log.
type GatewayService struct {
	generator contentout.Generator
	cache     contentout.TextCache
	clock     clock.Clock
	logger    *zap.Logger
	validate  *validator.Validate
	policy    *bluemonday.Policy
	group     singleflight.Group
}

func NewGatewayService(generator contentout.Generator, cache contentout.TextCache, clk clock.Clock, logger *zap.Logger) *GatewayService {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return jsonName(field.Tag.Get("json"))
	})
	return &GatewayService{
		generator: generator,
		cache:     cache,
		clock:     clk,
		logger:    logging.OrNop(logger).Named("content"),
		validate:  validate,
		policy:    bluemonday.StrictPolicy(),
	}
}

func (s *GatewayService) FetchReadingText(ctx context.Context, reference, edition string) domain.ReadingText {
	key := domain.OfflineKey(edition, reference)
	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("offline cache read failed", zap.String("resource", key), zap.Error(err))
	} else if ok {
		return domain.ReadingText{Reference: reference, Edition: edition, Text: cached.Text, Cached: true}
	}

	text, err := s.text(ctx, domain.ResourceKey("text", edition, reference), domain.PassagePrompt(reference, edition))
	if err != nil {
		return domain.ReadingText{
			Reference: reference,
			Edition:   edition,
			Text:      domain.ConnectionErrorText(reference, edition),
			Fallback:  true,
		}
	}
	return domain.ReadingText{Reference: reference, Edition: edition, Text: text}
}

func (s *GatewayService) GenerateDevotional(ctx context.Context, readings []string, focus string) (domain.Devotional, bool) {
	resource := domain.ResourceKey("devotional", focus, strings.Join(readings, ","))
	var devotional domain.Devotional
	sanitize := func() {
		devotional.Title = s.clean(devotional.Title)
		devotional.Verse = s.clean(devotional.Verse)
		devotional.Reflection = s.clean(devotional.Reflection)
		devotional.Prayer = s.clean(devotional.Prayer)
		for i, point := range devotional.PracticalPoints {
			devotional.PracticalPoints[i] = s.clean(point)
		}
	}
	if err := s.json(ctx, resource, domain.DevotionalPrompt(readings, focus), domain.DevotionalSchema(), &devotional, sanitize); err != nil {
		return domain.Devotional{}, false
	}
	return devotional, true
}

func (s *GatewayService) GenerateShortPhrase(ctx context.Context, theme string) string {
	phrase, err := s.text(ctx, domain.ResourceKey("phrase", theme), domain.PhrasePrompt(theme))
	if err != nil {
		return domain.PhraseFallback
	}
	return phrase
}

func (s *GatewayService) MessianicConnection(ctx context.Context, reading string) string {
	text, err := s.text(ctx, domain.ResourceKey("messiah", reading), domain.MessianicPrompt(reading))
	if err != nil {
		return domain.MessianicFallback
	}
	return text
}

func (s *GatewayService) LookupTerm(ctx context.Context, term string) (domain.Term, bool) {
	term = strings.TrimSpace(term)
	if term == "" {
		return domain.Term{}, false
	}
	var out domain.Term
	sanitize := func() {
		out.Term = s.clean(out.Term)
		out.Definition = s.clean(out.Definition)
	}
	if err := s.json(ctx, domain.ResourceKey("term", strings.ToLower(term)), domain.TermPrompt(term), domain.TermSchema(), &out, sanitize); err != nil {
		return domain.Term{}, false
	}
	return out, true
}

func (s *GatewayService) SaveText(ctx context.Context, text domain.ReadingText) error {
	if text.Fallback {
		return fmt.Errorf("%w: refusing to store fallback text", apperrors.ErrInvalidInput)
	}
	entry := domain.NewCachedText(text.Edition, text.Reference, text.Text, s.clock.Now())
	if err := s.cache.Put(ctx, entry); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	s.logger.Debug("offline text stored", zap.String("resource", entry.Key))
	return nil
}

func (s *GatewayService) RemoveText(ctx context.Context, reference, edition string) (bool, error) {
	removed, err := s.cache.Remove(ctx, domain.OfflineKey(edition, reference))
	if err != nil {
		return false, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return removed, nil
}

func (s *GatewayService) IsStored(ctx context.Context, reference, edition string) bool {
	_, ok, err := s.cache.Get(ctx, domain.OfflineKey(edition, reference))
	return err == nil && ok
}

func (s *GatewayService) StoredTexts(ctx context.Context) ([]domain.CachedText, error) {
	items, err := s.cache.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return items, nil
}

func (s *GatewayService) ClearTexts(ctx context.Context) (int, error) {
	n, err := s.cache.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return n, nil
}

func (s *GatewayService) text(ctx context.Context, resource, prompt string) (string, error) {
	v, err, _ := s.group.Do(resource, func() (any, error) {
		return s.generator.GenerateText(ctx, prompt)
	})
	if err != nil {
		s.logger.Warn("generation failed, using fallback", zap.String("resource", resource), zap.Error(err))
		return "", err
	}
	text := s.clean(v.(string))
	if text == "" {
		s.logger.Warn("generation returned no text, using fallback", zap.String("resource", resource))
		return "", apperrors.ErrGenerationUnavailable
	}
	return text, nil
}

// json decodes into target and runs sanitize before validation, so a field
// holding only markup counts as missing.
func (s *GatewayService) json(ctx context.Context, resource, prompt string, schema domain.Schema, target any, sanitize func()) error {
	v, err, _ := s.group.Do(resource, func() (any, error) {
		return s.generator.GenerateJSON(ctx, prompt, schema)
	})
	if err != nil {
		s.logger.Warn("generation failed, using fallback", zap.String("resource", resource), zap.Error(err))
		return err
	}
	if err := json.Unmarshal([]byte(stripFence(v.(string))), target); err != nil {
		s.logger.Warn("generated json is malformed", zap.String("resource", resource), zap.Error(err))
		return fmt.Errorf("%w: decode: %v", apperrors.ErrGenerationUnavailable, err)
	}
	sanitize()
	if err := s.validate.Struct(target); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) {
			names := make([]string, 0, len(fields))
			for _, f := range fields {
				names = append(names, f.Field())
			}
			s.logger.Warn("generated json is incomplete", zap.String("resource", resource), zap.Strings("fields", names))
		}
		return fmt.Errorf("%w: %v", apperrors.ErrGenerationUnavailable, err)
	}
	return nil
}

func jsonName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	return name
}

func (s *GatewayService) clean(raw string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(raw)))
}

// stripFence drops a ```json fence some models wrap around JSON answers.
func stripFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimPrefix(trimmed, "json")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
