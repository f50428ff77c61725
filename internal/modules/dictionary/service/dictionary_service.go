package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"jornada/internal/modules/dictionary/domain"
	dictionaryout "jornada/internal/modules/dictionary/port/out"
	apperrors "jornada/internal/platform/errors"
	"jornada/internal/platform/logging"
)

type DictionaryService struct {
	dict   domain.Dictionary
	online dictionaryout.OnlineLookup
	logger *zap.Logger
}

func NewDictionaryService(ctx context.Context, source dictionaryout.TermSource, online dictionaryout.OnlineLookup, logger *zap.Logger) (*DictionaryService, error) {
	terms, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}
	dict, err := domain.NewDictionary(terms)
	if err != nil {
		return nil, fmt.Errorf("build dictionary: %w", err)
	}
	return &DictionaryService{dict: dict, online: online, logger: logging.OrNop(logger).Named("dictionary")}, nil
}

func (s *DictionaryService) Search(query string) []domain.Term {
	return s.dict.Search(query)
}

// Lookup asks the online source for a definition. Any failure other than
// bad input is reported as ErrNotFound.
func (s *DictionaryService) Lookup(ctx context.Context, term string) (domain.Term, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return domain.Term{}, fmt.Errorf("%w: term is required", apperrors.ErrInvalidInput)
	}
	found, err := s.online.Lookup(ctx, term)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return domain.Term{}, err
		}
		s.logger.Warn("online lookup failed", zap.String("term", term), zap.Error(err))
		return domain.Term{}, fmt.Errorf("%w: no definition for %q", apperrors.ErrNotFound, term)
	}
	return found, nil
}
