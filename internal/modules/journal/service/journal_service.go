package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"jornada/internal/modules/journal/domain"
	journalout "jornada/internal/modules/journal/port/out"
	apperrors "jornada/internal/platform/errors"
	"jornada/internal/platform/logging"
)

type ExportResult struct {
	Dir       string
	Notes     []string
	IndexPath string
}

type JournalService struct {
	source journalout.ReflectionSource
	store  journalout.NoteStore
	logger *zap.Logger
}

func NewJournalService(source journalout.ReflectionSource, store journalout.NoteStore, logger *zap.Logger) *JournalService {
	return &JournalService{source: source, store: store, logger: logging.OrNop(logger).Named("journal")}
}

func (s *JournalService) Export(ctx context.Context, dir string) (ExportResult, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return ExportResult{}, fmt.Errorf("%w: export dir is required", apperrors.ErrInvalidInput)
	}
	entries, err := s.source.Entries(ctx)
	if err != nil {
		return ExportResult{}, err
	}
	entries = domain.Exportable(entries)

	result := ExportResult{Dir: dir, Notes: make([]string, 0, len(entries))}
	for _, entry := range entries {
		path, err := s.store.WriteEntry(ctx, dir, entry)
		if err != nil {
			return result, err
		}
		result.Notes = append(result.Notes, path)
	}
	indexPath, err := s.store.WriteIndex(ctx, dir, entries)
	if err != nil {
		return result, err
	}
	result.IndexPath = indexPath
	s.logger.Info("journal exported", zap.String("dir", dir), zap.Int("notes", len(result.Notes)))
	return result, nil
}
