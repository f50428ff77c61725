package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	journalout "jornada/internal/modules/journal/adapter/out"
	"jornada/internal/modules/journal/domain"
	"jornada/internal/modules/journal/dto"
	"jornada/internal/modules/journal/service"
	"jornada/internal/modules/journal/usecase"
	apperrors "jornada/internal/platform/errors"
)

type fakeSource struct {
	entries []domain.Entry
	err     error
}

func (f fakeSource) Entries(context.Context) ([]domain.Entry, error) { return f.entries, f.err }

func TestExportWritesNotesAndIndex(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	source := fakeSource{entries: []domain.Entry{
		{DateKey: "01-06", Reading: "Gênesis 5-8", Reflection: "Noé andou com Deus."},
		{DateKey: "01-05", Reading: "Gênesis 1-4", Reflection: "Criação."},
		{DateKey: "01-07", Reading: "Gênesis 9-11", Reflection: ""},
	}}
	uc := usecase.NewInteractor(service.NewJournalService(source, journalout.NewVaultJournalStore(), nil), dir)

	out, err := uc.Export(context.Background(), dto.ExportInput{})
	require.NoError(t, err)
	assert.Equal(t, dir, out.Dir)
	assert.Equal(t, []string{
		filepath.Join(dir, "01-05-genesis-1-4.md"),
		filepath.Join(dir, "01-06-genesis-5-8.md"),
	}, out.Notes)
	_, err = os.Stat(filepath.Join(dir, "01-07-genesis-9-11.md"))
	assert.True(t, os.IsNotExist(err))
	assert.FileExists(t, out.IndexPath)
}

func TestExportPropagatesMissingProgress(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewJournalService(fakeSource{err: apperrors.ErrNoProgress}, journalout.NewVaultJournalStore(), nil), t.TempDir())
	_, err := uc.Export(context.Background(), dto.ExportInput{})
	assert.ErrorIs(t, err, apperrors.ErrNoProgress)

	empty := usecase.NewInteractor(service.NewJournalService(fakeSource{}, journalout.NewVaultJournalStore(), nil), "")
	_, err = empty.Export(context.Background(), dto.ExportInput{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
