package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jornada/internal/modules/journal/domain"
	journalout "jornada/internal/modules/journal/port/out"
	"jornada/internal/platform/markdown"
)

const indexName = "index.md"

var indexBlock = markdown.NewBlock("jornada")

type VaultJournalStore struct{}

func NewVaultJournalStore() journalout.NoteStore {
	return &VaultJournalStore{}
}

type entryMeta struct {
	SchemaVersion int    `yaml:"schema_version"`
	DateKey       string `yaml:"date_key"`
	Reading       string `yaml:"reading"`
	Phase         string `yaml:"phase,omitempty"`
	Quarter       string `yaml:"quarter,omitempty"`
	Completed     bool   `yaml:"completed"`
}

func (s *VaultJournalStore) WriteEntry(_ context.Context, dir string, entry domain.Entry) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	meta := entryMeta{
		SchemaVersion: domain.SchemaVersion,
		DateKey:       entry.DateKey,
		Reading:       entry.Reading,
		Phase:         entry.PhaseName,
		Quarter:       entry.Quarter,
		Completed:     entry.Completed,
	}
	var body strings.Builder
	fmt.Fprintf(&body, "# %s\n\n", entry.Reading)
	if entry.Focus != "" {
		fmt.Fprintf(&body, "> %s\n\n", entry.Focus)
	}
	fmt.Fprintf(&body, "## Reflexão\n\n%s\n", strings.TrimSpace(entry.Reflection))
	rendered, err := markdown.RenderFrontmatter(meta, body.String())
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, entry.FileName())
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	return path, nil
}

// WriteIndex rewrites the managed block of index.md and keeps anything the
// user wrote around it.
func (s *VaultJournalStore) WriteIndex(_ context.Context, dir string, entries []domain.Entry) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	path := filepath.Join(dir, indexName)
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read journal index: %w", err)
	}
	body := string(existing)
	if strings.TrimSpace(body) == "" {
		body = "# Diário da Jornada\n"
	}

	var list strings.Builder
	for i, entry := range entries {
		if i > 0 {
			list.WriteByte('\n')
		}
		fmt.Fprintf(&list, "- [%s: %s](%s)", entry.DateKey, entry.Reading, entry.FileName())
	}
	if len(entries) == 0 {
		list.WriteString("_Nenhuma reflexão registrada._")
	}
	if err := os.WriteFile(path, []byte(indexBlock.Replace(body, list.String())), 0o644); err != nil {
		return "", fmt.Errorf("write journal index: %w", err)
	}
	return path, nil
}
