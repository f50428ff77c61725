package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"jornada/internal/modules/progress/domain"
	progressout "jornada/internal/modules/progress/port/out"
	apperrors "jornada/internal/platform/errors"
)

// progressRecord keeps the field names of the browser record so an exported
// record can be dropped into the data dir as is.
type progressRecord struct {
	SchemaVersion     int                          `json:"schema_version"`
	CompletedDates    []string                     `json:"completedDates"`
	Reflections       map[string]string            `json:"reflections"`
	UserName          string                       `json:"userName"`
	StartDate         string                       `json:"startDate"`
	Version           domain.Edition               `json:"version"`
	Badges            []string                     `json:"badges"`
	Reminders         []domain.Reminder            `json:"reminders"`
	DailyGoalsConfig  *domain.DailyGoalsConfig     `json:"dailyGoalsConfig,omitempty"`
	DailyGoalProgress *domain.DailyGoalProgress    `json:"dailyGoalProgress,omitempty"`
	SavedDevotionals  map[string]domain.Devotional `json:"savedDevotionals"`
	LastViewedDate    string                       `json:"lastViewedDate,omitempty"`
}

type FileProgressStore struct {
	path string
}

func NewFileProgressStore(path string) progressout.ProgressStore {
	return &FileProgressStore{path: path}
}

func (s *FileProgressStore) Load(_ context.Context) (domain.UserProgress, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.UserProgress{}, apperrors.ErrNoProgress
		}
		return domain.UserProgress{}, fmt.Errorf("read progress: %w", err)
	}
	record := progressRecord{}
	if err := json.Unmarshal(payload, &record); err != nil {
		return domain.UserProgress{}, fmt.Errorf("decode progress: %w", err)
	}
	if record.SchemaVersion > domain.SchemaVersion {
		return domain.UserProgress{}, fmt.Errorf("progress schema %d is newer than supported %d", record.SchemaVersion, domain.SchemaVersion)
	}

	progress := domain.UserProgress{
		UserName:         record.UserName,
		StartDate:        record.StartDate,
		CompletedDates:   record.CompletedDates,
		Reflections:      record.Reflections,
		Badges:           record.Badges,
		SavedDevotionals: record.SavedDevotionals,
		LastViewedDate:   record.LastViewedDate,
		DailyGoalsConfig: domain.DefaultGoals(),
		Version:          record.Version,
		Reminders:        record.Reminders,
	}
	if record.DailyGoalsConfig != nil {
		progress.DailyGoalsConfig = *record.DailyGoalsConfig
	}
	if record.DailyGoalProgress != nil {
		progress.DailyGoalProgress = *record.DailyGoalProgress
	}
	if progress.CompletedDates == nil {
		progress.CompletedDates = []string{}
	}
	if progress.Badges == nil {
		progress.Badges = []string{}
	}
	return progress, nil
}

// Save writes to a temp file in the same directory and renames it over the
// record, so a crash never leaves a torn document behind.
func (s *FileProgressStore) Save(_ context.Context, progress domain.UserProgress) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}
	goals := progress.DailyGoalsConfig
	daily := progress.DailyGoalProgress
	payload, err := json.MarshalIndent(progressRecord{
		SchemaVersion:     domain.SchemaVersion,
		CompletedDates:    progress.CompletedDates,
		Reflections:       progress.Reflections,
		UserName:          progress.UserName,
		StartDate:         progress.StartDate,
		Version:           progress.Version,
		Badges:            progress.Badges,
		Reminders:         progress.Reminders,
		DailyGoalsConfig:  &goals,
		DailyGoalProgress: &daily,
		SavedDevotionals:  progress.SavedDevotionals,
		LastViewedDate:    progress.LastViewedDate,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".progress-*.json")
	if err != nil {
		return fmt.Errorf("create temp progress: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp progress: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace progress: %w", err)
	}
	return nil
}

func (s *FileProgressStore) Delete(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}
