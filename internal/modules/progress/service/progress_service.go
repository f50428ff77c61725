package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	plandomain "jornada/internal/modules/plan/domain"
	"jornada/internal/modules/progress/domain"
	progressout "jornada/internal/modules/progress/port/out"
	"jornada/internal/platform/clock"
	apperrors "jornada/internal/platform/errors"
	"jornada/internal/platform/id"
	"jornada/internal/platform/logging"
)

// ProgressService owns the in-memory aggregate. Every write goes through
// commit; after a failed save the in-memory value stays authoritative.
type ProgressService struct {
	mu      sync.Mutex
	plan    plandomain.Plan
	store   progressout.ProgressStore
	clock   clock.Clock
	loc     *time.Location
	idGen   id.Generator
	logger  *zap.Logger
	syncFor time.Duration

	current *domain.UserProgress
}

type Options struct {
	Location      *time.Location
	SyncIndicator time.Duration
	Logger        *zap.Logger
}

func NewProgressService(plan plandomain.Plan, store progressout.ProgressStore, clk clock.Clock, idGen id.Generator, opts Options) *ProgressService {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &ProgressService{
		plan:    plan,
		store:   store,
		clock:   clk,
		loc:     loc,
		idGen:   idGen,
		logger:  logging.OrNop(opts.Logger).Named("progress"),
		syncFor: opts.SyncIndicator,
	}
}

func (s *ProgressService) Plan() plandomain.Plan { return s.plan }

// SyncIndicator is how long the UI shows its "syncing" state after a commit.
func (s *ProgressService) SyncIndicator() time.Duration { return s.syncFor }

func (s *ProgressService) Now() time.Time { return clock.LocalNow(s.clock, s.loc) }

func (s *ProgressService) today() string { return clock.Today(s.clock, s.loc) }

func (s *ProgressService) Load(ctx context.Context) (domain.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.loadLocked(ctx)
	if err != nil {
		return domain.UserProgress{}, err
	}
	return current.Clone(), nil
}

// loadLocked returns the aggregate, reading the store on first use and
// applying the daily reset whenever the calendar day has moved on.
func (s *ProgressService) loadLocked(ctx context.Context) (domain.UserProgress, error) {
	if s.current == nil {
		stored, err := s.store.Load(ctx)
		if err != nil {
			return domain.UserProgress{}, err
		}
		s.current = &stored
		if stored.Normalize(s.today()) {
			s.logger.Debug("normalized stored progress", zap.String("today", s.today()))
			if err := s.store.Save(ctx, stored); err != nil {
				s.logger.Warn("persist normalized progress", zap.Error(err))
			}
		}
		return *s.current, nil
	}
	next := s.current.Clone()
	if next.ResetDaily(s.today()) {
		if _, err := s.commitLocked(ctx, next); err != nil {
			s.logger.Warn("persist daily reset", zap.Error(err))
		}
	}
	return *s.current, nil
}

func (s *ProgressService) commitLocked(ctx context.Context, next domain.UserProgress) (domain.UserProgress, error) {
	s.current = &next
	if err := s.store.Save(ctx, next); err != nil {
		s.logger.Error("commit progress", zap.Error(err))
		return next.Clone(), fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	s.logger.Debug("committed progress", zap.Int("completed", len(next.CompletedDates)))
	return next.Clone(), nil
}

// mutate applies fn to a copy of the loaded aggregate and commits it.
func (s *ProgressService) mutate(ctx context.Context, fn func(*domain.UserProgress) error) (domain.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.loadLocked(ctx)
	if err != nil {
		return domain.UserProgress{}, err
	}
	next := current.Clone()
	if err := fn(&next); err != nil {
		return domain.UserProgress{}, err
	}
	return s.commitLocked(ctx, next)
}

func (s *ProgressService) Onboard(ctx context.Context, userName string) (domain.UserProgress, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return domain.UserProgress{}, fmt.Errorf("%w: name is required", apperrors.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.loadLocked(ctx); err == nil {
		return domain.UserProgress{}, apperrors.ErrAlreadyOnboarded
	} else if !errors.Is(err, apperrors.ErrNoProgress) {
		return domain.UserProgress{}, err
	}
	now := s.Now()
	today := now.Format("2006-01-02")
	progress := domain.New(userName, today, today, s.plan.Resolve(now).Date)
	s.logger.Info("onboarded", zap.String("start", today), zap.String("first_reading", progress.LastViewedDate))
	return s.commitLocked(ctx, progress)
}

// MarkCompleted records key as read, stores the reflection (latest call
// wins) and awards any newly qualifying badges in the same commit.
func (s *ProgressService) MarkCompleted(ctx context.Context, key, reflection string) (domain.UserProgress, []string, error) {
	if _, ok := s.plan.EntryByKey(key); !ok {
		return domain.UserProgress{}, nil, fmt.Errorf("%w: no reading for %q", apperrors.ErrNotFound, key)
	}
	var awarded []string
	next, err := s.mutate(ctx, func(p *domain.UserProgress) error {
		p.Complete(key)
		p.Reflections[key] = reflection
		before := len(p.Badges)
		p.Badges = domain.EvaluateBadges(s.plan, p.CompletedDates, p.Badges)
		awarded = append(awarded, p.Badges[before:]...)
		p.LastViewedDate = key
		return nil
	})
	if err != nil && !errors.Is(err, apperrors.ErrPersistence) {
		return domain.UserProgress{}, nil, err
	}
	if len(awarded) > 0 {
		s.logger.Info("badges awarded", zap.Strings("badges", awarded))
	}
	return next, awarded, err
}

func (s *ProgressService) ToggleDailyGoal(ctx context.Context, kind domain.GoalKind) (domain.UserProgress, error) {
	return s.mutate(ctx, func(p *domain.UserProgress) error {
		p.DailyGoalProgress = p.DailyGoalProgress.Toggle(kind)
		return nil
	})
}

func (s *ProgressService) SetGoalConfig(ctx context.Context, kind domain.GoalKind, value int) (domain.UserProgress, error) {
	return s.mutate(ctx, func(p *domain.UserProgress) error {
		p.DailyGoalsConfig = p.DailyGoalsConfig.With(kind, value)
		return nil
	})
}

func (s *ProgressService) AdjustGoalConfig(ctx context.Context, kind domain.GoalKind, delta int) (domain.UserProgress, error) {
	return s.mutate(ctx, func(p *domain.UserProgress) error {
		p.DailyGoalsConfig = p.DailyGoalsConfig.With(kind, p.DailyGoalsConfig.Value(kind)+delta)
		return nil
	})
}

func (s *ProgressService) CacheDevotional(ctx context.Context, key string, devotional domain.Devotional) (domain.UserProgress, error) {
	return s.mutate(ctx, func(p *domain.UserProgress) error {
		p.SavedDevotionals[key] = devotional
		return nil
	})
}

func (s *ProgressService) SavedDevotional(ctx context.Context, key string) (domain.Devotional, bool, error) {
	progress, err := s.Load(ctx)
	if err != nil {
		return domain.Devotional{}, false, err
	}
	devotional, ok := progress.SavedDevotionals[key]
	return devotional, ok, nil
}

func (s *ProgressService) SetVersion(ctx context.Context, edition domain.Edition) (domain.UserProgress, error) {
	return s.mutate(ctx, func(p *domain.UserProgress) error {
		p.Version = edition
		return nil
	})
}

func (s *ProgressService) SetLastViewed(ctx context.Context, key string) (domain.UserProgress, error) {
	if _, ok := s.plan.EntryByKey(key); !ok {
		return domain.UserProgress{}, fmt.Errorf("%w: no reading for %q", apperrors.ErrNotFound, key)
	}
	return s.mutate(ctx, func(p *domain.UserProgress) error {
		p.LastViewedDate = key
		return nil
	})
}

func (s *ProgressService) AddReminder(ctx context.Context, at, label string, kind domain.ReminderKind) (domain.Reminder, error) {
	reminder := domain.Reminder{Time: strings.TrimSpace(at), Label: strings.TrimSpace(label), Type: kind, Active: true}
	if err := reminder.Validate(); err != nil {
		return domain.Reminder{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	reminder.ID = s.idGen.New()
	_, err := s.mutate(ctx, func(p *domain.UserProgress) error {
		p.Reminders = append(p.Reminders, reminder)
		return nil
	})
	if err != nil && !errors.Is(err, apperrors.ErrPersistence) {
		return domain.Reminder{}, err
	}
	return reminder, err
}

func (s *ProgressService) ToggleReminder(ctx context.Context, reminderID string) (domain.Reminder, error) {
	var toggled domain.Reminder
	_, err := s.mutate(ctx, func(p *domain.UserProgress) error {
		idx, ok := p.Reminder(reminderID)
		if !ok {
			return fmt.Errorf("%w: reminder %q", apperrors.ErrNotFound, reminderID)
		}
		p.Reminders[idx].Active = !p.Reminders[idx].Active
		toggled = p.Reminders[idx]
		return nil
	})
	if err != nil && !errors.Is(err, apperrors.ErrPersistence) {
		return domain.Reminder{}, err
	}
	return toggled, err
}

func (s *ProgressService) RemoveReminder(ctx context.Context, reminderID string) error {
	_, err := s.mutate(ctx, func(p *domain.UserProgress) error {
		idx, ok := p.Reminder(reminderID)
		if !ok {
			return fmt.Errorf("%w: reminder %q", apperrors.ErrNotFound, reminderID)
		}
		p.Reminders = append(p.Reminders[:idx], p.Reminders[idx+1:]...)
		return nil
	})
	return err
}

// Reset deletes the stored record; the next Load reports ErrNoProgress.
func (s *ProgressService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	s.current = nil
	s.logger.Info("progress reset")
	return nil
}
