package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jornada/internal/modules/plan/domain"
	planout "jornada/internal/modules/plan/port/out"
	"jornada/internal/platform/clock"
	apperrors "jornada/internal/platform/errors"
)

type PlanService struct {
	plan  domain.Plan
	clock clock.Clock
	loc   *time.Location
}

// NewPlanService loads the plan once; it is immutable afterwards.
func NewPlanService(ctx context.Context, source planout.PlanSource, clk clock.Clock, loc *time.Location) (*PlanService, error) {
	plan, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return &PlanService{plan: plan, clock: clk, loc: loc}, nil
}

func (s *PlanService) Plan() domain.Plan { return s.plan }

// Now is the current instant in the configured time zone.
func (s *PlanService) Now() time.Time {
	return clock.LocalNow(s.clock, s.loc)
}

func (s *PlanService) Entry(key string) (domain.ReadingEntry, error) {
	key = strings.TrimSpace(key)
	if !domain.ValidKey(key) {
		return domain.ReadingEntry{}, fmt.Errorf("%w: date key %q must be MM-DD", apperrors.ErrInvalidInput, key)
	}
	entry, ok := s.plan.EntryByKey(key)
	if !ok {
		return domain.ReadingEntry{}, fmt.Errorf("%w: no reading for %s", apperrors.ErrNotFound, key)
	}
	return entry, nil
}

// ParseQuarter accepts either the quarter number (1-4) or its full tag.
func ParseQuarter(raw string) (domain.Quarter, error) {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "1":
		return domain.Q1, nil
	case "2":
		return domain.Q2, nil
	case "3":
		return domain.Q3, nil
	case "4":
		return domain.Q4, nil
	}
	q := domain.Quarter(raw)
	if err := q.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return q, nil
}
