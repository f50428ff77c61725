package domain_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"jornada/internal/modules/plan/domain"
)

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 9, 0, 0, 0, time.UTC)
}

// fixture: phase 1 covers 01-05..01-11 (a full Monday-Sunday week), phase 2
// covers 01-12..01-14, phase 3 has no entries.
func fixture(t *testing.T) domain.Plan {
	t.Helper()
	entries := []domain.ReadingEntry{
		{Date: "01-12", Reading: "Josué 1-3", Quarter: domain.Q1, PhaseID: 2},
		{Date: "01-05", Reading: "Gênesis 1-4", Quarter: domain.Q1, PhaseID: 1, Focus: "No Princípio"},
		{Date: "01-06", Reading: "Gênesis 5-8", Quarter: domain.Q1, PhaseID: 1},
		{Date: "01-07", Reading: "Gênesis 9-11", Quarter: domain.Q1, PhaseID: 1},
		{Date: "01-08", Reading: "Gênesis 12-15", Quarter: domain.Q1, PhaseID: 1},
		{Date: "01-09", Reading: "Gênesis 16-19", Quarter: domain.Q1, PhaseID: 1},
		{Date: "01-10", Reading: "Gênesis 20-23", Quarter: domain.Q1, PhaseID: 1},
		{Date: "01-11", Reading: "Dia de Meditação", IsMeditationDay: true, Quarter: domain.Q1, PhaseID: 1},
		{Date: "01-13", Reading: "Josué 4-6", Quarter: domain.Q1, PhaseID: 2},
		{Date: "01-14", Reading: "Josué 7-9", Quarter: domain.Q1, PhaseID: 2},
	}
	phases := []domain.Phase{{ID: 2, Name: "A Terra Prometida"}, {ID: 1, Name: "A Lei"}, {ID: 3, Name: "O Reino"}}
	plan, err := domain.NewPlan([]domain.QuarterInfo{{Tag: domain.Q1, Title: "Fundamentos"}}, phases, entries)
	if err != nil {
		t.Fatalf("new plan: %v", err)
	}
	return plan
}

func keys(entries []domain.ReadingEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Date)
	}
	return out
}

func TestNewPlanSortsAndRejectsInvalidData(t *testing.T) {
	t.Parallel()
	plan := fixture(t)
	if plan.Entries()[0].Date != "01-05" || plan.Entries()[plan.Len()-1].Date != "01-14" {
		t.Fatalf("entries not sorted: %v", keys(plan.Entries()))
	}
	if plan.Phases()[0].ID != 1 {
		t.Fatalf("phases not sorted")
	}

	phases := []domain.Phase{{ID: 1, Name: "A Lei"}}
	bad := [][]domain.ReadingEntry{
		nil,
		{{Date: "13-01", Quarter: domain.Q1, PhaseID: 1}},
		{{Date: "01-05", Quarter: domain.Q1, PhaseID: 1}, {Date: "01-05", Quarter: domain.Q1, PhaseID: 1}},
		{{Date: "01-05", Quarter: domain.Q1, PhaseID: 9}},
		{{Date: "01-05", Quarter: "5º Trimestre", PhaseID: 1}},
	}
	for i, entries := range bad {
		if _, err := domain.NewPlan(nil, phases, entries); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
	if _, err := domain.NewPlan(nil, []domain.Phase{{ID: 11}}, []domain.ReadingEntry{{Date: "01-05", Quarter: domain.Q1, PhaseID: 11}}); err == nil {
		t.Fatalf("expected phase range error")
	}
}

func TestEntryForDateUsesMonthDayOnly(t *testing.T) {
	t.Parallel()
	plan := fixture(t)
	entry, ok := plan.EntryForDate(time.Date(2031, time.January, 5, 23, 0, 0, 0, time.UTC))
	if !ok || entry.Reading != "Gênesis 1-4" {
		t.Fatalf("expected Gênesis 1-4, got %+v ok=%v", entry, ok)
	}
	if _, ok := plan.EntryForDate(day(time.February, 29)); ok {
		t.Fatalf("leap day must have no entry")
	}
	if !domain.ValidKey("02-29") || domain.ValidKey("02-30") || domain.ValidKey("1-05") {
		t.Fatalf("unexpected key validation")
	}
}

func TestPhaseProgressIsMonotonicAndRounded(t *testing.T) {
	t.Parallel()
	plan := fixture(t)
	completed := []string{}
	last := 0
	for _, key := range []string{"01-05", "01-06", "01-07", "01-08", "01-09", "01-10", "01-11"} {
		completed = append(completed, key)
		got := plan.PhaseProgress(1, completed)
		if got.Percentage < last {
			t.Fatalf("percentage decreased: %d -> %d", last, got.Percentage)
		}
		last = got.Percentage
	}
	if last != 100 {
		t.Fatalf("expected full phase, got %d", last)
	}
	if got := plan.PhaseProgress(1, []string{"01-05"}); got.Percentage != 14 || got.TotalCount != 7 {
		t.Fatalf("expected 1/7 = 14%%, got %+v", got)
	}
	if got := plan.PhaseProgress(2, []string{"01-12", "01-13"}); got.Percentage != 67 {
		t.Fatalf("expected 2/3 rounded to 67, got %+v", got)
	}
	if got := plan.PhaseProgress(3, []string{"01-05"}); got.Percentage != 0 || got.TotalCount != 0 {
		t.Fatalf("empty phase must be 0%%, got %+v", got)
	}
	if got := plan.PhaseProgress(2, []string{"01-12", "01-12"}); got.CompletedCount != 1 {
		t.Fatalf("duplicates must count once, got %+v", got)
	}
}

func TestWeeklyPendingExcludesCompleted(t *testing.T) {
	t.Parallel()
	plan := fixture(t)
	got := keys(plan.WeeklyPending(day(time.January, 8), []string{"01-06", "01-09"}))
	want := []string{"01-05", "01-07", "01-08", "01-10", "01-11"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("weekly pending mismatch (-want +got):\n%s", diff)
	}
	// Sunday belongs to the week that started on the previous Monday.
	if got := keys(plan.WeeklyPending(day(time.January, 11), nil)); len(got) != 7 || got[6] != "01-11" {
		t.Fatalf("sunday week mismatch: %v", got)
	}
	if got := plan.WeeklyPending(day(time.January, 13), []string{"01-12", "01-13", "01-14"}); len(got) != 0 {
		t.Fatalf("expected nothing pending, got %v", keys(got))
	}
}

func TestResolveWrapsToFirstEntry(t *testing.T) {
	t.Parallel()
	plan := fixture(t)
	if got := plan.Resolve(day(time.January, 1)).Date; got != "01-05" {
		t.Fatalf("expected 01-05 before the plan starts, got %s", got)
	}
	if got := plan.Resolve(day(time.January, 13)).Date; got != "01-13" {
		t.Fatalf("expected exact match, got %s", got)
	}
	if got := plan.Resolve(day(time.March, 1)).Date; got != "01-05" {
		t.Fatalf("expected wrap to 01-05, got %s", got)
	}
}

func TestPrecedingReadingsAndGrouping(t *testing.T) {
	t.Parallel()
	plan := fixture(t)
	if diff := cmp.Diff([]string{"01-07", "01-08", "01-09", "01-10", "01-11", "01-12"}, keys(plan.PrecedingReadings("01-13", 6))); diff != "" {
		t.Fatalf("preceding mismatch:\n%s", diff)
	}
	if got := plan.PrecedingReadings("01-06", 6); len(got) != 1 {
		t.Fatalf("expected one preceding entry, got %v", keys(got))
	}
	if plan.PrecedingReadings("02-01", 6) != nil {
		t.Fatalf("unknown key must yield nil")
	}
	if len(plan.ByQuarter(domain.Q1)) != plan.Len() || len(plan.ByQuarter(domain.Q2)) != 0 {
		t.Fatalf("unexpected quarter grouping")
	}
	phase, ok := plan.PhaseOf(plan.Entries()[0])
	if !ok || phase.Name != "A Lei" {
		t.Fatalf("unexpected phase lookup: %+v", phase)
	}
}

func TestStreaks(t *testing.T) {
	t.Parallel()
	plan := fixture(t)
	completed := []string{"01-05", "01-06", "01-08", "01-09", "01-10", "01-12"}
	if got := plan.LongestStreak(completed); got != 3 {
		t.Fatalf("expected longest streak 3, got %d", got)
	}
	// 01-11 not done: streak is broken before 01-12.
	if got := plan.CurrentStreak(day(time.January, 12), completed); got != 1 {
		t.Fatalf("expected current streak 1, got %d", got)
	}
	// Today (01-11) pending does not reset the streak ending yesterday.
	if got := plan.CurrentStreak(day(time.January, 11), completed); got != 3 {
		t.Fatalf("expected current streak 3, got %d", got)
	}
	if got := plan.CurrentStreak(day(time.January, 2), completed); got != 0 {
		t.Fatalf("expected no streak before the plan, got %d", got)
	}
	if got := plan.OverallProgress(completed); got.CompletedCount != 6 || got.Percentage != 60 {
		t.Fatalf("unexpected overall progress: %+v", got)
	}
}

func TestWeekBounds(t *testing.T) {
	t.Parallel()
	monday, sunday := domain.WeekBounds(day(time.January, 7))
	if monday.Day() != 5 || sunday.Day() != 11 {
		t.Fatalf("unexpected bounds %s..%s", monday, sunday)
	}
}
