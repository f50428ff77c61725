package domain_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	plandomain "jornada/internal/modules/plan/domain"
	"jornada/internal/modules/progress/domain"
)

// testPlan has phase 1 with three entries and phase 2 with 32 consecutive
// entries starting in February.
func testPlan(t *testing.T) plandomain.Plan {
	t.Helper()
	entries := []plandomain.ReadingEntry{
		{Date: "01-05", Quarter: plandomain.Q1, PhaseID: 1},
		{Date: "01-06", Quarter: plandomain.Q1, PhaseID: 1},
		{Date: "01-07", Quarter: plandomain.Q1, PhaseID: 1},
	}
	for d := 1; d <= 28; d++ {
		entries = append(entries, plandomain.ReadingEntry{Date: fmt.Sprintf("02-%02d", d), Quarter: plandomain.Q1, PhaseID: 2})
	}
	for d := 1; d <= 4; d++ {
		entries = append(entries, plandomain.ReadingEntry{Date: fmt.Sprintf("03-%02d", d), Quarter: plandomain.Q1, PhaseID: 2})
	}
	plan, err := plandomain.NewPlan(nil, []plandomain.Phase{{ID: 1, Name: "A Lei"}, {ID: 2, Name: "A Terra Prometida"}}, entries)
	if err != nil {
		t.Fatalf("new plan: %v", err)
	}
	return plan
}

func TestEvaluateBadgesExplorerAndPhase(t *testing.T) {
	t.Parallel()
	plan := testPlan(t)
	if got := domain.EvaluateBadges(plan, nil, nil); len(got) != 0 {
		t.Fatalf("no completions must award nothing, got %v", got)
	}
	got := domain.EvaluateBadges(plan, []string{"01-05"}, nil)
	if diff := cmp.Diff([]string{"Explorador"}, got); diff != "" {
		t.Fatalf("first completion mismatch:\n%s", diff)
	}
	got = domain.EvaluateBadges(plan, []string{"01-05", "01-06", "01-07"}, got)
	if diff := cmp.Diff([]string{"Explorador", "A Lei"}, got); diff != "" {
		t.Fatalf("phase completion mismatch:\n%s", diff)
	}
}

func TestEvaluateBadgesIsAdditiveAndIdempotent(t *testing.T) {
	t.Parallel()
	plan := testPlan(t)
	existing := []string{"Custom", "A Lei"}
	once := domain.EvaluateBadges(plan, []string{"02-01"}, existing)
	twice := domain.EvaluateBadges(plan, []string{"02-01"}, once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("evaluation not idempotent:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Custom", "A Lei", "Explorador"}, once); diff != "" {
		t.Fatalf("existing badges must be kept in order:\n%s", diff)
	}
	if len(existing) != 2 {
		t.Fatalf("input slice must not be modified")
	}
}

func TestEvaluateBadgesFaithfulStreak(t *testing.T) {
	t.Parallel()
	plan := testPlan(t)
	var completed []string
	for d := 1; d <= 28; d++ {
		completed = append(completed, fmt.Sprintf("02-%02d", d))
	}
	completed = append(completed, "03-01")
	got := domain.EvaluateBadges(plan, completed, nil)
	for _, b := range got {
		if b == domain.FaithfulBadge {
			t.Fatalf("29 entries must not award %s", b)
		}
	}
	got = domain.EvaluateBadges(plan, append(completed, "03-02"), got)
	if got[len(got)-1] != domain.FaithfulBadge {
		t.Fatalf("30 consecutive entries must award %s, got %v", domain.FaithfulBadge, got)
	}
	if len(domain.Catalog(plan)) != 4 {
		t.Fatalf("catalog must list explorer, two phases and the streak badge")
	}
}
