package domain

import (
	"fmt"

	plandomain "jornada/internal/modules/plan/domain"
)

const (
	ExplorerBadge     = "Explorador"
	FaithfulBadge     = "Fiel Mensal"
	FaithfulStreakLen = 30
)

type Badge struct {
	Name        string
	Description string
}

// Catalog lists every badge the evaluator can award, in award order.
func Catalog(plan plandomain.Plan) []Badge {
	out := []Badge{{Name: ExplorerBadge, Description: "Concluiu a primeira leitura do plano."}}
	for _, phase := range plan.Phases() {
		out = append(out, Badge{Name: phase.Name, Description: fmt.Sprintf("Concluiu a fase %d: %s.", phase.ID, phase.Name)})
	}
	out = append(out, Badge{Name: FaithfulBadge, Description: fmt.Sprintf("Completou %d leituras seguidas do plano.", FaithfulStreakLen)})
	return out
}

// EvaluateBadges returns existing plus every badge the completion set
// qualifies for. Badges are never removed; new ones follow catalog order.
func EvaluateBadges(plan plandomain.Plan, completed, existing []string) []string {
	out := append([]string{}, existing...)
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}
	award := func(name string) {
		if !have[name] {
			have[name] = true
			out = append(out, name)
		}
	}

	if len(completed) > 0 {
		award(ExplorerBadge)
	}
	for _, phase := range plan.Phases() {
		progress := plan.PhaseProgress(phase.ID, completed)
		if progress.TotalCount > 0 && progress.CompletedCount == progress.TotalCount {
			award(phase.Name)
		}
	}
	if plan.LongestStreak(completed) >= FaithfulStreakLen {
		award(FaithfulBadge)
	}
	return out
}
