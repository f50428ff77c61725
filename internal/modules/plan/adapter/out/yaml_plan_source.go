package out

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"jornada/internal/modules/plan/domain"
	planout "jornada/internal/modules/plan/port/out"
)

//go:embed data/plan.yaml
var embeddedPlan []byte

type planDocument struct {
	Quarters []struct {
		Tag   string `yaml:"tag"`
		Title string `yaml:"title"`
		Focus string `yaml:"focus"`
	} `yaml:"quarters"`
	Phases []struct {
		ID          int      `yaml:"id"`
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Books       []string `yaml:"books"`
	} `yaml:"phases"`
	Entries []struct {
		Date       string `yaml:"date"`
		Reading    string `yaml:"reading"`
		Meditation bool   `yaml:"meditation"`
		Quarter    string `yaml:"quarter"`
		Phase      int    `yaml:"phase"`
		Focus      string `yaml:"focus"`
	} `yaml:"entries"`
}

type YAMLPlanSource struct {
	raw []byte
}

// NewEmbeddedPlanSource serves the plan compiled into the binary.
func NewEmbeddedPlanSource() planout.PlanSource {
	return &YAMLPlanSource{raw: embeddedPlan}
}

func NewYAMLPlanSource(raw []byte) planout.PlanSource {
	return &YAMLPlanSource{raw: raw}
}

func (s *YAMLPlanSource) Load(_ context.Context) (domain.Plan, error) {
	doc := planDocument{}
	if err := yaml.Unmarshal(s.raw, &doc); err != nil {
		return domain.Plan{}, fmt.Errorf("decode plan: %w", err)
	}
	quarters := make([]domain.QuarterInfo, 0, len(doc.Quarters))
	for _, q := range doc.Quarters {
		quarters = append(quarters, domain.QuarterInfo{Tag: domain.Quarter(q.Tag), Title: q.Title, Focus: q.Focus})
	}
	phases := make([]domain.Phase, 0, len(doc.Phases))
	for _, p := range doc.Phases {
		phases = append(phases, domain.Phase{ID: p.ID, Name: p.Name, Description: p.Description, Books: p.Books})
	}
	entries := make([]domain.ReadingEntry, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		entries = append(entries, domain.ReadingEntry{
			Date:            e.Date,
			Reading:         e.Reading,
			IsMeditationDay: e.Meditation,
			Quarter:         domain.Quarter(e.Quarter),
			PhaseID:         e.Phase,
			Focus:           e.Focus,
		})
	}
	plan, err := domain.NewPlan(quarters, phases, entries)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("validate plan: %w", err)
	}
	return plan, nil
}
