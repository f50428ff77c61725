package out

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"jornada/internal/modules/dictionary/domain"
	dictionaryout "jornada/internal/modules/dictionary/port/out"
)

//go:embed data/dictionary.yaml
var embeddedDictionary []byte

type yamlTerm struct {
	Term       string `yaml:"term"`
	Definition string `yaml:"definition"`
}

type YAMLTermSource struct {
	raw []byte
}

func NewEmbeddedTermSource() dictionaryout.TermSource {
	return &YAMLTermSource{raw: embeddedDictionary}
}

func NewYAMLTermSource(raw []byte) dictionaryout.TermSource {
	return &YAMLTermSource{raw: raw}
}

func (s *YAMLTermSource) Load(context.Context) ([]domain.Term, error) {
	var items []yamlTerm
	if err := yaml.Unmarshal(s.raw, &items); err != nil {
		return nil, fmt.Errorf("decode dictionary: %w", err)
	}
	out := make([]domain.Term, 0, len(items))
	for _, item := range items {
		out = append(out, domain.Term{Term: item.Term, Definition: item.Definition})
	}
	return out, nil
}
