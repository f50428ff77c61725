package out

import (
	"context"

	"jornada/internal/modules/content/domain"
	contentout "jornada/internal/modules/content/port/out"
	apperrors "jornada/internal/platform/errors"
)

// DisabledGenerator stands in when no API key is configured.
type DisabledGenerator struct{}

func NewDisabledGenerator() contentout.Generator { return DisabledGenerator{} }

func (DisabledGenerator) GenerateText(context.Context, string) (string, error) {
	return "", apperrors.ErrGenerationUnavailable
}

func (DisabledGenerator) GenerateJSON(context.Context, string, domain.Schema) (string, error) {
	return "", apperrors.ErrGenerationUnavailable
}
