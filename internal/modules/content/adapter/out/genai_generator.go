package out

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"jornada/internal/modules/content/domain"
	contentout "jornada/internal/modules/content/port/out"
	apperrors "jornada/internal/platform/errors"
)

type GenaiOptions struct {
	APIKey            string
	Model             string
	Timeout           time.Duration
	RequestsPerMinute int
}

type GenaiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
}

func NewGenaiGenerator(ctx context.Context, opts GenaiOptions) (contentout.Generator, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("%w: api key is empty", apperrors.ErrGenerationUnavailable)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenaiGenerator{
		client:  client,
		model:   opts.Model,
		timeout: opts.Timeout,
		limiter: newLimiter(opts.RequestsPerMinute),
	}, nil
}

func newLimiter(rpm int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm)
}

func (g *GenaiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt, nil)
}

func (g *GenaiGenerator) GenerateJSON(ctx context.Context, prompt string, schema domain.Schema) (string, error) {
	return g.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toGenaiSchema(&schema),
	})
}

func (g *GenaiGenerator) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for rate limiter: %w", err)
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response", apperrors.ErrGenerationUnavailable)
	}
	return text, nil
}

func toGenaiSchema(schema *domain.Schema) *genai.Schema {
	if schema == nil {
		return nil
	}
	out := &genai.Schema{
		Type:     toGenaiType(schema.Type),
		Items:    toGenaiSchema(schema.Items),
		Required: schema.Required,
	}
	if len(schema.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(schema.Properties))
		for name, prop := range schema.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}

func toGenaiType(kind domain.SchemaType) genai.Type {
	switch kind {
	case domain.TypeObject:
		return genai.TypeObject
	case domain.TypeArray:
		return genai.TypeArray
	default:
		return genai.TypeString
	}
}
