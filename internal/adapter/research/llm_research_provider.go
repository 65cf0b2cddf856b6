package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/logger"
)

const researchTimeout = 45 * time.Second

// llmResearchProvider implements domain.ResearchProvider with a language
// model standing in for a search index: the model is asked for structured
// JSON and the adapter validates everything it returns.
type llmResearchProvider struct {
	model llms.Model
}

func NewLLMResearchProvider(model llms.Model) domain.ResearchProvider {
	return &llmResearchProvider{model: model}
}

func (p *llmResearchProvider) Search(ctx context.Context, query string, limit int) ([]domain.ResearchResult, error) {
	l := logger.Get()

	prompt := fmt.Sprintf(`You are a research assistant. For the query %q, produce up to %d findings.

Respond with ONLY a JSON array of objects with this shape:
{"title": "short heading", "snippet": "two to three factual sentences", "source": "the field or discipline this comes from"}

Only include findings you are confident are accurate.`, query, limit)

	ctx, cancel := context.WithTimeout(ctx, researchTimeout)
	defer cancel()

	raw, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt, llms.WithTemperature(0.3))
	if err != nil {
		l.Error("Research query failed", zap.String("query", query), zap.Error(err))
		return nil, domain.NewLLMServiceError(fmt.Errorf("research query failed: %w", err))
	}

	results, err := parseResults(raw)
	if err != nil {
		l.Error("Failed to parse research response", zap.Error(err), zap.String("raw_response", raw))
		return nil, domain.NewLLMServiceError(err)
	}
	if len(results) > limit {
		results = results[:limit]
	}

	l.Info("Research query answered", zap.String("query", query), zap.Int("results", len(results)))
	return results, nil
}

func (p *llmResearchProvider) Analyze(ctx context.Context, text string) (*domain.TextAnalysis, error) {
	l := logger.Get()

	prompt := fmt.Sprintf(`Summarize the following text for a student.

Respond with ONLY a JSON object of this shape:
{"summary": "a paragraph of at most 120 words", "key_points": ["point 1", "point 2", "..."]}

Text:
---
%s
---`, text)

	ctx, cancel := context.WithTimeout(ctx, researchTimeout)
	defer cancel()

	raw, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt, llms.WithTemperature(0.2))
	if err != nil {
		l.Error("Text analysis failed", zap.Error(err))
		return nil, domain.NewLLMServiceError(fmt.Errorf("text analysis failed: %w", err))
	}

	cleaned := strings.TrimSpace(raw)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return nil, domain.NewLLMServiceError(fmt.Errorf("no JSON object found in analysis response"))
	}

	var analysis domain.TextAnalysis
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &analysis); err != nil {
		l.Error("Failed to unmarshal analysis response", zap.Error(err), zap.String("raw_response", raw))
		return nil, domain.NewLLMServiceError(fmt.Errorf("failed to unmarshal analysis: %w", err))
	}
	if analysis.Summary == "" {
		return nil, domain.NewLLMServiceError(fmt.Errorf("analysis response missing summary"))
	}
	return &analysis, nil
}

func parseResults(raw string) ([]domain.ResearchResult, error) {
	cleaned := strings.TrimSpace(raw)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array found in research response")
	}

	var results []domain.ResearchResult
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal research results: %w", err)
	}

	valid := make([]domain.ResearchResult, 0, len(results))
	for _, r := range results {
		if r.Title == "" || r.Snippet == "" {
			continue
		}
		valid = append(valid, r)
	}
	return valid, nil
}
