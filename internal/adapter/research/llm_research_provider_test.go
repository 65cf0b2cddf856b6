package research

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
)

type fakeModel struct {
	response string
	err      error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestSearch_ParsesResults(t *testing.T) {
	provider := NewLLMResearchProvider(&fakeModel{response: `[
		{"title": "Photosynthesis", "snippet": "Plants convert light into chemical energy.", "source": "biology"},
		{"title": "", "snippet": "dropped for missing title", "source": "biology"},
		{"title": "Chlorophyll", "snippet": "The pigment that absorbs light.", "source": "biology"}
	]`})

	results, err := provider.Search(context.Background(), "photosynthesis", 5)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Photosynthesis", results[0].Title)
	assert.Equal(t, "Chlorophyll", results[1].Title)
}

func TestSearch_TruncatesToLimit(t *testing.T) {
	provider := NewLLMResearchProvider(&fakeModel{response: `[
		{"title": "A", "snippet": "a", "source": "s"},
		{"title": "B", "snippet": "b", "source": "s"},
		{"title": "C", "snippet": "c", "source": "s"}
	]`})

	results, err := provider.Search(context.Background(), "anything", 2)

	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearch_ModelFailure(t *testing.T) {
	provider := NewLLMResearchProvider(&fakeModel{err: errors.New("connection refused")})

	_, err := provider.Search(context.Background(), "anything", 5)

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeLLMServiceError, domainErr.Code)
}

func TestAnalyze_ParsesAnalysis(t *testing.T) {
	provider := NewLLMResearchProvider(&fakeModel{response: `Sure:
	{"summary": "Plants turn sunlight into sugar.", "key_points": ["light reactions", "Calvin cycle"]}`})

	analysis, err := provider.Analyze(context.Background(), "long pasted text")

	require.NoError(t, err)
	assert.Equal(t, "Plants turn sunlight into sugar.", analysis.Summary)
	assert.Equal(t, []string{"light reactions", "Calvin cycle"}, analysis.KeyPoints)
}

func TestAnalyze_MissingSummary(t *testing.T) {
	provider := NewLLMResearchProvider(&fakeModel{response: `{"key_points": ["no summary"]}`})

	_, err := provider.Analyze(context.Background(), "text")

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeLLMServiceError, domainErr.Code)
}
