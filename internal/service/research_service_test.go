package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/dto"
)

func TestResearchService_Query(t *testing.T) {
	stores := newTestStores(t)
	provider := new(MockResearchProvider)
	svc := NewResearchService(provider, stores)
	ctx := context.Background()

	_, err := stores.Open(ctx, "user1", "Hari")
	require.NoError(t, err)

	results := []domain.ResearchResult{
		{Title: "Photosynthesis", Snippet: "Light to sugar.", Source: "biology"},
		{Title: "Chlorophyll", Snippet: "Green pigment.", Source: "biology"},
	}
	provider.On("Search", mock.Anything, "photosynthesis", 5).Return(results, nil).Once()

	resp, err := svc.Query(ctx, "user1", dto.ResearchQueryRequest{
		Query:            "photosynthesis",
		TimeSpentSeconds: 120,
	})

	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 1, resp.Stats.ResearchSessions)
	assert.Equal(t, 2, resp.Stats.StudyTimeMinutes)
	assert.Equal(t, 0, resp.Stats.TotalQuizzes, "research must not touch quiz counters")
	provider.AssertExpectations(t)
}

func TestResearchService_Query_ProviderFailureRecordsNothing(t *testing.T) {
	stores := newTestStores(t)
	provider := new(MockResearchProvider)
	svc := NewResearchService(provider, stores)
	ctx := context.Background()

	_, err := stores.Open(ctx, "user1", "Hari")
	require.NoError(t, err)

	provider.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.NewLLMServiceError(errors.New("provider down")))

	_, err = svc.Query(ctx, "user1", dto.ResearchQueryRequest{Query: "anything"})
	require.Error(t, err)

	st, err := stores.Get("user1")
	require.NoError(t, err)
	assert.Equal(t, 0, st.Snapshot().ResearchSessions)
}

func TestResearchService_Query_NoSession(t *testing.T) {
	svc := NewResearchService(new(MockResearchProvider), newTestStores(t))

	_, err := svc.Query(context.Background(), "ghost", dto.ResearchQueryRequest{Query: "anything"})

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNoSession, domainErr.Code)
}

func TestResearchService_Analyze(t *testing.T) {
	stores := newTestStores(t)
	provider := new(MockResearchProvider)
	svc := NewResearchService(provider, stores)
	ctx := context.Background()

	_, err := stores.Open(ctx, "user1", "Hari")
	require.NoError(t, err)

	provider.On("Analyze", mock.Anything, "long pasted text").Return(&domain.TextAnalysis{
		Summary:   "A short summary.",
		KeyPoints: []string{"one", "two"},
	}, nil)

	resp, err := svc.Analyze(ctx, "user1", dto.AnalyzeTextRequest{
		Text:             "long pasted text",
		TimeSpentSeconds: 60,
	})

	require.NoError(t, err)
	assert.Equal(t, "A short summary.", resp.Summary)
	assert.Equal(t, []string{"one", "two"}, resp.KeyPoints)
	assert.Equal(t, 1, resp.Stats.ResearchSessions)
	provider.AssertExpectations(t)
}
