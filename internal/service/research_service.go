package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/dto"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/logger"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/store"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/util"
)

const defaultResearchLimit = 5

// ResearchService answers research queries and text analyses, recording
// each successful one as a research activity in the user's progress.
type ResearchService interface {
	Query(ctx context.Context, userID string, req dto.ResearchQueryRequest) (*dto.ResearchQueryResponse, error)
	Analyze(ctx context.Context, userID string, req dto.AnalyzeTextRequest) (*dto.AnalyzeTextResponse, error)
}

type researchServiceImpl struct {
	provider domain.ResearchProvider
	stores   *store.Manager
}

// NewResearchService creates a new ResearchService.
func NewResearchService(provider domain.ResearchProvider, stores *store.Manager) ResearchService {
	return &researchServiceImpl{
		provider: provider,
		stores:   stores,
	}
}

func (s *researchServiceImpl) Query(ctx context.Context, userID string, req dto.ResearchQueryRequest) (*dto.ResearchQueryResponse, error) {
	st, err := s.stores.Get(userID)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultResearchLimit
	}

	results, err := s.provider.Search(ctx, req.Query, limit)
	if err != nil {
		return nil, err
	}

	event := domain.NewResearchEvent(util.NewULID(), userID, req.Query, len(results), req.TimeSpentSeconds)
	if err := st.RecordEvent(ctx, event); err != nil {
		return nil, err
	}

	logger.Get().Info("Research query recorded",
		zap.String("user_id", userID),
		zap.String("event_id", event.ID),
		zap.Int("results", len(results)))

	resp := &dto.ResearchQueryResponse{
		Results: make([]dto.ResearchResultResponse, 0, len(results)),
		Stats:   toStatsResponse(st.Snapshot()),
	}
	for _, r := range results {
		resp.Results = append(resp.Results, dto.ResearchResultResponse{
			Title:   r.Title,
			Snippet: r.Snippet,
			Source:  r.Source,
		})
	}
	return resp, nil
}

func (s *researchServiceImpl) Analyze(ctx context.Context, userID string, req dto.AnalyzeTextRequest) (*dto.AnalyzeTextResponse, error) {
	st, err := s.stores.Get(userID)
	if err != nil {
		return nil, err
	}

	analysis, err := s.provider.Analyze(ctx, req.Text)
	if err != nil {
		return nil, err
	}

	event := domain.NewResearchEvent(util.NewULID(), userID, "text analysis", 1, req.TimeSpentSeconds)
	if err := st.RecordEvent(ctx, event); err != nil {
		return nil, err
	}

	return &dto.AnalyzeTextResponse{
		Summary:   analysis.Summary,
		KeyPoints: analysis.KeyPoints,
		Stats:     toStatsResponse(st.Snapshot()),
	}, nil
}
