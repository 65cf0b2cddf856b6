package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/achievement"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/dto"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/logger"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/store"
)

// ProgressService exposes the derived progress state for a session: the
// stats snapshot, event history, achievement progress, sync health, and
// the explicit clear-history action.
type ProgressService interface {
	Snapshot(userID string) (*dto.StatsResponse, error)
	History(userID string) (*dto.HistoryResponse, error)
	Achievements(userID string) ([]dto.AchievementResponse, error)
	SyncStatus(userID string) (*dto.SyncStatusResponse, error)
	Reset(ctx context.Context, userID string) (*dto.StatsResponse, error)
	Watch(ctx context.Context, userID string) (*dto.StatsResponse, error)
}

type progressServiceImpl struct {
	stores *store.Manager
}

// NewProgressService creates a new ProgressService over the store manager.
func NewProgressService(stores *store.Manager) ProgressService {
	return &progressServiceImpl{stores: stores}
}

func (s *progressServiceImpl) Snapshot(userID string) (*dto.StatsResponse, error) {
	st, err := s.stores.Get(userID)
	if err != nil {
		return nil, err
	}
	resp := toStatsResponse(st.Snapshot())
	return &resp, nil
}

func (s *progressServiceImpl) History(userID string) (*dto.HistoryResponse, error) {
	st, err := s.stores.Get(userID)
	if err != nil {
		return nil, err
	}

	events := st.RecentEvents()
	resp := &dto.HistoryResponse{Events: make([]dto.EventResponse, 0, len(events))}
	for _, event := range events {
		resp.Events = append(resp.Events, toEventResponse(event))
	}
	return resp, nil
}

func (s *progressServiceImpl) Achievements(userID string) ([]dto.AchievementResponse, error) {
	st, err := s.stores.Get(userID)
	if err != nil {
		return nil, err
	}

	progress := achievement.ProgressFor(st.Snapshot())
	resp := make([]dto.AchievementResponse, 0, len(progress))
	for _, p := range progress {
		resp = append(resp, toAchievementResponse(p))
	}
	return resp, nil
}

func (s *progressServiceImpl) SyncStatus(userID string) (*dto.SyncStatusResponse, error) {
	st, err := s.stores.Get(userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SyncStatusResponse{Healthy: true}
	if syncErr := st.LastSyncError(); syncErr != nil {
		resp.Healthy = false
		resp.LastError = syncErr.Error()
	}
	return resp, nil
}

// Watch blocks until the user's snapshot changes or the context expires,
// then returns the latest snapshot. This backs the long-poll stats stream:
// clients call it in a loop and get an immediate response on every commit.
func (s *progressServiceImpl) Watch(ctx context.Context, userID string) (*dto.StatsResponse, error) {
	st, err := s.stores.Get(userID)
	if err != nil {
		return nil, err
	}

	changes := make(chan domain.UserStats, 1)
	unsubscribe := st.Subscribe(func(snapshot domain.UserStats, _ []domain.Achievement) {
		select {
		case changes <- snapshot:
		default:
		}
	})
	defer unsubscribe()

	select {
	case snapshot := <-changes:
		resp := toStatsResponse(snapshot)
		return &resp, nil
	case <-ctx.Done():
		// Timed out with nothing new; return the current view so the
		// client can immediately poll again.
		resp := toStatsResponse(st.Snapshot())
		return &resp, nil
	}
}

// Reset clears the user's history everywhere and returns the zeroed
// snapshot. Achievements do not survive a reset.
func (s *progressServiceImpl) Reset(ctx context.Context, userID string) (*dto.StatsResponse, error) {
	st, err := s.stores.Get(userID)
	if err != nil {
		return nil, err
	}
	if err := st.Reset(ctx); err != nil {
		return nil, err
	}

	logger.Get().Info("Progress reset", zap.String("user_id", userID))
	resp := toStatsResponse(st.Snapshot())
	return &resp, nil
}
