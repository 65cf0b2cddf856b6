package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/cache"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/dto"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/logger"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
	leaderboardPageTTL      = 30 * time.Second
)

// LeaderboardService serves the global ranking. Responses are cached as
// JSON pages for a short TTL, and concurrent misses for the same page are
// collapsed through singleflight so a hot leaderboard costs one remote
// fetch per TTL window.
type LeaderboardService interface {
	Top(ctx context.Context, limit int) (*dto.LeaderboardResponse, error)

	// Invalidate drops every cached page, forcing the next Top to refetch.
	// Called when a ranking change notification arrives from any node.
	Invalidate(ctx context.Context)
}

type leaderboardServiceImpl struct {
	remote domain.RemoteSyncAdapter
	cache  domain.Cache
	group  singleflight.Group

	mu         sync.Mutex
	cachedKeys map[string]struct{}
}

// NewLeaderboardService creates a new LeaderboardService. cacheAdapter may
// be nil; every request then goes to the remote adapter.
func NewLeaderboardService(remote domain.RemoteSyncAdapter, cacheAdapter domain.Cache) LeaderboardService {
	return &leaderboardServiceImpl{
		remote:     remote,
		cache:      cacheAdapter,
		cachedKeys: make(map[string]struct{}),
	}
}

func (s *leaderboardServiceImpl) Top(ctx context.Context, limit int) (*dto.LeaderboardResponse, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	cacheKey := cache.GenerateCacheKey("leaderboard", "page", "top", strconv.Itoa(limit))
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var resp dto.LeaderboardResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
			logger.Get().Warn("Dropping unreadable cached leaderboard page", zap.String("key", cacheKey))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Leaderboard page cache read failed", zap.Error(err))
		}
	}

	result, err, _ := s.group.Do(cacheKey, func() (interface{}, error) {
		entries, err := s.remote.FetchLeaderboard(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
		}

		resp := &dto.LeaderboardResponse{
			Entries: make([]dto.LeaderboardEntryResponse, 0, len(entries)),
		}
		for _, entry := range entries {
			resp.Entries = append(resp.Entries, dto.LeaderboardEntryResponse{
				Rank:        entry.Rank,
				UserID:      entry.UserID,
				DisplayName: entry.DisplayName,
				TotalXP:     entry.TotalXP,
				Level:       entry.Level,
				Streak:      entry.Streak,
				LastUpdated: entry.LastUpdated,
			})
		}

		if s.cache != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.cache.Set(ctx, cacheKey, string(data), leaderboardPageTTL); err != nil {
					logger.Get().Warn("Failed to cache leaderboard page", zap.Error(err))
				} else {
					s.mu.Lock()
					s.cachedKeys[cacheKey] = struct{}{}
					s.mu.Unlock()
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*dto.LeaderboardResponse), nil
}

func (s *leaderboardServiceImpl) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}

	s.mu.Lock()
	keys := make([]string, 0, len(s.cachedKeys))
	for key := range s.cachedKeys {
		keys = append(keys, key)
	}
	s.cachedKeys = make(map[string]struct{})
	s.mu.Unlock()

	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.Get().Warn("Failed to drop cached leaderboard page",
				zap.String("key", key), zap.Error(err))
		}
	}
}
