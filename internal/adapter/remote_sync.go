package adapter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/cache"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/logger"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/repository"
)

// RemoteSync implements domain.RemoteSyncAdapter on top of the Postgres
// repositories and Redis pub/sub. Postgres is the store of record; Redis
// fans change notifications out to other devices holding the same user and
// keeps the leaderboard ranking warm.
type RemoteSync struct {
	statsRepo   repository.UserStatsRepository
	eventRepo   repository.EventRepository
	client      *redis.Client
	leaderboard *LeaderboardCache
}

func NewRemoteSync(
	statsRepo repository.UserStatsRepository,
	eventRepo repository.EventRepository,
	client *redis.Client,
) *RemoteSync {
	return &RemoteSync{
		statsRepo:   statsRepo,
		eventRepo:   eventRepo,
		client:      client,
		leaderboard: NewLeaderboardCache(client),
	}
}

func (r *RemoteSync) FetchUserStats(ctx context.Context, userID string) (domain.UserStats, error) {
	return r.statsRepo.Fetch(ctx, userID)
}

func (r *RemoteSync) AppendEvent(ctx context.Context, event domain.Event) error {
	return r.eventRepo.Append(ctx, event)
}

// RecentEvents exposes the remote event log, oldest first, so a device with
// an empty local cache can seed its event window.
func (r *RemoteSync) RecentEvents(ctx context.Context, userID string, limit int) ([]domain.Event, error) {
	return r.eventRepo.RecentByUser(ctx, userID, limit)
}

// UpsertUserStats writes the snapshot and then publishes a change
// notification for the user and the leaderboard channels. Publish failures
// are logged but not returned: the write of record already succeeded and
// subscribers reconcile on their next fetch anyway.
func (r *RemoteSync) UpsertUserStats(ctx context.Context, stats domain.UserStats) error {
	if err := r.statsRepo.Upsert(ctx, stats); err != nil {
		return err
	}

	if err := r.leaderboard.UpdateEntry(ctx, stats); err != nil {
		logger.Get().Warn("Failed to update leaderboard cache",
			zap.String("user_id", stats.UserID), zap.Error(err))
	}

	r.publish(ctx, cache.ChangeChannel(stats.UserID), domain.ChangeNotification{
		Kind:       domain.ChangeUserStats,
		UserID:     stats.UserID,
		Stats:      &stats,
		OccurredAt: time.Now().UTC(),
	})
	r.publish(ctx, cache.LeaderboardChannel(), domain.ChangeNotification{
		Kind:       domain.ChangeLeaderboard,
		UserID:     stats.UserID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (r *RemoteSync) publish(ctx context.Context, channel string, notification domain.ChangeNotification) {
	payload, err := json.Marshal(notification)
	if err != nil {
		logger.Get().Error("Failed to marshal change notification", zap.Error(err))
		return
	}
	if err := r.client.Publish(ctx, channel, payload).Err(); err != nil {
		logger.Get().Warn("Failed to publish change notification",
			zap.String("channel", channel), zap.Error(err))
	}
}

// SubscribeToChanges listens on the user's change channel and the
// leaderboard channel. Messages that fail to decode are dropped with a log
// line; delivery is at-least-once so the fold layer dedupes.
func (r *RemoteSync) SubscribeToChanges(ctx context.Context, userID string, onChange func(domain.ChangeNotification)) (func(), error) {
	pubsub := r.client.Subscribe(ctx, cache.ChangeChannel(userID), cache.LeaderboardChannel())
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range pubsub.Channel() {
			var notification domain.ChangeNotification
			if err := json.Unmarshal([]byte(msg.Payload), &notification); err != nil {
				logger.Get().Warn("Dropping malformed change notification",
					zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			onChange(notification)
		}
	}()

	unsubscribe := func() {
		pubsub.Close()
		<-done
	}
	return unsubscribe, nil
}

// SubscribeToLeaderboard invokes onChange whenever any node announces a
// ranking change, until the returned unsubscribe function is called. Used
// to drop cached leaderboard pages the moment they go stale.
func (r *RemoteSync) SubscribeToLeaderboard(ctx context.Context, onChange func()) (func(), error) {
	pubsub := r.client.Subscribe(ctx, cache.LeaderboardChannel())
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range pubsub.Channel() {
			onChange()
		}
	}()

	unsubscribe := func() {
		pubsub.Close()
		<-done
	}
	return unsubscribe, nil
}

// FetchLeaderboard serves from the Redis ranking when it is warm and falls
// back to Postgres, rebuilding the cache on the way out.
func (r *RemoteSync) FetchLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	entries, err := r.leaderboard.Top(ctx, limit)
	if err == nil && len(entries) > 0 {
		return entries, nil
	}
	if err != nil {
		logger.Get().Warn("Leaderboard cache read failed, falling back to database", zap.Error(err))
	}

	entries, err = r.statsRepo.Leaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		stats := domain.UserStats{
			UserID:      entry.UserID,
			DisplayName: entry.DisplayName,
			TotalXP:     entry.TotalXP,
			Streak:      entry.Streak,
			LastUpdated: entry.LastUpdated,
		}
		if cacheErr := r.leaderboard.UpdateEntry(ctx, stats); cacheErr != nil {
			logger.Get().Warn("Failed to warm leaderboard cache", zap.Error(cacheErr))
			break
		}
	}
	return entries, nil
}

// DeleteUserData removes the user's events and stats record, then drops the
// user from the cached ranking and tells other devices to reset.
func (r *RemoteSync) DeleteUserData(ctx context.Context, userID string) error {
	if err := r.eventRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := r.statsRepo.Delete(ctx, userID); err != nil {
		return err
	}

	if err := r.leaderboard.RemoveEntry(ctx, userID); err != nil {
		logger.Get().Warn("Failed to remove leaderboard entry",
			zap.String("user_id", userID), zap.Error(err))
	}
	r.publish(ctx, cache.LeaderboardChannel(), domain.ChangeNotification{
		Kind:       domain.ChangeLeaderboard,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

var (
	_ domain.RemoteSyncAdapter = (*RemoteSync)(nil)
	_ domain.EventLogReader    = (*RemoteSync)(nil)
)
