package domain

import (
	"context"
	"time"
)

// SyncError represents an error originating from the remote store of record.
type SyncError string

func (e SyncError) Error() string {
	return string(e)
}

// ErrRemoteNotFound is returned by FetchUserStats when the user has no
// remote record yet.
const ErrRemoteNotFound = SyncError("sync: user stats not found")

// ChangeKind identifies what a remote change notification refers to.
type ChangeKind string

const (
	ChangeUserStats   ChangeKind = "user_stats"
	ChangeLeaderboard ChangeKind = "leaderboard"
)

// ChangeNotification is delivered when the remote record for a user, or a
// related global ranking record, changes. Delivery is at-least-once with no
// ordering guarantee across distinct change sources.
type ChangeNotification struct {
	Kind       ChangeKind `json:"kind"`
	UserID     string     `json:"user_id"`
	Stats      *UserStats `json:"stats,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// LeaderboardEntry is one row of the global ranking, ordered by TotalXP
// descending with ties broken by earliest LastUpdated.
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	TotalXP     int       `json:"total_xp"`
	Level       int       `json:"level"`
	Streak      int       `json:"streak"`
	LastUpdated time.Time `json:"last_updated"`
}

// RemoteSyncAdapter is the port to the remote store of record. The core
// depends on this contract only; transient failures must never corrupt
// local state, and calls are retried best-effort, not exactly-once.
type RemoteSyncAdapter interface {
	// FetchUserStats loads the remote snapshot for a user. Returns
	// ErrRemoteNotFound when no record exists.
	FetchUserStats(ctx context.Context, userID string) (UserStats, error)

	// AppendEvent persists an event. Keyed by event id so that retries
	// after a transient failure are safe to repeat.
	AppendEvent(ctx context.Context, event Event) error

	// UpsertUserStats writes the snapshot, creating the record if needed.
	UpsertUserStats(ctx context.Context, stats UserStats) error

	// SubscribeToChanges delivers asynchronous change notifications for
	// the user's record and the global leaderboard until the returned
	// unsubscribe function is called.
	SubscribeToChanges(ctx context.Context, userID string, onChange func(ChangeNotification)) (func(), error)

	// FetchLeaderboard returns up to limit entries sorted by TotalXP
	// descending, ties broken by earliest LastUpdated.
	FetchLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)

	// DeleteUserData truncates the remote record and event log for a
	// user. Used only by the explicit "clear history" action.
	DeleteUserData(ctx context.Context, userID string) error
}

// EventLogReader exposes the recent event window for achievement
// evaluation and history views.
type EventLogReader interface {
	RecentEvents(ctx context.Context, userID string, limit int) ([]Event, error)
}
