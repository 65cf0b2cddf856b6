// Package store implements the in-process source of truth for the current
// user's stats snapshot and recent event window. It coordinates the pure
// fold with local durable caching, best-effort remote persistence, and
// fan-out notification to subscribers.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/achievement"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/retry"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/stats"
	"go.uber.org/zap"
)

// LocalCacheError represents an error from the local durable cache.
type LocalCacheError string

func (e LocalCacheError) Error() string {
	return string(e)
}

// ErrNoLocalState is returned by LoadStats when the cache holds no
// snapshot for the user.
const ErrNoLocalState = LocalCacheError("store: no local state")

// LocalCache is the durable on-device cache written synchronously on every
// committed mutation and read at startup before the remote fetch.
type LocalCache interface {
	LoadStats(ctx context.Context, userID string) (domain.UserStats, error)
	SaveStats(ctx context.Context, snapshot domain.UserStats) error
	AppendEvent(ctx context.Context, event domain.Event) error
	RecentEvents(ctx context.Context, userID string, limit int) ([]domain.Event, error)
	Truncate(ctx context.Context, userID string) error
}

// Listener receives the committed snapshot after every mutation, plus any
// achievements unlocked by that mutation.
type Listener func(snapshot domain.UserStats, earned []domain.Achievement)

type subscriber struct {
	id int
	fn Listener
}

// Options configures a Store.
type Options struct {
	Local         LocalCache
	Remote        domain.RemoteSyncAdapter
	Logger        *zap.Logger
	RemoteTimeout time.Duration
	Retry         retry.Config
	EventWindow   int
}

// Store owns the single live UserStats snapshot for a session. All other
// components receive copies through Snapshot or listener callbacks.
type Store struct {
	// writeMu serializes the fold-and-commit step (single-writer rule) so
	// notifications go out in commit order. mu guards the state for fast
	// concurrent reads.
	writeMu     sync.Mutex
	mu          sync.Mutex
	snapshot    domain.UserStats
	events      []domain.Event
	applied     map[string]struct{}
	subscribers []subscriber
	nextSubID   int
	initialized bool
	closed      bool
	lastSyncErr error

	local         LocalCache
	remote        domain.RemoteSyncAdapter
	logger        *zap.Logger
	remoteTimeout time.Duration
	retryCfg      retry.Config
	eventWindow   int

	unsubscribeRemote func()
	persistCh         chan persistJob
	persistDone       chan struct{}
}

// persistJob carries one committed mutation to the persist worker. Jobs are
// enqueued under writeMu, so the queue preserves commit order.
type persistJob struct {
	event    domain.Event
	snapshot domain.UserStats
}

// New creates a Store. The store is inert until Init establishes a session.
func New(opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.RemoteTimeout <= 0 {
		opts.RemoteTimeout = 10 * time.Second
	}
	if opts.EventWindow <= 0 {
		opts.EventWindow = 100
	}
	if opts.Retry.MaxAttempts == 0 {
		opts.Retry = retry.DefaultConfig()
	}
	return &Store{
		applied:       make(map[string]struct{}),
		local:         opts.Local,
		remote:        opts.Remote,
		logger:        opts.Logger,
		remoteTimeout: opts.RemoteTimeout,
		retryCfg:      opts.Retry,
		eventWindow:   opts.EventWindow,
	}
}

// Init establishes the session state: the local cache is loaded first so
// the UI has something immediately, then the remote record is fetched and
// merged, and a change subscription is opened. A user with no record on
// either side starts from the empty snapshot (all zero, level 1).
func (s *Store) Init(ctx context.Context, userID, displayName string) error {
	if userID == "" {
		return domain.NewNoSessionError()
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	snapshot := domain.NewUserStats(userID, displayName)

	local, err := s.local.LoadStats(ctx, userID)
	switch {
	case err == nil:
		snapshot = local
		if displayName != "" {
			snapshot.DisplayName = displayName
		}
	case err == ErrNoLocalState:
		// first session on this device
	default:
		return domain.NewInternalError("failed to load local cache", err)
	}

	remoteCtx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()
	remote, err := s.remote.FetchUserStats(remoteCtx, userID)
	switch {
	case err == nil:
		snapshot = stats.Merge(snapshot, remote)
	case err == domain.ErrRemoteNotFound:
		// brand-new user, snapshot stays local
	default:
		// Remote being down must not block the session; the local
		// snapshot stays authoritative until it recovers.
		s.logger.Warn("remote fetch failed, continuing with local state",
			zap.String("user_id", userID), zap.Error(err))
		s.recordSyncErr(err)
	}

	events, err := s.local.RecentEvents(ctx, userID, s.eventWindow)
	if err != nil {
		s.logger.Warn("failed to load recent events from local cache", zap.Error(err))
	}

	// A fresh device has no local event log yet; pull the window from the
	// remote log so history and event-based achievement checks keep working.
	if len(events) == 0 {
		if reader, ok := s.remote.(domain.EventLogReader); ok {
			evCtx, cancelEv := context.WithTimeout(ctx, s.remoteTimeout)
			remoteEvents, readErr := reader.RecentEvents(evCtx, userID, s.eventWindow)
			cancelEv()
			if readErr != nil {
				s.logger.Warn("failed to load recent events from remote",
					zap.String("user_id", userID), zap.Error(readErr))
			} else {
				events = remoteEvents
				for _, e := range remoteEvents {
					if appendErr := s.local.AppendEvent(ctx, e); appendErr != nil {
						s.logger.Warn("failed to backfill event into local cache",
							zap.String("event_id", e.ID), zap.Error(appendErr))
						break
					}
				}
			}
		}
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.events = events
	s.applied = make(map[string]struct{}, len(events))
	for _, e := range events {
		s.applied[e.ID] = struct{}{}
	}
	s.initialized = true
	s.persistCh = make(chan persistJob, s.eventWindow)
	s.persistDone = make(chan struct{})
	s.mu.Unlock()

	go s.persistLoop()

	if err := s.local.SaveStats(ctx, snapshot); err != nil {
		s.logger.Warn("failed to persist merged snapshot locally", zap.Error(err))
	}

	unsubscribe, err := s.remote.SubscribeToChanges(ctx, userID, s.ApplyRemote)
	if err != nil {
		s.logger.Warn("change subscription unavailable", zap.Error(err))
	} else {
		s.unsubscribeRemote = unsubscribe
	}

	return nil
}

// Snapshot returns a copy of the current in-memory value. It never blocks
// on I/O.
func (s *Store) Snapshot() domain.UserStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone()
}

// RecentEvents returns a copy of the in-memory event window, oldest first.
func (s *Store) RecentEvents() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

// LastSyncError reports the most recent remote persistence failure, or nil.
func (s *Store) LastSyncError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSyncErr
}

// Subscribe registers a listener invoked after every committed mutation,
// in registration order, exactly once per mutation. The returned function
// deregisters it; every Subscribe must be paired with a call to it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// RecordEvent validates the event, folds it into a new snapshot, commits
// the snapshot in memory and to the local cache synchronously, then pushes
// the event and snapshot to the remote store in the background. A remote
// failure does not roll the local commit back.
func (s *Store) RecordEvent(ctx context.Context, event domain.Event) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !s.initialized || s.closed {
		s.mu.Unlock()
		return domain.NewNoSessionError()
	}
	if _, seen := s.applied[event.ID]; seen {
		// Same event id is never folded twice into the running total.
		s.mu.Unlock()
		return nil
	}

	next, err := stats.Fold(s.snapshot, event)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.applied[event.ID] = struct{}{}
	s.events = append(s.events, event)
	if len(s.events) > s.eventWindow {
		s.events = s.events[len(s.events)-s.eventWindow:]
	}

	earned := achievement.Evaluate(next, s.events)
	if len(earned) > 0 {
		next = stats.AwardAchievementXP(next, earned)
	}
	s.snapshot = next
	committed := next.Clone()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	if err := s.local.AppendEvent(ctx, event); err != nil {
		s.logger.Error("failed to append event to local cache", zap.String("event_id", event.ID), zap.Error(err))
	}
	if err := s.local.SaveStats(ctx, committed); err != nil {
		s.logger.Error("failed to save snapshot to local cache", zap.Error(err))
	}

	s.notify(listeners, committed, earned)

	// Enqueued under writeMu, so the persist worker sees snapshots in
	// commit order and an older snapshot can never land on the remote
	// after a newer one. A full queue backpressures the writer.
	s.persistCh <- persistJob{event: event, snapshot: committed}

	return nil
}

// ApplyRemote folds an external change notification back into the store.
// Merging is order-independent and idempotent, so at-least-once delivery
// and reordering across change sources is safe.
func (s *Store) ApplyRemote(n domain.ChangeNotification) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !s.initialized || s.closed {
		s.mu.Unlock()
		return
	}
	if n.Kind != domain.ChangeUserStats || n.Stats == nil || n.UserID != s.snapshot.UserID {
		s.mu.Unlock()
		return
	}

	merged := stats.Merge(s.snapshot, *n.Stats)
	changed := !equalStats(s.snapshot, merged)
	s.snapshot = merged
	committed := merged.Clone()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	if !changed {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.remoteTimeout)
	defer cancel()
	if err := s.local.SaveStats(ctx, committed); err != nil {
		s.logger.Warn("failed to persist merged remote snapshot locally", zap.Error(err))
	}

	s.notify(listeners, committed, nil)
}

// Reset clears in-memory state, the local cache, and truncates the remote
// record to empty defaults. Used only by the explicit user action.
func (s *Store) Reset(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !s.initialized || s.closed {
		s.mu.Unlock()
		return domain.NewNoSessionError()
	}
	userID := s.snapshot.UserID
	displayName := s.snapshot.DisplayName
	empty := domain.NewUserStats(userID, displayName)
	s.snapshot = empty
	s.events = nil
	s.applied = make(map[string]struct{})
	committed := empty.Clone()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	if err := s.local.Truncate(ctx, userID); err != nil {
		return domain.NewInternalError("failed to clear local cache", err)
	}

	remoteCtx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()
	if err := s.remote.DeleteUserData(remoteCtx, userID); err != nil {
		s.logger.Error("failed to truncate remote record", zap.String("user_id", userID), zap.Error(err))
		s.recordSyncErr(err)
	}

	s.notify(listeners, committed, nil)
	return nil
}

// Close rejects further mutations, tears down the remote subscription, and
// drains the persist queue before returning.
func (s *Store) Close() {
	// Holding writeMu here fences out any RecordEvent still enqueueing,
	// so nothing can send on persistCh after it is closed.
	s.writeMu.Lock()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.writeMu.Unlock()
		return
	}
	s.closed = true
	unsubscribe := s.unsubscribeRemote
	persistCh := s.persistCh
	s.mu.Unlock()
	s.writeMu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if persistCh != nil {
		close(persistCh)
		<-s.persistDone
	}
}

// persistLoop is the single persist worker: one goroutine per store drains
// the queue in commit order.
func (s *Store) persistLoop() {
	defer close(s.persistDone)
	for job := range s.persistCh {
		s.persistRemote(job.event, job.snapshot)
	}
}

func (s *Store) persistRemote(event domain.Event, snapshot domain.UserStats) {
	ctx, cancel := context.WithTimeout(context.Background(), s.remoteTimeout)
	defer cancel()

	err := retry.Do(ctx, s.retryCfg, func(ctx context.Context) error {
		// AppendEvent is keyed by event id and UpsertUserStats merges on
		// conflict, so repeating either after a partial failure is harmless.
		if err := s.remote.AppendEvent(ctx, event); err != nil {
			return err
		}
		return s.remote.UpsertUserStats(ctx, snapshot)
	})
	if err != nil {
		s.logger.Error("remote persist failed; local state remains authoritative",
			zap.String("event_id", event.ID),
			zap.String("user_id", snapshot.UserID),
			zap.Error(err))
		s.recordSyncErr(domain.NewSyncFailedError(err))
		return
	}
	s.recordSyncErr(nil)
}

func (s *Store) recordSyncErr(err error) {
	s.mu.Lock()
	s.lastSyncErr = err
	s.mu.Unlock()
}

func (s *Store) listenersLocked() []Listener {
	out := make([]Listener, len(s.subscribers))
	for i, sub := range s.subscribers {
		out[i] = sub.fn
	}
	return out
}

func (s *Store) notify(listeners []Listener, snapshot domain.UserStats, earned []domain.Achievement) {
	for _, fn := range listeners {
		fn(snapshot.Clone(), earned)
	}
}

func equalStats(a, b domain.UserStats) bool {
	if a.DisplayName != b.DisplayName || a.TotalXP != b.TotalXP || a.TotalQuizzes != b.TotalQuizzes ||
		a.TotalCorrectAnswers != b.TotalCorrectAnswers || a.TotalQuestions != b.TotalQuestions ||
		a.StudyTimeMinutes != b.StudyTimeMinutes || a.ResearchSessions != b.ResearchSessions ||
		a.Streak != b.Streak || a.Level != b.Level || !a.LastUpdated.Equal(b.LastUpdated) ||
		len(a.Achievements) != len(b.Achievements) {
		return false
	}
	for i := range a.Achievements {
		if a.Achievements[i] != b.Achievements[i] {
			return false
		}
	}
	return true
}
