package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/store"
)

// --- MockQuizGenerator ---
type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) GenerateQuiz(ctx context.Context, content, topic, difficulty string, numQuestions int) ([]domain.GeneratedQuestion, error) {
	args := m.Called(ctx, content, topic, difficulty, numQuestions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedQuestion), args.Error(1)
}

// --- MockResearchProvider ---
type MockResearchProvider struct {
	mock.Mock
}

func (m *MockResearchProvider) Search(ctx context.Context, query string, limit int) ([]domain.ResearchResult, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResearchResult), args.Error(1)
}

func (m *MockResearchProvider) Analyze(ctx context.Context, text string) (*domain.TextAnalysis, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TextAnalysis), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockRemoteSyncAdapter ---
type MockRemoteSyncAdapter struct {
	mock.Mock
}

func (m *MockRemoteSyncAdapter) FetchUserStats(ctx context.Context, userID string) (domain.UserStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UserStats), args.Error(1)
}

func (m *MockRemoteSyncAdapter) AppendEvent(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockRemoteSyncAdapter) UpsertUserStats(ctx context.Context, stats domain.UserStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockRemoteSyncAdapter) SubscribeToChanges(ctx context.Context, userID string, onChange func(domain.ChangeNotification)) (func(), error) {
	args := m.Called(ctx, userID, onChange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

func (m *MockRemoteSyncAdapter) FetchLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockRemoteSyncAdapter) DeleteUserData(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- in-memory store backends for manager-driven tests ---

type memLocalCache struct {
	mu     sync.Mutex
	stats  map[string]domain.UserStats
	events map[string][]domain.Event
}

func newMemLocalCache() *memLocalCache {
	return &memLocalCache{
		stats:  make(map[string]domain.UserStats),
		events: make(map[string][]domain.Event),
	}
}

func (c *memLocalCache) LoadStats(ctx context.Context, userID string) (domain.UserStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats, ok := c.stats[userID]
	if !ok {
		return domain.UserStats{}, store.ErrNoLocalState
	}
	return stats, nil
}

func (c *memLocalCache) SaveStats(ctx context.Context, snapshot domain.UserStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats[snapshot.UserID] = snapshot
	return nil
}

func (c *memLocalCache) AppendEvent(ctx context.Context, event domain.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events[event.UserID] = append(c.events[event.UserID], event)
	return nil
}

func (c *memLocalCache) RecentEvents(ctx context.Context, userID string, limit int) ([]domain.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	events := c.events[userID]
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	return append([]domain.Event(nil), events...), nil
}

func (c *memLocalCache) Truncate(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.stats, userID)
	delete(c.events, userID)
	return nil
}

type memRemote struct {
	mu    sync.Mutex
	stats map[string]domain.UserStats
}

func newMemRemote() *memRemote {
	return &memRemote{stats: make(map[string]domain.UserStats)}
}

func (r *memRemote) FetchUserStats(ctx context.Context, userID string) (domain.UserStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.stats[userID]
	if !ok {
		return domain.UserStats{}, domain.ErrRemoteNotFound
	}
	return stats, nil
}

func (r *memRemote) AppendEvent(ctx context.Context, event domain.Event) error {
	return nil
}

func (r *memRemote) UpsertUserStats(ctx context.Context, stats domain.UserStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats[stats.UserID] = stats
	return nil
}

func (r *memRemote) SubscribeToChanges(ctx context.Context, userID string, onChange func(domain.ChangeNotification)) (func(), error) {
	return func() {}, nil
}

func (r *memRemote) FetchLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return []domain.LeaderboardEntry{}, nil
}

func (r *memRemote) DeleteUserData(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stats, userID)
	return nil
}

func newTestStores(t interface{ Cleanup(func()) }) *store.Manager {
	m := store.NewManager(store.Options{
		Local:  newMemLocalCache(),
		Remote: newMemRemote(),
	})
	t.Cleanup(m.CloseAll)
	return m
}
