package handlers

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/g5stats/stats-api/internal/logic"
	"github.com/g5stats/stats-api/internal/models"
)

// MockPlayerStatsService implements logic.PlayerStatsService for testing
type MockPlayerStatsService struct {
	ListAllFunc          func(ctx context.Context) ([]models.PlayerMatchStat, error)
	ListBySteamIDFunc    func(ctx context.Context, steamID string) ([]models.PlayerMatchStat, error)
	ListByMatchFunc      func(ctx context.Context, matchID int64) ([]models.PlayerMatchStat, error)
	CreateFunc           func(ctx context.Context, report *models.NewStats, principal *models.Principal) (*logic.UpsertResult, error)
	UpdateFunc           func(ctx context.Context, report *models.NewStats, principal *models.Principal) (*logic.UpsertResult, error)
	DeleteMatchStatsFunc func(ctx context.Context, matchID int64, principal *models.Principal) (int64, error)
}

func (m *MockPlayerStatsService) ListAll(ctx context.Context) ([]models.PlayerMatchStat, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return []models.PlayerMatchStat{}, nil
}

func (m *MockPlayerStatsService) ListBySteamID(ctx context.Context, steamID string) ([]models.PlayerMatchStat, error) {
	if m.ListBySteamIDFunc != nil {
		return m.ListBySteamIDFunc(ctx, steamID)
	}
	return []models.PlayerMatchStat{}, nil
}

func (m *MockPlayerStatsService) ListByMatch(ctx context.Context, matchID int64) ([]models.PlayerMatchStat, error) {
	if m.ListByMatchFunc != nil {
		return m.ListByMatchFunc(ctx, matchID)
	}
	return []models.PlayerMatchStat{}, nil
}

func (m *MockPlayerStatsService) Create(ctx context.Context, report *models.NewStats, principal *models.Principal) (*logic.UpsertResult, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, report, principal)
	}
	return &logic.UpsertResult{Outcome: logic.Inserted, Key: report.Key(), Patch: report.InsertPatch()}, nil
}

func (m *MockPlayerStatsService) Update(ctx context.Context, report *models.NewStats, principal *models.Principal) (*logic.UpsertResult, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, report, principal)
	}
	return &logic.UpsertResult{Outcome: logic.Updated, Key: report.Key(), Patch: report.UpdatePatch()}, nil
}

func (m *MockPlayerStatsService) DeleteMatchStats(ctx context.Context, matchID int64, principal *models.Principal) (int64, error) {
	if m.DeleteMatchStatsFunc != nil {
		return m.DeleteMatchStatsFunc(ctx, matchID, principal)
	}
	return 0, nil
}

// MockRankService implements logic.RankService for testing
type MockRankService struct {
	AggregateFunc         func(ctx context.Context) ([]models.RankRecord, error)
	PlayerAggregateFunc   func(ctx context.Context, steamID string) (*models.RankRecord, error)
	SeasonSliceFunc       func(ctx context.Context, seasonID int64) ([]models.RankRecord, error)
	PlayerSeasonsFunc     func(ctx context.Context, steamID string) ([]models.RankRecord, error)
	PlayerSeasonSliceFunc func(ctx context.Context, steamID string, seasonID int64) (*models.RankRecord, error)
	ApplyDeltaFunc        func(ctx context.Context, steamID string, seasonID int64, delta models.RankDelta) error
	ResetPlayerFunc       func(ctx context.Context, steamID string, principal *models.Principal) (int64, error)
}

func (m *MockRankService) Aggregate(ctx context.Context) ([]models.RankRecord, error) {
	if m.AggregateFunc != nil {
		return m.AggregateFunc(ctx)
	}
	return nil, nil
}

func (m *MockRankService) PlayerAggregate(ctx context.Context, steamID string) (*models.RankRecord, error) {
	if m.PlayerAggregateFunc != nil {
		return m.PlayerAggregateFunc(ctx, steamID)
	}
	return &models.RankRecord{Steam: steamID}, nil
}

func (m *MockRankService) SeasonSlice(ctx context.Context, seasonID int64) ([]models.RankRecord, error) {
	if m.SeasonSliceFunc != nil {
		return m.SeasonSliceFunc(ctx, seasonID)
	}
	return nil, nil
}

func (m *MockRankService) PlayerSeasons(ctx context.Context, steamID string) ([]models.RankRecord, error) {
	if m.PlayerSeasonsFunc != nil {
		return m.PlayerSeasonsFunc(ctx, steamID)
	}
	return nil, nil
}

func (m *MockRankService) PlayerSeasonSlice(ctx context.Context, steamID string, seasonID int64) (*models.RankRecord, error) {
	if m.PlayerSeasonSliceFunc != nil {
		return m.PlayerSeasonSliceFunc(ctx, steamID, seasonID)
	}
	return &models.RankRecord{Steam: steamID}, nil
}

func (m *MockRankService) ApplyDelta(ctx context.Context, steamID string, seasonID int64, delta models.RankDelta) error {
	if m.ApplyDeltaFunc != nil {
		return m.ApplyDeltaFunc(ctx, steamID, seasonID, delta)
	}
	return nil
}

func (m *MockRankService) ResetPlayer(ctx context.Context, steamID string, principal *models.Principal) (int64, error) {
	if m.ResetPlayerFunc != nil {
		return m.ResetPlayerFunc(ctx, steamID, principal)
	}
	return 0, nil
}

// MockEventQueue records enqueued events
type MockEventQueue struct {
	mu     sync.Mutex
	Events []*models.StatEvent
	Full   bool
}

func (m *MockEventQueue) Enqueue(event *models.StatEvent) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Full {
		return false
	}
	m.Events = append(m.Events, event)
	return true
}

func (m *MockEventQueue) QueueDepth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Events)
}

func (m *MockEventQueue) Kinds() []models.StatEventKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	kinds := make([]models.StatEventKind, 0, len(m.Events))
	for _, ev := range m.Events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

// MockPinger implements Pinger
type MockPinger struct {
	Err error
}

func (m *MockPinger) Ping(ctx context.Context) error { return m.Err }

// MockMigrator implements Migrator
type MockMigrator struct {
	Err   error
	Calls int
}

func (m *MockMigrator) Migrate(ctx context.Context, logger *zap.Logger) error {
	m.Calls++
	return m.Err
}
