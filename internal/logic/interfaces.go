package logic

import (
	"context"

	"github.com/g5stats/stats-api/internal/models"
)

// Store is the read side of the relational store plus the transaction entry
// point. Lookups that find nothing return (nil, nil); list reads return an
// empty slice.
type Store interface {
	GetMatch(ctx context.Context, matchID int64) (*models.Match, error)

	ListPlayerStats(ctx context.Context) ([]models.PlayerMatchStat, error)
	ListPlayerStatsBySteamID(ctx context.Context, steamID string) ([]models.PlayerMatchStat, error)
	ListPlayerStatsByMatch(ctx context.Context, matchID int64) ([]models.PlayerMatchStat, error)

	// AggregateRanks groups season rows by player. An empty steamID selects
	// every player.
	AggregateRanks(ctx context.Context, steamID string) ([]models.RankRow, error)
	ListSeasonRanks(ctx context.Context, seasonID int64) ([]models.RankRow, error)
	ListPlayerRanks(ctx context.Context, steamID string) ([]models.RankRow, error)
	GetPlayerSeasonRank(ctx context.Context, steamID string, seasonID int64) (*models.RankRow, error)

	// WithTx runs fn inside one transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the write side of the store, only reachable inside Store.WithTx.
type Tx interface {
	InsertPlayerStat(ctx context.Context, patch models.Patch) error
	// UpdatePlayerStat returns the number of rows matched by key.
	UpdatePlayerStat(ctx context.Context, key models.StatKey, patch models.Patch) (int64, error)
	DeletePlayerStatsByMatch(ctx context.Context, matchID int64) (int64, error)

	SeasonExists(ctx context.Context, seasonID int64) (bool, error)
	GetRank(ctx context.Context, steamID string, seasonID int64) (*models.RankRow, error)
	InsertDefaultRank(ctx context.Context, steamID string, seasonID int64, score float64) error
	UpdateRank(ctx context.Context, steamID string, seasonID int64, patch models.Patch) (int64, error)
	DeleteRanksBySteamID(ctx context.Context, steamID string) (int64, error)
}

// PlayerStatsService owns per-match player stat rows.
type PlayerStatsService interface {
	ListAll(ctx context.Context) ([]models.PlayerMatchStat, error)
	ListBySteamID(ctx context.Context, steamID string) ([]models.PlayerMatchStat, error)
	ListByMatch(ctx context.Context, matchID int64) ([]models.PlayerMatchStat, error)

	Create(ctx context.Context, report *models.NewStats, principal *models.Principal) (*UpsertResult, error)
	Update(ctx context.Context, report *models.NewStats, principal *models.Principal) (*UpsertResult, error)
	DeleteMatchStats(ctx context.Context, matchID int64, principal *models.Principal) (int64, error)
}

// RankService owns season rank rows and their read-side aggregates.
type RankService interface {
	Aggregate(ctx context.Context) ([]models.RankRecord, error)
	PlayerAggregate(ctx context.Context, steamID string) (*models.RankRecord, error)
	SeasonSlice(ctx context.Context, seasonID int64) ([]models.RankRecord, error)
	PlayerSeasons(ctx context.Context, steamID string) ([]models.RankRecord, error)
	PlayerSeasonSlice(ctx context.Context, steamID string, seasonID int64) (*models.RankRecord, error)

	ApplyDelta(ctx context.Context, steamID string, seasonID int64, delta models.RankDelta) error
	ResetPlayer(ctx context.Context, steamID string, principal *models.Principal) (int64, error)
}
