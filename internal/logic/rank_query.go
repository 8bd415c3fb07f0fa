package logic

import (
	"context"

	"github.com/g5stats/stats-api/internal/models"
)

const msgNoRankStats = "No stats found"

func (s *rankService) Aggregate(ctx context.Context) ([]models.RankRecord, error) {
	rows, err := s.store.AggregateRanks(ctx, "")
	if err != nil {
		return nil, storageError(err)
	}
	if len(rows) == 0 {
		return nil, newError(ErrNotFound, msgNoRankStats)
	}
	return normalizeRanks(rows), nil
}

func (s *rankService) PlayerAggregate(ctx context.Context, steamID string) (*models.RankRecord, error) {
	rows, err := s.store.AggregateRanks(ctx, steamID)
	if err != nil {
		return nil, storageError(err)
	}
	if len(rows) == 0 {
		return nil, noPlayerRanks(steamID)
	}
	rec := NormalizeRank(rows[0])
	return &rec, nil
}

func (s *rankService) SeasonSlice(ctx context.Context, seasonID int64) ([]models.RankRecord, error) {
	rows, err := s.store.ListSeasonRanks(ctx, seasonID)
	if err != nil {
		return nil, storageError(err)
	}
	if len(rows) == 0 {
		return nil, newError(ErrNotFound, msgNoRankStats)
	}
	return normalizeRanks(rows), nil
}

func (s *rankService) PlayerSeasons(ctx context.Context, steamID string) ([]models.RankRecord, error) {
	rows, err := s.store.ListPlayerRanks(ctx, steamID)
	if err != nil {
		return nil, storageError(err)
	}
	if len(rows) == 0 {
		return nil, noPlayerRanks(steamID)
	}
	return normalizeRanks(rows), nil
}

func (s *rankService) PlayerSeasonSlice(ctx context.Context, steamID string, seasonID int64) (*models.RankRecord, error) {
	row, err := s.store.GetPlayerSeasonRank(ctx, steamID, seasonID)
	if err != nil {
		return nil, storageError(err)
	}
	if row == nil {
		return nil, noPlayerRanks(steamID)
	}
	rec := NormalizeRank(*row)
	return &rec, nil
}

func noPlayerRanks(steamID string) error {
	return newError(ErrNotFound, "No stats found for player %s", steamID)
}

// NormalizeRank turns a stored row into its read model: steam passes through,
// nulls become 0.
func NormalizeRank(row models.RankRow) models.RankRecord {
	rec := models.RankRecord{
		Steam:  row.Steam,
		Fields: make([]models.RankField, len(row.Columns)),
	}
	for i, col := range row.Columns {
		var v float64
		if row.Values[i] != nil {
			v = *row.Values[i]
		}
		rec.Fields[i] = models.RankField{Name: col, Value: v}
	}
	return rec
}

func normalizeRanks(rows []models.RankRow) []models.RankRecord {
	out := make([]models.RankRecord, len(rows))
	for i, row := range rows {
		out[i] = NormalizeRank(row)
	}
	return out
}
