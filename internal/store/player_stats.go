package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/g5stats/stats-api/internal/models"
)

const playerStatsTable = "player_stats"

func (d *DB) ListPlayerStats(ctx context.Context) ([]models.PlayerMatchStat, error) {
	return d.conn().listPlayerStats(ctx, nil)
}

func (d *DB) ListPlayerStatsBySteamID(ctx context.Context, steamID string) ([]models.PlayerMatchStat, error) {
	return d.conn().listPlayerStats(ctx, sq.Eq{"steam_id": steamID})
}

func (d *DB) ListPlayerStatsByMatch(ctx context.Context, matchID int64) ([]models.PlayerMatchStat, error) {
	return d.conn().listPlayerStats(ctx, sq.Eq{"match_id": matchID})
}

func (c *conn) listPlayerStats(ctx context.Context, where sq.Sqlizer) ([]models.PlayerMatchStat, error) {
	b := c.builder.
		Select(models.PlayerStatColumns...).
		From(playerStatsTable).
		OrderBy("id")
	if where != nil {
		b = b.Where(where)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list player stats: %w", err)
	}
	defer rows.Close()

	stats := []models.PlayerMatchStat{}
	for rows.Next() {
		var s models.PlayerMatchStat
		if err := rows.Scan(s.ScanTargets()...); err != nil {
			return nil, fmt.Errorf("scan player stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (c *conn) InsertPlayerStat(ctx context.Context, patch models.Patch) error {
	_, err := c.exec(ctx, c.builder.
		Insert(playerStatsTable).
		Columns(patch.Columns()...).
		Values(patch.Values()...))
	return err
}

func (c *conn) UpdatePlayerStat(ctx context.Context, key models.StatKey, patch models.Patch) (int64, error) {
	return c.exec(ctx, c.builder.
		Update(playerStatsTable).
		SetMap(patch.Map()).
		Where(sq.Eq{
			"map_id":   key.MapID,
			"match_id": key.MatchID,
			"steam_id": key.SteamID,
		}))
}

func (c *conn) DeletePlayerStatsByMatch(ctx context.Context, matchID int64) (int64, error) {
	return c.exec(ctx, c.builder.
		Delete(playerStatsTable).
		Where(sq.Eq{"match_id": matchID}))
}
