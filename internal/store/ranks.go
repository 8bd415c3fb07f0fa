package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/g5stats/stats-api/internal/models"
)

const ranksTable = "ranks"

// rankRowColumns are the numeric columns of a stored season row.
var rankRowColumns = append([]string{"season_id"}, models.RankDeltaColumns...)

// rankAggregateColumns are the numeric columns of a lifetime aggregate.
var rankAggregateColumns = append([]string{models.RankScoreColumn}, models.RankCounterColumns...)

func rankAggregateSelect() []string {
	cols := make([]string, 0, len(rankAggregateColumns)+1)
	cols = append(cols, "steam", "ROUND(AVG(score)) AS score")
	for _, c := range models.RankCounterColumns {
		cols = append(cols, fmt.Sprintf("SUM(%s) AS %s", c, c))
	}
	return cols
}

func (d *DB) AggregateRanks(ctx context.Context, steamID string) ([]models.RankRow, error) {
	b := d.Builder().
		Select(rankAggregateSelect()...).
		From(ranksTable).
		GroupBy("steam").
		OrderBy("steam")
	if steamID != "" {
		b = b.Where(sq.Eq{"steam": steamID})
	}
	return d.conn().queryRanks(ctx, b, rankAggregateColumns)
}

func (d *DB) ListSeasonRanks(ctx context.Context, seasonID int64) ([]models.RankRow, error) {
	return d.conn().selectRanks(ctx, sq.Eq{"season_id": seasonID}, "steam")
}

func (d *DB) ListPlayerRanks(ctx context.Context, steamID string) ([]models.RankRow, error) {
	return d.conn().selectRanks(ctx, sq.Eq{"steam": steamID}, "season_id")
}

func (d *DB) GetPlayerSeasonRank(ctx context.Context, steamID string, seasonID int64) (*models.RankRow, error) {
	return d.conn().GetRank(ctx, steamID, seasonID)
}

func (c *conn) GetRank(ctx context.Context, steamID string, seasonID int64) (*models.RankRow, error) {
	rows, err := c.selectRanks(ctx, sq.Eq{"steam": steamID, "season_id": seasonID}, "season_id")
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

func (c *conn) selectRanks(ctx context.Context, where sq.Sqlizer, orderBy string) ([]models.RankRow, error) {
	b := c.builder.
		Select(append([]string{"steam"}, rankRowColumns...)...).
		From(ranksTable).
		Where(where).
		OrderBy(orderBy)
	return c.queryRanks(ctx, b, rankRowColumns)
}

// queryRanks scans rows of steam followed by columns, keeping nulls.
func (c *conn) queryRanks(ctx context.Context, b sq.SelectBuilder, columns []string) ([]models.RankRow, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ranks: %w", err)
	}
	defer rows.Close()

	out := []models.RankRow{}
	for rows.Next() {
		var steam string
		vals := make([]sql.NullFloat64, len(columns))
		dest := make([]any, 0, len(columns)+1)
		dest = append(dest, &steam)
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan ranks: %w", err)
		}

		row := models.RankRow{Steam: steam, Columns: columns, Values: make([]*float64, len(columns))}
		for i, v := range vals {
			if v.Valid {
				f := v.Float64
				row.Values[i] = &f
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (c *conn) InsertDefaultRank(ctx context.Context, steamID string, seasonID int64, score float64) error {
	_, err := c.exec(ctx, c.builder.
		Insert(ranksTable).
		Columns("steam", "season_id", models.RankScoreColumn).
		Values(steamID, seasonID, score))
	return err
}

func (c *conn) UpdateRank(ctx context.Context, steamID string, seasonID int64, patch models.Patch) (int64, error) {
	for _, col := range patch.Columns() {
		if !models.IsRankDeltaColumn(col) {
			return 0, fmt.Errorf("refusing to write rank column %q", col)
		}
	}
	return c.exec(ctx, c.builder.
		Update(ranksTable).
		SetMap(patch.Map()).
		Where(sq.Eq{"steam": steamID, "season_id": seasonID}))
}

func (c *conn) DeleteRanksBySteamID(ctx context.Context, steamID string) (int64, error) {
	return c.exec(ctx, c.builder.
		Delete(ranksTable).
		Where(sq.Eq{"steam": steamID}))
}
