package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/g5stats/stats-api/internal/models"
)

func (d *DB) GetMatch(ctx context.Context, matchID int64) (*models.Match, error) {
	return d.conn().getMatch(ctx, matchID)
}

func (c *conn) getMatch(ctx context.Context, matchID int64) (*models.Match, error) {
	query, args, err := c.builder.
		Select("id", "user_id", "api_key", "cancelled", "forfeit", "end_time").
		From(c.dialect.quote("match")).
		Where(sq.Eq{"id": matchID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		m         models.Match
		userID    sql.NullInt64
		apiKey    sql.NullString
		cancelled sql.NullBool
		forfeit   sql.NullBool
		endTime   sql.NullTime
	)
	err = c.q.QueryRowContext(ctx, query, args...).Scan(&m.ID, &userID, &apiKey, &cancelled, &forfeit, &endTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get match %d: %w", matchID, err)
	}

	m.UserID = userID.Int64
	m.APIKey = apiKey.String
	m.Cancelled = cancelled.Bool
	m.Forfeit = forfeit.Bool
	if endTime.Valid {
		t := endTime.Time
		m.EndTime = &t
	}
	return &m, nil
}

func (c *conn) SeasonExists(ctx context.Context, seasonID int64) (bool, error) {
	query, args, err := c.builder.
		Select("id").
		From("season").
		Where(sq.Eq{"id": seasonID}).
		ToSql()
	if err != nil {
		return false, err
	}

	var id int64
	err = c.q.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get season %d: %w", seasonID, err)
	}
	return true, nil
}
