package logic

import (
	"context"
	"fmt"
	"sort"

	"github.com/g5stats/stats-api/internal/models"
)

type rankService struct {
	store Store
}

func NewRankService(store Store) RankService {
	return &rankService{store: store}
}

// ApplyDelta folds a stat delta into the (steam, season) rank row, creating
// the row with the default score on first contact. Everything happens in one
// transaction so a failure leaves neither a half-created nor a half-updated
// row behind.
func (s *rankService) ApplyDelta(ctx context.Context, steamID string, seasonID int64, delta models.RankDelta) error {
	if err := checkRankDelta(delta); err != nil {
		return err
	}

	return storageError(s.store.WithTx(ctx, func(tx Tx) error {
		ok, err := tx.SeasonExists(ctx, seasonID)
		if err != nil {
			return err
		}
		if !ok {
			return newError(ErrInvalidSeason, "Invalid season id")
		}

		row, err := tx.GetRank(ctx, steamID, seasonID)
		if err != nil {
			return err
		}
		if row == nil {
			if err := tx.InsertDefaultRank(ctx, steamID, seasonID, models.DefaultRankScore); err != nil {
				return err
			}
			if row, err = tx.GetRank(ctx, steamID, seasonID); err != nil {
				return err
			}
			if row == nil {
				return fmt.Errorf("rank row for %s season %d missing after insert", steamID, seasonID)
			}
		}

		patch := FoldRankDelta(row, delta)
		if patch.Empty() {
			return newError(ErrNoData, msgNoUpdateData)
		}

		_, err = tx.UpdateRank(ctx, steamID, seasonID, patch)
		return err
	}))
}

// ResetPlayer deletes every season row of the player.
func (s *rankService) ResetPlayer(ctx context.Context, steamID string, principal *models.Principal) (int64, error) {
	if !principal.CanResetRanks() {
		return 0, newError(ErrUnauthorized, msgNotAuthorized)
	}

	var deleted int64
	err := s.store.WithTx(ctx, func(tx Tx) error {
		n, err := tx.DeleteRanksBySteamID(ctx, steamID)
		deleted = n
		return err
	})
	if err != nil {
		return 0, storageError(err)
	}
	return deleted, nil
}

// checkRankDelta rejects column names outside the rank schema before any
// statement is built from them.
func checkRankDelta(delta models.RankDelta) error {
	var unknown []string
	for name := range delta {
		if !models.IsRankDeltaColumn(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return newError(ErrUnknownField, "Unknown rank field %s", unknown[0])
}

// FoldRankDelta computes the update for row. score and lastconnect take the
// delta value; every other column becomes stored + delta, a null stored value
// counting as 0. Null deltas are dropped. Columns come out in schema order.
func FoldRankDelta(row *models.RankRow, delta models.RankDelta) models.Patch {
	b := &models.PatchBuilder{}
	for _, col := range models.RankDeltaColumns {
		d, ok := delta[col]
		if !ok || d == nil {
			continue
		}
		if models.ReplacesOnDelta(col) {
			b.Float(col, d)
			continue
		}
		var stored float64
		if v := row.Value(col); v != nil {
			stored = *v
		}
		b.Set(col, stored+*d)
	}
	return b.Build()
}
