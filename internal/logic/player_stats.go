package logic

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/g5stats/stats-api/internal/models"
)

// UpsertOutcome tells the caller which write a stat report ended up as.
type UpsertOutcome int

const (
	Inserted UpsertOutcome = iota
	Updated
	InsertedViaFallback
)

func (o UpsertOutcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	case InsertedViaFallback:
		return "inserted_via_fallback"
	}
	return "unknown"
}

// UpsertResult describes a committed stat write.
type UpsertResult struct {
	Outcome UpsertOutcome
	Key     models.StatKey
	Patch   models.Patch
}

const (
	msgRequiredData = "Required Data Not Provided"
	msgNoUpdateData = "No update data has been provided."
)

type playerStatsService struct {
	store    Store
	validate *validator.Validate
}

func NewPlayerStatsService(store Store) PlayerStatsService {
	return &playerStatsService{store: store, validate: validator.New()}
}

func (s *playerStatsService) ListAll(ctx context.Context) ([]models.PlayerMatchStat, error) {
	stats, err := s.store.ListPlayerStats(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	if len(stats) == 0 {
		return nil, newError(ErrNotFound, "No stats found on the site!")
	}
	return stats, nil
}

func (s *playerStatsService) ListBySteamID(ctx context.Context, steamID string) ([]models.PlayerMatchStat, error) {
	stats, err := s.store.ListPlayerStatsBySteamID(ctx, steamID)
	if err != nil {
		return nil, storageError(err)
	}
	if len(stats) == 0 {
		return nil, newError(ErrNotFound, "No stats found for player %s", steamID)
	}
	return stats, nil
}

func (s *playerStatsService) ListByMatch(ctx context.Context, matchID int64) ([]models.PlayerMatchStat, error) {
	stats, err := s.store.ListPlayerStatsByMatch(ctx, matchID)
	if err != nil {
		return nil, storageError(err)
	}
	if len(stats) == 0 {
		return nil, newError(ErrNotFound, "No stats found for match %d", matchID)
	}
	return stats, nil
}

// Create inserts a new row for the report. No existence probe is made: a
// second create for the same (match, map, steam) triple is rejected by the
// unique key and surfaces as a storage error.
func (s *playerStatsService) Create(ctx context.Context, report *models.NewStats, principal *models.Principal) (*UpsertResult, error) {
	if report == nil || s.validate.Struct(report) != nil {
		return nil, newError(ErrValidation, msgRequiredData)
	}

	if err := s.admit(ctx, report, principal, OpInsert); err != nil {
		return nil, err
	}

	patch := report.InsertPatch()
	err := s.store.WithTx(ctx, func(tx Tx) error {
		return tx.InsertPlayerStat(ctx, patch)
	})
	if err != nil {
		return nil, storageError(err)
	}

	return &UpsertResult{Outcome: Inserted, Key: report.Key(), Patch: patch}, nil
}

// Update replaces the reported counters of an existing row. When no row
// matches the triple, the patch is promoted to an insert carrying the full
// identity, which covers a stand-in whose first report arrives here.
func (s *playerStatsService) Update(ctx context.Context, report *models.NewStats, principal *models.Principal) (*UpsertResult, error) {
	if report == nil || s.validate.StructExcept(report, "Name") != nil {
		return nil, newError(ErrValidation, msgRequiredData)
	}

	if err := s.admit(ctx, report, principal, OpUpdate); err != nil {
		return nil, err
	}

	patch := report.UpdatePatch()
	if patch.Empty() {
		return nil, newError(ErrNoData, msgNoUpdateData)
	}

	key := report.Key()
	result := &UpsertResult{Outcome: Updated, Key: key, Patch: patch}

	err := s.store.WithTx(ctx, func(tx Tx) error {
		affected, err := tx.UpdatePlayerStat(ctx, key, patch)
		if err != nil {
			return err
		}
		if affected > 0 {
			return nil
		}

		b := &models.PatchBuilder{}
		for _, f := range patch {
			b.Set(f.Column, f.Value)
		}
		full := b.
			Set("steam_id", key.SteamID).
			Set("map_id", key.MapID).
			Set("match_id", key.MatchID).
			Set("team_id", *report.TeamID).
			Build()

		if err := tx.InsertPlayerStat(ctx, full); err != nil {
			return err
		}
		result.Outcome = InsertedViaFallback
		result.Patch = full
		return nil
	})
	if err != nil {
		return nil, storageError(err)
	}

	return result, nil
}

// DeleteMatchStats purges every stat row of a finished match.
func (s *playerStatsService) DeleteMatchStats(ctx context.Context, matchID int64, principal *models.Principal) (int64, error) {
	match, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return 0, storageError(err)
	}
	if err := CanDeleteStats(match, principal); err != nil {
		return 0, err
	}

	var deleted int64
	err = s.store.WithTx(ctx, func(tx Tx) error {
		n, err := tx.DeletePlayerStatsByMatch(ctx, matchID)
		if err != nil {
			return err
		}
		if n == 0 {
			return newError(ErrNotFound, msgNoStatsMatch)
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, storageError(err)
	}
	return deleted, nil
}

func (s *playerStatsService) admit(ctx context.Context, report *models.NewStats, principal *models.Principal, op WriteOp) error {
	match, err := s.store.GetMatch(ctx, *report.MatchID)
	if err != nil {
		return storageError(err)
	}
	return CanAcceptStatWrite(match, *report.APIKey, principal.CanOverrideMatchKey(), op)
}
