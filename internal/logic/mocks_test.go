package logic

import (
	"context"
	"errors"
	"sort"

	"github.com/g5stats/stats-api/internal/models"
)

type rankKey struct {
	steam  string
	season int64
}

// fakeStore is an in-memory Store. WithTx snapshots state and restores it
// when fn fails, which is enough to observe rollback.
type fakeStore struct {
	matches map[int64]*models.Match
	seasons map[int64]bool
	stats   map[models.StatKey]map[string]any
	ranks   map[rankKey]map[string]*float64

	// failOn makes the named Tx method return errFake.
	failOn string
	inserts int
	updates int
}

var errFake = errors.New("driver: bad connection")

func newFakeStore() *fakeStore {
	return &fakeStore{
		matches: map[int64]*models.Match{},
		seasons: map[int64]bool{},
		stats:   map[models.StatKey]map[string]any{},
		ranks:   map[rankKey]map[string]*float64{},
	}
}

func (f *fakeStore) GetMatch(ctx context.Context, matchID int64) (*models.Match, error) {
	if f.failOn == "GetMatch" {
		return nil, errFake
	}
	return f.matches[matchID], nil
}

func (f *fakeStore) listStats(keep func(models.StatKey) bool) []models.PlayerMatchStat {
	var out []models.PlayerMatchStat
	for k, row := range f.stats {
		if !keep(k) {
			continue
		}
		s := models.PlayerMatchStat{MatchID: k.MatchID, MapID: k.MapID, SteamID: k.SteamID}
		if v, ok := row["kills"].(int); ok {
			s.Kills = v
		}
		if v, ok := row["team_id"].(int64); ok {
			s.TeamID = v
		}
		out = append(out, s)
	}
	return out
}

func (f *fakeStore) ListPlayerStats(ctx context.Context) ([]models.PlayerMatchStat, error) {
	return f.listStats(func(models.StatKey) bool { return true }), nil
}

func (f *fakeStore) ListPlayerStatsBySteamID(ctx context.Context, steamID string) ([]models.PlayerMatchStat, error) {
	return f.listStats(func(k models.StatKey) bool { return k.SteamID == steamID }), nil
}

func (f *fakeStore) ListPlayerStatsByMatch(ctx context.Context, matchID int64) ([]models.PlayerMatchStat, error) {
	return f.listStats(func(k models.StatKey) bool { return k.MatchID == matchID }), nil
}

func (f *fakeStore) rankRow(k rankKey) models.RankRow {
	cols := append([]string{"season_id"}, models.RankDeltaColumns...)
	row := models.RankRow{Steam: k.steam, Columns: cols, Values: make([]*float64, len(cols))}
	season := float64(k.season)
	row.Values[0] = &season
	for i, c := range models.RankDeltaColumns {
		row.Values[i+1] = f.ranks[k][c]
	}
	return row
}

func (f *fakeStore) sortedRankKeys(keep func(rankKey) bool) []rankKey {
	var keys []rankKey
	for k := range f.ranks {
		if keep(k) {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].steam != keys[j].steam {
			return keys[i].steam < keys[j].steam
		}
		return keys[i].season < keys[j].season
	})
	return keys
}

func (f *fakeStore) AggregateRanks(ctx context.Context, steamID string) ([]models.RankRow, error) {
	groups := map[string][]rankKey{}
	var order []string
	for _, k := range f.sortedRankKeys(func(k rankKey) bool { return steamID == "" || k.steam == steamID }) {
		if _, ok := groups[k.steam]; !ok {
			order = append(order, k.steam)
		}
		groups[k.steam] = append(groups[k.steam], k)
	}

	var out []models.RankRow
	for _, steam := range order {
		cols := append([]string{"score"}, models.RankCounterColumns...)
		row := models.RankRow{Steam: steam, Columns: cols, Values: make([]*float64, len(cols))}
		for i, c := range cols {
			var sum float64
			var seen bool
			for _, k := range groups[steam] {
				if v := f.ranks[k][c]; v != nil {
					sum += *v
					seen = true
				}
			}
			if !seen {
				continue
			}
			if c == "score" {
				sum /= float64(len(groups[steam]))
			}
			v := sum
			row.Values[i] = &v
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeStore) ListSeasonRanks(ctx context.Context, seasonID int64) ([]models.RankRow, error) {
	var out []models.RankRow
	for _, k := range f.sortedRankKeys(func(k rankKey) bool { return k.season == seasonID }) {
		out = append(out, f.rankRow(k))
	}
	return out, nil
}

func (f *fakeStore) ListPlayerRanks(ctx context.Context, steamID string) ([]models.RankRow, error) {
	var out []models.RankRow
	for _, k := range f.sortedRankKeys(func(k rankKey) bool { return k.steam == steamID }) {
		out = append(out, f.rankRow(k))
	}
	return out, nil
}

func (f *fakeStore) GetPlayerSeasonRank(ctx context.Context, steamID string, seasonID int64) (*models.RankRow, error) {
	k := rankKey{steamID, seasonID}
	if _, ok := f.ranks[k]; !ok {
		return nil, nil
	}
	row := f.rankRow(k)
	return &row, nil
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	statsSnap := map[models.StatKey]map[string]any{}
	for k, row := range f.stats {
		cp := map[string]any{}
		for c, v := range row {
			cp[c] = v
		}
		statsSnap[k] = cp
	}
	ranksSnap := map[rankKey]map[string]*float64{}
	for k, row := range f.ranks {
		cp := map[string]*float64{}
		for c, v := range row {
			cp[c] = v
		}
		ranksSnap[k] = cp
	}

	if err := fn(f); err != nil {
		f.stats = statsSnap
		f.ranks = ranksSnap
		return err
	}
	return nil
}

func statKeyOf(p models.Patch) models.StatKey {
	var k models.StatKey
	if v, ok := p.Get("match_id"); ok {
		k.MatchID = v.(int64)
	}
	if v, ok := p.Get("map_id"); ok {
		k.MapID = v.(int64)
	}
	if v, ok := p.Get("steam_id"); ok {
		k.SteamID = v.(string)
	}
	return k
}

func (f *fakeStore) InsertPlayerStat(ctx context.Context, patch models.Patch) error {
	if f.failOn == "InsertPlayerStat" {
		return errFake
	}
	k := statKeyOf(patch)
	if _, ok := f.stats[k]; ok {
		return errors.New("Duplicate entry for key 'player_stats_match_map_steam'")
	}
	f.inserts++
	f.stats[k] = patch.Map()
	return nil
}

func (f *fakeStore) UpdatePlayerStat(ctx context.Context, key models.StatKey, patch models.Patch) (int64, error) {
	if f.failOn == "UpdatePlayerStat" {
		return 0, errFake
	}
	row, ok := f.stats[key]
	if !ok {
		return 0, nil
	}
	f.updates++
	for _, fld := range patch {
		row[fld.Column] = fld.Value
	}
	return 1, nil
}

func (f *fakeStore) DeletePlayerStatsByMatch(ctx context.Context, matchID int64) (int64, error) {
	var n int64
	for k := range f.stats {
		if k.MatchID == matchID {
			delete(f.stats, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) SeasonExists(ctx context.Context, seasonID int64) (bool, error) {
	return f.seasons[seasonID], nil
}

func (f *fakeStore) GetRank(ctx context.Context, steamID string, seasonID int64) (*models.RankRow, error) {
	return f.GetPlayerSeasonRank(ctx, steamID, seasonID)
}

func (f *fakeStore) InsertDefaultRank(ctx context.Context, steamID string, seasonID int64, score float64) error {
	f.ranks[rankKey{steamID, seasonID}] = map[string]*float64{"score": &score}
	return nil
}

func (f *fakeStore) UpdateRank(ctx context.Context, steamID string, seasonID int64, patch models.Patch) (int64, error) {
	if f.failOn == "UpdateRank" {
		return 0, errFake
	}
	row, ok := f.ranks[rankKey{steamID, seasonID}]
	if !ok {
		return 0, nil
	}
	for _, fld := range patch {
		v := fld.Value.(float64)
		row[fld.Column] = &v
	}
	return 1, nil
}

func (f *fakeStore) DeleteRanksBySteamID(ctx context.Context, steamID string) (int64, error) {
	var n int64
	for k := range f.ranks {
		if k.steam == steamID {
			delete(f.ranks, k)
			n++
		}
	}
	return n, nil
}
