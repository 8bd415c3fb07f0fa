package models

// PlayerMatchStat is one persisted row of player_stats, unique per
// (match_id, map_id, steam_id).
type PlayerMatchStat struct {
	ID               int64  `json:"id"`
	MatchID          int64  `json:"match_id"`
	MapID            int64  `json:"map_id"`
	TeamID           int64  `json:"team_id"`
	SteamID          string `json:"steam_id"`
	Name             string `json:"name"`
	Kills            int    `json:"kills"`
	Deaths           int    `json:"deaths"`
	RoundsPlayed     int    `json:"roundsplayed"`
	Assists          int    `json:"assists"`
	FlashbangAssists int    `json:"flashbang_assists"`
	Teamkills        int    `json:"teamkills"`
	Suicides         int    `json:"suicides"`
	HeadshotKills    int    `json:"headshot_kills"`
	Damage           int    `json:"damage"`
	BombPlants       int    `json:"bomb_plants"`
	BombDefuses      int    `json:"bomb_defuses"`
	V1               int    `json:"v1"`
	V2               int    `json:"v2"`
	V3               int    `json:"v3"`
	V4               int    `json:"v4"`
	V5               int    `json:"v5"`
	K1               int    `json:"k1"`
	K2               int    `json:"k2"`
	K3               int    `json:"k3"`
	K4               int    `json:"k4"`
	K5               int    `json:"k5"`
	FirstDeathCT     int    `json:"firstdeath_ct"`
	FirstDeathT      int    `json:"firstdeath_t"`
	FirstKillCT      int    `json:"firstkill_ct"`
	FirstKillT       int    `json:"firstkill_t"`
}

// PlayerStatColumns lists the player_stats columns in storage order.
var PlayerStatColumns = []string{
	"id", "match_id", "map_id", "team_id", "steam_id", "name",
	"kills", "deaths", "roundsplayed", "assists", "flashbang_assists",
	"teamkills", "suicides", "headshot_kills", "damage",
	"bomb_plants", "bomb_defuses",
	"v1", "v2", "v3", "v4", "v5",
	"k1", "k2", "k3", "k4", "k5",
	"firstdeath_ct", "firstdeath_t", "firstkill_ct", "firstkill_t",
}

// ScanTargets returns pointers matching PlayerStatColumns.
func (s *PlayerMatchStat) ScanTargets() []any {
	return []any{
		&s.ID, &s.MatchID, &s.MapID, &s.TeamID, &s.SteamID, &s.Name,
		&s.Kills, &s.Deaths, &s.RoundsPlayed, &s.Assists, &s.FlashbangAssists,
		&s.Teamkills, &s.Suicides, &s.HeadshotKills, &s.Damage,
		&s.BombPlants, &s.BombDefuses,
		&s.V1, &s.V2, &s.V3, &s.V4, &s.V5,
		&s.K1, &s.K2, &s.K3, &s.K4, &s.K5,
		&s.FirstDeathCT, &s.FirstDeathT, &s.FirstKillCT, &s.FirstKillT,
	}
}

// NewStats is one incoming player-stat report. Every field is optional on
// the wire; a nil field means "not reported" and is never written.
type NewStats struct {
	APIKey  *string `json:"api_key" validate:"required"`
	MatchID *int64  `json:"match_id" validate:"required"`
	MapID   *int64  `json:"map_id" validate:"required"`
	TeamID  *int64  `json:"team_id" validate:"required"`
	SteamID *string `json:"steam_id" validate:"required"`
	Name    *string `json:"name" validate:"required"`

	Kills            *int `json:"kills"`
	Deaths           *int `json:"deaths"`
	RoundsPlayed     *int `json:"roundsplayed"`
	Assists          *int `json:"assists"`
	FlashbangAssists *int `json:"flashbang_assists"`
	Teamkills        *int `json:"teamkills"`
	Suicides         *int `json:"suicides"`
	HeadshotKills    *int `json:"headshot_kills"`
	Damage           *int `json:"damage"`
	BombPlants       *int `json:"bomb_plants"`
	BombDefuses      *int `json:"bomb_defuses"`
	V1               *int `json:"v1"`
	V2               *int `json:"v2"`
	V3               *int `json:"v3"`
	V4               *int `json:"v4"`
	V5               *int `json:"v5"`
	K1               *int `json:"k1"`
	K2               *int `json:"k2"`
	K3               *int `json:"k3"`
	K4               *int `json:"k4"`
	K5               *int `json:"k5"`
	FirstDeathCT     *int `json:"firstdeath_ct"`
	FirstDeathT      *int `json:"firstdeath_t"`
	FirstKillCT      *int `json:"firstkill_ct"`
	FirstKillT       *int `json:"firstkill_t"`
}

// Key returns the row identity of the report. Callers validate first.
func (n *NewStats) Key() StatKey {
	return StatKey{MatchID: *n.MatchID, MapID: *n.MapID, SteamID: *n.SteamID}
}

func (n *NewStats) counters(b *PatchBuilder) *PatchBuilder {
	return b.
		Int("kills", n.Kills).
		Int("deaths", n.Deaths).
		Int("roundsplayed", n.RoundsPlayed).
		Int("assists", n.Assists).
		Int("flashbang_assists", n.FlashbangAssists).
		Int("teamkills", n.Teamkills).
		Int("suicides", n.Suicides).
		Int("headshot_kills", n.HeadshotKills).
		Int("damage", n.Damage).
		Int("bomb_plants", n.BombPlants).
		Int("bomb_defuses", n.BombDefuses).
		Int("v1", n.V1).
		Int("v2", n.V2).
		Int("v3", n.V3).
		Int("v4", n.V4).
		Int("v5", n.V5).
		Int("k1", n.K1).
		Int("k2", n.K2).
		Int("k3", n.K3).
		Int("k4", n.K4).
		Int("k5", n.K5).
		Int("firstdeath_ct", n.FirstDeathCT).
		Int("firstdeath_t", n.FirstDeathT).
		Int("firstkill_ct", n.FirstKillCT).
		Int("firstkill_t", n.FirstKillT)
}

// InsertPatch projects the report to the columns of a new row.
func (n *NewStats) InsertPatch() Patch {
	b := &PatchBuilder{}
	b.Int64("match_id", n.MatchID).
		Int64("map_id", n.MapID).
		Int64("team_id", n.TeamID).
		String("steam_id", n.SteamID).
		String("name", n.Name)
	return n.counters(b).Build()
}

// UpdatePatch projects the report to the mutable columns of an existing row.
// Identity columns are excluded; they key the update instead.
func (n *NewStats) UpdatePatch() Patch {
	b := &PatchBuilder{}
	b.String("name", n.Name)
	return n.counters(b).Build()
}

// StatKey identifies a player_stats row.
type StatKey struct {
	MatchID int64
	MapID   int64
	SteamID string
}

// DeleteStatsRequest is the body of DELETE /playerstats.
type DeleteStatsRequest struct {
	MatchID *int64 `json:"match_id" validate:"required"`
}

// MessageResponse is the body of every non-list reply.
type MessageResponse struct {
	Message string `json:"message"`
}
