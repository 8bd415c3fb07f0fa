package models

import (
	"time"

	"github.com/google/uuid"
)

// StatEventKind names a committed mutation of the stats store.
type StatEventKind string

const (
	EventStatInserted         StatEventKind = "player_stat_inserted"
	EventStatUpdated          StatEventKind = "player_stat_updated"
	EventStatFallbackInserted StatEventKind = "player_stat_fallback_inserted"
	EventMatchStatsPurged     StatEventKind = "match_stats_purged"
	EventRankDeltaApplied     StatEventKind = "rank_delta_applied"
	EventRankReset            StatEventKind = "rank_reset"
)

// StatEvent is emitted after a stats or rank write commits. Events feed the
// audit table and the live update channel; they are never read back by the
// write path.
type StatEvent struct {
	ID        uuid.UUID     `json:"id"`
	Kind      StatEventKind `json:"kind"`
	MatchID   int64         `json:"match_id,omitempty"`
	MapID     int64         `json:"map_id,omitempty"`
	SteamID   string        `json:"steam_id,omitempty"`
	SeasonID  int64         `json:"season_id,omitempty"`
	Rows      int64         `json:"rows,omitempty"`
	Payload   any           `json:"payload,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewStatEvent stamps a new event with a fresh id and the current time.
func NewStatEvent(kind StatEventKind) *StatEvent {
	return &StatEvent{
		ID:        uuid.New(),
		Kind:      kind,
		Timestamp: time.Now().UTC(),
	}
}

// ClickHouseStatEvent is the row shape of the stat_events audit table.
type ClickHouseStatEvent struct {
	EventID   uuid.UUID
	Kind      string
	MatchID   int64
	MapID     int64
	SteamID   string
	SeasonID  int64
	Rows      int64
	Payload   string
	RequestID string
	Timestamp time.Time
}
