package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// DefaultRankScore is the score a season rank row starts with.
const DefaultRankScore = 1000.0

// Rank columns with replace semantics. Every other rank column accumulates.
const (
	RankScoreColumn       = "score"
	RankLastConnectColumn = "lastconnect"
)

// RankCounterColumns are the cumulative counters of a ranks row.
var RankCounterColumns = []string{
	"kills", "deaths", "assists", "suicides", "tk",
	"shots", "hits", "headshots", "connected", "rounds_tr", "rounds_ct",
	"knife", "glock", "hkp2000", "usp_silencer", "p250", "deagle",
	"elite", "fiveseven", "tec9", "cz75a", "revolver", "nova",
	"xm1014", "mag7", "sawedoff", "bizon", "mac10", "mp9", "mp7", "ump45",
	"p90", "galilar", "ak47", "scar20", "famas", "m4a1", "m4a1_silencer", "aug",
	"ssg08", "sg556", "awp", "g3sg1", "m249", "negev",
	"hegrenade", "flashbang", "smokegrenade", "inferno", "decoy", "taser",
	"mp5sd", "breachcharge",
	"head", "chest", "stomach", "left_arm", "right_arm", "left_leg", "right_leg",
	"c4_planted", "c4_exploded", "c4_defused", "ct_win", "tr_win",
	"hostages_rescued", "vip_killed", "vip_escaped", "vip_played",
	"mvp", "damage", "match_win", "match_draw", "match_lose", "first_blood",
	"no_scope", "no_scope_dis",
}

// RankDeltaColumns are the columns a delta may address, in write order.
var RankDeltaColumns = append([]string{RankScoreColumn, RankLastConnectColumn}, RankCounterColumns...)

var rankDeltaColumnSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(RankDeltaColumns))
	for _, c := range RankDeltaColumns {
		m[c] = struct{}{}
	}
	return m
}()

// IsRankDeltaColumn reports whether name is a writable rank column.
func IsRankDeltaColumn(name string) bool {
	_, ok := rankDeltaColumnSet[name]
	return ok
}

// ReplacesOnDelta reports whether a delta for column overwrites the stored
// value instead of adding to it.
func ReplacesOnDelta(column string) bool {
	return column == RankScoreColumn || column == RankLastConnectColumn
}

// RankRow is a ranks row (or aggregate) as read from storage, nulls intact.
type RankRow struct {
	Steam   string
	Columns []string
	Values  []*float64
}

// Value returns the stored value of column; nil when null or absent.
func (r *RankRow) Value(column string) *float64 {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i]
		}
	}
	return nil
}

// RankField is one normalized numeric field of a rank record.
type RankField struct {
	Name  string
	Value float64
}

// RankRecord is the normalized read model of a rank row or aggregate: the
// steam id plus every numeric column, nulls reported as 0.
type RankRecord struct {
	Steam  string
	Fields []RankField
}

// Get returns the value of the named field.
func (r RankRecord) Get(name string) (float64, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return 0, false
}

// MarshalJSON writes the record as a flat object, steam first, fields in
// column order.
func (r RankRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"steam":`)
	steam, err := json.Marshal(r.Steam)
	if err != nil {
		return nil, err
	}
	buf.Write(steam)
	for _, f := range r.Fields {
		buf.WriteByte(',')
		buf.WriteString(strconv.Quote(f.Name))
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(f.Value, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RankDelta maps rank column names to increments (or replacement values for
// score and lastconnect). A nil value means the field was sent as null.
type RankDelta map[string]*float64
