package models

import "time"

// Match is the slice of a match row the stats core needs. The match itself is
// owned by the match subsystem and never written here.
type Match struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	APIKey    string     `json:"-"`
	Cancelled bool       `json:"cancelled"`
	Forfeit   bool       `json:"forfeit"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

// Writable reports whether the match still accepts stat writes.
func (m *Match) Writable() bool {
	return !m.Cancelled && !m.Forfeit && m.EndTime == nil
}

// Season is a ranking period.
type Season struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}
