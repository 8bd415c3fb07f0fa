package models

// Principal is the authenticated caller of a request, resolved from a bearer
// token. A nil *Principal means the request is anonymous.
type Principal struct {
	UserID     int64 `json:"user_id"`
	Admin      bool  `json:"admin"`
	SuperAdmin bool  `json:"super_admin"`
}

// CanOverrideMatchKey reports whether the caller may write stats for a match
// without presenting its api key.
func (p *Principal) CanOverrideMatchKey() bool {
	return p != nil && p.SuperAdmin
}

// Owns reports whether the caller created the match.
func (p *Principal) Owns(m *Match) bool {
	return p != nil && m != nil && p.UserID != 0 && p.UserID == m.UserID
}

// CanResetRanks reports whether the caller may wipe a player's rank rows.
func (p *Principal) CanResetRanks() bool {
	return p != nil && (p.Admin || p.SuperAdmin)
}
