package logic

import "github.com/g5stats/stats-api/internal/models"

// WriteOp selects the wording of the finished-match rejection.
type WriteOp int

const (
	OpInsert WriteOp = iota
	OpUpdate
)

const (
	msgNoMatch        = "No match found."
	msgNotAuthorized  = "User is not authorized to perform action."
	msgInsertFinished = "Match is already finished. Cannot insert into historical matches."
	msgUpdateFinished = "Match is already finished. Cannot update historical matches."
	msgNoStatsMatch   = "No player stats data found."
	msgMatchLive      = "Match is currently live. Cannot delete live matches."
)

// CanAcceptStatWrite is the single gate in front of stat create and update.
// override is true when the caller may bypass the match api key. It has no
// side effects and must run before any mutation.
func CanAcceptStatWrite(match *models.Match, suppliedAPIKey string, override bool, op WriteOp) error {
	if match == nil {
		return newError(ErrNotFound, msgNoMatch)
	}
	if suppliedAPIKey != match.APIKey && !override {
		return newError(ErrUnauthorized, msgNotAuthorized)
	}
	if !match.Writable() {
		if op == OpUpdate {
			return newError(ErrForbidden, msgUpdateFinished)
		}
		return newError(ErrForbidden, msgInsertFinished)
	}
	return nil
}

// CanDeleteStats is the inverse gate used by the match purge: only the match
// owner or a super admin may purge, and only once the match is no longer
// writable.
func CanDeleteStats(match *models.Match, principal *models.Principal) error {
	if match == nil {
		return newError(ErrNotFound, msgNoStatsMatch)
	}
	if !principal.Owns(match) && !principal.CanOverrideMatchKey() {
		return newError(ErrUnauthorized, msgNotAuthorized)
	}
	if match.Writable() {
		return newError(ErrForbidden, msgMatchLive)
	}
	return nil
}
