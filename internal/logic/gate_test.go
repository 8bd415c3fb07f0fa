package logic

import (
	"errors"
	"testing"
	"time"

	"github.com/g5stats/stats-api/internal/models"
)

func TestCanAcceptStatWrite(t *testing.T) {
	ended := time.Now()
	live := &models.Match{ID: 5, UserID: 7, APIKey: "K"}

	tests := []struct {
		name     string
		match    *models.Match
		apiKey   string
		override bool
		op       WriteOp
		wantKind error
		wantMsg  string
	}{
		{name: "live match, right key", match: live, apiKey: "K"},
		{name: "no match", match: nil, apiKey: "K", wantKind: ErrNotFound, wantMsg: "No match found."},
		{name: "wrong key", match: live, apiKey: "X", wantKind: ErrUnauthorized, wantMsg: "User is not authorized to perform action."},
		{name: "wrong key with override", match: live, apiKey: "X", override: true},
		{
			name: "cancelled insert", match: &models.Match{APIKey: "K", Cancelled: true}, apiKey: "K", op: OpInsert,
			wantKind: ErrForbidden, wantMsg: "Match is already finished. Cannot insert into historical matches.",
		},
		{
			name: "forfeit update", match: &models.Match{APIKey: "K", Forfeit: true}, apiKey: "K", op: OpUpdate,
			wantKind: ErrForbidden, wantMsg: "Match is already finished. Cannot update historical matches.",
		},
		{name: "ended", match: &models.Match{APIKey: "K", EndTime: &ended}, apiKey: "K", wantKind: ErrForbidden},
		{name: "key checked before lifecycle", match: &models.Match{APIKey: "K", Cancelled: true}, apiKey: "X", wantKind: ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanAcceptStatWrite(tt.match, tt.apiKey, tt.override, tt.op)
			if tt.wantKind == nil {
				if err != nil {
					t.Fatalf("expected admit, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("expected %v, got %v", tt.wantKind, err)
			}
			if tt.wantMsg != "" && Message(err) != tt.wantMsg {
				t.Errorf("message = %q, want %q", Message(err), tt.wantMsg)
			}
		})
	}
}

// Delete is the inverse of write eligibility for every lifecycle state.
func TestCanDeleteStatsIsInverseOfWrite(t *testing.T) {
	ended := time.Now()
	owner := &models.Principal{UserID: 7}

	states := []*models.Match{
		{UserID: 7, APIKey: "K"},
		{UserID: 7, APIKey: "K", Cancelled: true},
		{UserID: 7, APIKey: "K", Forfeit: true},
		{UserID: 7, APIKey: "K", EndTime: &ended},
		{UserID: 7, APIKey: "K", Cancelled: true, Forfeit: true, EndTime: &ended},
	}

	for i, m := range states {
		writeErr := CanAcceptStatWrite(m, "K", false, OpInsert)
		deleteErr := CanDeleteStats(m, owner)
		if (writeErr == nil) == (deleteErr == nil) {
			t.Errorf("state %d: write=%v delete=%v, want exactly one admitted", i, writeErr, deleteErr)
		}
		if writeErr != nil && !errors.Is(writeErr, ErrForbidden) {
			t.Errorf("state %d: write rejected with %v, want forbidden", i, writeErr)
		}
		if deleteErr != nil && !errors.Is(deleteErr, ErrForbidden) {
			t.Errorf("state %d: delete rejected with %v, want forbidden", i, deleteErr)
		}
	}
}

func TestCanDeleteStatsPrincipal(t *testing.T) {
	finished := &models.Match{UserID: 7, Cancelled: true}

	tests := []struct {
		name      string
		match     *models.Match
		principal *models.Principal
		wantKind  error
	}{
		{name: "owner", match: finished, principal: &models.Principal{UserID: 7}},
		{name: "super admin", match: finished, principal: &models.Principal{UserID: 1, SuperAdmin: true}},
		{name: "plain admin is not enough", match: finished, principal: &models.Principal{UserID: 1, Admin: true}, wantKind: ErrUnauthorized},
		{name: "anonymous", match: finished, principal: nil, wantKind: ErrUnauthorized},
		{name: "missing match", match: nil, principal: &models.Principal{UserID: 7}, wantKind: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanDeleteStats(tt.match, tt.principal)
			if tt.wantKind == nil && err != nil {
				t.Fatalf("expected admit, got %v", err)
			}
			if tt.wantKind != nil && !errors.Is(err, tt.wantKind) {
				t.Fatalf("expected %v, got %v", tt.wantKind, err)
			}
		})
	}
}
