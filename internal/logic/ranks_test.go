package logic

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/g5stats/stats-api/internal/models"
)

const steam = "76561198000000001"

func delta(kv map[string]float64) models.RankDelta {
	d := models.RankDelta{}
	for k, v := range kv {
		d[k] = ptr(v)
	}
	return d
}

func fieldOf(t *testing.T, rec *models.RankRecord, name string) float64 {
	t.Helper()
	v, ok := rec.Get(name)
	if !ok {
		t.Fatalf("field %s missing from %+v", name, rec)
	}
	return v
}

func TestApplyDeltaAccumulatesAndReplaces(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	f.seasons[1] = true
	svc := NewRankService(f)

	for i := 0; i < 2; i++ {
		if err := svc.ApplyDelta(ctx, steam, 1, delta(map[string]float64{"kills": 3, "score": 1200})); err != nil {
			t.Fatalf("ApplyDelta %d: %v", i, err)
		}
	}

	rec, err := svc.PlayerSeasonSlice(ctx, steam, 1)
	if err != nil {
		t.Fatalf("PlayerSeasonSlice: %v", err)
	}
	if got := fieldOf(t, rec, "kills"); got != 6 {
		t.Errorf("kills = %v, want 6", got)
	}
	if got := fieldOf(t, rec, "score"); got != 1200 {
		t.Errorf("score = %v, want 1200", got)
	}
}

func TestApplyDeltaCreatesDefaultRow(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	f.seasons[1] = true
	svc := NewRankService(f)

	if err := svc.ApplyDelta(ctx, steam, 1, delta(map[string]float64{"kills": 5})); err != nil {
		t.Fatalf("ApplyDelta: %v", err)
	}
	rec, _ := svc.PlayerSeasonSlice(ctx, steam, 1)
	if fieldOf(t, rec, "score") != 1000 || fieldOf(t, rec, "kills") != 5 {
		t.Fatalf("after first delta: %+v", rec)
	}

	if err := svc.ApplyDelta(ctx, steam, 1, delta(map[string]float64{"kills": 5})); err != nil {
		t.Fatalf("ApplyDelta: %v", err)
	}
	rec, _ = svc.PlayerSeasonSlice(ctx, steam, 1)
	if fieldOf(t, rec, "score") != 1000 || fieldOf(t, rec, "kills") != 10 {
		t.Fatalf("after second delta: %+v", rec)
	}
}

func TestApplyDeltaRejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		season   int64
		delta    models.RankDelta
		failOn   string
		wantKind error
		wantMsg  string
	}{
		{name: "unknown season", season: 2, delta: delta(map[string]float64{"kills": 1}), wantKind: ErrInvalidSeason, wantMsg: "Invalid season id"},
		{name: "unknown column", season: 1, delta: delta(map[string]float64{"steam": 1}), wantKind: ErrUnknownField},
		{name: "only nulls", season: 1, delta: models.RankDelta{"kills": nil}, wantKind: ErrNoData},
		{name: "empty", season: 1, delta: models.RankDelta{}, wantKind: ErrNoData},
		{name: "update fails", season: 1, delta: delta(map[string]float64{"kills": 1}), failOn: "UpdateRank", wantKind: ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeStore()
			f.seasons[1] = true
			f.failOn = tt.failOn

			err := NewRankService(f).ApplyDelta(ctx, steam, tt.season, tt.delta)
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("expected %v, got %v", tt.wantKind, err)
			}
			if tt.wantMsg != "" && Message(err) != tt.wantMsg {
				t.Errorf("message = %q, want %q", Message(err), tt.wantMsg)
			}
			if len(f.ranks) != 0 {
				t.Errorf("lazily created row must roll back, have %d rows", len(f.ranks))
			}
		})
	}
}

func TestFoldRankDelta(t *testing.T) {
	stored := 7.0
	row := &models.RankRow{
		Steam:   steam,
		Columns: []string{"score", "lastconnect", "kills", "deaths"},
		Values:  []*float64{ptr(1000.0), ptr(100.0), &stored, nil},
	}

	patch := FoldRankDelta(row, models.RankDelta{
		"deaths":      ptr(2.0),
		"kills":       ptr(3.0),
		"lastconnect": ptr(200.0),
		"mvp":         nil,
	})

	want := []models.PatchField{
		{Column: "lastconnect", Value: 200.0},
		{Column: "kills", Value: 10.0},
		{Column: "deaths", Value: 2.0},
	}
	if len(patch) != len(want) {
		t.Fatalf("patch = %+v, want %+v", patch, want)
	}
	for i := range want {
		if patch[i] != want[i] {
			t.Errorf("patch[%d] = %+v, want %+v", i, patch[i], want[i])
		}
	}
}

func TestRankQueriesNormalizeNulls(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	f.seasons[1] = true
	f.seasons[2] = true
	svc := NewRankService(f)

	if _, err := svc.Aggregate(ctx); !errors.Is(err, ErrNotFound) || Message(err) != "No stats found" {
		t.Fatalf("empty Aggregate: %v", err)
	}
	if _, err := svc.PlayerAggregate(ctx, steam); Message(err) != "No stats found for player "+steam {
		t.Fatalf("empty PlayerAggregate: %v", err)
	}

	if err := svc.ApplyDelta(ctx, steam, 1, delta(map[string]float64{"kills": 4, "score": 1100})); err != nil {
		t.Fatal(err)
	}
	if err := svc.ApplyDelta(ctx, steam, 2, delta(map[string]float64{"kills": 6, "score": 900})); err != nil {
		t.Fatal(err)
	}

	agg, err := svc.PlayerAggregate(ctx, steam)
	if err != nil {
		t.Fatalf("PlayerAggregate: %v", err)
	}
	if fieldOf(t, agg, "score") != 1000 || fieldOf(t, agg, "kills") != 10 || fieldOf(t, agg, "deaths") != 0 {
		t.Errorf("aggregate = %+v", agg)
	}

	seasons, err := svc.PlayerSeasons(ctx, steam)
	if err != nil || len(seasons) != 2 {
		t.Fatalf("PlayerSeasons = %v, %v", seasons, err)
	}

	slice, err := svc.SeasonSlice(ctx, 2)
	if err != nil || len(slice) != 1 {
		t.Fatalf("SeasonSlice = %v, %v", slice, err)
	}

	raw, err := json.Marshal(slice[0])
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	for k, v := range decoded {
		if v == nil {
			t.Errorf("%s is null in %s", k, raw)
		}
	}
	if decoded["steam"] != steam {
		t.Errorf("steam = %v", decoded["steam"])
	}
}

func TestResetPlayer(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	f.seasons[1] = true
	svc := NewRankService(f)

	if err := svc.ApplyDelta(ctx, steam, 1, delta(map[string]float64{"kills": 1})); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ResetPlayer(ctx, steam, &models.Principal{UserID: 3}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-admin reset: %v", err)
	}

	n, err := svc.ResetPlayer(ctx, steam, &models.Principal{UserID: 3, Admin: true})
	if err != nil || n != 1 {
		t.Fatalf("ResetPlayer = %d, %v", n, err)
	}
	if _, err := svc.PlayerSeasons(ctx, steam); !errors.Is(err, ErrNotFound) {
		t.Errorf("rows left after reset: %v", err)
	}
}
