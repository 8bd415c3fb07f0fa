package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g5stats/stats-api/internal/models"
)

func TestParseDelta(t *testing.T) {
	delta, err := parseDelta([]string{"kills=2", "score=1012.5", "deaths=null"})
	require.NoError(t, err)

	require.Len(t, delta, 3)
	assert.Equal(t, 2.0, *delta["kills"])
	assert.Equal(t, 1012.5, *delta["score"])
	assert.Nil(t, delta["deaths"])

	for _, bad := range []string{"kills", "=3", "kills=lots"} {
		_, err := parseDelta([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestRenderRankTable(t *testing.T) {
	var buf bytes.Buffer
	renderRankTable(&buf, []models.RankRecord{{
		Steam:  "76561198000000001",
		Fields: []models.RankField{{Name: "season_id", Value: 2}, {Name: "score", Value: 1012}, {Name: "kills", Value: 7}},
	}})

	out := buf.String()
	assert.Contains(t, out, "76561198000000001")
	assert.Contains(t, out, "1012")
	assert.Contains(t, out, "(1 rows)")
}

func TestRenderPlayerStats(t *testing.T) {
	var buf bytes.Buffer
	renderPlayerStats(&buf, []models.PlayerMatchStat{{MatchID: 5, SteamID: "s1", Name: "Player", Kills: 20}})

	assert.Contains(t, buf.String(), "Player")
	assert.Contains(t, buf.String(), "(1 rows)")
}
