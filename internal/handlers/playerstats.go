package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/g5stats/stats-api/internal/logic"
	"github.com/g5stats/stats-api/internal/models"
)

var statWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "g5stats_player_stat_writes_total",
	Help: "Committed player stat writes by outcome",
}, []string{"outcome"})

// ListPlayerStats returns every player stat row
// @Summary List all player stats
// @Tags playerstats
// @Produce json
// @Success 200 {array} models.PlayerMatchStat
// @Failure 404 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /playerstats [get]
func (h *Handler) ListPlayerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.playerStats.ListAll(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, stats)
}

// GetPlayerStatsBySteamID returns a player's rows across matches
// @Summary Player stats by steam id
// @Tags playerstats
// @Produce json
// @Param steamId path string true "Steam64 ID"
// @Success 200 {array} models.PlayerMatchStat
// @Failure 404 {object} models.MessageResponse
// @Router /playerstats/{steamId} [get]
func (h *Handler) GetPlayerStatsBySteamID(w http.ResponseWriter, r *http.Request) {
	steamID := chi.URLParam(r, "steamId")
	stats, err := h.playerStats.ListBySteamID(r.Context(), steamID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, stats)
}

// GetPlayerStatsByMatch returns every row of one match
// @Summary Player stats by match
// @Tags playerstats
// @Produce json
// @Param matchId path int true "Match ID"
// @Success 200 {array} models.PlayerMatchStat
// @Failure 400 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse
// @Router /playerstats/match/{matchId} [get]
func (h *Handler) GetPlayerStatsByMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.ParseInt(chi.URLParam(r, "matchId"), 10, 64)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid match id")
		return
	}

	stats, err := h.playerStats.ListByMatch(r.Context(), matchID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, stats)
}

// CreatePlayerStats inserts a player's stats for a live match
// @Summary Insert player stats
// @Description Body is a single-element array. The api_key must match the match unless the bearer is a super admin.
// @Tags playerstats
// @Accept json
// @Produce json
// @Param body body []models.NewStats true "Player stats"
// @Success 200 {object} models.MessageResponse
// @Failure 403 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /playerstats [post]
func (h *Handler) CreatePlayerStats(w http.ResponseWriter, r *http.Request) {
	report, ok := h.decodeReport(w, r)
	if !ok {
		return
	}

	res, err := h.playerStats.Create(r.Context(), report, principalFromContext(r.Context()))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.emitStatWrite(r, res)
	h.messageResponse(w, "Player Stats inserted successfully!")
}

// UpdatePlayerStats replaces a player's counters, inserting the row if absent
// @Summary Update player stats
// @Tags playerstats
// @Accept json
// @Produce json
// @Param body body []models.NewStats true "Player stats"
// @Success 200 {object} models.MessageResponse
// @Failure 403 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse
// @Failure 412 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /playerstats [put]
func (h *Handler) UpdatePlayerStats(w http.ResponseWriter, r *http.Request) {
	report, ok := h.decodeReport(w, r)
	if !ok {
		return
	}

	res, err := h.playerStats.Update(r.Context(), report, principalFromContext(r.Context()))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.emitStatWrite(r, res)
	if res.Outcome == logic.InsertedViaFallback {
		h.messageResponse(w, "Player Stats Inserted Successfully!")
		return
	}
	h.messageResponse(w, "Player Stats were updated successfully!")
}

// DeletePlayerStats purges the stats of a finished match
// @Summary Delete a match's player stats
// @Tags playerstats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.DeleteStatsRequest true "Match"
// @Success 200 {object} models.MessageResponse
// @Failure 401 {object} models.MessageResponse
// @Failure 403 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /playerstats [delete]
func (h *Handler) DeletePlayerStats(w http.ResponseWriter, r *http.Request) {
	req, err := decodeFirst[models.DeleteStatsRequest](w, r)
	if err != nil {
		h.logger.Warnw("Failed to decode delete request", "error", err)
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req == nil || h.validator.Struct(req) != nil {
		h.errorResponse(w, http.StatusNotFound, "Required Data Not Provided")
		return
	}

	n, err := h.playerStats.DeleteMatchStats(r.Context(), *req.MatchID, principalFromContext(r.Context()))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	ev := h.newEvent(r, models.EventMatchStatsPurged)
	ev.MatchID = *req.MatchID
	ev.Rows = n
	h.enqueue(ev)

	h.messageResponse(w, "Player stats has been deleted successfully.")
}

func (h *Handler) decodeReport(w http.ResponseWriter, r *http.Request) (*models.NewStats, bool) {
	report, err := decodeFirst[models.NewStats](w, r)
	if err != nil {
		h.logger.Warnw("Failed to decode player stats", "error", err)
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}
	if report == nil {
		h.errorResponse(w, http.StatusNotFound, "Required Data Not Provided")
		return nil, false
	}
	return report, true
}

func (h *Handler) emitStatWrite(r *http.Request, res *logic.UpsertResult) {
	statWrites.WithLabelValues(res.Outcome.String()).Inc()

	kind := models.EventStatInserted
	switch res.Outcome {
	case logic.Updated:
		kind = models.EventStatUpdated
	case logic.InsertedViaFallback:
		kind = models.EventStatFallbackInserted
	}

	ev := h.newEvent(r, kind)
	ev.MatchID = res.Key.MatchID
	ev.MapID = res.Key.MapID
	ev.SteamID = res.Key.SteamID
	ev.Rows = 1
	ev.Payload = res.Patch.Map()
	h.enqueue(ev)
}

func (h *Handler) newEvent(r *http.Request, kind models.StatEventKind) *models.StatEvent {
	ev := models.NewStatEvent(kind)
	ev.RequestID = RequestIDFromContext(r.Context())
	return ev
}

// enqueue hands a committed change to the event sink. The write already
// succeeded, so a full queue only costs the event.
func (h *Handler) enqueue(ev *models.StatEvent) {
	if !h.events.Enqueue(ev) {
		h.logger.Warnw("Stat event dropped", "kind", ev.Kind, "request_id", ev.RequestID)
	}
}
