package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/g5stats/stats-api/internal/models"
)

var rankUpdates = promauto.NewCounter(prometheus.CounterOpts{
	Name: "g5stats_rank_deltas_applied_total",
	Help: "Rank deltas committed",
})

func seasonParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "seasonId"), 10, 64)
}

// ListRanks returns lifetime aggregates for every player
// @Summary Lifetime rank aggregates
// @Tags ranks
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 404 {object} models.MessageResponse
// @Router /ranks [get]
func (h *Handler) ListRanks(w http.ResponseWriter, r *http.Request) {
	ranks, err := h.ranks.Aggregate(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, ranks)
}

// GetSeasonRanks returns the raw rows of one season
// @Summary Season rank rows
// @Tags ranks
// @Produce json
// @Param seasonId path int true "Season ID"
// @Success 200 {array} map[string]interface{}
// @Failure 404 {object} models.MessageResponse
// @Router /ranks/season/{seasonId} [get]
func (h *Handler) GetSeasonRanks(w http.ResponseWriter, r *http.Request) {
	seasonID, err := seasonParam(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid season id")
		return
	}

	ranks, err := h.ranks.SeasonSlice(r.Context(), seasonID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, ranks)
}

// GetPlayerRank returns one player's lifetime aggregate
// @Summary Player lifetime rank
// @Tags ranks
// @Produce json
// @Param steamId path string true "Steam64 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.MessageResponse
// @Router /ranks/{steamId} [get]
func (h *Handler) GetPlayerRank(w http.ResponseWriter, r *http.Request) {
	rank, err := h.ranks.PlayerAggregate(r.Context(), chi.URLParam(r, "steamId"))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, rank)
}

// GetPlayerSeasons returns every season row of a player
// @Summary Player rank per season
// @Tags ranks
// @Produce json
// @Param steamId path string true "Steam64 ID"
// @Success 200 {array} map[string]interface{}
// @Failure 404 {object} models.MessageResponse
// @Router /ranks/{steamId}/seasons [get]
func (h *Handler) GetPlayerSeasons(w http.ResponseWriter, r *http.Request) {
	ranks, err := h.ranks.PlayerSeasons(r.Context(), chi.URLParam(r, "steamId"))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, ranks)
}

// GetPlayerSeasonRank returns one season row
// @Summary Player rank for a season
// @Tags ranks
// @Produce json
// @Param steamId path string true "Steam64 ID"
// @Param seasonId path int true "Season ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.MessageResponse
// @Router /ranks/{steamId}/season/{seasonId} [get]
func (h *Handler) GetPlayerSeasonRank(w http.ResponseWriter, r *http.Request) {
	steamID := chi.URLParam(r, "steamId")
	seasonID, err := seasonParam(r)
	if err != nil {
		// A season that can never exist has no rows either.
		h.errorResponse(w, http.StatusNotFound, "No stats found for player "+steamID)
		return
	}

	rank, err := h.ranks.PlayerSeasonSlice(r.Context(), steamID, seasonID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, rank)
}

// ApplyRankDelta folds a stat delta into a player's season row
// @Summary Apply a rank delta
// @Description score and lastconnect replace the stored value, every other field is added to it.
// @Tags ranks
// @Accept json
// @Produce json
// @Param steamId path string true "Steam64 ID"
// @Param seasonId path int true "Season ID"
// @Param body body map[string]number true "Field deltas"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.MessageResponse
// @Failure 412 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /ranks/{steamId}/season/{seasonId} [put]
func (h *Handler) ApplyRankDelta(w http.ResponseWriter, r *http.Request) {
	steamID := chi.URLParam(r, "steamId")
	seasonID, err := seasonParam(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid season id")
		return
	}

	var delta models.RankDelta
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize)).Decode(&delta); err != nil {
		h.logger.Warnw("Failed to decode rank delta", "steam", steamID, "error", err)
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.ranks.ApplyDelta(r.Context(), steamID, seasonID, delta); err != nil {
		h.serviceError(w, r, err)
		return
	}
	rankUpdates.Inc()

	ev := h.newEvent(r, models.EventRankDeltaApplied)
	ev.SteamID = steamID
	ev.SeasonID = seasonID
	ev.Rows = 1
	ev.Payload = delta
	h.enqueue(ev)

	h.messageResponse(w, fmt.Sprintf("Rank stats for player %s successfully updated", steamID))
}

// ResetPlayerRanks deletes every season row of a player
// @Summary Reset a player's ranks
// @Tags ranks
// @Produce json
// @Security BearerAuth
// @Param steamId path string true "Steam64 ID"
// @Success 200 {object} models.MessageResponse
// @Failure 401 {object} models.MessageResponse
// @Failure 403 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /ranks/{steamId} [delete]
func (h *Handler) ResetPlayerRanks(w http.ResponseWriter, r *http.Request) {
	steamID := chi.URLParam(r, "steamId")

	n, err := h.ranks.ResetPlayer(r.Context(), steamID, principalFromContext(r.Context()))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	ev := h.newEvent(r, models.EventRankReset)
	ev.SteamID = steamID
	ev.Rows = n
	h.enqueue(ev)

	h.messageResponse(w, fmt.Sprintf("Rank stats reseted for player %s", steamID))
}
