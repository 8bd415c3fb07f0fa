package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/g5stats/stats-api/internal/logic"
	"github.com/g5stats/stats-api/internal/models"
)

// Health check endpoint
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint. Dependencies are pinged in parallel; optional ones
// are only checked when configured.
// @Summary Readiness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	probes := map[string]func(context.Context) error{}
	if h.db != nil {
		probes["database"] = h.db.Ping
	}
	if h.ch != nil {
		probes["clickhouse"] = h.ch.Ping
	}
	if h.redis != nil {
		probes["redis"] = func(ctx context.Context) error { return h.redis.Ping(ctx).Err() }
	}

	var mu sync.Mutex
	checks := make(map[string]bool, len(probes))
	var g errgroup.Group
	for name, probe := range probes {
		g.Go(func() error {
			err := probe(ctx)
			if err != nil {
				h.logger.Warnw("Readiness check failed", "dependency", name, "error", err)
			}
			mu.Lock()
			checks[name] = err == nil
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}
	h.jsonResponse(w, status, map[string]interface{}{
		"ready":      allHealthy,
		"checks":     checks,
		"queueDepth": h.events.QueueDepth(),
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, models.MessageResponse{Message: message})
}

func (h *Handler) messageResponse(w http.ResponseWriter, message string) {
	h.jsonResponse(w, http.StatusOK, models.MessageResponse{Message: message})
}

// statusFor maps a service error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, logic.ErrValidation), errors.Is(err, logic.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, logic.ErrUnauthorized), errors.Is(err, logic.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, logic.ErrNoData):
		return http.StatusPreconditionFailed
	case errors.Is(err, logic.ErrInvalidSeason), errors.Is(err, logic.ErrUnknownField):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// serviceError logs err and writes it as a {"message"} body.
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Errorw("Request failed",
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
	} else {
		h.logger.Warnw("Request rejected",
			"path", r.URL.Path,
			"status", status,
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
	}
	h.errorResponse(w, status, logic.Message(err))
}

var errEmptyBody = errors.New("empty body")

// decodeFirst reads a JSON body that is either a single object or an array
// whose first element is used. An empty array yields (nil, nil).
func decodeFirst[T any](w http.ResponseWriter, r *http.Request) (*T, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		return nil, err
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errEmptyBody
	}

	if body[0] == '[' {
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, nil
		}
		return &items[0], nil
	}

	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
