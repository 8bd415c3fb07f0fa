package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"

	"github.com/g5stats/stats-api/internal/worker"
)

// InstallDatabase applies the relational schema and, when ClickHouse is
// configured, the stat event audit table
// @Summary Install Database Schema
// @Description Runs the bundled migrations for the relational store and ClickHouse
// @Tags System
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.MessageResponse
// @Failure 403 {object} models.MessageResponse
// @Failure 500 {object} map[string]interface{}
// @Router /system/install [post]
func (h *Handler) InstallDatabase(w http.ResponseWriter, r *http.Request) {
	if !principalFromContext(r.Context()).CanOverrideMatchKey() {
		h.errorResponse(w, http.StatusForbidden, "User is not authorized to perform action.")
		return
	}

	ctx := r.Context()
	results := make(map[string]string)
	hasError := false

	// 1. Relational store
	if h.migrator != nil {
		if err := h.migrator.Migrate(ctx, h.zlog); err != nil {
			h.logger.Errorw("failed to migrate schema", "db", "relational", "error", err)
			results["database"] = "failed: " + err.Error()
			hasError = true
		} else {
			results["database"] = "success"
		}
	}

	// 2. ClickHouse audit table
	if h.ch != nil {
		if err := worker.EnsureSchema(ctx, h.ch); err != nil {
			h.logger.Errorw("failed to install schema", "db", "ClickHouse", "error", err)
			results["clickhouse"] = "failed: " + err.Error()
			hasError = true
		} else {
			results["clickhouse"] = "success"
		}
	}

	statusCode := http.StatusOK
	if hasError {
		statusCode = http.StatusInternalServerError
	}

	h.jsonResponse(w, statusCode, map[string]interface{}{
		"status":  "completed",
		"results": results,
		"error":   hasError,
	})
}

// Metrics exposes the Prometheus registry.
func (h *Handler) Metrics() http.Handler {
	return promhttp.Handler()
}

// SwaggerDoc serves the registered OpenAPI document.
func (h *Handler) SwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		h.logger.Warnw("Swagger document unavailable", "error", err)
		h.errorResponse(w, http.StatusNotFound, "API documentation not registered")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
