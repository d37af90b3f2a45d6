package handler

import (
	"net/http"

	"github.com/techcorp/toolspend/internal/api/helpers"
	"github.com/techcorp/toolspend/internal/gateway"
	"github.com/techcorp/toolspend/internal/models"
	"github.com/techcorp/toolspend/internal/refresher"
	"github.com/techcorp/toolspend/internal/storage"
)

type HealthHandler struct {
	gw        *gateway.Client
	db        *storage.DB
	refresher *refresher.Refresher
}

func NewHealthHandler(gw *gateway.Client, db *storage.DB, r *refresher.Refresher) *HealthHandler {
	return &HealthHandler{gw: gw, db: db, refresher: r}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := models.HealthStatus{
		Status:            "healthy",
		UpstreamConnected: true,
		DatabaseOK:        true,
	}

	if err := h.gw.HealthCheck(ctx); err != nil {
		status.Status = "degraded"
		status.UpstreamConnected = false
	}

	if h.db != nil {
		if _, err := h.db.Stats(ctx); err != nil {
			status.Status = "unhealthy"
			status.DatabaseOK = false
		}
	}

	if h.refresher != nil {
		if last := h.refresher.Status().LastRefreshAt; !last.IsZero() {
			status.LastRefresh = last
		}
	}

	helpers.WriteJSON(w, http.StatusOK, status)
}
