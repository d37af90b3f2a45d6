package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/techcorp/toolspend/internal/api/helpers"
	"github.com/techcorp/toolspend/internal/gateway"
	"github.com/techcorp/toolspend/internal/insights"
	"github.com/techcorp/toolspend/internal/models"
	"github.com/techcorp/toolspend/internal/state"
)

type DashboardHandler struct {
	store *state.DashboardStore
	gw    *gateway.Client
}

func NewDashboardHandler(store *state.DashboardStore, gw *gateway.Client) *DashboardHandler {
	return &DashboardHandler{store: store, gw: gw}
}

type dashboardResponse struct {
	KpiCards    []models.KpiCard `json:"kpi_cards"`
	RecentTools []models.Tool    `json:"recent_tools"`
}

// Get serves the dashboard view: the four KPI cards plus the recent-tools
// table. A non-empty q swaps the table for a live upstream name search; a
// failed search degrades to an empty table.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recent := h.store.Recent()
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		found, err := h.gw.SearchTools(ctx, q)
		if err != nil {
			slog.Error("tool search failed", "query", q, "error", err)
			found = []models.Tool{}
		}
		recent = found
	}
	if recent == nil {
		recent = []models.Tool{}
	}

	helpers.WriteJSON(w, http.StatusOK, dashboardResponse{
		KpiCards:    insights.BuildKpiCards(h.store.Analytics()),
		RecentTools: recent,
	})
}
