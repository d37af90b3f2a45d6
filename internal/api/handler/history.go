package handler

import (
	"net/http"
	"time"

	"github.com/techcorp/toolspend/internal/api/helpers"
	"github.com/techcorp/toolspend/internal/models"
	"github.com/techcorp/toolspend/internal/storage"
)

type HistoryHandler struct {
	snapshots *storage.SnapshotsRepository
	rollups   *storage.RollupsRepository
}

func NewHistoryHandler(snapshots *storage.SnapshotsRepository, rollups *storage.RollupsRepository) *HistoryHandler {
	return &HistoryHandler{snapshots: snapshots, rollups: rollups}
}

type historyResponse struct {
	Days      int                     `json:"days"`
	Snapshots []models.SpendSnapshot  `json:"snapshots"`
	Latest    *latestSnapshotResponse `json:"latest,omitempty"`
}

type latestSnapshotResponse struct {
	Snapshot models.SpendSnapshot      `json:"snapshot"`
	Rollups  []models.DepartmentRollup `json:"rollups"`
}

// List returns the locally recorded spend history for the requested
// window, plus the latest snapshot with its department rollups.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	days := helpers.ParseIntParam(r, "days", 30)
	if days < 1 {
		helpers.WriteError(w, http.StatusBadRequest, "days must be positive")
		return
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	snapshots, err := h.snapshots.List(r.Context(), since)
	if err != nil {
		helpers.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if snapshots == nil {
		snapshots = []models.SpendSnapshot{}
	}

	resp := historyResponse{Days: days, Snapshots: snapshots}

	latest, err := h.snapshots.Latest(r.Context())
	if err != nil {
		helpers.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if latest != nil {
		rollups, err := h.rollups.ListBySnapshot(r.Context(), latest.ID)
		if err != nil {
			helpers.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if rollups == nil {
			rollups = []models.DepartmentRollup{}
		}
		resp.Latest = &latestSnapshotResponse{Snapshot: *latest, Rollups: rollups}
	}

	helpers.WriteJSON(w, http.StatusOK, resp)
}
