package handler

import (
	"errors"
	"net/http"

	"github.com/techcorp/toolspend/internal/api/helpers"
	"github.com/techcorp/toolspend/internal/refresher"
)

type RefreshHandler struct {
	refresher *refresher.Refresher
}

func NewRefreshHandler(r *refresher.Refresher) *RefreshHandler {
	return &RefreshHandler{refresher: r}
}

func (h *RefreshHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	if err := h.refresher.TriggerRefresh(); err != nil {
		if errors.Is(err, refresher.ErrRefreshAlreadyRunning) {
			helpers.WriteError(w, http.StatusConflict, err.Error())
			return
		}
		helpers.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "refresh triggered"})
}

func (h *RefreshHandler) Status(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, h.refresher.Status())
}
