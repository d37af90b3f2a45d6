package handler

import (
	"encoding/json"
	"net/http"

	"github.com/techcorp/toolspend/internal/api/helpers"
	"github.com/techcorp/toolspend/internal/prefs"
)

type PreferencesHandler struct {
	prefs *prefs.Service
}

func NewPreferencesHandler(service *prefs.Service) *PreferencesHandler {
	return &PreferencesHandler{prefs: service}
}

type themeResponse struct {
	Theme prefs.Theme `json:"theme"`
}

func (h *PreferencesHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.prefs.Theme(r.Context())
	if err != nil {
		helpers.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, themeResponse{Theme: theme})
}

func (h *PreferencesHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.prefs.SetTheme(r.Context(), req.Theme); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, themeResponse{Theme: req.Theme})
}
