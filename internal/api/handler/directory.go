package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/techcorp/toolspend/internal/api/helpers"
	"github.com/techcorp/toolspend/internal/gateway"
	"github.com/techcorp/toolspend/internal/models"
)

// DirectoryHandler proxies the department and user directories from the
// upstream catalog. Failures degrade to empty lists so the dashboard can
// render without them.
type DirectoryHandler struct {
	gw *gateway.Client
}

func NewDirectoryHandler(gw *gateway.Client) *DirectoryHandler {
	return &DirectoryHandler{gw: gw}
}

func (h *DirectoryHandler) Departments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.gw.ListDepartments(r.Context())
	if err != nil {
		slog.Warn("departments fetch failed", "error", err)
		departments = []models.Department{}
	}
	helpers.WriteJSON(w, http.StatusOK, departments)
}

func (h *DirectoryHandler) Users(w http.ResponseWriter, r *http.Request) {
	var query gateway.UserQuery
	if v := r.URL.Query().Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			helpers.WriteError(w, http.StatusBadRequest, "invalid active param")
			return
		}
		query.Active = &active
	}
	if v := r.URL.Query().Get("department_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			helpers.WriteError(w, http.StatusBadRequest, "invalid department_id param")
			return
		}
		query.DepartmentID = &id
	}

	users, err := h.gw.ListUsers(r.Context(), query)
	if err != nil {
		slog.Warn("users fetch failed", "error", err)
		users = []models.User{}
	}
	helpers.WriteJSON(w, http.StatusOK, users)
}
