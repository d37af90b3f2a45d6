package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/techcorp/toolspend/internal/api/helpers"
	"github.com/techcorp/toolspend/internal/forms"
	"github.com/techcorp/toolspend/internal/gateway"
	"github.com/techcorp/toolspend/internal/insights"
	"github.com/techcorp/toolspend/internal/models"
	"github.com/techcorp/toolspend/internal/state"
	"github.com/techcorp/toolspend/internal/toolview"
)

type ToolsHandler struct {
	catalog   *state.CatalogStore
	selection *SelectionState
	gw        *gateway.Client
}

func NewToolsHandler(catalog *state.CatalogStore, selection *SelectionState, gw *gateway.Client) *ToolsHandler {
	return &ToolsHandler{catalog: catalog, selection: selection, gw: gw}
}

type toolListResponse struct {
	Items            []models.Tool `json:"items"`
	Page             toolview.Page `json:"page"`
	TotalMonthlyCost float64       `json:"total_monthly_cost"`
	ActiveTools      int           `json:"active_tools"`
	SelectedCount    int           `json:"selected_count"`
	LastError        string        `json:"last_error,omitempty"`
}

// List runs the full catalog pipeline: filter, sort, paginate. The engine
// works on a copy of the store snapshot, so concurrent requests never see
// partial state.
func (h *ToolsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	filters := filterValuesFromQuery(r)

	sortState := toolview.DefaultSortState()
	if s := r.URL.Query().Get("sort"); s != "" {
		field, err := toolview.ParseSortField(s)
		if err != nil {
			helpers.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		sortState = toolview.SortState{Field: field, Direction: toolview.ParseDirection(r.URL.Query().Get("order"))}
	}

	all := h.catalog.Tools()
	filtered := toolview.Filter(all, query, filters)
	sorted := toolview.Sort(filtered, sortState.Field, sortState.Direction)

	page := toolview.Paginate(
		len(sorted),
		helpers.ParseIntParam(r, "page_size", toolview.DefaultPageSize),
		helpers.ParseIntParam(r, "page", 1),
	)

	helpers.WriteJSON(w, http.StatusOK, toolListResponse{
		Items:            page.Slice(sorted),
		Page:             page,
		TotalMonthlyCost: insights.TotalMonthlyCost(all),
		ActiveTools:      insights.ActiveToolsCount(all),
		SelectedCount:    h.selection.Count(),
		LastError:        h.catalog.LastError(),
	})
}

// Create validates the form and submits it upstream. The local catalog is
// only touched after the upstream accepted the write.
func (h *ToolsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form forms.ToolForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tool, err := h.gw.CreateTool(r.Context(), form)
	if err != nil {
		helpers.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.catalog.ApplyCreate(*tool)
	helpers.WriteJSON(w, http.StatusCreated, tool)
}

func (h *ToolsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "invalid tool id")
		return
	}

	var form forms.ToolForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tool, err := h.gw.UpdateTool(r.Context(), id, form)
	if err != nil {
		helpers.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.catalog.ApplyUpdate(*tool)
	helpers.WriteJSON(w, http.StatusOK, tool)
}

func (h *ToolsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "invalid tool id")
		return
	}

	if err := h.gw.DeleteTool(r.Context(), id); err != nil {
		helpers.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.catalog.ApplyDelete(id)
	h.selection.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

type bulkDeleteResponse struct {
	Deleted []int64          `json:"deleted"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// BulkDelete fans the deletes out concurrently and joins when every one
// has settled. The local catalog drops exactly the ids that succeeded; a
// single failure marks the whole batch failed, but successes are not
// rolled back.
func (h *ToolsHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		helpers.WriteError(w, http.StatusBadRequest, "no tools selected")
		return
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done = []int64{}
		fail = make(map[string]string)
	)

	for _, id := range req.IDs {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			err := h.gw.DeleteTool(r.Context(), id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fail[strconv.FormatInt(id, 10)] = err.Error()
			} else {
				done = append(done, id)
			}
		}(id)
	}
	wg.Wait()

	h.catalog.ApplyBulkDelete(done)
	h.selection.Remove(done...)

	resp := bulkDeleteResponse{Deleted: done}
	if len(fail) > 0 {
		resp.Failed = fail
		helpers.WriteJSON(w, http.StatusBadGateway, resp)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

func filterValuesFromQuery(r *http.Request) models.FilterValues {
	return models.FilterValues{
		Department: r.URL.Query().Get("department"),
		Status:     r.URL.Query().Get("status"),
		Category:   r.URL.Query().Get("category"),
		MinCost:    helpers.ParseFloatParam(r, "min_cost", 0),
		MaxCost:    helpers.ParseFloatParam(r, "max_cost", toolview.DefaultMaxCost),
	}
}
