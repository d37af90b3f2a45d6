package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/techcorp/toolspend/internal/api/helpers"
	"github.com/techcorp/toolspend/internal/models"
	"github.com/techcorp/toolspend/internal/state"
	"github.com/techcorp/toolspend/internal/toolview"
)

// SelectionState guards a selection set for concurrent handler access.
type SelectionState struct {
	mu  sync.Mutex
	set *toolview.Selection
}

func NewSelectionState() *SelectionState {
	return &SelectionState{set: toolview.NewSelection()}
}

func (s *SelectionState) Toggle(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.Toggle(id)
}

func (s *SelectionState) SelectAll(tools []models.Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.SelectAll(tools)
}

func (s *SelectionState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.Clear()
}

func (s *SelectionState) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Count()
}

func (s *SelectionState) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.IDs()
}

func (s *SelectionState) Has(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Has(id)
}

func (s *SelectionState) Remove(ids ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.Remove(ids...)
}

type SelectionHandler struct {
	selection *SelectionState
	catalog   *state.CatalogStore
}

func NewSelectionHandler(selection *SelectionState, catalog *state.CatalogStore) *SelectionHandler {
	return &SelectionHandler{selection: selection, catalog: catalog}
}

type selectionResponse struct {
	IDs   []int64 `json:"ids"`
	Count int     `json:"count"`
}

func (h *SelectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, selectionResponse{
		IDs:   h.selection.IDs(),
		Count: h.selection.Count(),
	})
}

type selectionRequest struct {
	Action string `json:"action"`
	ID     int64  `json:"id,omitempty"`
}

// Update applies a toggle, select_all, or clear action. select_all
// selects the whole filtered subset described by the query params, the
// same params the tool list endpoint accepts.
func (h *SelectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Action {
	case "toggle":
		h.selection.Toggle(req.ID)
	case "select_all":
		filtered := toolview.Filter(h.catalog.Tools(), r.URL.Query().Get("q"), filterValuesFromQuery(r))
		h.selection.SelectAll(filtered)
	case "clear":
		h.selection.Clear()
	default:
		helpers.WriteError(w, http.StatusBadRequest, fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	helpers.WriteJSON(w, http.StatusOK, selectionResponse{
		IDs:   h.selection.IDs(),
		Count: h.selection.Count(),
	})
}
