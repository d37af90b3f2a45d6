// Package state holds the per-view source-of-truth snapshots. Stores are
// the only mutable shared state in the process; every update is a
// whole-value replacement under the store's lock, and readers get copies.
//
// Loads are stamped with a generation counter: a fetch that was superseded
// by a newer one has its late response discarded, so the last response to
// arrive can never overwrite fresher data.
package state

import (
	"sync"

	"github.com/techcorp/toolspend/internal/models"
)

// CatalogStore owns the full tool collection backing the catalog view.
type CatalogStore struct {
	mu      sync.RWMutex
	gen     uint64
	tools   []models.Tool
	loaded  bool
	lastErr string
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{}
}

// Begin opens a new load generation, invalidating in-flight older loads.
func (s *CatalogStore) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// Complete installs the outcome of load generation gen. It reports false,
// leaving the store untouched, when a newer load has begun since.
func (s *CatalogStore) Complete(gen uint64, tools []models.Tool, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return false
	}

	if err != nil {
		// Failed reads degrade to the last-good collection; first load
		// failures leave the catalog empty rather than erroring out.
		s.lastErr = err.Error()
		if !s.loaded {
			s.tools = []models.Tool{}
		}
		return true
	}

	s.tools = tools
	s.loaded = true
	s.lastErr = ""
	return true
}

// Tools returns a copy of the current collection.
func (s *CatalogStore) Tools() []models.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Tool, len(s.tools))
	copy(out, s.tools)
	return out
}

// LastError is the message of the most recent failed load, empty after a
// successful one.
func (s *CatalogStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ApplyCreate appends a tool the upstream accepted. Called only after the
// write succeeded; failed writes never touch the store.
func (s *CatalogStore) ApplyCreate(tool models.Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tools = append(s.tools, tool)
}

// ApplyUpdate replaces the matching tool wholesale.
func (s *CatalogStore) ApplyUpdate(tool models.Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tools {
		if s.tools[i].ID == tool.ID {
			s.tools[i] = tool
			return
		}
	}
}

// ApplyDelete removes a tool by id.
func (s *CatalogStore) ApplyDelete(id int64) {
	s.ApplyBulkDelete([]int64{id})
}

// ApplyBulkDelete removes exactly the ids whose deletes succeeded. Partial
// bulk failures keep the survivors in place.
func (s *CatalogStore) ApplyBulkDelete(ids []int64) {
	if len(ids) == 0 {
		return
	}

	gone := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		gone[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tools[:0:0]
	for _, t := range s.tools {
		if _, ok := gone[t.ID]; !ok {
			kept = append(kept, t)
		}
	}
	s.tools = kept
}
