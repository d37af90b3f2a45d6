package toolview

import (
	"sort"

	"github.com/techcorp/toolspend/internal/models"
)

// Selection is the set of tool IDs marked for bulk operations. It is
// independent of the filter and pagination state: a selected tool stays
// selected when it scrolls off the current page or filter.
type Selection struct {
	ids map[int64]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[int64]struct{})}
}

// Toggle flips membership of a single tool.
func (s *Selection) Toggle(id int64) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

// SelectAll selects every tool in the given collection. Callers pass the
// currently filtered collection, not the full catalog and not just the
// visible page, so bulk actions cover the whole filtered subset.
func (s *Selection) SelectAll(tools []models.Tool) {
	s.ids = make(map[int64]struct{}, len(tools))
	for _, t := range tools {
		s.ids[t.ID] = struct{}{}
	}
}

// Clear deselects everything.
func (s *Selection) Clear() {
	s.ids = make(map[int64]struct{})
}

func (s *Selection) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Count() int {
	return len(s.ids)
}

// IDs returns the selected identifiers in ascending order.
func (s *Selection) IDs() []int64 {
	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Remove drops ids that no longer exist, e.g. after a successful delete.
func (s *Selection) Remove(ids ...int64) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}
