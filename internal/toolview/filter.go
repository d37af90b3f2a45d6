// Package toolview produces the visible page of the tool catalog for a
// given search query, filter set, sort key and page. The functions never
// mutate their input collection; they read and reorder references only.
package toolview

import (
	"strings"

	"github.com/techcorp/toolspend/internal/models"
)

// DefaultMaxCost is the upper cost bound when the user has not narrowed
// the range.
const DefaultMaxCost = 10000

// DefaultFilterValues returns the unset filter state.
func DefaultFilterValues() models.FilterValues {
	return models.FilterValues{MaxCost: DefaultMaxCost}
}

// Filter narrows the collection in a fixed stage order: free-text query,
// department, status, category, then cost range. Each stage narrows the
// previous result and is skipped when its criterion is empty, except the
// cost range which is always applied. The text query is an OR over name,
// description, category and owner department; the exact-match stages are
// ANDed after it.
func Filter(tools []models.Tool, query string, filters models.FilterValues) []models.Tool {
	result := tools

	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		result = keep(result, func(t models.Tool) bool {
			return strings.Contains(strings.ToLower(t.Name), q) ||
				strings.Contains(strings.ToLower(t.Description), q) ||
				strings.Contains(strings.ToLower(t.Category), q) ||
				strings.Contains(strings.ToLower(t.OwnerDepartment), q)
		})
	}

	if filters.Department != "" {
		result = keep(result, func(t models.Tool) bool { return t.OwnerDepartment == filters.Department })
	}

	if filters.Status != "" {
		result = keep(result, func(t models.Tool) bool { return string(t.Status) == filters.Status })
	}

	if filters.Category != "" {
		result = keep(result, func(t models.Tool) bool { return t.Category == filters.Category })
	}

	// An inverted range (min > max) matches nothing rather than failing.
	result = keep(result, func(t models.Tool) bool {
		return t.MonthlyCost >= filters.MinCost && t.MonthlyCost <= filters.MaxCost
	})

	return result
}

func keep(tools []models.Tool, pred func(models.Tool) bool) []models.Tool {
	kept := make([]models.Tool, 0, len(tools))
	for _, t := range tools {
		if pred(t) {
			kept = append(kept, t)
		}
	}
	return kept
}
