package toolview

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/techcorp/toolspend/internal/models"
)

// SortField is the closed set of sortable columns. Arbitrary field names
// from the request are rejected by ParseSortField instead of falling back
// to untyped property lookup.
type SortField string

const (
	SortByName              SortField = "name"
	SortByVendor            SortField = "vendor"
	SortByCategory          SortField = "category"
	SortByOwnerDepartment   SortField = "owner_department"
	SortByStatus            SortField = "status"
	SortByMonthlyCost       SortField = "monthly_cost"
	SortByPreviousMonthCost SortField = "previous_month_cost"
	SortByActiveUsersCount  SortField = "active_users_count"
	SortByCreatedAt         SortField = "created_at"
	SortByUpdatedAt         SortField = "updated_at"
)

var sortFields = map[SortField]bool{
	SortByName:              true,
	SortByVendor:            true,
	SortByCategory:          true,
	SortByOwnerDepartment:   true,
	SortByStatus:            true,
	SortByMonthlyCost:       true,
	SortByPreviousMonthCost: true,
	SortByActiveUsersCount:  true,
	SortByCreatedAt:         true,
	SortByUpdatedAt:         true,
}

// ParseSortField validates a requested sort key.
func ParseSortField(s string) (SortField, error) {
	f := SortField(s)
	if !sortFields[f] {
		return "", fmt.Errorf("unknown sort field %q", s)
	}
	return f, nil
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps anything that is not "desc" to ascending.
func ParseDirection(s string) Direction {
	if s == string(Desc) {
		return Desc
	}
	return Asc
}

// SortState tracks the active column and direction of a table view.
type SortState struct {
	Field     SortField `json:"field"`
	Direction Direction `json:"direction"`
}

// DefaultSortState matches the catalog table's initial ordering.
func DefaultSortState() SortState {
	return SortState{Field: SortByUpdatedAt, Direction: Desc}
}

// Toggle flips the direction when the active column is clicked again, and
// switches to ascending on a new column.
func (s SortState) Toggle(field SortField) SortState {
	if s.Field == field {
		if s.Direction == Asc {
			s.Direction = Desc
		} else {
			s.Direction = Asc
		}
		return s
	}
	return SortState{Field: field, Direction: Asc}
}

// Sort returns a stably sorted copy of the collection. String columns
// compare with locale-aware ordering, numeric and timestamp columns by
// natural order; Desc inverts the comparator.
func Sort(tools []models.Tool, field SortField, dir Direction) []models.Tool {
	sorted := make([]models.Tool, len(tools))
	copy(sorted, tools)

	// Collators carry internal buffers, so each call gets its own.
	cmp := comparator(field, collate.New(language.English))

	sort.SliceStable(sorted, func(i, j int) bool {
		c := cmp(sorted[i], sorted[j])
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})

	return sorted
}

func comparator(field SortField, col *collate.Collator) func(a, b models.Tool) int {
	switch field {
	case SortByName:
		return func(a, b models.Tool) int { return col.CompareString(a.Name, b.Name) }
	case SortByVendor:
		return func(a, b models.Tool) int { return col.CompareString(a.Vendor, b.Vendor) }
	case SortByCategory:
		return func(a, b models.Tool) int { return col.CompareString(a.Category, b.Category) }
	case SortByOwnerDepartment:
		return func(a, b models.Tool) int { return col.CompareString(a.OwnerDepartment, b.OwnerDepartment) }
	case SortByStatus:
		return func(a, b models.Tool) int { return col.CompareString(string(a.Status), string(b.Status)) }
	case SortByMonthlyCost:
		return func(a, b models.Tool) int { return compareFloat(a.MonthlyCost, b.MonthlyCost) }
	case SortByPreviousMonthCost:
		return func(a, b models.Tool) int { return compareFloat(a.PreviousMonthCost, b.PreviousMonthCost) }
	case SortByActiveUsersCount:
		return func(a, b models.Tool) int { return compareFloat(float64(a.ActiveUsersCount), float64(b.ActiveUsersCount)) }
	case SortByCreatedAt:
		return func(a, b models.Tool) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		return func(a, b models.Tool) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
