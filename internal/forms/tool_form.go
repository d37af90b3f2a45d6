// Package forms validates partial tool records before they are submitted
// to the upstream catalog. Invalid forms never reach the network.
package forms

import (
	"errors"
	"strings"

	"github.com/techcorp/toolspend/internal/models"
)

// ToolForm is the submittable subset of a Tool. Pointer-free: the upstream
// PATCH semantics replace whole fields, and zero values are meaningful
// (a zero monthly cost is a valid free tool).
type ToolForm struct {
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Vendor           string            `json:"vendor"`
	Category         string            `json:"category"`
	OwnerDepartment  string            `json:"owner_department"`
	MonthlyCost      float64           `json:"monthly_cost"`
	ActiveUsersCount int               `json:"active_users_count"`
	Status           models.ToolStatus `json:"status"`
	WebsiteURL       string            `json:"website_url"`
	IconURL          string            `json:"icon_url"`
}

// EmptyToolForm is the reset state of the editor.
func EmptyToolForm() ToolForm {
	return ToolForm{Status: models.StatusActive}
}

// FormFromTool preloads the editor when an existing tool is edited.
func FormFromTool(t models.Tool) ToolForm {
	return ToolForm{
		Name:             t.Name,
		Description:      t.Description,
		Vendor:           t.Vendor,
		Category:         t.Category,
		OwnerDepartment:  t.OwnerDepartment,
		MonthlyCost:      t.MonthlyCost,
		ActiveUsersCount: t.ActiveUsersCount,
		Status:           t.Status,
		WebsiteURL:       t.WebsiteURL,
		IconURL:          t.IconURL,
	}
}

// Validate reports every problem with the form at once.
func (f ToolForm) Validate() error {
	var problems []string

	if strings.TrimSpace(f.Name) == "" {
		problems = append(problems, "name is required")
	}
	if f.Category == "" {
		problems = append(problems, "category is required")
	}
	if f.OwnerDepartment == "" {
		problems = append(problems, "owner_department is required")
	}
	if f.Status == "" {
		problems = append(problems, "status is required")
	}
	if f.MonthlyCost < 0 {
		problems = append(problems, "monthly_cost must not be negative")
	}
	if f.ActiveUsersCount < 0 {
		problems = append(problems, "active_users_count must not be negative")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Valid is the submit-button predicate, recomputed on every field change.
func (f ToolForm) Valid() bool {
	return f.Validate() == nil
}
