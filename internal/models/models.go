package models

import "time"

// ToolStatus is an open string-backed enum: unknown values coming from the
// upstream API (the legacy catalog used "deprecated") are carried through
// untouched, but these are the canonical values.
type ToolStatus string

const (
	StatusActive   ToolStatus = "active"
	StatusUnused   ToolStatus = "unused"
	StatusExpiring ToolStatus = "expiring"
)

// Tool is a tracked SaaS subscription as returned by the upstream catalog.
type Tool struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Vendor            string     `json:"vendor"`
	Category          string     `json:"category"`
	MonthlyCost       float64    `json:"monthly_cost"`
	PreviousMonthCost float64    `json:"previous_month_cost"`
	OwnerDepartment   string     `json:"owner_department"`
	Status            ToolStatus `json:"status"`
	WebsiteURL        string     `json:"website_url"`
	ActiveUsersCount  int        `json:"active_users_count"`
	IconURL           string     `json:"icon_url"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Analytics is the aggregate reporting snapshot from /analytics. It is
// immutable once fetched; a new fetch replaces it wholesale.
type Analytics struct {
	BudgetOverview BudgetOverview `json:"budget_overview"`
	KpiTrends      KpiTrends      `json:"kpi_trends"`
	CostAnalytics  CostAnalytics  `json:"cost_analytics"`
}

type BudgetOverview struct {
	MonthlyLimit       float64 `json:"monthly_limit"`
	CurrentMonthTotal  float64 `json:"current_month_total"`
	PreviousMonthTotal float64 `json:"previous_month_total"`
	BudgetUtilization  string  `json:"budget_utilization"`
	TrendPercentage    string  `json:"trend_percentage"`
}

type KpiTrends struct {
	BudgetChange      string `json:"budget_change"`
	ToolsChange       string `json:"tools_change"`
	DepartmentsChange string `json:"departments_change"`
	CostPerUserChange string `json:"cost_per_user_change"`
}

type CostAnalytics struct {
	CostPerUser         float64 `json:"cost_per_user"`
	PreviousCostPerUser float64 `json:"previous_cost_per_user"`
	ActiveUsers         int     `json:"active_users"`
	TotalUsers          int     `json:"total_users"`
}

type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	DepartmentID int64     `json:"department_id"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	JoinedAt     time.Time `json:"joined_at"`
}

// DepartmentStat is the per-department rollup served by the legacy
// /analytics/department-costs endpoint.
type DepartmentStat struct {
	Department         string  `json:"department"`
	TotalCost          float64 `json:"total_cost"`
	ToolsCount         int     `json:"tools_count"`
	TotalUsers         int     `json:"total_users"`
	AverageCostPerTool float64 `json:"average_cost_per_tool"`
	CostPercentage     float64 `json:"cost_percentage"`
}

type AnalyticsSummary struct {
	TotalCompanyCost        float64 `json:"total_company_cost"`
	DepartmentsCount        int     `json:"departments_count"`
	MostExpensiveDepartment string  `json:"most_expensive_department"`
}

type DepartmentCostsResponse struct {
	Data    []DepartmentStat `json:"data"`
	Summary AnalyticsSummary `json:"summary"`
}

// KpiCard is a presentation-ready derived value, never persisted.
type KpiCard struct {
	Label         string `json:"label"`
	Value         string `json:"value"`
	SubValue      string `json:"sub_value,omitempty"`
	Trend         string `json:"trend"`
	TrendPositive bool   `json:"trend_positive"`
	Icon          string `json:"icon"`
	IconColor     string `json:"icon_color"`
	GradientFrom  string `json:"gradient_from"`
	GradientTo    string `json:"gradient_to"`
}

// ChartPoint is one entry of a grouped chart series.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// TrendPoint is one entry of the monthly spend line chart.
type TrendPoint struct {
	Month string  `json:"month"`
	Cost  float64 `json:"cost"`
}

type BudgetProgress struct {
	Percentage int     `json:"percentage"`
	Used       float64 `json:"used"`
	Limit      float64 `json:"limit"`
}

// FilterValues narrows the tool catalog view. Empty strings mean unset;
// the cost bounds are inclusive and always applied.
type FilterValues struct {
	Department string  `json:"department"`
	Status     string  `json:"status"`
	Category   string  `json:"category"`
	MinCost    float64 `json:"min_cost"`
	MaxCost    float64 `json:"max_cost"`
}

// SpendSnapshot is one locally persisted spend history row.
type SpendSnapshot struct {
	ID               int64     `json:"id"`
	CollectedAt      time.Time `json:"collected_at"`
	TotalMonthlyCost float64   `json:"total_monthly_cost"`
	ToolsCount       int       `json:"tools_count"`
	ActiveTools      int       `json:"active_tools"`
	TotalActiveUsers int       `json:"total_active_users"`
}

// DepartmentRollup is a per-department slice of a SpendSnapshot.
type DepartmentRollup struct {
	ID         int64   `json:"id"`
	SnapshotID int64   `json:"snapshot_id"`
	Department string  `json:"department"`
	TotalCost  float64 `json:"total_cost"`
	ToolsCount int     `json:"tools_count"`
}

// HealthStatus for the health check endpoint.
type HealthStatus struct {
	Status            string    `json:"status"`
	UpstreamConnected bool      `json:"upstream_connected"`
	DatabaseOK        bool      `json:"database_ok"`
	LastRefresh       time.Time `json:"last_refresh,omitempty"`
}

// RefreshStatus reports the state of the background refresh loop.
type RefreshStatus struct {
	Running       bool      `json:"running"`
	LastRefreshAt time.Time `json:"last_refresh_at,omitempty"`
	LastDuration  string    `json:"last_duration,omitempty"`
	LastError     string    `json:"last_error,omitempty"`
	NextRefreshAt time.Time `json:"next_refresh_at,omitempty"`
	ToolsCount    int       `json:"tools_count,omitempty"`
}
