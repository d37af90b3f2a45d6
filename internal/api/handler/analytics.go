package handler

import (
	"log/slog"
	"net/http"

	"github.com/techcorp/toolspend/internal/api/helpers"
	"github.com/techcorp/toolspend/internal/gateway"
	"github.com/techcorp/toolspend/internal/insights"
	"github.com/techcorp/toolspend/internal/models"
	"github.com/techcorp/toolspend/internal/state"
)

type AnalyticsHandler struct {
	catalog   *state.CatalogStore
	dashboard *state.DashboardStore
	gw        *gateway.Client

	// budgetLimit backs the budget gauge until the first upstream
	// analytics snapshot arrives.
	budgetLimit float64
}

func NewAnalyticsHandler(catalog *state.CatalogStore, dashboard *state.DashboardStore, gw *gateway.Client, budgetLimit float64) *AnalyticsHandler {
	return &AnalyticsHandler{catalog: catalog, dashboard: dashboard, gw: gw, budgetLimit: budgetLimit}
}

type analyticsResponse struct {
	TotalMonthlyCost     float64               `json:"total_monthly_cost"`
	AverageCostPerTool   int                   `json:"average_cost_per_tool"`
	ActiveUsers          int                   `json:"active_users"`
	CostPerUser          float64               `json:"cost_per_user"`
	BudgetProgress       models.BudgetProgress `json:"budget_progress"`
	DepartmentBreakdown  []models.ChartPoint   `json:"department_breakdown"`
	CategoryDistribution []models.ChartPoint   `json:"category_distribution"`
	TopExpensiveTools    []models.ChartPoint   `json:"top_expensive_tools"`
	MonthlyTrend         []models.TrendPoint   `json:"monthly_trend"`
	MaxMonthlySpend      float64               `json:"max_monthly_spend"`
}

// Get derives the full analytics view from the current catalog and
// analytics snapshots. Everything here is recomputed per request from the
// stores; the handler owns no state of its own.
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	tools := h.catalog.Tools()
	analytics := h.dashboard.Analytics()

	var activeUsers int
	var costPerUser float64
	if analytics != nil {
		activeUsers = analytics.CostAnalytics.ActiveUsers
		costPerUser = analytics.CostAnalytics.CostPerUser
	}

	trend := insights.SimulatedMonthlyTrend(tools, nil)

	progress := insights.ComputeBudgetProgress(analytics)
	if analytics == nil && h.budgetLimit > 0 {
		progress = insights.BudgetProgressFor(insights.TotalMonthlyCost(tools), h.budgetLimit)
	}

	helpers.WriteJSON(w, http.StatusOK, analyticsResponse{
		TotalMonthlyCost:     insights.TotalMonthlyCost(tools),
		AverageCostPerTool:   insights.AverageCostPerTool(tools),
		ActiveUsers:          activeUsers,
		CostPerUser:          costPerUser,
		BudgetProgress:       progress,
		DepartmentBreakdown:  insights.DepartmentBreakdown(tools),
		CategoryDistribution: insights.CategoryDistribution(tools),
		TopExpensiveTools:    insights.TopExpensiveTools(tools, helpers.ParseIntParam(r, "top", 5)),
		MonthlyTrend:         trend,
		MaxMonthlySpend:      insights.MaxTrendCost(trend),
	})
}

// DepartmentCosts proxies the legacy per-department rollup endpoint. An
// upstream failure degrades to the zero-valued response shape.
func (h *AnalyticsHandler) DepartmentCosts(w http.ResponseWriter, r *http.Request) {
	resp, err := h.gw.GetDepartmentCosts(r.Context())
	if err != nil {
		slog.Error("failed to fetch department costs", "error", err)
		resp = &models.DepartmentCostsResponse{
			Data: []models.DepartmentStat{},
			Summary: models.AnalyticsSummary{
				MostExpensiveDepartment: "N/A",
			},
		}
	}
	if resp.Data == nil {
		resp.Data = []models.DepartmentStat{}
	}

	helpers.WriteJSON(w, http.StatusOK, resp)
}
