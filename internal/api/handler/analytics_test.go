package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techcorp/toolspend/internal/models"
	"github.com/techcorp/toolspend/internal/state"
)

func TestAnalyticsGet(t *testing.T) {
	catalog := loadedCatalog(t, toolFixtures())

	dashboard := state.NewDashboardStore()
	dashboard.CompleteAnalytics(dashboard.BeginAnalytics(), &models.Analytics{
		BudgetOverview: models.BudgetOverview{CurrentMonthTotal: 400, MonthlyLimit: 1000},
		CostAnalytics:  models.CostAnalytics{CostPerUser: 5, ActiveUsers: 80},
	}, nil)

	h := NewAnalyticsHandler(catalog, dashboard, nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyticsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, 400.0, resp.TotalMonthlyCost)
	assert.Equal(t, 133, resp.AverageCostPerTool)
	assert.Equal(t, 80, resp.ActiveUsers)
	assert.Equal(t, 40, resp.BudgetProgress.Percentage)

	require.Len(t, resp.DepartmentBreakdown, 2)
	assert.Equal(t, "Engineering", resp.DepartmentBreakdown[0].Name)

	require.Len(t, resp.MonthlyTrend, 6)
	assert.Equal(t, 280.0, resp.MonthlyTrend[0].Cost)
	assert.Equal(t, 380.0, resp.MaxMonthlySpend)
}

func TestAnalyticsGetUsesConfiguredBudgetBeforeSnapshot(t *testing.T) {
	h := NewAnalyticsHandler(loadedCatalog(t, toolFixtures()), state.NewDashboardStore(), nil, 1000)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	var resp analyticsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, 1000.0, resp.BudgetProgress.Limit)
	assert.Equal(t, 400.0, resp.BudgetProgress.Used)
	assert.Equal(t, 40, resp.BudgetProgress.Percentage)
}

func TestAnalyticsTopParam(t *testing.T) {
	h := NewAnalyticsHandler(loadedCatalog(t, toolFixtures()), state.NewDashboardStore(), nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics?top=2", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	var resp analyticsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	require.Len(t, resp.TopExpensiveTools, 2)
	assert.Equal(t, "Jira", resp.TopExpensiveTools[0].Name)
	assert.Equal(t, "Slack", resp.TopExpensiveTools[1].Name)
}

func TestDepartmentCostsProxy(t *testing.T) {
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/department-costs", r.URL.Path)
		json.NewEncoder(w).Encode(models.DepartmentCostsResponse{
			Data: []models.DepartmentStat{{Department: "Engineering", TotalCost: 320}},
			Summary: models.AnalyticsSummary{
				TotalCompanyCost:        400,
				MostExpensiveDepartment: "Engineering",
			},
		})
	})

	h := NewAnalyticsHandler(nil, nil, gw, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/departments", nil)
	rec := httptest.NewRecorder()
	h.DepartmentCosts(rec, req)

	var resp models.DepartmentCostsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Engineering", resp.Summary.MostExpensiveDepartment)
}

func TestDepartmentCostsDegradesOnFailure(t *testing.T) {
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	h := NewAnalyticsHandler(nil, nil, gw, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/departments", nil)
	rec := httptest.NewRecorder()
	h.DepartmentCosts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.DepartmentCostsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Data)
	assert.Equal(t, "N/A", resp.Summary.MostExpensiveDepartment)
}
