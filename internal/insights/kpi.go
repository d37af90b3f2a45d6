package insights

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/techcorp/toolspend/internal/models"
)

var thousands = message.NewPrinter(language.English)

// trendPositive implements the generic sign rule: a trend reads as good
// unless the string carries a minus.
func trendPositive(trend string) bool {
	return !strings.Contains(trend, "-")
}

// costTrendPositive inverts the generic rule for cost-per-user: spending
// less per user is the improvement, so the minus is the good case.
func costTrendPositive(trend string) bool {
	return strings.Contains(trend, "-")
}

// BuildKpiCards derives the four dashboard cards from the analytics
// snapshot. A nil snapshot yields the fixed fallback set instead of failing.
func BuildKpiCards(analytics *models.Analytics) []models.KpiCard {
	if analytics == nil {
		return fallbackKpiCards()
	}

	budget := analytics.BudgetOverview
	trends := analytics.KpiTrends
	costs := analytics.CostAnalytics

	return []models.KpiCard{
		{
			Label:         "Monthly Budget",
			Value:         thousands.Sprintf("€%d", int64(math.Round(budget.CurrentMonthTotal))),
			SubValue:      "€" + strconv.Itoa(int(math.Round(budget.MonthlyLimit/1000))) + "k",
			Trend:         budget.TrendPercentage,
			TrendPositive: trendPositive(budget.TrendPercentage),
			Icon:          "trending-up",
			IconColor:     "emerald",
			GradientFrom:  "#10b981",
			GradientTo:    "#059669",
		},
		{
			Label:         "Active Tools",
			Value:         "147",
			Trend:         trends.ToolsChange,
			TrendPositive: trendPositive(trends.ToolsChange),
			Icon:          "shield-check",
			IconColor:     "indigo",
			GradientFrom:  "#6366f1",
			GradientTo:    "#8b5cf6",
		},
		{
			Label:         "Departments",
			Value:         "8",
			Trend:         trends.DepartmentsChange,
			TrendPositive: trendPositive(trends.DepartmentsChange),
			Icon:          "office-building",
			IconColor:     "orange",
			GradientFrom:  "#f97316",
			GradientTo:    "#ea580c",
		},
		{
			Label:         "Cost/User",
			Value:         "€" + strconv.FormatFloat(costs.CostPerUser, 'f', -1, 64),
			Trend:         trends.CostPerUserChange,
			TrendPositive: costTrendPositive(trends.CostPerUserChange),
			Icon:          "user",
			IconColor:     "pink",
			GradientFrom:  "#ec4899",
			GradientTo:    "#db2777",
		},
	}
}

// fallbackKpiCards mirrors the placeholder values the dashboard showed
// before its first successful analytics fetch, quirks included.
func fallbackKpiCards() []models.KpiCard {
	return []models.KpiCard{
		{
			Label:         "Monthly Budget",
			Value:         "€28,750",
			SubValue:      "€30k",
			Trend:         "+12%",
			TrendPositive: false,
			Icon:          "trending-up",
			IconColor:     "emerald",
			GradientFrom:  "#10b981",
			GradientTo:    "#059669",
		},
		{
			Label:         "Active Tools",
			Value:         "147",
			Trend:         "+8",
			TrendPositive: true,
			Icon:          "shield-check",
			IconColor:     "indigo",
			GradientFrom:  "#6366f1",
			GradientTo:    "#8b5cf6",
		},
		{
			Label:         "Departments",
			Value:         "8",
			Trend:         "+2",
			TrendPositive: true,
			Icon:          "office-building",
			IconColor:     "orange",
			GradientFrom:  "#f97316",
			GradientTo:    "#ea580c",
		},
		{
			Label:         "Cost/User",
			Value:         "€156",
			Trend:         "-€12",
			TrendPositive: true,
			Icon:          "user",
			IconColor:     "pink",
			GradientFrom:  "#ec4899",
			GradientTo:    "#db2777",
		},
	}
}
