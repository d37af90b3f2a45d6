// Package insights derives dashboard-ready figures from the raw tool
// catalog and the upstream analytics snapshot. Every function here is pure
// and synchronous: identical inputs produce identical outputs, no I/O.
package insights

import (
	"math"
	"sort"

	"github.com/techcorp/toolspend/internal/models"
)

// Chart palettes. Colors are assigned cyclically in group-iteration order,
// before the series is sorted by value.
var (
	departmentPalette = []string{"#6366f1", "#10b981", "#f97316", "#ec4899", "#8b5cf6", "#14b8a6"}
	categoryPalette   = []string{"#6366f1", "#10b981", "#f97316", "#ec4899", "#8b5cf6"}
)

const topToolColor = "#6366f1"

// DefaultTrendMonths are the labels used by the simulated spend line chart.
var DefaultTrendMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}

// TotalMonthlyCost sums monthly_cost over the collection. Zero for an
// empty collection.
func TotalMonthlyCost(tools []models.Tool) float64 {
	var total float64
	for _, t := range tools {
		total += t.MonthlyCost
	}
	return total
}

// AverageCostPerTool returns the rounded per-tool average, or 0 when the
// collection is empty.
func AverageCostPerTool(tools []models.Tool) int {
	if len(tools) == 0 {
		return 0
	}
	return int(math.Round(TotalMonthlyCost(tools) / float64(len(tools))))
}

// ActiveToolsCount counts tools with status "active".
func ActiveToolsCount(tools []models.Tool) int {
	count := 0
	for _, t := range tools {
		if t.Status == models.StatusActive {
			count++
		}
	}
	return count
}

// ComputeBudgetProgress derives the budget gauge from the analytics
// snapshot. A missing snapshot or a zero limit yields the zero-valued
// fallback rather than an error.
func ComputeBudgetProgress(analytics *models.Analytics) models.BudgetProgress {
	if analytics == nil {
		return models.BudgetProgress{}
	}

	used := analytics.BudgetOverview.CurrentMonthTotal
	limit := analytics.BudgetOverview.MonthlyLimit
	if limit == 0 {
		return models.BudgetProgress{Used: used}
	}

	return BudgetProgressFor(used, limit)
}

// BudgetProgressFor builds the budget gauge from explicit used and limit
// figures, e.g. the configured monthly limit before any snapshot exists.
func BudgetProgressFor(used, limit float64) models.BudgetProgress {
	if limit == 0 {
		return models.BudgetProgress{Used: used}
	}
	return models.BudgetProgress{
		Percentage: int(math.Round(used / limit * 100)),
		Used:       used,
		Limit:      limit,
	}
}

// DepartmentBreakdown groups tools by owner department, sums monthly cost
// per group and returns the series sorted by value descending. Groups keep
// their first-seen order for color assignment.
func DepartmentBreakdown(tools []models.Tool) []models.ChartPoint {
	totals := make(map[string]float64)
	var order []string

	for _, t := range tools {
		if _, ok := totals[t.OwnerDepartment]; !ok {
			order = append(order, t.OwnerDepartment)
		}
		totals[t.OwnerDepartment] += t.MonthlyCost
	}

	points := make([]models.ChartPoint, 0, len(order))
	for i, name := range order {
		points = append(points, models.ChartPoint{
			Name:  name,
			Value: math.Round(totals[name]),
			Color: departmentPalette[i%len(departmentPalette)],
		})
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Value > points[j].Value })
	return points
}

// CategoryDistribution groups tools by category and counts occurrences,
// with the same color-cycling and descending-sort rule as the department
// breakdown.
func CategoryDistribution(tools []models.Tool) []models.ChartPoint {
	counts := make(map[string]int)
	var order []string

	for _, t := range tools {
		if _, ok := counts[t.Category]; !ok {
			order = append(order, t.Category)
		}
		counts[t.Category]++
	}

	points := make([]models.ChartPoint, 0, len(order))
	for i, name := range order {
		points = append(points, models.ChartPoint{
			Name:  name,
			Value: float64(counts[name]),
			Color: categoryPalette[i%len(categoryPalette)],
		})
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Value > points[j].Value })
	return points
}

// TopExpensiveTools returns the n most expensive tools as a bar series.
// n defaults to 5 when not positive.
func TopExpensiveTools(tools []models.Tool, n int) []models.ChartPoint {
	if n <= 0 {
		n = 5
	}

	sorted := make([]models.Tool, len(tools))
	copy(sorted, tools)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MonthlyCost > sorted[j].MonthlyCost })

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	points := make([]models.ChartPoint, 0, len(sorted))
	for _, t := range sorted {
		points = append(points, models.ChartPoint{
			Name:  t.Name,
			Value: t.MonthlyCost,
			Color: topToolColor,
		})
	}
	return points
}

// SimulatedMonthlyTrend extrapolates a backward spend series from the
// current total: point i costs total x (0.7 + 0.05 x i). This is a
// deterministic placeholder for missing history, not real data; the local
// spend snapshots in storage are the path to replacing it.
func SimulatedMonthlyTrend(tools []models.Tool, months []string) []models.TrendPoint {
	if len(months) == 0 {
		months = DefaultTrendMonths
	}

	total := TotalMonthlyCost(tools)
	points := make([]models.TrendPoint, 0, len(months))
	for i, month := range months {
		points = append(points, models.TrendPoint{
			Month: month,
			Cost:  math.Round(total * (0.7 + 0.05*float64(i))),
		})
	}
	return points
}

// MaxTrendCost returns the maximum cost in the series, or 1 for an empty
// series so that percent-of-max math never divides by zero.
func MaxTrendCost(points []models.TrendPoint) float64 {
	if len(points) == 0 {
		return 1
	}
	max := points[0].Cost
	for _, p := range points[1:] {
		if p.Cost > max {
			max = p.Cost
		}
	}
	return max
}

// MaxChartValue is MaxTrendCost for grouped chart series.
func MaxChartValue(points []models.ChartPoint) float64 {
	if len(points) == 0 {
		return 1
	}
	max := points[0].Value
	for _, p := range points[1:] {
		if p.Value > max {
			max = p.Value
		}
	}
	return max
}

// PercentOfMax scales a value against the series maximum for bar widths.
func PercentOfMax(value, max float64) int {
	if max == 0 {
		return 0
	}
	return int(math.Round(value / max * 100))
}
