package analytics

import "github.com/akozadaev/go_branch_analytics/internal/models"

// Profit возвращает разницу выручки и затрат.
func Profit(revenue, cost float64) float64 {
	return revenue - cost
}

// CapacityUtilization возвращает загрузку в процентах.
// При нулевой вместимости загрузка равна 0.
func CapacityUtilization(avgActiveMembers float64, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	return avgActiveMembers / float64(capacity) * 100
}

// Profitability возвращает рентабельность в процентах.
// Деление выполняется только при положительной выручке.
func Profitability(revenue, profit float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return profit / revenue * 100
}

// applyDerived заполняет производные поля итогов.
func applyDerived(result *models.AggregateResult) {
	result.TotalProfit = Profit(result.TotalRevenue, result.TotalCost)
	result.CapacityUtilizationPct = CapacityUtilization(result.AvgActiveMembers, result.TotalCapacity)
	result.ProfitabilityPct = Profitability(result.TotalRevenue, result.TotalProfit)
}
