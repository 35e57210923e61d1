package analytics

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/akozadaev/go_branch_analytics/internal/models"
)

// Scope определяет область агрегации: район и, опционально, один филиал.
// Нулевое значение поля означает отсутствие фильтра по нему.
type Scope struct {
	DistrictID int
	BranchID   int
}

func (s Scope) matches(branch models.Branch) bool {
	if s.DistrictID != 0 && branch.DistrictID != s.DistrictID {
		return false
	}
	if s.BranchID != 0 && branch.ID != s.BranchID {
		return false
	}
	return true
}

// BranchIndex сопоставляет идентификатор филиала с филиалом.
type BranchIndex map[int]models.Branch

// IndexBranches строит BranchIndex по списку филиалов.
func IndexBranches(branches []models.Branch) BranchIndex {
	return lo.KeyBy(branches, func(b models.Branch) int { return b.ID })
}

// selectRecords оставляет записи, попадающие в окно и область.
// Записи неизвестных филиалов отбрасываются: их район не определён.
func selectRecords(records []models.MonthlyRecord, branches BranchIndex, scope Scope, window models.Window) []models.MonthlyRecord {
	return lo.Filter(records, func(rec models.MonthlyRecord, _ int) bool {
		if !window.Contains(rec.Index()) {
			return false
		}
		branch, ok := branches[rec.BranchID]
		return ok && scope.matches(branch)
	})
}

// Aggregate суммирует записи области за окно.
// Активные участники усредняются по записям, вместимость каждого филиала
// учитывается один раз. Пустая выборка даёт нулевой результат с RecordCount = 0.
func Aggregate(records []models.MonthlyRecord, branches BranchIndex, scope Scope, window models.Window) models.AggregateResult {
	var (
		result  models.AggregateResult
		members int
		seen    = make(map[int]struct{})
	)

	for _, rec := range selectRecords(records, branches, scope, window) {
		result.TotalRevenue += rec.Revenue
		result.TotalCost += rec.Cost
		result.TotalClassParticipants += rec.ClassParticipants
		members += rec.ActiveMembers
		result.RecordCount++

		// Вместимость филиала учитывается один раз, а не за каждую запись:
		// средняя численность делится на суммарную вместимость филиалов области.
		if _, ok := seen[rec.BranchID]; !ok {
			seen[rec.BranchID] = struct{}{}
			result.TotalCapacity += branches[rec.BranchID].Capacity
		}
	}

	result.BranchCount = len(seen)
	if result.RecordCount > 0 {
		result.AvgActiveMembers = float64(members) / float64(result.RecordCount)
	}
	applyDerived(&result)
	return result
}

type monthKey struct {
	year  int
	month int
}

func compareMonthKeys(a, b monthKey) int {
	if c := cmp.Compare(a.year, b.year); c != 0 {
		return c
	}
	return cmp.Compare(a.month, b.month)
}

// Series группирует записи области по (год, месяц) и суммирует их по всем филиалам.
// Результат упорядочен по возрастанию и содержит не более window.Length последних месяцев.
func Series(records []models.MonthlyRecord, branches BranchIndex, scope Scope, window models.Window) []models.MonthlySeriesEntry {
	buckets := make(map[monthKey]*models.MonthlySeriesEntry)
	for _, rec := range selectRecords(records, branches, scope, window) {
		key := monthKey{year: rec.Year, month: rec.Month}
		entry, ok := buckets[key]
		if !ok {
			entry = &models.MonthlySeriesEntry{Year: rec.Year, Month: rec.Month}
			buckets[key] = entry
		}
		entry.Revenue += rec.Revenue
		entry.Cost += rec.Cost
		entry.ActiveMembers += rec.ActiveMembers
		entry.ClassParticipants += rec.ClassParticipants
	}

	keys := lo.Keys(buckets)
	slices.SortFunc(keys, compareMonthKeys)
	if len(keys) > window.Length {
		keys = keys[len(keys)-window.Length:]
	}

	series := make([]models.MonthlySeriesEntry, 0, len(keys))
	for _, key := range keys {
		series = append(series, *buckets[key])
	}
	return series
}

// SumBreakdown суммирует детализацию выручки и затрат области за окно.
func SumBreakdown(records []models.MonthlyRecord, branches BranchIndex, scope Scope, window models.Window) models.BreakdownTotals {
	var totals models.BreakdownTotals
	for _, rec := range selectRecords(records, branches, scope, window) {
		totals.MembershipRevenue += rec.Revenues.Membership
		totals.ClassRevenue += rec.Revenues.Class
		totals.OtherRevenue += rec.Revenues.Other
		totals.StaffCost += rec.Costs.Staff
		totals.RentCost += rec.Costs.Rent
		totals.ElectricityCost += rec.Costs.Electricity
		totals.WaterCost += rec.Costs.Water
		totals.MaintenanceCost += rec.Costs.Maintenance
		totals.OtherCost += rec.Costs.Other
	}
	return totals
}
