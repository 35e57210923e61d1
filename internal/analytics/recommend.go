package analytics

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/akozadaev/go_branch_analytics/internal/collation"
	"github.com/akozadaev/go_branch_analytics/internal/models"
)

// Пороговые значения правил классификации.
const (
	ExpandUtilizationPct   = 92.0
	ExpandProfitabilityPct = 25.0
	CloseProfitabilityPct  = 5.0
	LowUtilizationPct      = 40.0
	LowProfitabilityPct    = 12.0
	OpenNewMinPopulation   = 45000
)

// BranchMetrics содержит показатели одного филиала за окно.
// Загрузка считается от собственной вместимости филиала.
type BranchMetrics struct {
	Branch                 models.Branch
	DistrictName           string
	TotalRevenue           float64
	TotalCost              float64
	AvgActiveMembers       float64
	Profit                 float64
	CapacityUtilizationPct float64
	ProfitabilityPct       float64
	RecordCount            int
}

// CollectBranchMetrics рассчитывает показатели для каждого филиала области,
// у которого есть хотя бы одна запись в окне. Результат упорядочен по названию
// района, затем по названию филиала в порядке сопоставления локали движка.
func (e *Engine) CollectBranchMetrics(records []models.MonthlyRecord, branches BranchIndex, districts []models.District, scope Scope, window models.Window) []BranchMetrics {
	districtNames := lo.SliceToMap(districts, func(d models.District) (int, string) { return d.ID, d.Name })

	type accumulator struct {
		revenue, cost float64
		members       int
		count         int
	}
	perBranch := make(map[int]*accumulator)
	for _, rec := range selectRecords(records, branches, scope, window) {
		acc, ok := perBranch[rec.BranchID]
		if !ok {
			acc = &accumulator{}
			perBranch[rec.BranchID] = acc
		}
		acc.revenue += rec.Revenue
		acc.cost += rec.Cost
		acc.members += rec.ActiveMembers
		acc.count++
	}

	metrics := make([]BranchMetrics, 0, len(perBranch))
	for branchID, acc := range perBranch {
		branch := branches[branchID]
		avg := float64(acc.members) / float64(acc.count)
		profit := Profit(acc.revenue, acc.cost)
		metrics = append(metrics, BranchMetrics{
			Branch:                 branch,
			DistrictName:           districtNames[branch.DistrictID],
			TotalRevenue:           acc.revenue,
			TotalCost:              acc.cost,
			AvgActiveMembers:       avg,
			Profit:                 profit,
			CapacityUtilizationPct: CapacityUtilization(avg, branch.Capacity),
			ProfitabilityPct:       Profitability(acc.revenue, profit),
			RecordCount:            acc.count,
		})
	}

	slices.SortFunc(metrics, func(a, b BranchMetrics) int {
		return cmp.Or(
			e.CompareNames(a.DistrictName, b.DistrictName),
			e.CompareNames(a.Branch.Name, b.Branch.Name),
			cmp.Compare(a.Branch.ID, b.Branch.ID),
		)
	})
	return metrics
}

// ClassifyMetrics применяет правила по порядку, первое совпадение побеждает:
// expand, затем close_or_relocate, иначе market.
func ClassifyMetrics(utilizationPct, profitabilityPct float64) models.Category {
	switch {
	case utilizationPct >= ExpandUtilizationPct && profitabilityPct >= ExpandProfitabilityPct:
		return models.CategoryExpand
	case profitabilityPct <= CloseProfitabilityPct ||
		(utilizationPct < LowUtilizationPct && profitabilityPct < LowProfitabilityPct):
		return models.CategoryCloseOrRelocate
	default:
		return models.CategoryMarket
	}
}

// ClassifyPopulation классифицирует район без филиалов по численности населения.
func ClassifyPopulation(population int) models.Category {
	if population >= OpenNewMinPopulation {
		return models.CategoryOpenNew
	}
	return models.CategoryDeferNew
}

// Engine формирует рекомендации с текстовым обоснованием.
type Engine struct {
	printer *message.Printer
	order   *collation.Order
}

// NewEngine создаёт Engine, форматирующий числа и сортирующий названия по правилам локали tag.
func NewEngine(tag language.Tag) *Engine {
	return &Engine{
		printer: message.NewPrinter(tag),
		order:   collation.New(tag),
	}
}

// CompareNames сравнивает названия районов или филиалов.
func (e *Engine) CompareNames(a, b string) int {
	return e.order.Compare(a, b)
}

// ClassifyBranch возвращает рекомендацию для филиала.
func (e *Engine) ClassifyBranch(m BranchMetrics) models.Recommendation {
	rec := models.Recommendation{
		Category:               ClassifyMetrics(m.CapacityUtilizationPct, m.ProfitabilityPct),
		DistrictID:             m.Branch.DistrictID,
		DistrictName:           m.DistrictName,
		BranchID:               m.Branch.ID,
		BranchName:             m.Branch.Name,
		CapacityUtilizationPct: m.CapacityUtilizationPct,
		ProfitabilityPct:       m.ProfitabilityPct,
	}

	switch rec.Category {
	case models.CategoryExpand:
		rec.Title = "New branch proposal"
		rec.Rationale = e.printer.Sprintf(
			"%s in %s is operating at its limit with %.1f%% utilization and %.1f%% profitability. "+
				"Opening another branch in the same district would balance demand and spread risk.",
			m.Branch.Name, m.DistrictName, m.CapacityUtilizationPct, m.ProfitabilityPct)
	case models.CategoryCloseOrRelocate:
		rec.Title = "Close / relocate proposal"
		rec.Rationale = e.printer.Sprintf(
			"%s (%s): profitability %.1f%%, utilization %.1f%%. "+
				"With few members and low profit, closing the branch or moving it to a smaller format in another area should be evaluated.",
			m.Branch.Name, m.DistrictName, m.ProfitabilityPct, m.CapacityUtilizationPct)
	default:
		rec.Title = "Improvement proposal"
		rec.Rationale = e.printer.Sprintf(
			"%s (%s): profitability %.1f%% and utilization %.1f%%. "+
				"A marketing campaign or class and membership packages can lift demand while keeping profitability.",
			m.Branch.Name, m.DistrictName, m.ProfitabilityPct, m.CapacityUtilizationPct)
	}
	return rec
}

// ClassifyDistrict возвращает рекомендацию для района без филиалов.
// Правило не зависит от окна и показателей филиалов.
func (e *Engine) ClassifyDistrict(d models.District) models.Recommendation {
	rec := models.Recommendation{
		Category:     ClassifyPopulation(d.Population),
		DistrictID:   d.ID,
		DistrictName: d.Name,
		Population:   d.Population,
	}

	if rec.Category == models.CategoryOpenNew {
		rec.Title = "New branch proposal (population)"
		rec.Rationale = e.printer.Sprintf(
			"%s has no branch. With a population of %d, opening at least one branch should be evaluated to meet demand and establish presence.",
			d.Name, d.Population)
		return rec
	}

	rec.Title = "Defer new branch (population)"
	rec.Rationale = e.printer.Sprintf(
		"%s has a population of %d and no branch. Opening should be deferred until field research, marketing tests and a cost analysis show demand.",
		d.Name, d.Population)
	return rec
}

// DistrictsWithoutBranches возвращает районы без филиалов в исходном порядке.
// districtID = 0 означает все районы.
func DistrictsWithoutBranches(districts []models.District, branches []models.Branch, districtID int) []models.District {
	occupied := lo.SliceToMap(branches, func(b models.Branch) (int, struct{}) { return b.DistrictID, struct{}{} })
	return lo.Filter(districts, func(d models.District, _ int) bool {
		if districtID != 0 && d.ID != districtID {
			return false
		}
		_, ok := occupied[d.ID]
		return !ok
	})
}

// FilterByCategory возвращает подмножество рекомендаций указанной категории.
// Пустая категория возвращает копию полного списка. Классификация не меняется.
func FilterByCategory(recs []models.Recommendation, category models.Category) []models.Recommendation {
	if category == "" {
		return slices.Clone(recs)
	}
	return lo.Filter(recs, func(r models.Recommendation, _ int) bool { return r.Category == category })
}

// CountByCategory считает рекомендации по категориям.
func CountByCategory(recs []models.Recommendation) map[models.Category]int {
	counts := lo.SliceToMap(models.Categories, func(c models.Category) (models.Category, int) { return c, 0 })
	for category, n := range lo.CountValuesBy(recs, func(r models.Recommendation) models.Category { return r.Category }) {
		counts[category] = n
	}
	return counts
}
