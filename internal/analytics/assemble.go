package analytics

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/akozadaev/go_branch_analytics/internal/models"
)

const (
	allDistrictsName   = "All districts"
	selectedBranchName = "Selected branch"
)

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func districtNameMap(districts []models.District) map[int]string {
	return lo.SliceToMap(districts, func(d models.District) (int, string) { return d.ID, d.Name })
}

func branchesOf(branches []models.Branch, districtID int) []models.Branch {
	if districtID == 0 {
		return []models.Branch{}
	}
	return lo.Filter(branches, func(b models.Branch, _ int) bool { return b.DistrictID == districtID })
}

func assembleDashboard(
	req models.DashboardRequest,
	window models.Window,
	snap *snapshot,
	aggregate *models.AggregateResult,
	series []models.MonthlySeriesEntry,
	breakdown models.BreakdownTotals,
) *models.DashboardResult {
	districtNames := districtNameMap(snap.districts)
	branchNames := lo.SliceToMap(snap.branches, func(b models.Branch) (int, string) { return b.ID, b.Name })

	result := &models.DashboardResult{
		DistrictID:       req.DistrictID,
		BranchID:         req.BranchID,
		DistrictName:     allDistrictsName,
		Window:           window,
		Aggregate:        aggregate,
		Series:           orEmpty(series),
		Breakdown:        breakdown,
		Districts:        orEmpty(snap.districts),
		Branches:         orEmpty(snap.branches),
		DistrictBranches: branchesOf(snap.branches, req.DistrictID),
		DistrictNames:    districtNames,
		BranchNames:      branchNames,
	}
	if name, ok := districtNames[req.DistrictID]; ok {
		result.DistrictName = name
	}
	if req.BranchID != 0 {
		result.BranchName = selectedBranchName
		if name, ok := branchNames[req.BranchID]; ok {
			result.BranchName = name
		}
	}
	return result
}

func assembleRecommendations(
	req models.RecommendationRequest,
	window models.Window,
	snap *snapshot,
	full []models.Recommendation,
) *models.RecommendationsResult {
	return &models.RecommendationsResult{
		Window:           window,
		Category:         req.Category,
		Recommendations:  orEmpty(FilterByCategory(full, req.Category)),
		Total:            len(full),
		CountsByCategory: CountByCategory(full),
		Districts:        orEmpty(snap.districts),
		Branches:         orEmpty(snap.branches),
		DistrictBranches: branchesOf(snap.branches, req.DistrictID),
	}
}

// assembleBranchMap строит строки карты: одна строка на филиал и месяц.
// Записи неизвестных филиалов пропускаются.
func assembleBranchMap(
	req models.BranchMapRequest,
	districts []models.District,
	branches []models.Branch,
	records []models.MonthlyRecord,
	compareNames func(a, b string) int,
) *models.BranchMapResult {
	districtsByID := lo.KeyBy(districts, func(d models.District) int { return d.ID })
	index := IndexBranches(branches)
	scope := Scope{DistrictID: req.DistrictID, BranchID: req.BranchID}

	entries := make([]models.BranchMapEntry, 0, len(records))
	for _, rec := range records {
		if req.Month >= 1 && req.Month <= 12 && rec.Month != req.Month {
			continue
		}
		branch, ok := index[rec.BranchID]
		if !ok || !scope.matches(branch) {
			continue
		}
		district := districtsByID[branch.DistrictID]
		entries = append(entries, models.BranchMapEntry{
			DistrictID:    district.ID,
			DistrictName:  district.Name,
			DistrictSlug:  DistrictSlug(district.Name),
			BranchID:      branch.ID,
			BranchName:    branch.Name,
			Year:          rec.Year,
			Month:         rec.Month,
			Revenue:       rec.Revenue,
			Cost:          rec.Cost,
			ActiveMembers: rec.ActiveMembers,
			Population:    district.Population,
		})
	}

	slices.SortFunc(entries, func(a, b models.BranchMapEntry) int {
		return cmp.Or(
			cmp.Compare(a.Year, b.Year),
			cmp.Compare(a.Month, b.Month),
			compareNames(a.DistrictName, b.DistrictName),
			compareNames(a.BranchName, b.BranchName),
		)
	})

	return &models.BranchMapResult{
		Entries:       entries,
		DistrictNames: districtNameMap(districts),
		DistrictSlugs: lo.SliceToMap(districts, func(d models.District) (string, int) { return DistrictSlug(d.Name), d.ID }),
		Branches:      orEmpty(branches),
	}
}
