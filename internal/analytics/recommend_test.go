package analytics

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/akozadaev/go_branch_analytics/internal/models"
)

func TestClassifyMetricsRulePriority(t *testing.T) {
	tests := []struct {
		name          string
		utilization   float64
		profitability float64
		want          models.Category
	}{
		{"expand at both thresholds", 92, 25, models.CategoryExpand},
		{"expand high values", 95, 30, models.CategoryExpand},
		{"low profitability overrides high utilization", 95, 3, models.CategoryCloseOrRelocate},
		{"profitability exactly five closes", 80, 5, models.CategoryCloseOrRelocate},
		{"negative profitability closes", 99, -20, models.CategoryCloseOrRelocate},
		{"low utilization and thin margin closes", 39.9, 11.9, models.CategoryCloseOrRelocate},
		{"low utilization but healthy margin markets", 39.9, 12, models.CategoryMarket},
		{"utilization at forty is not low", 40, 6, models.CategoryMarket},
		{"high utilization with modest margin markets", 95, 24.9, models.CategoryMarket},
		{"just below expand utilization markets", 91.9, 40, models.CategoryMarket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyMetrics(tt.utilization, tt.profitability))
		})
	}
}

func TestClassifyPopulation(t *testing.T) {
	assert.Equal(t, models.CategoryOpenNew, ClassifyPopulation(50000))
	assert.Equal(t, models.CategoryOpenNew, ClassifyPopulation(45000))
	assert.Equal(t, models.CategoryDeferNew, ClassifyPopulation(44999))
	assert.Equal(t, models.CategoryDeferNew, ClassifyPopulation(10000))
	assert.Equal(t, models.CategoryDeferNew, ClassifyPopulation(0))
}

func TestEngineClassifyBranchRationale(t *testing.T) {
	engine := NewEngine(language.English)

	rec := engine.ClassifyBranch(BranchMetrics{
		Branch:                 models.Branch{ID: 7, Name: "Alsancak", DistrictID: 3},
		DistrictName:           "Konak",
		CapacityUtilizationPct: 95,
		ProfitabilityPct:       40,
	})

	require.Equal(t, models.CategoryExpand, rec.Category)
	require.Equal(t, "New branch proposal", rec.Title)
	require.Equal(t, 7, rec.BranchID)
	require.Equal(t, 3, rec.DistrictID)
	require.Contains(t, rec.Rationale, "95.0%")
	require.Contains(t, rec.Rationale, "40.0%")
	require.Contains(t, rec.Rationale, "Alsancak")
	require.Contains(t, rec.Rationale, "Konak")

	rec = engine.ClassifyBranch(BranchMetrics{
		Branch:                 models.Branch{ID: 8, Name: "Bornova"},
		DistrictName:           "Bornova",
		CapacityUtilizationPct: 35.26,
		ProfitabilityPct:       4.04,
	})
	require.Equal(t, models.CategoryCloseOrRelocate, rec.Category)
	require.Contains(t, rec.Rationale, "profitability 4.0%")
	require.Contains(t, rec.Rationale, "utilization 35.3%")
}

func TestEngineClassifyDistrict(t *testing.T) {
	engine := NewEngine(language.English)

	open := engine.ClassifyDistrict(models.District{ID: 1, Name: "Urla", Population: 50000})
	require.Equal(t, models.CategoryOpenNew, open.Category)
	require.Equal(t, 50000, open.Population)
	require.Zero(t, open.BranchID)
	require.Contains(t, open.Rationale, "50,000")

	deferred := engine.ClassifyDistrict(models.District{ID: 2, Name: "Karaburun", Population: 10000})
	require.Equal(t, models.CategoryDeferNew, deferred.Category)
	require.Contains(t, deferred.Rationale, "Karaburun")
}

func TestCollectBranchMetricsUsesOwnCapacityAndOrder(t *testing.T) {
	districts := []models.District{{ID: 1, Name: "Konak"}, {ID: 2, Name: "Bornova"}}
	branches := IndexBranches([]models.Branch{
		{ID: 10, Name: "Zeta", DistrictID: 1, Capacity: 100},
		{ID: 11, Name: "Alpha", DistrictID: 1, Capacity: 200},
		{ID: 12, Name: "Mid", DistrictID: 2, Capacity: 50},
		{ID: 13, Name: "Idle", DistrictID: 2, Capacity: 50},
	})
	var records []models.MonthlyRecord
	records = append(records, monthlyRecords(10, 2024, 1, 12, 1000, 600, 95)...)
	records = append(records, monthlyRecords(11, 2024, 1, 12, 1000, 990, 50)...)
	records = append(records, monthlyRecords(12, 2024, 1, 12, 1000, 800, 25)...)

	metrics := NewEngine(language.English).CollectBranchMetrics(records, branches, districts, Scope{}, windowEndingAt(6, 2024, 12))

	require.Len(t, metrics, 3)
	require.Equal(t, "Mid", metrics[0].Branch.Name)
	require.Equal(t, "Bornova", metrics[0].DistrictName)
	require.Equal(t, "Alpha", metrics[1].Branch.Name)
	require.Equal(t, "Zeta", metrics[2].Branch.Name)

	zeta := metrics[2]
	require.Equal(t, 6, zeta.RecordCount)
	require.InDelta(t, 95.0, zeta.CapacityUtilizationPct, 1e-9)
	require.InDelta(t, 40.0, zeta.ProfitabilityPct, 1e-9)
	require.Equal(t, 2400.0, zeta.Profit)
}

func TestCollectBranchMetricsUsesCollationOrder(t *testing.T) {
	districts := []models.District{{ID: 1, Name: "Konak"}, {ID: 2, Name: "Çiğli"}, {ID: 3, Name: "bayraklı"}}
	branches := IndexBranches([]models.Branch{
		{ID: 10, Name: "Alsancak", DistrictID: 1, Capacity: 100},
		{ID: 20, Name: "Ataşehir", DistrictID: 2, Capacity: 100},
		{ID: 30, Name: "Manavkuyu", DistrictID: 3, Capacity: 100},
		{ID: 31, Name: "Özkanlar", DistrictID: 3, Capacity: 100},
		{ID: 32, Name: "adalet", DistrictID: 3, Capacity: 100},
	})
	var records []models.MonthlyRecord
	for _, id := range []int{10, 20, 30, 31, 32} {
		records = append(records, monthlyRecords(id, 2024, 12, 12, 1000, 500, 50)...)
	}

	for _, tag := range []language.Tag{language.English, language.Turkish} {
		metrics := NewEngine(tag).CollectBranchMetrics(records, branches, districts, Scope{}, windowEndingAt(6, 2024, 12))
		names := lo.Map(metrics, func(m BranchMetrics, _ int) string { return m.DistrictName + "/" + m.Branch.Name })
		require.Equal(t, []string{
			"bayraklı/adalet",
			"bayraklı/Manavkuyu",
			"bayraklı/Özkanlar",
			"Çiğli/Ataşehir",
			"Konak/Alsancak",
		}, names, tag.String())
	}
}

func TestDistrictsWithoutBranches(t *testing.T) {
	districts := []models.District{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}
	branches := []models.Branch{{ID: 1, DistrictID: 2}}

	empty := DistrictsWithoutBranches(districts, branches, 0)
	require.Equal(t, []models.District{{ID: 1, Name: "A"}, {ID: 3, Name: "C"}}, empty)

	require.Equal(t, []models.District{{ID: 3, Name: "C"}}, DistrictsWithoutBranches(districts, branches, 3))
	require.Empty(t, DistrictsWithoutBranches(districts, branches, 2))
}

func TestFilterByCategoryIsPostHoc(t *testing.T) {
	full := []models.Recommendation{
		{Category: models.CategoryExpand, BranchID: 1},
		{Category: models.CategoryMarket, BranchID: 2},
		{Category: models.CategoryExpand, BranchID: 3},
		{Category: models.CategoryOpenNew, DistrictID: 9},
	}

	for _, category := range models.Categories {
		filtered := FilterByCategory(full, category)
		var expected []models.Recommendation
		for _, r := range full {
			if r.Category == category {
				expected = append(expected, r)
			}
		}
		require.ElementsMatch(t, expected, filtered, "category %s", category)
	}

	all := FilterByCategory(full, "")
	require.Equal(t, full, all)
	all[0].Category = models.CategoryMarket
	require.Equal(t, models.CategoryExpand, full[0].Category)
}

func TestCountByCategory(t *testing.T) {
	counts := CountByCategory([]models.Recommendation{
		{Category: models.CategoryExpand},
		{Category: models.CategoryExpand},
		{Category: models.CategoryDeferNew},
	})

	require.Equal(t, map[models.Category]int{
		models.CategoryExpand:          2,
		models.CategoryCloseOrRelocate: 0,
		models.CategoryMarket:          0,
		models.CategoryOpenNew:         0,
		models.CategoryDeferNew:        1,
	}, counts)
}
