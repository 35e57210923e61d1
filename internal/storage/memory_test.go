package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/akozadaev/go_branch_analytics/internal/models"
)

func loadFixture(t *testing.T) *MemoryStorage {
	t.Helper()
	ms, err := LoadMemoryStorage(filepath.Join("testdata", "dataset.json"))
	require.NoError(t, err)
	return ms
}

func TestLoadMemoryStorage(t *testing.T) {
	ms := loadFixture(t)
	ctx := context.Background()

	districts, err := ms.FetchDistricts(ctx)
	require.NoError(t, err)
	require.Len(t, districts, 5)
	require.Equal(t, "Bornova", districts[0].Name)

	branches, err := ms.FetchBranches(ctx, 1)
	require.NoError(t, err)
	require.Len(t, branches, 2)
	require.Equal(t, "Alsancak", branches[0].Name)

	all, err := ms.FetchBranches(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
}

func TestLoadMemoryStorageMissingFile(t *testing.T) {
	_, err := LoadMemoryStorage(filepath.Join("testdata", "missing.json"))
	require.Error(t, err)
}

func TestMemoryStorageSortsNamesByCollation(t *testing.T) {
	ms := NewMemoryStorage(WithCollation(language.Turkish))
	ms.AddDistrict(models.District{ID: 1, Name: "Konak"})
	ms.AddDistrict(models.District{ID: 2, Name: "Çiğli"})
	ms.AddDistrict(models.District{ID: 3, Name: "bayraklı"})
	ms.AddBranch(models.Branch{ID: 10, Name: "Özkanlar", DistrictID: 3})
	ms.AddBranch(models.Branch{ID: 11, Name: "adalet", DistrictID: 3})
	ms.AddBranch(models.Branch{ID: 12, Name: "Manavkuyu", DistrictID: 3})
	ctx := context.Background()

	districts, err := ms.FetchDistricts(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"bayraklı", "Çiğli", "Konak"}, lo.Map(districts, func(d models.District, _ int) string { return d.Name }))

	branches, err := ms.FetchBranches(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"adalet", "Manavkuyu", "Özkanlar"}, lo.Map(branches, func(b models.Branch, _ int) string { return b.Name }))
}

func TestMemoryStorageRejectsDuplicateKey(t *testing.T) {
	ms := NewMemoryStorage()
	ms.AddBranch(models.Branch{ID: 1, DistrictID: 1, Capacity: 10})

	require.NoError(t, ms.AddRecord(models.MonthlyRecord{BranchID: 1, Year: 2024, Month: 1}))
	err := ms.AddRecord(models.MonthlyRecord{BranchID: 1, Year: 2024, Month: 1, Revenue: 5})
	require.ErrorIs(t, err, ErrDuplicateRecord)

	require.ErrorIs(t, ms.AddRecord(models.MonthlyRecord{BranchID: 2, Year: 2024, Month: 1}), ErrUnknownBranch)
	require.Error(t, ms.AddRecord(models.MonthlyRecord{BranchID: 1, Year: 2024, Month: 13}))
}

func TestMemoryStorageFetchMonthlyRecordsFilters(t *testing.T) {
	ms := loadFixture(t)
	ctx := context.Background()

	window := models.Window{Length: 6, Start: models.NewMonthIndex(2024, 7), End: models.NewMonthIndex(2024, 12)}
	records, err := ms.FetchMonthlyRecords(ctx, models.RecordQuery{DistrictID: 1, Window: &window})
	require.NoError(t, err)
	require.Len(t, records, 12)
	for i, rec := range records {
		require.True(t, window.Contains(rec.Index()))
		if i > 0 {
			require.LessOrEqual(t, records[i-1].Index(), rec.Index())
		}
	}

	records, err = ms.FetchMonthlyRecords(ctx, models.RecordQuery{BranchID: 11})
	require.NoError(t, err)
	require.Len(t, records, 12)
	require.Zero(t, records[0].Costs.Staff)
	require.Zero(t, records[0].Revenues.Membership)
}

func TestMemoryStorageMaxMonthIndex(t *testing.T) {
	ms := loadFixture(t)
	ctx := context.Background()

	idx, ok, err := ms.MaxMonthIndex(ctx, 0, 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, models.NewMonthIndex(2024, 12), idx)

	_, ok, err = ms.MaxMonthIndex(ctx, 3, 0)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStorageHonoursCanceledContext(t *testing.T) {
	ms := loadFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ms.FetchDistricts(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
