package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/akozadaev/go_branch_analytics/internal/analytics"
	"github.com/akozadaev/go_branch_analytics/internal/models"
	"github.com/akozadaev/go_branch_analytics/internal/storage"
)

type stubSearcher struct {
	docs   []models.RecommendationDocument
	err    error
	search models.RecommendationSearch
}

func (s *stubSearcher) SearchRecommendations(_ context.Context, search models.RecommendationSearch) ([]models.RecommendationDocument, error) {
	s.search = search
	return s.docs, s.err
}

// brokenSource имитирует недоступную базу данных.
type brokenSource struct{}

var errDown = errors.New("database is down")

func (brokenSource) FetchDistricts(context.Context) ([]models.District, error) { return nil, errDown }
func (brokenSource) FetchBranches(context.Context, int) ([]models.Branch, error) {
	return nil, errDown
}
func (brokenSource) FetchMonthlyRecords(context.Context, models.RecordQuery) ([]models.MonthlyRecord, error) {
	return nil, errDown
}
func (brokenSource) MaxMonthIndex(context.Context, int, int) (models.MonthIndex, bool, error) {
	return 0, false, errDown
}

func newRouter(t *testing.T, source analytics.DataSource, searcher RecommendationSearcher) *mux.Router {
	t.Helper()
	svc := analytics.NewService(source, analytics.WithClock(func() time.Time {
		return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	}))
	router := mux.NewRouter()
	NewHandlers(svc, searcher, 5*time.Second).RegisterRoutes(router)
	return router
}

func fixtureSource(t *testing.T) analytics.DataSource {
	t.Helper()
	ms, err := storage.LoadMemoryStorage(filepath.Join("..", "storage", "testdata", "dataset.json"))
	require.NoError(t, err)
	return ms
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	rec := get(t, newRouter(t, fixtureSource(t), nil), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetDistrictsAndBranches(t *testing.T) {
	router := newRouter(t, fixtureSource(t), nil)

	rec := get(t, router, "/districts")
	require.Equal(t, http.StatusOK, rec.Code)
	var districts []models.District
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &districts))
	require.Len(t, districts, 5)

	rec = get(t, router, "/branches?district_id=1")
	require.Equal(t, http.StatusOK, rec.Code)
	var branches []models.Branch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &branches))
	require.Len(t, branches, 2)

	rec = get(t, router, "/branches?district_id=abc")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &branches))
	require.Len(t, branches, 4)
}

func TestGetDashboard(t *testing.T) {
	rec := get(t, newRouter(t, fixtureSource(t), nil), "/dashboard?district_id=1&branch_id=10&window=6")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result models.DashboardResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.Aggregate)
	require.InDelta(t, 95.0, result.Aggregate.CapacityUtilizationPct, 1e-9)
	require.Equal(t, 6, result.Window.Length)
	require.Len(t, result.Series, 6)
}

func TestGetDashboardCoercesWindow(t *testing.T) {
	rec := get(t, newRouter(t, fixtureSource(t), nil), "/dashboard?district_id=1&window=9")
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.DashboardResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, 12, result.Window.Length)
}

func TestGetRecommendations(t *testing.T) {
	router := newRouter(t, fixtureSource(t), nil)

	rec := get(t, router, "/recommendations?category=open_new")
	require.Equal(t, http.StatusOK, rec.Code)
	var result models.RecommendationsResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Recommendations, 1)
	require.Equal(t, "Urla", result.Recommendations[0].DistrictName)
	require.Equal(t, 6, result.Total)

	rec = get(t, router, "/recommendations?category=all")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Recommendations, 6)

	rec = get(t, router, "/recommendations?category=grow")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDistrictSummaryAndMap(t *testing.T) {
	router := newRouter(t, fixtureSource(t), nil)

	rec := get(t, router, "/districts/summary?window=6")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary models.DistrictSummaryResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Len(t, summary.Districts, 3)

	rec = get(t, router, "/map?district_id=1&month=12")
	require.Equal(t, http.StatusOK, rec.Code)
	var branchMap models.BranchMapResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &branchMap))
	require.Len(t, branchMap.Entries, 2)
	require.Equal(t, "KONAK", branchMap.Entries[0].DistrictSlug)
}

func TestUpstreamFailureMapsToBadGateway(t *testing.T) {
	router := newRouter(t, brokenSource{}, nil)

	for _, target := range []string{
		"/districts",
		"/branches",
		"/dashboard?district_id=1",
		"/recommendations",
		"/districts/summary",
		"/map",
	} {
		rec := get(t, router, target)
		require.Equal(t, http.StatusBadGateway, rec.Code, target)
	}
}

func TestSearchIndexedRecommendations(t *testing.T) {
	searcher := &stubSearcher{docs: []models.RecommendationDocument{
		{ID: "s-000000", SnapshotID: "s", Recommendation: models.Recommendation{Category: models.CategoryExpand, DistrictID: 1}},
	}}
	router := newRouter(t, fixtureSource(t), searcher)

	rec := get(t, router, "/recommendations/indexed?category=expand&district_id=1&limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	var response models.IndexedRecommendationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, 1, response.Total)
	require.Equal(t, models.RecommendationSearch{Category: models.CategoryExpand, DistrictID: 1, Limit: 5}, searcher.search)

	searcher.err = errors.New("index missing")
	rec = get(t, router, "/recommendations/indexed")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	rec = get(t, router, "/recommendations/indexed?category=unknown")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchIndexedRecommendationsDisabled(t *testing.T) {
	rec := get(t, newRouter(t, fixtureSource(t), nil), "/recommendations/indexed")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
