package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/require"

	"github.com/akozadaev/go_branch_analytics/internal/models"
)

// fakeCluster эмулирует минимальный набор API Elasticsearch.
type fakeCluster struct {
	mu       sync.Mutex
	indexed  []models.RecommendationDocument
	created  bool
	searches []map[string]any
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodHead && r.URL.Path == "/recs":
		if f.created {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodPut && r.URL.Path == "/recs":
		f.created = true
		io.WriteString(w, `{"acknowledged":true}`)
	case r.Method == http.MethodPost && r.URL.Path == "/_bulk":
		scanner := bufio.NewScanner(r.Body)
		line := 0
		for scanner.Scan() {
			if line%2 == 1 {
				var doc models.RecommendationDocument
				if err := json.Unmarshal(scanner.Bytes(), &doc); err != nil {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				f.indexed = append(f.indexed, doc)
			}
			line++
		}
		io.WriteString(w, `{"errors":false,"items":[]}`)
	case r.Method == http.MethodPost && r.URL.Path == "/recs/_search":
		var query map[string]any
		json.NewDecoder(r.Body).Decode(&query)
		f.searches = append(f.searches, query)

		hits := make([]map[string]any, 0, len(f.indexed))
		for _, doc := range f.indexed {
			hits = append(hits, map[string]any{"_source": doc})
		}
		json.NewEncoder(w).Encode(map[string]any{"hits": map[string]any{"hits": hits}})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestElasticsearch(t *testing.T, handler http.Handler) *ElasticsearchStorage {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewElasticsearchStorage(client, "recs", srv.URL+"/")
}

func TestCreateIndexIsIdempotent(t *testing.T) {
	cluster := &fakeCluster{}
	es := newTestElasticsearch(t, cluster)

	require.NoError(t, es.CreateIndex(context.Background(), `{"mappings":{}}`))
	require.True(t, cluster.created)
	require.NoError(t, es.CreateIndex(context.Background(), `{"mappings":{}}`))
}

func TestBulkIndexAndSearchRecommendations(t *testing.T) {
	cluster := &fakeCluster{}
	es := newTestElasticsearch(t, cluster)

	window := models.Window{Length: 6, Start: models.NewMonthIndex(2024, 7), End: models.NewMonthIndex(2024, 12)}
	generatedAt := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
	docs := NewSnapshotDocuments("snap-1", generatedAt, window, []models.Recommendation{
		{Category: models.CategoryExpand, DistrictID: 1, DistrictName: "Konak", BranchID: 10, BranchName: "Alsancak"},
		{Category: models.CategoryOpenNew, DistrictID: 3, DistrictName: "Urla", Population: 50000},
	})
	require.Equal(t, "snap-1-000000", docs[0].ID)
	require.Equal(t, 1, docs[1].Position)
	require.Equal(t, "2024-07", docs[0].WindowStart)
	require.Equal(t, "2024-12", docs[1].WindowEnd)

	require.NoError(t, es.BulkIndexRecommendations(context.Background(), docs))
	require.Len(t, cluster.indexed, 2)
	require.Equal(t, "Alsancak", cluster.indexed[0].BranchName)
	require.Equal(t, 1, cluster.indexed[1].Position)

	found, err := es.SearchRecommendations(context.Background(), models.RecommendationSearch{Category: models.CategoryExpand, DistrictID: 1})
	require.NoError(t, err)
	require.Len(t, found, 2)
	require.Equal(t, "snap-1", found[0].SnapshotID)

	require.Len(t, cluster.searches, 2)
	filters := cluster.searches[1]["query"].(map[string]any)["bool"].(map[string]any)["filter"].([]any)
	require.Len(t, filters, 3)
}

func TestBulkIndexRecommendationsEmptyIsNoop(t *testing.T) {
	es := newTestElasticsearch(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
	}))
	require.NoError(t, es.BulkIndexRecommendations(context.Background(), nil))
}

func TestSearchRecommendationsWithoutSnapshot(t *testing.T) {
	es := newTestElasticsearch(t, &fakeCluster{})

	found, err := es.SearchRecommendations(context.Background(), models.RecommendationSearch{})
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestSearchRecommendationsSurfacesClusterErrors(t *testing.T) {
	es := newTestElasticsearch(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{"error":"cluster unavailable"}`)
	}))

	_, err := es.SearchRecommendations(context.Background(), models.RecommendationSearch{})
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "status 503"))
}

func TestBuildSearchQueryFilters(t *testing.T) {
	query := buildSearchQuery("snap", models.RecommendationSearch{})
	filters := query["query"].(map[string]any)["bool"].(map[string]any)["filter"].([]map[string]any)
	require.Len(t, filters, 1)

	query = buildSearchQuery("snap", models.RecommendationSearch{Category: models.CategoryMarket})
	filters = query["query"].(map[string]any)["bool"].(map[string]any)["filter"].([]map[string]any)
	require.Len(t, filters, 2)
	require.Equal(t, map[string]any{"category": "market"}, filters[1]["term"])
	require.Equal(t, []map[string]any{{"position": map[string]any{"order": "asc"}}}, query["sort"])
}

func TestSnapshotDocumentsKeepGenerationOrderPastTenThousand(t *testing.T) {
	recs := make([]models.Recommendation, 10_001)
	docs := NewSnapshotDocuments("snap", time.Now(), models.Window{Length: 12}, recs)

	require.Len(t, docs, 10_001)
	require.Equal(t, 9_999, docs[9_999].Position)
	require.Equal(t, 10_000, docs[10_000].Position)
	require.Equal(t, "snap-010000", docs[10_000].ID)
	require.Less(t, docs[9_999].ID, docs[10_000].ID)
}
