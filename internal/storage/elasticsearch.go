// Package storage содержит источники данных аналитики (PostgreSQL, память)
// и индекс снимков рекомендаций в Elasticsearch/OpenSearch.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/akozadaev/go_branch_analytics/internal/models"
)

// DefaultSearchLimit используется, если лимит поиска не задан.
const DefaultSearchLimit = 50

// ElasticsearchStorage хранит снимки рекомендаций в Elasticsearch/OpenSearch.
// Использует прямые HTTP запросы для совместимости с OpenSearch.
type ElasticsearchStorage struct {
	client     *elasticsearch.Client // Официальный клиент Elasticsearch
	index      string                // Имя индекса рекомендаций
	httpClient *http.Client          // HTTP клиент для прямых запросов
	baseURL    string                // Базовый URL Elasticsearch/OpenSearch
}

// NewElasticsearchStorage создает новый экземпляр ElasticsearchStorage.
func NewElasticsearchStorage(client *elasticsearch.Client, index string, baseURL string) *ElasticsearchStorage {
	return &ElasticsearchStorage{
		client:     client,
		index:      index,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// CreateIndex создает индекс с заданным маппингом.
// Если индекс уже существует, функция возвращает nil без ошибки.
func (es *ElasticsearchStorage) CreateIndex(ctx context.Context, mappingJSON string) error {
	res, err := es.client.Indices.Exists([]string{es.index}, es.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = es.client.Indices.Create(
		es.index,
		es.client.Indices.Create.WithBody(strings.NewReader(mappingJSON)),
		es.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error creating index: %s", string(body))
	}

	return nil
}

// NewSnapshotDocuments превращает полный список рекомендаций в документы одного снимка.
// Поиск возвращает документы по возрастанию Position, то есть в порядке генерации.
func NewSnapshotDocuments(snapshotID string, generatedAt time.Time, window models.Window, recs []models.Recommendation) []models.RecommendationDocument {
	docs := make([]models.RecommendationDocument, 0, len(recs))
	for i, rec := range recs {
		docs = append(docs, models.RecommendationDocument{
			ID:             fmt.Sprintf("%s-%06d", snapshotID, i),
			SnapshotID:     snapshotID,
			Position:       i,
			GeneratedAt:    generatedAt.UTC(),
			WindowLength:   window.Length,
			WindowStart:    window.Start.String(),
			WindowEnd:      window.End.String(),
			Recommendation: rec,
		})
	}
	return docs
}

// BulkIndexRecommendations индексирует документы снимка одним запросом Bulk API.
func (es *ElasticsearchStorage) BulkIndexRecommendations(ctx context.Context, docs []models.RecommendationDocument) error {
	if len(docs) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, doc := range docs {
		meta := map[string]any{
			"index": map[string]any{
				"_index": es.index,
				"_id":    doc.ID,
			},
		}
		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("failed to encode meta: %w", err)
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode recommendation: %w", err)
		}
	}

	url := fmt.Sprintf("%s/_bulk?refresh=true", es.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-ndjson")

	res, err := es.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to bulk index: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error bulk indexing: status %d, body: %s", res.StatusCode, string(body))
	}

	var result struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode bulk response: %w", err)
	}
	if result.Errors {
		return fmt.Errorf("error bulk indexing: some documents were rejected")
	}

	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.RecommendationDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// search выполняет запрос _search и возвращает найденные документы.
func (es *ElasticsearchStorage) search(ctx context.Context, query map[string]any, size int) ([]models.RecommendationDocument, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	url := fmt.Sprintf("%s/%s/_search?size=%d", es.baseURL, es.index, size)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := es.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("error searching: status %d, body: %s", res.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	docs := make([]models.RecommendationDocument, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}

// LatestSnapshotID возвращает идентификатор последнего снимка.
// Пустая строка означает, что снимков нет.
func (es *ElasticsearchStorage) LatestSnapshotID(ctx context.Context) (string, error) {
	docs, err := es.search(ctx, map[string]any{
		"query":   map[string]any{"match_all": map[string]any{}},
		"sort":    []map[string]any{{"generated_at": map[string]any{"order": "desc"}}},
		"_source": []string{"snapshot_id", "generated_at"},
	}, 1)
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", nil
	}
	return docs[0].SnapshotID, nil
}

// SearchRecommendations ищет рекомендации последнего снимка по категории и району.
// Документы возвращаются в порядке, в котором они были сформированы.
func (es *ElasticsearchStorage) SearchRecommendations(ctx context.Context, search models.RecommendationSearch) ([]models.RecommendationDocument, error) {
	snapshotID, err := es.LatestSnapshotID(ctx)
	if err != nil {
		return nil, err
	}
	if snapshotID == "" {
		return []models.RecommendationDocument{}, nil
	}

	limit := search.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return es.search(ctx, buildSearchQuery(snapshotID, search), limit)
}

// buildSearchQuery строит запрос для поиска рекомендаций
func buildSearchQuery(snapshotID string, search models.RecommendationSearch) map[string]any {
	filters := []map[string]any{
		{"term": map[string]any{"snapshot_id": snapshotID}},
	}
	if search.Category != "" {
		filters = append(filters, map[string]any{
			"term": map[string]any{"category": string(search.Category)},
		})
	}
	if search.DistrictID != 0 {
		filters = append(filters, map[string]any{
			"term": map[string]any{"district_id": search.DistrictID},
		})
	}

	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"filter": filters,
			},
		},
		"sort": []map[string]any{
			{"position": map[string]any{"order": "asc"}},
		},
	}
}
