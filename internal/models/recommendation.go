package models

import (
	"errors"
	"strings"
	"time"
)

// ErrUnknownCategory возвращается при фильтре по несуществующей категории.
var ErrUnknownCategory = errors.New("unknown recommendation category")

// Category определяет тип рекомендации.
type Category string

const (
	CategoryExpand          Category = "expand"
	CategoryCloseOrRelocate Category = "close_or_relocate"
	CategoryMarket          Category = "market"
	CategoryOpenNew         Category = "open_new"
	CategoryDeferNew        Category = "defer_new"
)

// Categories перечисляет все категории в порядке приоритета правил.
var Categories = []Category{
	CategoryExpand,
	CategoryCloseOrRelocate,
	CategoryMarket,
	CategoryOpenNew,
	CategoryDeferNew,
}

// ParseCategory разбирает фильтр категории.
// Пустая строка и "all" означают отсутствие фильтра и возвращают пустую категорию.
func ParseCategory(raw string) (Category, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" || value == "all" {
		return "", nil
	}
	for _, c := range Categories {
		if string(c) == value {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// Recommendation представляет рекомендацию для филиала или района без филиалов.
// Для районных рекомендаций BranchID равен 0, а показатели филиала не заполняются.
// Нулевая загрузка и нулевая рентабельность филиала сериализуются явно.
type Recommendation struct {
	Category               Category `json:"category"`
	Title                  string   `json:"title"`
	Rationale              string   `json:"rationale"`
	DistrictID             int      `json:"district_id"`
	DistrictName           string   `json:"district_name"`
	BranchID               int      `json:"branch_id,omitempty"`
	BranchName             string   `json:"branch_name,omitempty"`
	CapacityUtilizationPct float64  `json:"capacity_utilization_pct"`
	ProfitabilityPct       float64  `json:"profitability_pct"`
	Population             int      `json:"population,omitempty"`
}

// RecommendationDocument представляет рекомендацию, проиндексированную в Elasticsearch
// в составе снимка. Position сохраняет порядок генерации внутри снимка.
type RecommendationDocument struct {
	ID           string    `json:"id"`
	SnapshotID   string    `json:"snapshot_id"`
	Position     int       `json:"position"`
	GeneratedAt  time.Time `json:"generated_at"`
	WindowLength int       `json:"window_length"`
	WindowStart  string    `json:"window_start"`
	WindowEnd    string    `json:"window_end"`
	Recommendation
}

// RecommendationSearch описывает поиск по проиндексированным рекомендациям.
type RecommendationSearch struct {
	Category   Category `json:"category,omitempty"`
	DistrictID int      `json:"district_id,omitempty"`
	Limit      int      `json:"limit,omitempty"`
}

// IndexedRecommendationsResponse представляет ответ поиска по снимку рекомендаций.
type IndexedRecommendationsResponse struct {
	Recommendations []RecommendationDocument `json:"recommendations"`
	Total           int                      `json:"total"`
}
