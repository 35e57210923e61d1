// Package handlers содержит HTTP обработчики для REST API аналитики филиалов.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/akozadaev/go_branch_analytics/internal/analytics"
	"github.com/akozadaev/go_branch_analytics/internal/models"
)

// RecommendationSearcher ищет рекомендации в проиндексированных снимках.
type RecommendationSearcher interface {
	SearchRecommendations(ctx context.Context, search models.RecommendationSearch) ([]models.RecommendationDocument, error)
}

// Handlers содержит зависимости для обработки HTTP запросов.
type Handlers struct {
	service  *analytics.Service     // Ядро аналитики
	searcher RecommendationSearcher // Индекс снимков; nil отключает поиск
	timeout  time.Duration          // Дедлайн на чтение данных в рамках запроса
}

// NewHandlers создает новый экземпляр Handlers.
func NewHandlers(service *analytics.Service, searcher RecommendationSearcher, timeout time.Duration) *Handlers {
	return &Handlers{
		service:  service,
		searcher: searcher,
		timeout:  timeout,
	}
}

// RegisterRoutes регистрирует маршруты API в роутере.
func (h *Handlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/districts", h.GetDistricts).Methods(http.MethodGet)
	router.HandleFunc("/districts/summary", h.GetDistrictSummary).Methods(http.MethodGet)
	router.HandleFunc("/branches", h.GetBranches).Methods(http.MethodGet)
	router.HandleFunc("/dashboard", h.GetDashboard).Methods(http.MethodGet)
	router.HandleFunc("/recommendations", h.GetRecommendations).Methods(http.MethodGet)
	router.HandleFunc("/recommendations/indexed", h.SearchIndexedRecommendations).Methods(http.MethodGet)
	router.HandleFunc("/map", h.GetBranchMap).Methods(http.MethodGet)
}

func (h *Handlers) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.timeout)
}

// queryInt читает целочисленный параметр; пустое или некорректное значение дает 0.
func queryInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return value
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeError сопоставляет ошибку ядра с HTTP статусом.
func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, models.ErrUnknownCategory):
		http.Error(w, "Unknown recommendation category", http.StatusBadRequest)
	case errors.Is(err, analytics.ErrUpstreamFetch):
		log.Printf("Error %s: %v", op, err)
		http.Error(w, "Data source unavailable", http.StatusBadGateway)
	default:
		log.Printf("Error %s: %v", op, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// GetDistricts возвращает справочник районов.
//
// @Summary      Получить список районов
// @Description  Возвращает все районы с численностью населения, отсортированные по названию
// @Tags         reference
// @Produce      json
// @Success      200  {array}   models.District
// @Failure      502  {string}  string  "Источник данных недоступен"
// @Router       /districts [get]
func (h *Handlers) GetDistricts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	districts, err := h.service.ListDistricts(ctx)
	if err != nil {
		writeError(w, "listing districts", err)
		return
	}
	writeJSON(w, districts)
}

// GetBranches возвращает филиалы района или все филиалы.
//
// @Summary      Получить список филиалов
// @Tags         reference
// @Produce      json
// @Param        district_id  query     int  false  "Идентификатор района, 0 - все районы"
// @Success      200          {array}   models.Branch
// @Failure      502          {string}  string  "Источник данных недоступен"
// @Router       /branches [get]
func (h *Handlers) GetBranches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	branches, err := h.service.ListBranches(ctx, queryInt(r, "district_id"))
	if err != nil {
		writeError(w, "listing branches", err)
		return
	}
	writeJSON(w, branches)
}

// GetDashboard возвращает итоги, помесячный ряд и детализацию района или филиала.
//
// @Summary      Дашборд района
// @Description  Считает итоги за скользящее окно 6 или 12 месяцев, заканчивающееся последним месяцем с данными. Другие значения окна приводятся к 12.
// @Tags         analytics
// @Produce      json
// @Param        district_id  query     int  false  "Идентификатор района, 0 - без анализа"
// @Param        branch_id    query     int  false  "Идентификатор филиала"
// @Param        window       query     int  false  "Длина окна в месяцах (6 или 12)"
// @Success      200          {object}  models.DashboardResult
// @Failure      502          {string}  string  "Источник данных недоступен"
// @Router       /dashboard [get]
func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	result, err := h.service.ComputeDashboard(ctx, models.DashboardRequest{
		DistrictID:   queryInt(r, "district_id"),
		BranchID:     queryInt(r, "branch_id"),
		WindowLength: queryInt(r, "window"),
	})
	if err != nil {
		writeError(w, "computing dashboard", err)
		return
	}
	writeJSON(w, result)
}

// GetRecommendations возвращает рекомендации для района или всех районов.
//
// @Summary      Рекомендации
// @Description  Классифицирует филиалы по загрузке и рентабельности, а районы без филиалов по населению. Фильтр категории применяется после классификации.
// @Tags         analytics
// @Produce      json
// @Param        district_id  query     int     false  "Идентификатор района, 0 - все районы"
// @Param        branch_id    query     int     false  "Идентификатор филиала"
// @Param        window       query     int     false  "Длина окна в месяцах (6 или 12)"
// @Param        category     query     string  false  "Категория"  Enums(all, expand, close_or_relocate, market, open_new, defer_new)
// @Success      200          {object}  models.RecommendationsResult
// @Failure      400          {string}  string  "Неизвестная категория"
// @Failure      502          {string}  string  "Источник данных недоступен"
// @Router       /recommendations [get]
func (h *Handlers) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	category, err := models.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, "parsing category", err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	result, err := h.service.ComputeRecommendations(ctx, models.RecommendationRequest{
		DistrictID:   queryInt(r, "district_id"),
		BranchID:     queryInt(r, "branch_id"),
		WindowLength: queryInt(r, "window"),
		Category:     category,
	})
	if err != nil {
		writeError(w, "computing recommendations", err)
		return
	}
	writeJSON(w, result)
}

// SearchIndexedRecommendations ищет рекомендации в последнем проиндексированном снимке.
//
// @Summary      Поиск по снимку рекомендаций
// @Tags         analytics
// @Produce      json
// @Param        category     query     string  false  "Категория"
// @Param        district_id  query     int     false  "Идентификатор района"
// @Param        limit        query     int     false  "Максимальное число документов"
// @Success      200          {object}  models.IndexedRecommendationsResponse
// @Failure      400          {string}  string  "Неизвестная категория"
// @Failure      502          {string}  string  "Индекс недоступен"
// @Failure      503          {string}  string  "Поиск отключен"
// @Router       /recommendations/indexed [get]
func (h *Handlers) SearchIndexedRecommendations(w http.ResponseWriter, r *http.Request) {
	if h.searcher == nil {
		http.Error(w, "Recommendation index is not configured", http.StatusServiceUnavailable)
		return
	}

	category, err := models.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, "parsing category", err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	docs, err := h.searcher.SearchRecommendations(ctx, models.RecommendationSearch{
		Category:   category,
		DistrictID: queryInt(r, "district_id"),
		Limit:      queryInt(r, "limit"),
	})
	if err != nil {
		log.Printf("Error searching indexed recommendations: %v", err)
		http.Error(w, "Recommendation index unavailable", http.StatusBadGateway)
		return
	}

	writeJSON(w, models.IndexedRecommendationsResponse{
		Recommendations: docs,
		Total:           len(docs),
	})
}

// GetDistrictSummary возвращает рейтинг районов за окно.
//
// @Summary      Сводка по районам
// @Tags         analytics
// @Produce      json
// @Param        window  query     int  false  "Длина окна в месяцах (6 или 12)"
// @Success      200     {object}  models.DistrictSummaryResult
// @Failure      502     {string}  string  "Источник данных недоступен"
// @Router       /districts/summary [get]
func (h *Handlers) GetDistrictSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	result, err := h.service.ComputeDistrictSummary(ctx, queryInt(r, "window"))
	if err != nil {
		writeError(w, "computing district summary", err)
		return
	}
	writeJSON(w, result)
}

// GetBranchMap возвращает помесячные показатели филиалов для карты.
//
// @Summary      Карта филиалов
// @Tags         analytics
// @Produce      json
// @Param        district_id  query     int  false  "Идентификатор района"
// @Param        branch_id    query     int  false  "Идентификатор филиала"
// @Param        month        query     int  false  "Месяц года (1-12), 0 - все месяцы"
// @Success      200          {object}  models.BranchMapResult
// @Failure      502          {string}  string  "Источник данных недоступен"
// @Router       /map [get]
func (h *Handlers) GetBranchMap(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	result, err := h.service.ComputeBranchMap(ctx, models.BranchMapRequest{
		DistrictID: queryInt(r, "district_id"),
		BranchID:   queryInt(r, "branch_id"),
		Month:      queryInt(r, "month"),
	})
	if err != nil {
		writeError(w, "computing branch map", err)
		return
	}
	writeJSON(w, result)
}

// HealthCheck обрабатывает GET запрос на проверку работоспособности сервиса.
//
// @Summary      Проверка работоспособности сервиса
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status": "ok",
	})
}
