// @title           Branch Analytics API
// @version         1.0
// @description     REST API аналитики филиалов: итоги по районам за скользящее окно, помесячная динамика и рекомендации по расширению, закрытию и открытию филиалов.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  akozadaev@inbox.ru
// @contact.url    https://github.com/akozadaev/go_branch_analytics

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @schemes   http https
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/akozadaev/go_branch_analytics/docs" // swagger docs
	"github.com/akozadaev/go_branch_analytics/internal/analytics"
	"github.com/akozadaev/go_branch_analytics/internal/config"
	"github.com/akozadaev/go_branch_analytics/internal/handlers"
	"github.com/akozadaev/go_branch_analytics/internal/storage"
)

func main() {
	fixture := flag.String("fixture", "", "serve a JSON dataset from memory instead of PostgreSQL")
	flag.Parse()

	cfg := config.Load()

	tag, err := cfg.ReportLanguage()
	if err != nil {
		log.Printf("Warning: unknown report locale, using en: %v", err)
	}

	// Источник данных: PostgreSQL или JSON-фикстура
	var source analytics.DataSource
	if *fixture != "" {
		ms, err := storage.LoadMemoryStorage(*fixture, storage.WithCollation(tag))
		if err != nil {
			log.Fatalf("Error loading fixture: %v", err)
		}
		source = ms
		log.Printf("Serving dataset from %s", *fixture)
	} else {
		pgStorage, err := storage.NewPostgresStorage(cfg.PostgresDSN(), cfg.MaxOpenConns)
		if err != nil {
			log.Fatalf("Error creating PostgreSQL client: %v", err)
		}
		defer pgStorage.Close()
		source = pgStorage
		log.Println("Connected to PostgreSQL")
	}

	service := analytics.NewService(source, analytics.WithEngine(analytics.NewEngine(tag)))

	// Индекс снимков рекомендаций
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:         []string{cfg.ElasticsearchURL},
		DisableMetaHeader: true,
	})
	if err != nil {
		log.Fatalf("Error creating Elasticsearch client: %v", err)
	}
	esStorage := storage.NewElasticsearchStorage(esClient, cfg.RecommendationsIndex, cfg.ElasticsearchURL)
	ensureIndex(esStorage)

	h := handlers.NewHandlers(service, esStorage, cfg.RequestTimeout)

	router := mux.NewRouter()
	h.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      handlers.CORS(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Ожидание сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// ensureIndex создает индекс рекомендаций, если найден файл маппинга.
// Ошибки не фатальны: без индекса недоступен только поиск по снимкам.
func ensureIndex(esStorage *storage.ElasticsearchStorage) {
	mappingPaths := []string{
		"migrations/elasticsearch_mapping.json",
		"../migrations/elasticsearch_mapping.json",
		filepath.Join(filepath.Dir(os.Args[0]), "../migrations/elasticsearch_mapping.json"),
	}

	var mappingData []byte
	for _, path := range mappingPaths {
		data, err := os.ReadFile(path)
		if err == nil {
			mappingData = data
			break
		}
	}
	if len(mappingData) == 0 {
		log.Printf("Warning: could not read mapping file from any location")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := esStorage.CreateIndex(ctx, string(mappingData)); err != nil {
		log.Printf("Warning: could not create index: %v", err)
		return
	}
	log.Println("Elasticsearch index created/verified")
}
