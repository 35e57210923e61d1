package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"

	"github.com/akozadaev/go_branch_analytics/internal/analytics"
	"github.com/akozadaev/go_branch_analytics/internal/config"
	"github.com/akozadaev/go_branch_analytics/internal/storage"
)

func main() {
	fixture := flag.String("fixture", "", "read a JSON dataset instead of PostgreSQL")
	window := flag.Int("window", analytics.DefaultWindowLength, "window length in months (6 or 12)")
	mapping := flag.String("mapping", "migrations/elasticsearch_mapping.json", "index mapping file")
	flag.Parse()

	cfg := config.Load()

	tag, err := cfg.ReportLanguage()
	if err != nil {
		log.Printf("Warning: unknown report locale, using en: %v", err)
	}

	var source analytics.DataSource
	if *fixture != "" {
		ms, err := storage.LoadMemoryStorage(*fixture, storage.WithCollation(tag))
		if err != nil {
			log.Fatalf("Error loading fixture: %v", err)
		}
		source = ms
	} else {
		pgStorage, err := storage.NewPostgresStorage(cfg.PostgresDSN(), cfg.MaxOpenConns)
		if err != nil {
			log.Fatalf("Error creating PostgreSQL client: %v", err)
		}
		defer pgStorage.Close()
		source = pgStorage
	}

	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticsearchURL},
	})
	if err != nil {
		log.Fatalf("Error creating Elasticsearch client: %v", err)
	}
	esStorage := storage.NewElasticsearchStorage(esClient, cfg.RecommendationsIndex, cfg.ElasticsearchURL)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if mappingData, err := os.ReadFile(*mapping); err == nil {
		if err := esStorage.CreateIndex(ctx, string(mappingData)); err != nil {
			log.Fatalf("Error creating index: %v", err)
		}
	} else {
		log.Printf("Warning: could not read mapping file %s: %v", *mapping, err)
	}

	service := analytics.NewService(source, analytics.WithEngine(analytics.NewEngine(tag)))
	recs, resolved, err := service.FullRecommendations(ctx, *window)
	if err != nil {
		log.Fatalf("Error computing recommendations: %v", err)
	}

	snapshotID := uuid.NewString()
	docs := storage.NewSnapshotDocuments(snapshotID, time.Now(), resolved, recs)

	log.Printf("Indexing %d recommendations for %s..%s as snapshot %s...",
		len(docs), resolved.Start, resolved.End, snapshotID)

	if err := esStorage.BulkIndexRecommendations(ctx, docs); err != nil {
		log.Fatalf("Error indexing recommendations: %v", err)
	}

	log.Println("Indexing completed successfully!")
}
