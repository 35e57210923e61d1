// Package observability содержит метрики Prometheus сервиса аналитики.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/akozadaev/go_branch_analytics/internal/models"
)

var (
	computeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "branch_analytics",
		Subsystem: "core",
		Name:      "compute_duration_seconds",
		Help:      "Time spent fetching and computing one analytics result.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	recommendationsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "branch_analytics",
		Subsystem: "recommendations",
		Name:      "generated_total",
		Help:      "Number of recommendations generated, by category, before filtering.",
	}, []string{"category"})

	upstreamFailureCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "branch_analytics",
		Subsystem: "datasource",
		Name:      "fetch_failures_total",
		Help:      "Number of failed data source reads, by operation.",
	}, []string{"operation"})

	dataWatermarkGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "branch_analytics",
		Subsystem: "datasource",
		Name:      "latest_data_month_timestamp_seconds",
		Help:      "Unix timestamp of the first day of the latest month with data seen by a request.",
	})
)

func init() {
	prometheus.MustRegister(computeDuration, recommendationsCounter, upstreamFailureCounter, dataWatermarkGauge)
}

// ObserveComputation записывает длительность операции, начатой в start.
func ObserveComputation(operation string, start time.Time) {
	computeDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordRecommendations увеличивает счётчики по категориям полного списка.
func RecordRecommendations(recs []models.Recommendation) {
	for _, rec := range recs {
		recommendationsCounter.WithLabelValues(string(rec.Category)).Inc()
	}
}

// RecordUpstreamFailure учитывает сбой чтения из источника данных.
func RecordUpstreamFailure(operation string) {
	upstreamFailureCounter.WithLabelValues(operation).Inc()
}

// RecordDataWatermark обновляет отметку последнего месяца с данными.
func RecordDataWatermark(idx models.MonthIndex) {
	ts := time.Date(idx.Year(), time.Month(idx.Month()), 1, 0, 0, 0, 0, time.UTC)
	dataWatermarkGauge.Set(float64(ts.Unix()))
}
