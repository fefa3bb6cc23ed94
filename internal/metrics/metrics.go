package metrics

import (
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hh_analytics_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	LoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hh_analytics_load_duration_seconds",
			Help:    "Duration of each full replace-and-repopulate load in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60},
		},
	)
	LoadedRowsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hh_analytics_loaded_rows_total",
			Help: "Total number of rows written by loads, by relation.",
		},
		[]string{"relation"},
	)
	RejectedListingsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hh_analytics_rejected_listings_total",
			Help: "Total number of raw listings rejected by normalization.",
		},
	)
	FetchedListingsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hh_analytics_fetched_listings_total",
			Help: "Total number of raw listings fetched from hh.ru.",
		},
	)
	QueryDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "hh_analytics_query_duration_seconds",
			Help:       "Duration of each catalog query.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"query"},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(LoadDuration)
		prometheus.MustRegister(LoadedRowsCounter)
		prometheus.MustRegister(RejectedListingsCounter)
		prometheus.MustRegister(FetchedListingsCounter)
		prometheus.MustRegister(QueryDuration)
	})
}

func StartMetricsServer(port int) {

	Register()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), mux))
	}()
}
