package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FetchRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ioc_fetch_runs_total",
			Help: "Feed refresh cycles by result",
		},
		[]string{"result"},
	)

	IndicatorsFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ioc_indicators_fetched_total",
			Help: "Raw records fetched per source",
		},
		[]string{"source"},
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ioc_refresh_duration_seconds",
			Help:    "Time spent in a full refresh cycle",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	CollectionSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ioc_collection_size",
			Help: "Indicators currently held in the collection",
		},
	)
)
