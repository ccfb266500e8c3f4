package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RankingRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roomrank_ranking_requests_total",
		Help: "Ranking requests by outcome.",
	}, []string{"outcome"})

	EvaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "roomrank_evaluation_duration_seconds",
		Help:    "Wall time of a full ranking evaluation.",
		Buckets: prometheus.DefBuckets,
	})

	RoomsEvaluated = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "roomrank_rooms_evaluated",
		Help:    "Rooms surviving the facility filter per request.",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	})

	SensorReadingsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roomrank_sensor_readings_ingested_total",
		Help: "Sensor readings stored, by transport.",
	}, []string{"transport"})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roomrank_cache_hits_total",
		Help: "Cache hits on the averages/ranking cache.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roomrank_cache_misses_total",
		Help: "Cache misses on the averages/ranking cache.",
	})
)

// CacheObserver adapts the prometheus counters to the cache.Observer seam.
type CacheObserver struct{}

func (CacheObserver) CacheHit()  { cacheHits.Inc() }
func (CacheObserver) CacheMiss() { cacheMisses.Inc() }
