package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config identifies the service in constant labels.
type Config struct {
	ServiceName string
	Environment string
}

// StatsMetrics observes the statistics aggregation pipeline.
type StatsMetrics struct {
	snapshotRequests *prometheus.CounterVec
	snapshotDuration *prometheus.HistogramVec
	staleDiscarded   prometheus.Counter
}

var (
	statsMetricsOnce sync.Once
	statsMetrics     *StatsMetrics
)

func Stats() *StatsMetrics {
	return StatsWithConfig(Config{})
}

func StatsWithConfig(cfg Config) *StatsMetrics {
	statsMetricsOnce.Do(func() {
		statsMetrics = newStatsMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return statsMetrics
}

func ResetStatsMetricsForTest() {
	statsMetricsOnce = sync.Once{}
	statsMetrics = nil
}

func newStatsMetrics(registerer prometheus.Registerer, cfg Config) *StatsMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "rechargehub"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	snapshotRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "rechargehub_stats_snapshot_requests_total",
			Help:        "Statistics snapshot requests by data source and result.",
			ConstLabels: constLabels,
		},
		[]string{"source", "result"}, // live | fallback | cache, ok | error
	)

	snapshotDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "rechargehub_stats_snapshot_duration_seconds",
			Help:        "Time spent resolving, reading and folding one snapshot.",
			Buckets:     []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			ConstLabels: constLabels,
		},
		[]string{"selector"},
	)

	staleDiscarded := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:        "rechargehub_stats_stale_discarded_total",
			Help:        "Snapshot results dropped because a newer request superseded them.",
			ConstLabels: constLabels,
		},
	)

	registerer.MustRegister(snapshotRequests, snapshotDuration, staleDiscarded)

	return &StatsMetrics{
		snapshotRequests: snapshotRequests,
		snapshotDuration: snapshotDuration,
		staleDiscarded:   staleDiscarded,
	}
}

func (m *StatsMetrics) IncSnapshotRequest(source, result string) {
	if m == nil {
		return
	}
	m.snapshotRequests.WithLabelValues(source, result).Inc()
}

func (m *StatsMetrics) ObserveSnapshotDuration(selector string, elapsed time.Duration) {
	if m == nil {
		return
	}
	seconds := elapsed.Seconds()
	if seconds < 0 {
		seconds = 0
	}
	m.snapshotDuration.WithLabelValues(selector).Observe(seconds)
}

func (m *StatsMetrics) IncStaleDiscarded() {
	if m == nil {
		return
	}
	m.staleDiscarded.Inc()
}
