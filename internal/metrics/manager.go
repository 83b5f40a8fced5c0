package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterEventsIngested      *prometheus.CounterVec
	CounterAggregationRetries  prometheus.Counter
	CounterAggregationFailures prometheus.Counter
	CounterRecommendations     *prometheus.CounterVec
	CounterRecsExpired         prometheus.Counter
	CounterHandleRequestPanic  prometheus.Counter

	// gauges
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistReconcileSweepDuration prometheus.Histogram
	HistRequestDuration        prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("trainpulse", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("trainpulse", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterEventsIngested := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "events_ingested",
		Help:      "The total number of ingested workout events",
	}, []string{"type"})
	counterAggregationRetries := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "aggregation_retries",
		Help:      "The total number of retried aggregation transactions",
	})
	counterAggregationFailures := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "aggregation_failures",
		Help:      "The total number of aggregation writes that exhausted retries",
	})
	counterRecommendations := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "recommendations",
		Help:      "The total number of created recommendations",
	}, []string{"state"})
	counterRecsExpired := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "recommendations_expired",
		Help:      "The total number of recommendations expired by the TTL sweep",
	})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})

	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histReconcileSweepDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "reconcile_sweep_duration",
		Help:      "Duration of the reconciliation sweep in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	})
	histRequestDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration",
		Help:      "Duration of served requests in seconds",
		Buckets:   prometheus.DefBuckets,
	})

	return &Manager{
		CounterRequests:            counterRequests,
		CounterEventsIngested:      counterEventsIngested,
		CounterAggregationRetries:  counterAggregationRetries,
		CounterAggregationFailures: counterAggregationFailures,
		CounterRecommendations:     counterRecommendations,
		CounterRecsExpired:         counterRecsExpired,
		CounterHandleRequestPanic:  counterHandleRequestPanic,
		GaugeLifeSignal:            gaugeLifeSignal,
		HistReconcileSweepDuration: histReconcileSweepDuration,
		HistRequestDuration:        histRequestDuration,
	}
}
