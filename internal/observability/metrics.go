package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the relay.
type Metrics struct {
	CyclesCompleted prometheus.Counter
	CycleFailures   prometheus.Counter
	AlertsSeen      prometheus.Counter
	AlertsNew       prometheus.Counter
	MalformedAlerts prometheus.Counter
	UnknownIssuers  prometheus.Counter
	RelayRunning    prometheus.Gauge

	// Dispatch metrics.
	Dispatches     *prometheus.CounterVec // labels: kind={record,digest,baseline,emergency}
	DeliveryErrors prometheus.Counter
	CycleDuration  prometheus.Histogram

	// Upstream fetch metrics.
	FetchRequests *prometheus.CounterVec   // labels: feed={alerts,cancel,text}, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: feed={alerts,cancel,text}
}

// NewMetrics creates and registers all relay metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		CyclesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nws_relay",
			Name:      "cycles_completed_total",
			Help:      "Total polling cycles that ran to completion.",
		}),
		CycleFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nws_relay",
			Name:      "cycle_failures_total",
			Help:      "Total polling cycles aborted by fetch or pipeline errors.",
		}),
		AlertsSeen: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nws_relay",
			Name:      "alerts_seen_total",
			Help:      "Total alert records fetched across all cycles.",
		}),
		AlertsNew: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nws_relay",
			Name:      "alerts_new_total",
			Help:      "Total alerts first seen by the diff engine.",
		}),
		MalformedAlerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nws_relay",
			Name:      "malformed_alerts_total",
			Help:      "Total upstream records dropped during normalization.",
		}),
		UnknownIssuers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nws_relay",
			Name:      "unknown_issuers_total",
			Help:      "Total alerts retained from senders outside the WFO roster.",
		}),
		RelayRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nws_relay",
			Name:      "relay_running",
			Help:      "1 when the polling loop is active, 0 when shut down.",
		}),
		Dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nws_relay",
			Name:      "dispatches_total",
			Help:      "Messages delivered by kind.",
		}, []string{"kind"}),
		DeliveryErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nws_relay",
			Name:      "delivery_errors_total",
			Help:      "Total failed deliveries to notification destinations.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nws_relay",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a complete fetch-diff-dispatch cycle.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nws_relay",
			Name:      "fetch_requests_total",
			Help:      "Upstream requests by feed and outcome.",
		}, []string{"feed", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nws_relay",
			Name:      "fetch_duration_seconds",
			Help:      "Upstream request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"feed"}),
	}

	prometheus.MustRegister(
		m.CyclesCompleted,
		m.CycleFailures,
		m.AlertsSeen,
		m.AlertsNew,
		m.MalformedAlerts,
		m.UnknownIssuers,
		m.RelayRunning,
		m.Dispatches,
		m.DeliveryErrors,
		m.CycleDuration,
		m.FetchRequests,
		m.FetchDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		CyclesCompleted: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "nws_relay", Name: "cycles_completed_total"}),
		CycleFailures:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "nws_relay", Name: "cycle_failures_total"}),
		AlertsSeen:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "nws_relay", Name: "alerts_seen_total"}),
		AlertsNew:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "nws_relay", Name: "alerts_new_total"}),
		MalformedAlerts: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "nws_relay", Name: "malformed_alerts_total"}),
		UnknownIssuers:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "nws_relay", Name: "unknown_issuers_total"}),
		RelayRunning:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "nws_relay", Name: "relay_running"}),
		Dispatches:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "nws_relay", Name: "dispatches_total"}, []string{"kind"}),
		DeliveryErrors:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "nws_relay", Name: "delivery_errors_total"}),
		CycleDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "nws_relay", Name: "cycle_duration_seconds"}),
		FetchRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "nws_relay", Name: "fetch_requests_total"}, []string{"feed", "outcome"}),
		FetchDuration:   prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "nws_relay", Name: "fetch_duration_seconds"}, []string{"feed"}),
	}
}
