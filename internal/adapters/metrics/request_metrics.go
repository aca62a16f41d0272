package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetricsCollector times every command and query dispatched through
// the mediator
type RequestMetricsCollector struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

func NewRequestMetricsCollector() *RequestMetricsCollector {
	return &RequestMetricsCollector{
		// Upper buckets cover the database round trips of the saved build handlers
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Mediator request duration by request type and status",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"request", "status"},
		),
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Mediator requests handled by request type and status",
			},
			[]string{"request", "status"},
		),
	}
}

// Register adds the collector to Registry. A nil Registry means metrics are
// disabled and nothing is registered.
func (c *RequestMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, collector := range []prometheus.Collector{c.duration, c.total} {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RecordRequest observes one handled request
func (c *RequestMetricsCollector) RecordRequest(request string, seconds float64, success bool) {
	status := statusLabel(success)
	c.duration.WithLabelValues(request, status).Observe(seconds)
	c.total.WithLabelValues(request, status).Inc()
}
