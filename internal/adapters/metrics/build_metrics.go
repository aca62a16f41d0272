package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Codec operation labels
const (
	OperationEncode       = "encode"
	OperationDecode       = "decode"
	OperationExport       = "export"
	OperationImport       = "import"
	OperationValidateJSON = "validate"
)

// BuildMetricsCollector records codec usage and build cost distribution
type BuildMetricsCollector struct {
	codecOperations *prometheus.CounterVec
	buildCost       *prometheus.HistogramVec
}

// NewBuildMetricsCollector creates a new build metrics collector
func NewBuildMetricsCollector() *BuildMetricsCollector {
	return &BuildMetricsCollector{
		codecOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "codec_operations_total",
				Help:      "Total number of build codec operations by operation and status",
			},
			[]string{"operation", "status"},
		),

		// Ship costs span from a few thousand to a few hundred million credits
		buildCost: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "build_cost_credits",
				Help:      "Total component cost of handled builds",
				Buckets:   prometheus.ExponentialBuckets(10000, 10, 6),
			},
			[]string{"ship"},
		),
	}
}

// Register registers all build metrics with the Prometheus registry
func (c *BuildMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.codecOperations,
		c.buildCost,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordCodecOperation increments the codec counter
func (c *BuildMetricsCollector) RecordCodecOperation(operation string, success bool) {
	c.codecOperations.WithLabelValues(operation, statusLabel(success)).Inc()
}

// RecordBuildCost observes the cost of a build
func (c *BuildMetricsCollector) RecordBuildCost(shipID string, cost int64) {
	c.buildCost.WithLabelValues(shipID).Observe(float64(cost))
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
