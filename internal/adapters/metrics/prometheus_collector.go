package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "coriolis"
	// Subsystem for build engine metrics
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalBuildCollector is the singleton build metrics collector
	// Set by SetGlobalBuildCollector() when metrics are enabled
	globalBuildCollector BuildMetricsRecorder
)

// BuildMetricsRecorder defines the interface for recording build engine events
type BuildMetricsRecorder interface {
	RecordCodecOperation(operation string, success bool)
	RecordBuildCost(shipID string, cost int64)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalBuildCollector sets the global build metrics collector
func SetGlobalBuildCollector(collector BuildMetricsRecorder) {
	globalBuildCollector = collector
}

// RecordCodecOperation records an encode or decode globally
func RecordCodecOperation(operation string, success bool) {
	if globalBuildCollector != nil {
		globalBuildCollector.RecordCodecOperation(operation, success)
	}
}

// RecordBuildCost records the total cost of an inspected or saved build globally
func RecordBuildCost(shipID string, cost int64) {
	if globalBuildCollector != nil {
		globalBuildCollector.RecordBuildCost(shipID, cost)
	}
}
