package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmcleod/coriolis-sub002/internal/adapters/metrics"
	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
)

func withRegistry(t *testing.T) {
	t.Helper()
	metrics.InitRegistry()
	t.Cleanup(func() {
		metrics.Registry = nil
		metrics.SetGlobalBuildCollector(nil)
	})
}

type InspectThingQuery struct{}

func TestCollectors_RegisterIsNoOpWhenDisabled(t *testing.T) {
	// Arrange
	metrics.Registry = nil

	// Act & Assert
	assert.False(t, metrics.IsEnabled())
	assert.NoError(t, metrics.NewBuildMetricsCollector().Register())
	assert.NoError(t, metrics.NewRequestMetricsCollector().Register())
}

func TestCollectors_DoubleRegistrationFails(t *testing.T) {
	// Arrange
	withRegistry(t)
	collector := metrics.NewRequestMetricsCollector()
	require.NoError(t, collector.Register())

	// Act
	err := collector.Register()

	// Assert
	assert.Error(t, err)
}

func TestBuildMetrics_GlobalRecording(t *testing.T) {
	// Arrange
	withRegistry(t)
	collector := metrics.NewBuildMetricsCollector()
	require.NoError(t, collector.Register())
	metrics.SetGlobalBuildCollector(collector)

	// Act
	metrics.RecordCodecOperation(metrics.OperationEncode, true)
	metrics.RecordCodecOperation(metrics.OperationEncode, true)
	metrics.RecordCodecOperation(metrics.OperationDecode, false)
	metrics.RecordBuildCost("sidewinder", 22420)

	// Assert
	expected := `
# HELP coriolis_engine_codec_operations_total Total number of build codec operations by operation and status
# TYPE coriolis_engine_codec_operations_total counter
coriolis_engine_codec_operations_total{operation="decode",status="error"} 1
coriolis_engine_codec_operations_total{operation="encode",status="success"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(metrics.Registry, strings.NewReader(expected), "coriolis_engine_codec_operations_total"))
	count, err := testutil.GatherAndCount(metrics.Registry, "coriolis_engine_build_cost_credits")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecordCodecOperation_WithoutCollector(t *testing.T) {
	metrics.SetGlobalBuildCollector(nil)
	assert.NotPanics(t, func() {
		metrics.RecordCodecOperation(metrics.OperationImport, true)
		metrics.RecordBuildCost("anaconda", 1)
	})
}

func TestPrometheusMiddleware(t *testing.T) {
	// Arrange
	withRegistry(t)
	collector := metrics.NewRequestMetricsCollector()
	require.NoError(t, collector.Register())
	middleware := metrics.PrometheusMiddleware(collector)
	ok := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return "ok", nil }
	fail := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, errors.New("nope")
	}

	// Act
	_, okErr := middleware(context.Background(), &InspectThingQuery{}, ok)
	_, failErr := middleware(context.Background(), &InspectThingQuery{}, fail)

	// Assert
	require.NoError(t, okErr)
	require.EqualError(t, failErr, "nope")
	expected := `
# HELP coriolis_engine_requests_total Mediator requests handled by request type and status
# TYPE coriolis_engine_requests_total counter
coriolis_engine_requests_total{request="InspectThingQuery",status="error"} 1
coriolis_engine_requests_total{request="InspectThingQuery",status="success"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(metrics.Registry, strings.NewReader(expected), "coriolis_engine_requests_total"))
}

func TestPrometheusMiddleware_NilCollector(t *testing.T) {
	// Arrange
	middleware := metrics.PrometheusMiddleware(nil)

	// Act
	response, err := middleware(context.Background(), &InspectThingQuery{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return 42, nil
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 42, response)
}

func TestServer_ServesRegistry(t *testing.T) {
	// Arrange
	withRegistry(t)
	collector := metrics.NewBuildMetricsCollector()
	require.NoError(t, collector.Register())
	collector.RecordCodecOperation(metrics.OperationExport, true)

	server, err := metrics.NewServer("127.0.0.1", 0, "/metrics")
	require.NoError(t, err)
	server.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	})

	// Act
	resp, err := http.Get("http://" + server.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `coriolis_engine_codec_operations_total{operation="export",status="success"} 1`)
}

func TestNewServer_RequiresRegistry(t *testing.T) {
	// Arrange
	metrics.Registry = nil

	// Act
	server, err := metrics.NewServer("127.0.0.1", 0, "/metrics")

	// Assert
	assert.Nil(t, server)
	assert.ErrorContains(t, err, "not initialized")
}
