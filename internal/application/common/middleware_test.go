package common_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmcleod/coriolis-sub002/internal/application/common"
	"github.com/cmmcleod/coriolis-sub002/internal/application/mediator"
)

type logEntry struct {
	level    string
	message  string
	metadata map[string]interface{}
}

type recordingLogger struct {
	entries []logEntry
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.entries = append(l.entries, logEntry{level: level, message: message, metadata: metadata})
}

type SaveThingCommand struct{}

func TestLoggingMiddleware_InjectsLoggerAndLogsOutcome(t *testing.T) {
	// Arrange
	logger := &recordingLogger{}
	middleware := common.LoggingMiddleware(logger)
	next := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		common.LoggerFromContext(ctx).Log("INFO", "inside handler", nil)
		return "ok", nil
	}

	// Act
	response, err := middleware(context.Background(), &SaveThingCommand{}, next)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ok", response)
	require.Len(t, logger.entries, 2)
	assert.Equal(t, "inside handler", logger.entries[0].message)
	assert.Equal(t, "DEBUG", logger.entries[1].level)
	assert.Equal(t, "SaveThingCommand", logger.entries[1].metadata["request"])
	assert.Contains(t, logger.entries[1].metadata, "duration_ms")
}

func TestLoggingMiddleware_LogsFailures(t *testing.T) {
	// Arrange
	logger := &recordingLogger{}
	middleware := common.LoggingMiddleware(logger)
	next := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, errors.New("boom")
	}

	// Act
	_, err := middleware(context.Background(), &SaveThingCommand{}, next)

	// Assert
	assert.EqualError(t, err, "boom")
	require.Len(t, logger.entries, 1)
	assert.Equal(t, "ERROR", logger.entries[0].level)
	assert.Equal(t, "boom", logger.entries[0].metadata["error"])
}

func TestLoggerFromContext_FallsBackToNoOp(t *testing.T) {
	assert.NotPanics(t, func() {
		common.LoggerFromContext(context.Background()).Log("INFO", "dropped", nil)
	})
}

func TestRequestName(t *testing.T) {
	assert.Equal(t, "SaveThingCommand", common.RequestName(&SaveThingCommand{}))
	assert.Equal(t, "SaveThingCommand", common.RequestName(SaveThingCommand{}))
	assert.Equal(t, "string", common.RequestName("raw"))
	assert.Equal(t, "UnknownRequest", common.RequestName(nil))
}
