package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, log.InfoLevel)
	require.NotNil(t, logger)

	logger.Info("test message", "score", 3)
	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), "score=3")
}

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(New(&buf, tt.level))
			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, Level(true, "error"))
	assert.Equal(t, log.InfoLevel, Level(false, ""))
	assert.Equal(t, log.WarnLevel, Level(false, "warn"))
	assert.Equal(t, log.InfoLevel, Level(false, "loud"))
}

func TestContextRoundTrip(t *testing.T) {
	logger := Discard()
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, log.Default(), FromContext(context.Background()))
}
