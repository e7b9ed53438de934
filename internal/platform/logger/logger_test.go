package logger

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/internal/config"
)

func TestSetupLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: level})
		require.NoError(t, err, "level %s", level)
		require.NotNil(t, logger)
	}
}

func TestSetupInvalidLevel(t *testing.T) {
	_, err := Setup(config.ServerConfig{Port: 8080, LogLevel: "trace"})
	assert.Error(t, err)
}

func TestFromContextRoundTrip(t *testing.T) {
	base := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("component", "test")
	ctx := WithLogger(context.Background(), base)

	assert.Same(t, base, FromContext(ctx))
	assert.Same(t, base, FromContextOrDefault(ctx, nil))
}

func TestFromContextFallbacks(t *testing.T) {
	ctx := context.Background()
	fallback := slog.New(slog.NewTextHandler(os.Stderr, nil))

	assert.Same(t, slog.Default(), FromContext(ctx))
	assert.Same(t, fallback, FromContextOrDefault(ctx, fallback))
	assert.Same(t, slog.Default(), FromContextOrDefault(ctx, nil))
}
