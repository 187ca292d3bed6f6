package telemetry_test

import (
	"context"
	"testing"

	"github.com/Pratham6392/shipment/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	cfg := telemetry.Config{
		Enabled:           false,
		CollectorEndpoint: "localhost:4317",
		SamplingRatio:     1.0,
		ServiceName:       "shiplabel-test",
	}

	tp, err := telemetry.NewTracerProvider(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestNewTracerProvider_NilLogger(t *testing.T) {
	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{}, nil)
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
}

func TestTracerProvider_EnableSpanProfilesWhenDisabled(t *testing.T) {
	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, tp.EnableSpanProfiles())
	assert.False(t, tp.IsSpanProfilesEnabled(), "span profiles need an active tracer provider")
}

func TestNewTracerProvider_Enabled(t *testing.T) {
	// otlptracegrpc dials lazily, so no collector is needed to build the provider
	ctx := context.Background()
	cfg := telemetry.Config{
		Enabled:           true,
		CollectorEndpoint: "localhost:4317",
		SamplingRatio:     0.5,
		ServiceName:       "shiplabel-test",
		ServiceVersion:    "1.2.3",
		Insecure:          true,
	}

	tp, err := telemetry.NewTracerProvider(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.True(t, tp.IsEnabled())

	_, span := tp.Tracer("test").Start(ctx, "span")
	span.End()

	shutdownCtx, cancel := context.WithCancel(ctx)
	cancel()
	// export to an absent collector may fail; shutdown must still return
	_ = tp.Shutdown(shutdownCtx)
}
