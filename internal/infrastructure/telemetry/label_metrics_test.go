package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/Pratham6392/shipment/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNewLabelMetrics_NilMeter(t *testing.T) {
	lm, err := telemetry.NewLabelMetrics(nil)
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
	assert.Nil(t, lm)
}

func TestLabelMetrics_Record(t *testing.T) {
	mp, reader := newTestMeterProvider(t)
	ctx := context.Background()

	lm, err := telemetry.NewLabelMetrics(mp.Meter("shiplabel"))
	require.NoError(t, err)

	lm.RecordGenerated(ctx, "carrier", "fpdf")
	lm.RecordGenerated(ctx, "fallback", "fpdf")
	lm.RecordFallback(ctx)
	lm.RecordFailed(ctx, telemetry.StageResolve)
	lm.RecordFailed(ctx, telemetry.StageResolve)
	lm.RecordRenderDuration(ctx, "fpdf", 20*time.Millisecond)
	lm.RecordCarrierRequest(ctx, "2xx", 300*time.Millisecond)

	got := collect(t, reader)

	generated := got["label_generated_total"].Data.(metricdata.Sum[int64])
	bySource := map[string]int64{}
	for _, dp := range generated.DataPoints {
		source, _ := dp.Attributes.Value(telemetry.AttrLabelSource)
		engine, _ := dp.Attributes.Value(telemetry.AttrRenderEngine)
		assert.Equal(t, "fpdf", engine.AsString())
		bySource[source.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"carrier": 1, "fallback": 1}, bySource)

	fallback := got["label_fallback_total"].Data.(metricdata.Sum[int64])
	require.Len(t, fallback.DataPoints, 1)
	assert.Equal(t, int64(1), fallback.DataPoints[0].Value)

	failed := got["label_failed_total"].Data.(metricdata.Sum[int64])
	require.Len(t, failed.DataPoints, 1)
	stage, _ := failed.DataPoints[0].Attributes.Value(telemetry.AttrFailedStage)
	assert.Equal(t, "resolve", stage.AsString())
	assert.Equal(t, int64(2), failed.DataPoints[0].Value)

	render := got["label_render_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.Len(t, render.DataPoints, 1)
	assert.Equal(t, uint64(1), render.DataPoints[0].Count)

	carrier := got["carrier_request_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.Len(t, carrier.DataPoints, 1)
	status, _ := carrier.DataPoints[0].Attributes.Value(telemetry.AttrStatusClass)
	assert.Equal(t, "2xx", status.AsString())
}

func TestLabelMetrics_NilReceiver(t *testing.T) {
	var lm *telemetry.LabelMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		lm.RecordGenerated(ctx, "carrier", "fpdf")
		lm.RecordFallback(ctx)
		lm.RecordFailed(ctx, telemetry.StageRender)
		lm.RecordRenderDuration(ctx, "fpdf", time.Second)
		lm.RecordCarrierRequest(ctx, "error", time.Second)
	})
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "2xx"},
		{204, "2xx"},
		{302, "3xx"},
		{404, "4xx"},
		{503, "5xx"},
		{0, "other"},
		{700, "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, telemetry.StatusClass(tt.code), "code %d", tt.code)
	}
}
