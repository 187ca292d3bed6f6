package telemetry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Pratham6392/shipment/internal/domain/shared"
	"github.com/Pratham6392/shipment/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// recordSpans installs a recording tracer provider for the test
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})
	return recorder
}

func attrMap(kvs []attribute.KeyValue) map[string]attribute.Value {
	out := make(map[string]attribute.Value, len(kvs))
	for _, kv := range kvs {
		out[string(kv.Key)] = kv.Value
	}
	return out
}

func TestStartSpan(t *testing.T) {
	recorder := recordSpans(t)

	ctx, span := telemetry.StartSpan(context.Background(), telemetry.SpanCarrierLookup,
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute(telemetry.SpanAttrWaybill, "LF9358"),
	)
	traceID, spanID, ok := telemetry.SpanIDs(ctx)
	assert.True(t, ok)
	assert.Len(t, traceID, 32)
	assert.Len(t, spanID, 16)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, telemetry.SpanCarrierLookup, ended[0].Name())
	assert.Equal(t, trace.SpanKindClient, ended[0].SpanKind())
	assert.Equal(t, "shiplabel", ended[0].InstrumentationScope().Name)
	assert.Equal(t, "LF9358", attrMap(ended[0].Attributes())[telemetry.SpanAttrWaybill].AsString())
}

func TestSetAttributes(t *testing.T) {
	recorder := recordSpans(t)

	_, span := telemetry.StartSpan(context.Background(), telemetry.SpanRender)
	telemetry.SetAttributes(span,
		telemetry.SpanAttrEngine, "fpdf",
		telemetry.SpanAttrBytes, 2048,
		42, "non-string key is skipped",
		telemetry.SpanAttrSource, // odd trailing key is ignored
	)
	span.End()

	attrs := attrMap(recorder.Ended()[0].Attributes())
	assert.Len(t, attrs, 2)
	assert.Equal(t, "fpdf", attrs[telemetry.SpanAttrEngine].AsString())
	assert.Equal(t, int64(2048), attrs[telemetry.SpanAttrBytes].AsInt64())
}

func TestRecordErrorAndSetOK(t *testing.T) {
	recorder := recordSpans(t)

	_, failed := telemetry.StartSpan(context.Background(), telemetry.SpanResolve)
	telemetry.RecordError(failed, errors.New("carrier unavailable"))
	failed.End()

	_, ok := telemetry.StartSpan(context.Background(), telemetry.SpanGenerate)
	telemetry.RecordError(ok, nil)
	telemetry.SetOK(ok)
	ok.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "carrier unavailable", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)

	assert.Equal(t, codes.Ok, ended[1].Status().Code)
	assert.Empty(t, ended[1].Events())
}

func TestAddEvent(t *testing.T) {
	recorder := recordSpans(t)

	_, span := telemetry.StartSpan(context.Background(), telemetry.SpanResolve)
	telemetry.AddEvent(span, "fallback_used", "reason", "not_found", "enabled", true)
	span.End()

	events := recorder.Ended()[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "fallback_used", events[0].Name)
	attrs := attrMap(events[0].Attributes)
	assert.Equal(t, "not_found", attrs["reason"].AsString())
	assert.True(t, attrs["enabled"].AsBool())
}

func TestSpanHelpers_NilSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		telemetry.SetAttributes(nil, "k", "v")
		telemetry.RecordError(nil, errors.New("x"))
		telemetry.SetOK(nil)
		telemetry.AddEvent(nil, "e")
	})
}

func TestSpanIDs_NoSpan(t *testing.T) {
	traceID, spanID, ok := telemetry.SpanIDs(context.Background())
	assert.False(t, ok)
	assert.Empty(t, traceID)
	assert.Empty(t, spanID)
}

func TestRecordError_DomainCode(t *testing.T) {
	recorder := recordSpans(t)

	_, span := telemetry.StartSpan(context.Background(), telemetry.SpanResolve)
	telemetry.RecordError(span, fmt.Errorf("resolve: %w", shared.WrapDomainError(shared.CodeUpstream, "carrier down", errors.New("eof"))))
	span.End()

	attrs := attrMap(recorder.Ended()[0].Attributes())
	assert.Equal(t, shared.CodeUpstream, attrs[telemetry.SpanAttrErrorCode].AsString())
}

func TestSetAttributes_Duration(t *testing.T) {
	recorder := recordSpans(t)

	_, span := telemetry.StartSpan(context.Background(), telemetry.SpanRender)
	telemetry.SetAttributes(span, "render.seconds", 1500*time.Millisecond)
	span.End()

	assert.InDelta(t, 1.5, attrMap(recorder.Ended()[0].Attributes())["render.seconds"].AsFloat64(), 1e-9)
}
