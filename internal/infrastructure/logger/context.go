package logger

import (
	"context"

	"github.com/Pratham6392/shipment/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// WaybillKey is the context key for the waybill being processed
	WaybillKey contextKey = "waybill"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID adds request ID to context and returns enriched logger
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// WithWaybill adds the waybill to context and returns enriched logger
func WithWaybill(ctx context.Context, logger *zap.Logger, waybill string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, WaybillKey, waybill)
	enriched := logger.With(zap.String("waybill", waybill))
	return WithContext(ctx, enriched), enriched
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetWaybill retrieves the waybill from context
func GetWaybill(ctx context.Context) string {
	if waybill, ok := ctx.Value(WaybillKey).(string); ok {
		return waybill
	}
	return ""
}

// WithTraceContext adds trace_id and span_id from the active span.
// Without a valid span the logger is returned unchanged.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	traceID, spanID, ok := telemetry.SpanIDs(ctx)
	if !ok {
		return logger
	}
	return logger.With(
		zap.String("trace_id", traceID),
		zap.String("span_id", spanID),
	)
}

// L returns the context logger with trace correlation fields added.
// Request and waybill fields are already on loggers stored by WithRequestID
// and WithWaybill.
//
//	logger.L(ctx).Info("label generated", zap.String("engine", "fpdf"))
func L(ctx context.Context) *zap.Logger {
	return WithTraceContext(ctx, FromContext(ctx))
}
