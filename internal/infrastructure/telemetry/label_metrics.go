package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics constructor gets no meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// FailedStage names where label generation stopped
type FailedStage string

const (
	StageValidate FailedStage = "validate"
	StageResolve  FailedStage = "resolve"
	StageRender   FailedStage = "render"
)

// LabelMetrics counts generated labels and times the two slow steps,
// the carrier lookup and the PDF drawing.
type LabelMetrics struct {
	generatedTotal  *Counter
	failedTotal     *Counter
	fallbackTotal   *Counter
	renderDuration  *Histogram
	carrierDuration *Histogram
}

// NewLabelMetrics creates the label instruments on meter
func NewLabelMetrics(meter metric.Meter) (*LabelMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	lm := &LabelMetrics{}
	var err error

	lm.generatedTotal, err = NewCounter(meter,
		"label_generated_total",
		"Total number of shipping labels generated",
		"{labels}")
	if err != nil {
		return nil, err
	}

	lm.failedTotal, err = NewCounter(meter,
		"label_failed_total",
		"Total number of label requests that failed",
		"{labels}")
	if err != nil {
		return nil, err
	}

	lm.fallbackTotal, err = NewCounter(meter,
		"label_fallback_total",
		"Total number of labels drawn from the default record",
		"{labels}")
	if err != nil {
		return nil, err
	}

	lm.renderDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "label_render_duration_seconds",
		Description: "PDF drawing latency in seconds",
		Unit:        "s",
		Boundaries:  RenderDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	lm.carrierDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "carrier_request_duration_seconds",
		Description: "Carrier label API latency in seconds",
		Unit:        "s",
		Boundaries:  UpstreamDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return lm, nil
}

// RecordGenerated counts a delivered label
func (lm *LabelMetrics) RecordGenerated(ctx context.Context, source, engine string) {
	if lm == nil {
		return
	}
	lm.generatedTotal.Inc(ctx, AttrLabelSource.String(source), AttrRenderEngine.String(engine))
}

// RecordFallback counts a label drawn from the default record
func (lm *LabelMetrics) RecordFallback(ctx context.Context) {
	if lm == nil {
		return
	}
	lm.fallbackTotal.Inc(ctx)
}

// RecordFailed counts a failed request by stage
func (lm *LabelMetrics) RecordFailed(ctx context.Context, stage FailedStage) {
	if lm == nil {
		return
	}
	lm.failedTotal.Inc(ctx, AttrFailedStage.String(string(stage)))
}

// RecordRenderDuration records how long an engine took to draw a label
func (lm *LabelMetrics) RecordRenderDuration(ctx context.Context, engine string, d time.Duration) {
	if lm == nil {
		return
	}
	lm.renderDuration.RecordDuration(ctx, d, AttrRenderEngine.String(engine))
}

// RecordCarrierRequest records a carrier round trip. status is the HTTP
// status class ("2xx", "5xx") or "error" when no response arrived.
func (lm *LabelMetrics) RecordCarrierRequest(ctx context.Context, status string, d time.Duration) {
	if lm == nil {
		return
	}
	lm.carrierDuration.RecordDuration(ctx, d, AttrStatusClass.String(status))
}

// StatusClass groups an HTTP status code as "2xx", "4xx" and so on
func StatusClass(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return "other"
	}
}
