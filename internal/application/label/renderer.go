package label

import (
	"context"
	"time"

	domain "github.com/Pratham6392/shipment/internal/domain/label"
	"github.com/Pratham6392/shipment/internal/domain/shipment"
	"github.com/Pratham6392/shipment/internal/infrastructure/printing"
	"github.com/Pratham6392/shipment/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// RendererConfig selects how labels are drawn
type RendererConfig struct {
	Engine printing.Engine
	// Timeout is passed to engines that run an external process
	Timeout time.Duration
}

// Renderer turns a shipment record into PDF bytes
type Renderer struct {
	engine  printing.PDFRenderer
	config  RendererConfig
	metrics *telemetry.LabelMetrics
	logger  *zap.Logger
}

// NewRenderer creates a Renderer drawing with engine. metrics may be nil.
func NewRenderer(engine printing.PDFRenderer, config RendererConfig, metrics *telemetry.LabelMetrics, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Engine == "" {
		config.Engine = printing.EngineFPDF
	}
	return &Renderer{
		engine:  engine,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// EngineName returns the configured engine, e.g. "fpdf"
func (r *Renderer) EngineName() string {
	return r.config.Engine.String()
}

// Render lays out rec and draws it. The record is not modified.
func (r *Renderer) Render(ctx context.Context, rec *shipment.Record) ([]byte, error) {
	result, err := r.render(ctx, rec, "")
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}

// render draws rec, stamping documentID into the PDF subject when set
func (r *Renderer) render(ctx context.Context, rec *shipment.Record, documentID string) (*printing.RenderResult, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanRender,
		telemetry.WithAttribute(telemetry.SpanAttrEngine, r.EngineName()),
	)
	defer span.End()

	doc, err := domain.Compose(rec)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if documentID != "" {
		doc.ID = documentID
		doc.Subject = documentID
		telemetry.SetAttributes(span, telemetry.SpanAttrDocumentID, documentID)
	}

	var (
		result  *printing.RenderResult
		drawErr error
	)
	start := time.Now()
	telemetry.WithProfilingLabels(ctx, map[string]string{
		telemetry.ProfilingLabelOperation: "render",
		telemetry.ProfilingLabelEngine:    r.EngineName(),
	}, func(ctx context.Context) {
		result, drawErr = r.engine.Render(ctx, &printing.RenderRequest{
			Document: doc,
			Timeout:  r.config.Timeout,
		})
	})
	r.metrics.RecordRenderDuration(ctx, r.EngineName(), time.Since(start))

	if drawErr != nil {
		r.logger.Error("Label rendering failed",
			zap.String("engine", r.EngineName()),
			zap.String("awb", rec.AWBNumber.String()),
			zap.Error(drawErr),
		)
		err := domain.NewRenderError("failed to render shipping label", drawErr)
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrBytes, len(result.PDFData))
	telemetry.SetOK(span)
	return result, nil
}
