package label

import (
	"context"
	"errors"

	"github.com/Pratham6392/shipment/internal/domain/shared"
	"github.com/Pratham6392/shipment/internal/domain/shipment"
	"github.com/Pratham6392/shipment/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Service produces shipping labels for waybills
type Service struct {
	resolver *Resolver
	renderer *Renderer
	metrics  *telemetry.LabelMetrics
	logger   *zap.Logger
}

// NewService creates a Service. metrics may be nil.
func NewService(resolver *Resolver, renderer *Renderer, metrics *telemetry.LabelMetrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		resolver: resolver,
		renderer: renderer,
		metrics:  metrics,
		logger:   logger,
	}
}

// EngineName returns the drawing engine labels are rendered with
func (s *Service) EngineName() string {
	return s.renderer.EngineName()
}

// Generate resolves waybill and renders its label. Errors are
// *shared.DomainError values with a validation, upstream or render code.
func (s *Service) Generate(ctx context.Context, waybill string) (*LabelResult, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanGenerate,
		telemetry.WithAttribute(telemetry.SpanAttrWaybill, waybill),
	)
	defer span.End()

	waybill, err := shipment.ValidateWaybill(waybill)
	if err != nil {
		s.fail(ctx, span, telemetry.StageValidate, err)
		return nil, err
	}

	resolved, err := s.resolver.Resolve(ctx, waybill)
	if err != nil {
		s.fail(ctx, span, telemetry.StageResolve, err)
		return nil, err
	}
	if resolved.Source == SourceFallback {
		s.metrics.RecordFallback(ctx)
	}

	documentID := uuid.New()
	rendered, err := s.renderer.render(ctx, resolved.Record, documentID.String())
	if err != nil {
		s.fail(ctx, span, telemetry.StageRender, err)
		return nil, err
	}

	result := &LabelResult{
		Waybill:    waybill,
		Filename:   Filename(waybill),
		Content:    rendered.PDFData,
		Source:     resolved.Source,
		DocumentID: documentID,
		Engine:     s.EngineName(),
	}
	s.metrics.RecordGenerated(ctx, result.Source.String(), result.Engine)

	s.logger.Info("Shipping label generated",
		zap.String("waybill", waybill),
		zap.String("source", result.Source.String()),
		zap.String("engine", result.Engine),
		zap.String("document_id", documentID.String()),
		zap.Int("bytes", len(result.Content)),
		zap.Duration("render_duration", rendered.RenderDuration),
	)

	telemetry.SetAttributes(span,
		telemetry.SpanAttrSource, result.Source.String(),
		telemetry.SpanAttrDocumentID, documentID.String(),
	)
	telemetry.SetOK(span)
	return result, nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, stage telemetry.FailedStage, err error) {
	s.metrics.RecordFailed(ctx, stage)
	telemetry.RecordError(span, err)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		telemetry.SetAttributes(span, "error.code", domainErr.Code)
	}
}
