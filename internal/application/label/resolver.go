// Package label orchestrates label generation: resolving the shipment record
// for a waybill, laying it out and drawing it with the configured engine.
package label

import (
	"context"

	"github.com/Pratham6392/shipment/internal/domain/shipment"
	"github.com/Pratham6392/shipment/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ResolverConfig controls fallback handling
type ResolverConfig struct {
	// OverrideFallbackAWB prints the requested waybill on fallback labels
	// instead of the default record's own AWB number
	OverrideFallbackAWB bool
}

// Resolver maps a waybill to the record to print
type Resolver struct {
	carrier shipment.CarrierClient
	config  ResolverConfig
	logger  *zap.Logger
}

// NewResolver creates a Resolver backed by carrier
func NewResolver(carrier shipment.CarrierClient, config ResolverConfig, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		carrier: carrier,
		config:  config,
		logger:  logger,
	}
}

// Resolve validates waybill, asks the carrier once and returns the entry
// stored under waybill. A successful reply without that entry yields the
// default record. Carrier failures are returned as upstream errors and never
// fall back.
func (r *Resolver) Resolve(ctx context.Context, waybill string) (*ResolveResult, error) {
	waybill, err := shipment.ValidateWaybill(waybill)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanResolve,
		telemetry.WithAttribute(telemetry.SpanAttrWaybill, waybill),
	)
	defer span.End()

	resp, err := r.carrier.FetchShipment(ctx, waybill)
	if err != nil {
		r.logger.Error("Failed to fetch shipment data",
			zap.String("waybill", waybill),
			zap.Error(err),
		)
		upstream := shipment.NewUpstreamError("failed to fetch shipment data from carrier", err)
		telemetry.RecordError(span, upstream)
		return nil, upstream
	}

	rec, found, err := resp.Lookup(waybill)
	if err != nil {
		r.logger.Error("Carrier entry could not be decoded",
			zap.String("waybill", waybill),
			zap.Error(err),
		)
		upstream := shipment.NewUpstreamError("carrier returned an unreadable shipment entry", err)
		telemetry.RecordError(span, upstream)
		return nil, upstream
	}

	result := &ResolveResult{Record: rec, Source: SourceCarrier}
	if !found {
		result = &ResolveResult{Record: shipment.DefaultRecord(), Source: SourceFallback}
		if r.config.OverrideFallbackAWB {
			result.Record.AWBNumber = shipment.Text(waybill)
		}
		r.logger.Info("Waybill not found in carrier response, using default record",
			zap.String("waybill", waybill),
			zap.Bool("override_awb", r.config.OverrideFallbackAWB),
		)
		telemetry.AddEvent(span, "fallback_used", "override_awb", r.config.OverrideFallbackAWB)
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrSource, result.Source.String())
	telemetry.SetOK(span)
	return result, nil
}
