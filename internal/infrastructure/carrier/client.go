// Package carrier implements the shipment.CarrierClient port over the
// carrier's JSON HTTP API.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Pratham6392/shipment/internal/domain/shipment"
	"github.com/Pratham6392/shipment/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Errors returned by FetchShipment
var (
	// ErrCarrierUnavailable means no HTTP response was received
	ErrCarrierUnavailable = errors.New("carrier: service unavailable")
	// ErrCarrierRequestFailed means the carrier answered with a non-2xx status
	ErrCarrierRequestFailed = errors.New("carrier: request failed")
	// ErrCarrierMalformedResponse means the body was not a label payload
	ErrCarrierMalformedResponse = errors.New("carrier: malformed response")
)

// lookupRequest is the body posted to the label endpoint
type lookupRequest struct {
	Waybill string `json:"waybill"`
}

// Client calls the carrier label API
type Client struct {
	config     *Config
	httpClient *http.Client
	metrics    *telemetry.LabelMetrics
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics records carrier latency on lm
func WithMetrics(lm *telemetry.LabelMetrics) Option {
	return func(c *Client) {
		c.metrics = lm
	}
}

// WithLogger sets the client logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient validates config and returns a ready client
func NewClient(config *Config, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, ErrConfigMissingBaseURL
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchShipment posts waybill to the label endpoint and decodes the reply.
// The response must carry a resultDetails object; whether it holds an entry
// for waybill is left to the caller.
func (c *Client) FetchShipment(ctx context.Context, waybill string) (*shipment.CarrierResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanCarrierLookup,
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute(telemetry.SpanAttrWaybill, waybill),
	)
	defer span.End()

	body, err := c.doRequest(ctx, waybill)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var resp shipment.CarrierResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		err = fmt.Errorf("%w: %v", ErrCarrierMalformedResponse, err)
		telemetry.RecordError(span, err)
		return nil, err
	}
	if resp.ResultDetails == nil {
		err = fmt.Errorf("%w: resultDetails missing", ErrCarrierMalformedResponse)
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, "carrier.result_count", len(resp.ResultDetails))
	telemetry.SetOK(span)
	return &resp, nil
}

func (c *Client) doRequest(ctx context.Context, waybill string) ([]byte, error) {
	bodyBytes, err := json.Marshal(lookupRequest{Waybill: waybill})
	if err != nil {
		return nil, fmt.Errorf("carrier: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint(), bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("carrier: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("signature", c.config.Signature)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordCarrierRequest(ctx, "error", time.Since(start))
		c.logger.Error("Carrier request failed",
			zap.String("waybill", waybill),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrCarrierUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxResponseBytes))
	c.metrics.RecordCarrierRequest(ctx, telemetry.StatusClass(resp.StatusCode), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrCarrierUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Carrier returned non-success status",
			zap.String("waybill", waybill),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: HTTP %d", ErrCarrierRequestFailed, resp.StatusCode)
	}

	return body, nil
}

var _ shipment.CarrierClient = (*Client)(nil)
