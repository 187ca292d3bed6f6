package carrier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Pratham6392/shipment/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
)

const entryJSON = `{"OrderId":"ORD1","AWBNumber":"AWB1","ConsigneeDetails":{"CustomerName":"Jane"},"Products":[{"ProductName":"Mug","QTY":"2","UnitPrice":"10.50"}]}`

func newTestClient(t *testing.T, server *httptest.Server, opts ...Option) *Client {
	t.Helper()
	cfg := NewConfig("test-signature")
	cfg.BaseURL = server.URL
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	client, err := NewClient(cfg, opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(nil)
	assert.ErrorIs(t, err, ErrConfigMissingBaseURL)

	cfg := NewConfig("")
	cfg.BaseURL = "not a url"
	_, err = NewClient(cfg)
	assert.ErrorIs(t, err, ErrConfigInvalidBaseURL)
}

func TestClient_FetchShipment_Request(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotHeader http.Header
		gotBody   map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotHeader = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"resultDetails":{"AWB1":`+entryJSON+`}}`)
	}))
	defer server.Close()

	resp, err := newTestClient(t, server).FetchShipment(context.Background(), "AWB1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, DefaultLabelPath, gotPath)
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, "application/json", gotHeader.Get("Accept"))
	assert.Equal(t, "test-signature", gotHeader.Get("signature"))
	assert.Equal(t, map[string]any{"waybill": "AWB1"}, gotBody)

	rec, found, err := resp.Lookup("AWB1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "ORD1", rec.OrderID.String())
	assert.Equal(t, "Jane", rec.Consignee.Name.String())
}

func TestClient_FetchShipment_Responses(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   error
		wantFound bool
	}{
		{
			name:      "entry present",
			status:    http.StatusOK,
			body:      `{"resultDetails":{"AWB1":` + entryJSON + `}}`,
			wantFound: true,
		},
		{
			name:   "entry absent",
			status: http.StatusOK,
			body:   `{"resultDetails":{"OTHER":` + entryJSON + `}}`,
		},
		{
			name:   "entry null",
			status: http.StatusOK,
			body:   `{"resultDetails":{"AWB1":null}}`,
		},
		{
			name:   "empty result details",
			status: http.StatusOK,
			body:   `{"resultDetails":{}}`,
		},
		{
			name:    "result details missing",
			status:  http.StatusOK,
			body:    `{"status":"ok"}`,
			wantErr: ErrCarrierMalformedResponse,
		},
		{
			name:    "result details null",
			status:  http.StatusOK,
			body:    `{"resultDetails":null}`,
			wantErr: ErrCarrierMalformedResponse,
		},
		{
			name:    "not json",
			status:  http.StatusOK,
			body:    `<html>gateway</html>`,
			wantErr: ErrCarrierMalformedResponse,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"message":"boom"}`,
			wantErr: ErrCarrierRequestFailed,
		},
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{}`,
			wantErr: ErrCarrierRequestFailed,
		},
		{
			name:    "redirect is not success",
			status:  http.StatusNotModified,
			wantErr: ErrCarrierRequestFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			resp, err := newTestClient(t, server).FetchShipment(context.Background(), "AWB1")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			_, found, err := resp.Lookup("AWB1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func TestClient_FetchShipment_StatusInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestClient(t, server).FetchShipment(context.Background(), "AWB1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_FetchShipment_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(t, server)
	server.Close()

	_, err := client.FetchShipment(context.Background(), "AWB1")
	assert.ErrorIs(t, err, ErrCarrierUnavailable)
}

func TestClient_FetchShipment_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	cfg := NewConfig("sig")
	cfg.BaseURL = server.URL
	cfg.Timeout = 50 * time.Millisecond
	client, err := NewClient(cfg)
	require.NoError(t, err)

	_, err = client.FetchShipment(context.Background(), "AWB1")
	assert.ErrorIs(t, err, ErrCarrierUnavailable)
}

func TestClient_FetchShipment_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"resultDetails":{}}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, server).FetchShipment(ctx, "AWB1")
	assert.ErrorIs(t, err, ErrCarrierUnavailable)
}

func TestClient_FetchShipment_ResponseLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"resultDetails":{"AWB1":`+entryJSON+`}}`)
	}))
	defer server.Close()

	cfg := NewConfig("sig")
	cfg.BaseURL = server.URL
	cfg.MaxResponseBytes = 20
	client, err := NewClient(cfg)
	require.NoError(t, err)

	_, err = client.FetchShipment(context.Background(), "AWB1")
	assert.ErrorIs(t, err, ErrCarrierMalformedResponse, "a truncated body does not decode")
}

func TestClient_FetchShipment_RecordsLatency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	reader := sdkmetric.NewManualReader()
	mp := telemetry.NewMeterProviderWithReader(reader, nil)
	lm, err := telemetry.NewLabelMetrics(mp.Meter("test"))
	require.NoError(t, err)

	_, err = newTestClient(t, server, WithMetrics(lm)).FetchShipment(context.Background(), "AWB1")
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var statuses []string
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "carrier_request_duration_seconds" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Histogram[float64]).DataPoints {
				v, _ := dp.Attributes.Value(telemetry.AttrStatusClass)
				statuses = append(statuses, v.AsString())
			}
		}
	}
	assert.Equal(t, []string{"5xx"}, statuses)
}

func TestClient_WithHTTPClient(t *testing.T) {
	var called bool
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"resultDetails":{}}`)),
			Header:     make(http.Header),
		}, nil
	})}

	client, err := NewClient(NewConfig("sig"), WithHTTPClient(hc))
	require.NoError(t, err)

	_, err = client.FetchShipment(context.Background(), "AWB1")
	require.NoError(t, err)
	assert.True(t, called)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
