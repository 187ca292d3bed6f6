package label_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	labelapp "github.com/Pratham6392/shipment/internal/application/label"
	"github.com/Pratham6392/shipment/internal/domain/shared"
	"github.com/Pratham6392/shipment/internal/domain/shipment"
	"github.com/Pratham6392/shipment/internal/infrastructure/printing"
	"github.com/Pratham6392/shipment/internal/infrastructure/telemetry"
	"github.com/Pratham6392/shipment/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type serviceFixture struct {
	carrier *MockCarrierClient
	engine  *MockPDFRenderer
	reader  *sdkmetric.ManualReader
	service *labelapp.Service
}

func newServiceFixture(t *testing.T, engine printing.PDFRenderer) *serviceFixture {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := telemetry.NewMeterProviderWithReader(reader, nil)
	metrics, err := telemetry.NewLabelMetrics(mp.Meter("test"))
	require.NoError(t, err)

	fx := &serviceFixture{carrier: new(MockCarrierClient), reader: reader}
	if engine == nil {
		engine = printing.NewFPDFRenderer(nil)
	}
	if m, ok := engine.(*MockPDFRenderer); ok {
		fx.engine = m
	}

	resolver := labelapp.NewResolver(fx.carrier, labelapp.ResolverConfig{}, nil)
	renderer := labelapp.NewRenderer(engine, labelapp.RendererConfig{Engine: printing.EngineFPDF}, metrics, nil)
	fx.service = labelapp.NewService(resolver, renderer, metrics, nil)
	return fx
}

// counterValues sums a counter's data points keyed by the value of key
func (fx *serviceFixture) counterValues(t *testing.T, name string, key attribute.Key) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, fx.reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				v, _ := dp.Attributes.Value(key)
				out[v.AsString()] += dp.Value
			}
		}
	}
	return out
}

func TestService_Generate_FromCarrier(t *testing.T) {
	f := testutil.NewFaker(11)
	waybill := testutil.FakeWaybill(f)
	rec := testutil.FakeRecord(f, waybill)

	fx := newServiceFixture(t, nil)
	fx.carrier.On("FetchShipment", mock.Anything, waybill).
		Return(carrierResponse(t, map[string]*shipment.Record{waybill: rec}), nil).Once()

	result, err := fx.service.Generate(context.Background(), waybill)
	require.NoError(t, err)

	assert.Equal(t, waybill, result.Waybill)
	assert.Equal(t, "shipping_label_"+waybill+".pdf", result.Filename)
	assert.Equal(t, labelapp.SourceCarrier, result.Source)
	assert.Equal(t, "fpdf", result.Engine)
	assert.NotEqual(t, uuid.Nil, result.DocumentID)
	assert.True(t, strings.HasPrefix(string(result.Content), "%PDF-"))
	assert.Contains(t, string(result.Content), "(SECURED SHIPMENT - "+waybill+")")

	assert.Equal(t, map[string]int64{"carrier": 1}, fx.counterValues(t, "label_generated_total", telemetry.AttrLabelSource))
	fx.carrier.AssertExpectations(t)
}

func TestService_Generate_Fallback(t *testing.T) {
	fx := newServiceFixture(t, nil)
	fx.carrier.On("FetchShipment", mock.Anything, "LF9358").
		Return(carrierResponse(t, map[string]*shipment.Record{}), nil)

	result, err := fx.service.Generate(context.Background(), "LF9358")
	require.NoError(t, err)

	assert.Equal(t, labelapp.SourceFallback, result.Source)
	assert.Contains(t, string(result.Content), "(SECURED SHIPMENT - LF9358)")
	assert.Contains(t, string(result.Content), "(Routing Code: N/A)")
	assert.Equal(t, map[string]int64{"fallback": 1}, fx.counterValues(t, "label_generated_total", telemetry.AttrLabelSource))
	assert.Equal(t, map[string]int64{"": 1}, fx.counterValues(t, "label_fallback_total", telemetry.AttrLabelSource))
}

func TestService_Generate_StampsDocumentID(t *testing.T) {
	fx := newServiceFixture(t, new(MockPDFRenderer))
	fx.carrier.On("FetchShipment", mock.Anything, "AWB1").Return(carrierResponse(t, nil), nil)

	var subject string
	fx.engine.On("Render", mock.Anything, mock.AnythingOfType("*printing.RenderRequest")).
		Run(func(args mock.Arguments) {
			subject = args.Get(1).(*printing.RenderRequest).Document.Subject
		}).
		Return(&printing.RenderResult{PDFData: []byte("%PDF-1.4")}, nil)

	result, err := fx.service.Generate(context.Background(), "AWB1")
	require.NoError(t, err)
	assert.Equal(t, result.DocumentID.String(), subject)
}

func TestService_Generate_DistinctDocumentIDs(t *testing.T) {
	fx := newServiceFixture(t, nil)
	fx.carrier.On("FetchShipment", mock.Anything, "AWB1").
		Return(carrierResponse(t, nil), nil)

	first, err := fx.service.Generate(context.Background(), "AWB1")
	require.NoError(t, err)
	second, err := fx.service.Generate(context.Background(), "AWB1")
	require.NoError(t, err)

	assert.NotEqual(t, first.DocumentID, second.DocumentID)
}

func TestService_Generate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		waybill   string
		setup     func(fx *serviceFixture)
		wantErr   error
		wantStage string
	}{
		{
			name:      "empty waybill",
			waybill:   "",
			setup:     func(*serviceFixture) {},
			wantErr:   shared.ErrValidation,
			wantStage: "validate",
		},
		{
			name:    "carrier down",
			waybill: "AWB1",
			setup: func(fx *serviceFixture) {
				fx.carrier.On("FetchShipment", mock.Anything, "AWB1").Return(nil, errors.New("dial tcp: refused"))
			},
			wantErr:   shared.ErrUpstream,
			wantStage: "resolve",
		},
		{
			name:    "record without products",
			waybill: "AWB1",
			setup: func(fx *serviceFixture) {
				rec := shipment.DefaultRecord()
				rec.Products = []shipment.ProductLine{}
				fx.carrier.On("FetchShipment", mock.Anything, "AWB1").
					Return(carrierResponse(t, map[string]*shipment.Record{"AWB1": rec}), nil)
			},
			wantErr:   shared.ErrRender,
			wantStage: "render",
		},
		{
			name:    "engine failure",
			waybill: "AWB1",
			setup: func(fx *serviceFixture) {
				fx.carrier.On("FetchShipment", mock.Anything, "AWB1").Return(carrierResponse(t, nil), nil)
				fx.engine.On("Render", mock.Anything, mock.Anything).
					Return(nil, printing.NewRenderError(printing.ErrCodeRenderFailed, "boom", nil))
			},
			wantErr:   shared.ErrRender,
			wantStage: "render",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newServiceFixture(t, new(MockPDFRenderer))
			tt.setup(fx)

			result, err := fx.service.Generate(context.Background(), tt.waybill)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, map[string]int64{tt.wantStage: 1}, fx.counterValues(t, "label_failed_total", telemetry.AttrFailedStage))
		})
	}
}

func TestService_Generate_ValidationSkipsCarrier(t *testing.T) {
	fx := newServiceFixture(t, nil)

	_, err := fx.service.Generate(context.Background(), strings.Repeat("A", shipment.MaxWaybillLength+1))
	assert.ErrorIs(t, err, shared.ErrValidation)
	fx.carrier.AssertNumberOfCalls(t, "FetchShipment", 0)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		waybill string
		want    string
	}{
		{"LF9358", "shipping_label_LF9358.pdf"},
		{"AWB-12_3.x", "shipping_label_AWB-12_3.x.pdf"},
		{"a/b\\c", "shipping_label_a_b_c.pdf"},
		{`x"; y`, "shipping_label_x___y.pdf"},
		{"é", "shipping_label___.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, labelapp.Filename(tt.waybill), tt.waybill)
	}
}
