package label_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Pratham6392/shipment/internal/domain/shipment"
	"github.com/Pratham6392/shipment/internal/infrastructure/printing"
	"github.com/Pratham6392/shipment/tests/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCarrierClient struct {
	mock.Mock
}

func (m *MockCarrierClient) FetchShipment(ctx context.Context, waybill string) (*shipment.CarrierResponse, error) {
	args := m.Called(ctx, waybill)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.CarrierResponse), args.Error(1)
}

type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) Render(ctx context.Context, req *printing.RenderRequest) (*printing.RenderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*printing.RenderResult), args.Error(1)
}

func (m *MockPDFRenderer) Close() error {
	return m.Called().Error(0)
}

// carrierResponse decodes records through the carrier wire format
func carrierResponse(t *testing.T, records map[string]*shipment.Record) *shipment.CarrierResponse {
	t.Helper()
	var resp shipment.CarrierResponse
	require.NoError(t, json.Unmarshal(testutil.CarrierBody(t, records), &resp))
	return &resp
}
