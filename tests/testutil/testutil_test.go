package testutil

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Pratham6392/shipment/internal/domain/shipment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestContext(t *testing.T) {
	tc := NewTestContext(t)

	assert.NotNil(t, tc.Context)
	assert.NotNil(t, tc.Recorder)
	assert.NotNil(t, tc.Engine)
	assert.Equal(t, http.MethodGet, tc.Context.Request.Method)
}

func TestNewRequestContext_JSONBody(t *testing.T) {
	tc := NewRequestContext(t, http.MethodPost, "/api/generate-shipping-label", `{"waybill":"LF9358"}`)

	assert.Equal(t, http.MethodPost, tc.Context.Request.Method)
	assert.Equal(t, "application/json", tc.Context.Request.Header.Get("Content-Type"))
	assert.EqualValues(t, len(`{"waybill":"LF9358"}`), tc.Context.Request.ContentLength)
}

func TestTestContext_SetRequestID(t *testing.T) {
	tc := NewTestContext(t)
	tc.SetRequestID("req-123")

	id, exists := tc.Context.Get("request_id")
	assert.True(t, exists)
	assert.Equal(t, "req-123", id)
}

func TestNewTestUUID_Deterministic(t *testing.T) {
	assert.Equal(t, NewTestUUID("seed"), NewTestUUID("seed"))
	assert.NotEqual(t, NewTestUUID("seed"), NewTestUUID("other"))
}

func TestFakeRecord(t *testing.T) {
	f := NewFaker(7)
	waybill := FakeWaybill(f)
	rec := FakeRecord(f, waybill)

	assert.Equal(t, shipment.Text(waybill), rec.AWBNumber)
	assert.False(t, rec.OrderID.IsBlank())
	require.Len(t, rec.Products, 1)
	assert.True(t, rec.Products[0].Quantity >= 1)
	assert.True(t, rec.Products[0].Total.GreaterThan(rec.Products[0].UnitPrice))
}

func TestCarrierBody_DecodesBack(t *testing.T) {
	f := NewFaker(11)
	waybill := FakeWaybill(f)
	rec := FakeRecord(f, waybill)

	var resp shipment.CarrierResponse
	require.NoError(t, json.Unmarshal(CarrierBody(t, map[string]*shipment.Record{waybill: rec}), &resp))

	got, found, err := resp.Lookup(waybill)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rec.OrderID, got.OrderID)
	assert.True(t, rec.Products[0].Total.Equal(got.Products[0].Total))
}
