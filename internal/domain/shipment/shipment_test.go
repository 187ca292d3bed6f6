package shipment

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Pratham6392/shipment/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const carrierEntry = `{
	"OrderId": "ORD-1",
	"AWBNumber": "AWB123",
	"RoutingCode": "RC-9",
	"ShipmentType": "Express",
	"PaymentMode": "COD",
	"OrderDate": "01-01-2025",
	"ShipmentWt": 1.25,
	"ConsigneeDetails": {
		"CustomerName": "Jane Doe",
		"CustomerAddress1": "12 Main Road",
		"CustomerAddress2": null,
		"City": "Pune",
		"State": "Maharashtra",
		"Pincode": 411001,
		"CustomerContact": "99999 11111",
		"PhoneNo": "8888822222"
	},
	"ReturnTo": {
		"CompanyName": "Acme",
		"ReturnAddress": "Warehouse 4",
		"City": "Surat",
		"State": "Gujarat",
		"Pincode": "395003",
		"ReturnContact": "+91 1234567890",
		"SupportEmail": "help@acme.test",
		"GSTNo": "24ABCDE1234F1Z5"
	},
	"Courier": {"Name": "Delhivery", "Weight": "0.5kg"},
	"Products": [
		{"ProductName": "Widget", "ProductSKU": "W-1", "HSN": 3303, "QTY": "2",
		 "UnitPrice": 1016.1, "TaxableValue": "1016.10", "CGST": 91.45, "SGST": 91.45, "Total": 1199}
	]
}`

func TestRecord_DecodeCarrierEntry(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(carrierEntry), &rec))

	assert.Equal(t, Text("ORD-1"), rec.OrderID)
	assert.Equal(t, Text("AWB123"), rec.AWBNumber)
	assert.Equal(t, Text("1.25"), rec.ShipmentWt)
	assert.Equal(t, Text("411001"), rec.Consignee.Pincode)
	assert.Equal(t, Text(""), rec.Consignee.AddressLine2)
	assert.Equal(t, Text("0.5kg"), rec.Courier.WeightLabel)

	p, ok := rec.FirstProduct()
	require.True(t, ok)
	assert.Equal(t, Text("3303"), p.HSNCode)
	assert.Equal(t, Count(2), p.Quantity)
	assert.True(t, p.UnitPrice.Equal(decimal.RequireFromString("1016.1")))
	assert.True(t, p.Total.Equal(decimal.NewFromInt(1199)))
}

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Text
		wantErr bool
	}{
		{name: "string", input: `"abc"`, want: "abc"},
		{name: "integer", input: `42`, want: "42"},
		{name: "decimal", input: `0.83`, want: "0.83"},
		{name: "bool", input: `true`, want: "true"},
		{name: "null", input: `null`, want: ""},
		{name: "object", input: `{"a":1}`, wantErr: true},
		{name: "array", input: `[1]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Text
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Count
		wantErr bool
	}{
		{name: "number", input: `3`, want: 3},
		{name: "float number", input: `1.0`, want: 1},
		{name: "numeric string", input: `"4"`, want: 4},
		{name: "empty string", input: `""`, want: 0},
		{name: "null", input: `null`, want: 0},
		{name: "negative", input: `-1`, wantErr: true},
		{name: "garbage", input: `"two"`, wantErr: true},
		{name: "max int32", input: `2147483647`, want: 2147483647},
		{name: "whole exponent", input: `1e3`, want: 1000},
		{name: "overflowing float", input: `1e30`, wantErr: true},
		{name: "overflowing string", input: `"1e19"`, wantErr: true},
		{name: "just past int64", input: `9.5e18`, wantErr: true},
		{name: "above int32", input: `2147483648`, wantErr: true},
		{name: "fractional", input: `1.9`, wantErr: true},
		{name: "fractional string", input: `"0.5"`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Count
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "1", Count(1).String())
}

func TestCarrierResponse_Lookup(t *testing.T) {
	body := `{"resultDetails": {"AWB123": ` + carrierEntry + `, "NULLED": null, "BROKEN": {"Products": "nope"}}}`
	var resp CarrierResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	t.Run("returns entry stored under waybill", func(t *testing.T) {
		rec, found, err := resp.Lookup("AWB123")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, Text("ORD-1"), rec.OrderID)
	})

	t.Run("absent key is not found", func(t *testing.T) {
		rec, found, err := resp.Lookup("MISSING")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, rec)
	})

	t.Run("null entry is not found", func(t *testing.T) {
		_, found, err := resp.Lookup("NULLED")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("lookup is exact", func(t *testing.T) {
		_, found, err := resp.Lookup("awb123")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("malformed entry fails", func(t *testing.T) {
		_, _, err := resp.Lookup("BROKEN")
		assert.Error(t, err)
	})

	t.Run("nil response", func(t *testing.T) {
		var nilResp *CarrierResponse
		_, found, err := nilResp.Lookup("AWB123")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestDefaultRecord(t *testing.T) {
	t.Run("matches the demo shipment", func(t *testing.T) {
		rec := DefaultRecord()
		assert.Equal(t, Text("LF110177"), rec.OrderID)
		assert.Equal(t, Text("LF9358"), rec.AWBNumber)
		assert.Equal(t, Text("N/S-01/6C/002 RTO"), rec.RoutingCode)
		assert.Equal(t, Text("PREPAID"), rec.PaymentMode)
		assert.Equal(t, Text("0.83"), rec.ShipmentWt)
		assert.Equal(t, Text("Ankush Saha"), rec.Consignee.Name)
		assert.Equal(t, Text("Lorith France"), rec.ReturnTo.CompanyName)
		assert.Equal(t, Text("Xpressbees"), rec.Courier.Name)
		require.Len(t, rec.Products, 1)
		assert.Equal(t, "1016.10", rec.Products[0].UnitPrice.StringFixed(2))
		assert.Equal(t, "1199.00", rec.Products[0].Total.StringFixed(2))
	})

	t.Run("returns independent copies", func(t *testing.T) {
		a := DefaultRecord()
		a.AWBNumber = "CHANGED"
		a.Products[0].Name = "changed"
		a.Products = append(a.Products, ProductLine{})

		b := DefaultRecord()
		assert.Equal(t, Text("LF9358"), b.AWBNumber)
		assert.Equal(t, Text("Lorith France For Him Giftset, Giftset For Her, classicor & More"), b.Products[0].Name)
		assert.Len(t, b.Products, 1)
	})
}

func TestRecord_FirstProduct(t *testing.T) {
	var nilRec *Record
	_, ok := nilRec.FirstProduct()
	assert.False(t, ok)

	_, ok = (&Record{}).FirstProduct()
	assert.False(t, ok)
}

func TestValidateWaybill(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{name: "plain", input: "LF9358", want: "LF9358"},
		{name: "trims whitespace", input: "  LF9358\n", want: "LF9358"},
		{name: "empty", input: "", wantErr: "waybill is required"},
		{name: "blank", input: "   ", wantErr: "waybill is required"},
		{name: "too long", input: strings.Repeat("A", MaxWaybillLength+1), wantErr: "at most 64"},
		{name: "control character", input: "LF\x009358", wantErr: "invalid characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateWaybill(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, errors.Is(err, shared.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewUpstreamError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstreamError("carrier request failed", cause)

	assert.True(t, errors.Is(err, shared.ErrUpstream))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, shared.ErrValidation))
	assert.Equal(t, "carrier request failed: connection refused", err.Error())
}
