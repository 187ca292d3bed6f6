package testutil

import (
	"encoding/json"
	"testing"

	"github.com/Pratham6392/shipment/internal/domain/shipment"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// NewFaker returns a seeded faker so failures are reproducible.
func NewFaker(seed uint64) *gofakeit.Faker {
	return gofakeit.New(seed)
}

// FakeWaybill returns a random carrier-style waybill.
func FakeWaybill(f *gofakeit.Faker) string {
	return f.Numerify("AWB##########")
}

// FakeRecord returns a fully populated shipment record for waybill.
func FakeRecord(f *gofakeit.Faker, waybill string) *shipment.Record {
	price := decimal.NewFromFloat(f.Price(10, 5000)).Round(2)
	tax := price.Mul(decimal.RequireFromString("0.09")).Round(2)

	return &shipment.Record{
		OrderID:      shipment.Text(f.Numerify("ORD######")),
		AWBNumber:    shipment.Text(waybill),
		RoutingCode:  shipment.Text(f.Regex(`[A-Z]/[A-Z]-[0-9]{2}/[0-9][A-Z]/[0-9]{3}`)),
		ShipmentType: "Standard",
		PaymentMode:  shipment.Text(f.RandomString([]string{"PREPAID", "COD"})),
		OrderDate:    shipment.Text(f.Date().Format("02-01-2006")),
		ShipmentWt:   shipment.Text(decimal.NewFromFloat(f.Float64Range(0.1, 20)).StringFixed(2)),
		Consignee: shipment.Consignee{
			Name:         shipment.Text(f.Name()),
			AddressLine1: shipment.Text(f.Street()),
			AddressLine2: shipment.Text(f.Street()),
			City:         shipment.Text(f.City()),
			State:        shipment.Text(f.State()),
			Pincode:      shipment.Text(f.Zip()),
			ContactPhone: shipment.Text(f.Phone()),
			AltPhone:     shipment.Text(f.Phone()),
		},
		ReturnTo: shipment.ReturnAddress{
			CompanyName:  shipment.Text(f.Company()),
			AddressText:  shipment.Text(f.Street() + ", " + f.City()),
			City:         shipment.Text(f.City()),
			State:        shipment.Text(f.State()),
			Pincode:      shipment.Text(f.Zip()),
			SupportPhone: shipment.Text(f.Phone()),
			SupportEmail: shipment.Text(f.Email()),
			GSTNumber:    shipment.Text(f.Regex(`[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9]Z[0-9]`)),
		},
		Courier: shipment.Courier{
			Name:        shipment.Text(f.Company()),
			WeightLabel: "1kg",
		},
		Products: []shipment.ProductLine{{
			Name:         shipment.Text(f.ProductName()),
			SKU:          shipment.Text(f.Numerify("##############")),
			HSNCode:      shipment.Text(f.Numerify("####")),
			Quantity:     shipment.Count(f.IntRange(1, 9)),
			UnitPrice:    price,
			TaxableValue: price,
			CGST:         tax,
			SGST:         tax,
			Total:        price.Add(tax).Add(tax),
		}},
	}
}

// CarrierBody encodes records the way the carrier returns them, keyed by waybill.
func CarrierBody(t *testing.T, records map[string]*shipment.Record) []byte {
	t.Helper()

	details := make(map[string]*shipment.Record, len(records))
	for k, v := range records {
		details[k] = v
	}
	body, err := json.Marshal(map[string]interface{}{"resultDetails": details})
	require.NoError(t, err)
	return body
}
