// Package shipment holds the shipment record consumed by label rendering,
// the fallback record table and the carrier port used to fetch records.
package shipment

import (
	"github.com/shopspring/decimal"
)

// Record is the shipment data printed on a label.
// JSON tags follow the carrier's wire format so a carrier entry decodes into
// a Record without an intermediate DTO.
type Record struct {
	OrderID      Text          `json:"OrderId"`
	AWBNumber    Text          `json:"AWBNumber"`
	RoutingCode  Text          `json:"RoutingCode"`
	ShipmentType Text          `json:"ShipmentType"`
	PaymentMode  Text          `json:"PaymentMode"`
	OrderDate    Text          `json:"OrderDate"`
	ShipmentWt   Text          `json:"ShipmentWt"`
	Consignee    Consignee     `json:"ConsigneeDetails"`
	ReturnTo     ReturnAddress `json:"ReturnTo"`
	Courier      Courier       `json:"Courier"`
	Products     []ProductLine `json:"Products"`
}

// Consignee is the receiving party
type Consignee struct {
	Name         Text `json:"CustomerName"`
	AddressLine1 Text `json:"CustomerAddress1"`
	AddressLine2 Text `json:"CustomerAddress2"`
	City         Text `json:"City"`
	State        Text `json:"State"`
	Pincode      Text `json:"Pincode"`
	ContactPhone Text `json:"CustomerContact"`
	AltPhone     Text `json:"PhoneNo"`
}

// ReturnAddress is where undelivered parcels go back to
type ReturnAddress struct {
	CompanyName  Text `json:"CompanyName"`
	AddressText  Text `json:"ReturnAddress"`
	City         Text `json:"City"`
	State        Text `json:"State"`
	Pincode      Text `json:"Pincode"`
	SupportPhone Text `json:"ReturnContact"`
	SupportEmail Text `json:"SupportEmail"`
	GSTNumber    Text `json:"GSTNo"`
}

// Courier identifies the carrier service
type Courier struct {
	Name        Text `json:"Name"`
	WeightLabel Text `json:"Weight"`
}

// ProductLine is one invoiced item. Tax fields are carried through for
// display only.
type ProductLine struct {
	Name         Text            `json:"ProductName"`
	SKU          Text            `json:"ProductSKU"`
	HSNCode      Text            `json:"HSN"`
	Quantity     Count           `json:"QTY"`
	UnitPrice    decimal.Decimal `json:"UnitPrice"`
	TaxableValue decimal.Decimal `json:"TaxableValue"`
	CGST         decimal.Decimal `json:"CGST"`
	SGST         decimal.Decimal `json:"SGST"`
	Total        decimal.Decimal `json:"Total"`
}

// FirstProduct returns the line printed in the product table
func (r *Record) FirstProduct() (ProductLine, bool) {
	if r == nil || len(r.Products) == 0 {
		return ProductLine{}, false
	}
	return r.Products[0], true
}

// Clone returns a deep copy so callers can adjust a record without
// touching the original.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	if r.Products != nil {
		c.Products = make([]ProductLine, len(r.Products))
		copy(c.Products, r.Products)
	}
	return &c
}
