package shipment

import "github.com/shopspring/decimal"

// defaultRecord is the demo shipment used when the carrier answers
// successfully but has no entry for the requested waybill.
// Never hand it out directly; DefaultRecord returns a copy.
var defaultRecord = Record{
	OrderID:      "LF110177",
	AWBNumber:    "LF9358",
	RoutingCode:  "N/S-01/6C/002 RTO",
	ShipmentType: "Standard",
	PaymentMode:  "PREPAID",
	OrderDate:    "08-12-2024",
	ShipmentWt:   "0.83",
	Consignee: Consignee{
		Name:         "Ankush Saha",
		AddressLine1: "Flat No: 1305 Wing: I-23 Evershine",
		AddressLine2: "Amavi 303, Global City, Virar West",
		City:         "Mumbai",
		State:        "Maharashtra",
		Pincode:      "401303",
		ContactPhone: "92845 20941",
		AltPhone:     "9988776655",
	},
	ReturnTo: ReturnAddress{
		CompanyName:  "Lorith France",
		AddressText:  "Plot No.19, Krishna Industrial Park, Bakrol-Dhamvant, Road, opp. Swarnim Industrial Estate, nr. Uma Weigh Bridge, Bakrol Bujrang",
		City:         "Ahmedabad",
		State:        "Gujarat",
		Pincode:      "382430",
		SupportPhone: "+91 8502010701",
		SupportEmail: "care@lorithfrance.com",
		GSTNumber:    "24EGYPP9923H1ZI",
	},
	Courier: Courier{
		Name:        "Xpressbees",
		WeightLabel: "1kg",
	},
	Products: []ProductLine{
		{
			Name:         "Lorith France For Him Giftset, Giftset For Her, classicor & More",
			SKU:          "35878346746774",
			HSNCode:      "",
			Quantity:     1,
			UnitPrice:    decimal.RequireFromString("1016.10"),
			TaxableValue: decimal.RequireFromString("1016.10"),
			CGST:         decimal.RequireFromString("162.80"),
			SGST:         decimal.RequireFromString("162.80"),
			Total:        decimal.RequireFromString("1199.00"),
		},
	},
}

// DefaultRecord returns a fresh copy of the fallback shipment record
func DefaultRecord() *Record {
	return defaultRecord.Clone()
}
