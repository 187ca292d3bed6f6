package label

import (
	"strconv"

	"github.com/Pratham6392/shipment/internal/domain/shared"
	"github.com/Pratham6392/shipment/internal/domain/shipment"
	"github.com/shopspring/decimal"
)

// Layout geometry in points. The printable band runs from marginLeft to
// contentRight; the two-column bands split at rightColumnX.
const (
	marginLeft       = 40.0
	contentRight     = 570.0
	contentWidth     = contentRight - marginLeft
	rightColumnX     = 300.0
	leftColumnWidth  = rightColumnX - marginLeft - 10
	rightColumnWidth = contentRight - rightColumnX
	brandX           = 450.0
	shipToWidth      = brandX - marginLeft - 10
)

// Vertical anchors of the fixed bands
const (
	headerBandY     = 20.0
	shipToHeadingY  = 40.0
	consigneeNameY  = 80.0
	consigneeBodyY  = 110.0
	brandMarkY      = 160.0
	upperDividerY   = 300.0
	dimensionsY     = 320.0
	paymentModeY    = 380.0
	lowerDividerY   = 420.0
	shippedByY      = 440.0
	productTableY   = 580.0
	disclaimerY     = 680.0
	footerY         = 720.0
	footerRightX    = 400.0
	closingBannerY  = 750.0
	courierLineStep = 20.0
	brandLineStep   = 30.0
)

// Type scale, largest first: display > title > subheading > label > body > small > fine
const (
	sizeDisplay    = 24.0
	sizeTitle      = 18.0
	sizeSubheading = 16.0
	sizeLabel      = 14.0
	sizeSection    = 13.0
	sizeBody       = 12.0
	sizeSmall      = 10.0
	sizeFine       = 8.0
)

// Fixed parcel dimensions printed next to the weight, in centimeters
const (
	parcelLengthCM = "12.70"
	parcelHeightCM = "7.60"
)

// Fixed copy
const (
	ShipToHeading      = "SHIP TO"
	ShippedByHeading   = "SHIPPED BY (If undelivered, return to)"
	RoutingPlaceholder = "Routing Code: N/A"
	DisclaimerText     = "All the disputes are subject to Gujarat jurisdiction only. Goods once sold will only be taken back or exchanged as per the brand's exchange/return policy."
	FooterNotice       = "THIS IS AN AUTO-GENERATED LABEL AND DOES NOT NEED SIGNATURE"
	FooterAttribution  = "LABEL GENERATED BY GROWNIX VENTURES"
	ClosingBannerText  = "SECURED SHIPMENT BY LORITH FRANCE"
	brandLineOne       = "LŌRITH"
	brandLineTwo       = "FRĀNCE"
)

// ProductTableColumns partition the printable width left to right
var ProductTableColumns = []Column{
	{Title: "Product Description & SKU", Width: 190, Align: AlignLeft},
	{Title: "HSN", Width: 40, Align: AlignLeft},
	{Title: "QTY", Width: 35, Align: AlignLeft},
	{Title: "UNIT PRICE", Width: 60, Align: AlignLeft},
	{Title: "TAXABLE VALUE", Width: 65, Align: AlignLeft},
	{Title: "CGST", Width: 45, Align: AlignLeft},
	{Title: "SGST", Width: 45, Align: AlignLeft},
	{Title: "TOTAL", Width: 50, Align: AlignLeft},
}

// ErrNoProductLines is returned when a record has nothing for the product table
var ErrNoProductLines = shared.NewDomainError(shared.CodeRender, "shipment has no product lines")

// NewRenderError reports a record that cannot be turned into a label
func NewRenderError(message string, cause error) *shared.DomainError {
	return shared.WrapDomainError(shared.CodeRender, message, cause)
}

func regular(size float64) Style {
	return Style{Size: size, Weight: WeightRegular, Color: Black}
}

func text(s string, size float64) Run {
	return Run{Text: s, Style: regular(size)}
}

func boldText(s string, size float64) Run {
	return Run{Text: s, Style: regular(size).Bold()}
}

// FormatMoney renders a monetary amount with exactly two decimals
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatQuantity renders a quantity as an integer
func FormatQuantity(q shipment.Count) string {
	return strconv.Itoa(int(q))
}

// Compose lays out rec on an A4 page. The record is only read.
func Compose(rec *shipment.Record) (*Document, error) {
	if rec == nil {
		return nil, NewRenderError("shipment record is nil", nil)
	}
	product, ok := rec.FirstProduct()
	if !ok {
		return nil, ErrNoProductLines
	}

	doc := &Document{
		Title: "Shipping Label " + rec.AWBNumber.String(),
		Page:  NewPage(PaperSizeA4),
	}
	doc.Blocks = append(doc.Blocks, HeaderBand(rec)...)
	doc.Blocks = append(doc.Blocks, ShipTo(rec)...)
	doc.Blocks = append(doc.Blocks, BrandMark()...)
	doc.Blocks = append(doc.Blocks, UpperDivider()...)
	doc.Blocks = append(doc.Blocks, DimensionsPayment(rec)...)
	doc.Blocks = append(doc.Blocks, CourierAWB(rec)...)
	doc.Blocks = append(doc.Blocks, LowerDivider()...)
	doc.Blocks = append(doc.Blocks, ShippedBy(rec)...)
	doc.Blocks = append(doc.Blocks, OrderBlock(rec)...)
	doc.Blocks = append(doc.Blocks, ProductTable(product)...)
	doc.Blocks = append(doc.Blocks, Disclaimer()...)
	doc.Blocks = append(doc.Blocks, Footer()...)
	doc.Blocks = append(doc.Blocks, ClosingBanner()...)
	return doc, nil
}

// HeaderBand is the right-aligned shipment line at the top of the page
func HeaderBand(rec *shipment.Record) []Block {
	return []Block{{
		Section: SectionHeaderBand,
		Kind:    KindText,
		Anchor:  Point{X: marginLeft, Y: headerBandY},
		Width:   contentWidth,
		Align:   AlignRight,
		Runs:    []Run{text("SECURED SHIPMENT - "+rec.AWBNumber.String(), sizeSubheading)},
	}}
}

// ShipTo is the consignee block
func ShipTo(rec *shipment.Record) []Block {
	c := rec.Consignee
	return []Block{
		{
			Section: SectionShipTo,
			Kind:    KindText,
			Anchor:  Point{X: marginLeft, Y: shipToHeadingY},
			Width:   shipToWidth,
			Align:   AlignLeft,
			Runs:    []Run{boldText(ShipToHeading, sizeDisplay)},
		},
		{
			Section: SectionShipTo,
			Kind:    KindText,
			Anchor:  Point{X: marginLeft, Y: consigneeNameY},
			Width:   shipToWidth,
			Align:   AlignLeft,
			Runs:    []Run{boldText(c.Name.String(), sizeTitle)},
		},
		{
			Section: SectionShipTo,
			Kind:    KindText,
			Anchor:  Point{X: marginLeft, Y: consigneeBodyY},
			Width:   shipToWidth,
			Align:   AlignLeft,
			Runs: []Run{
				text(c.AddressLine1.String(), sizeBody),
				text(c.AddressLine2.String(), sizeBody),
				text(c.City.String()+", "+c.State.String()+", India", sizeBody),
				text("Mo:- "+c.ContactPhone.String(), sizeBody),
				text("Phone no: "+c.AltPhone.String(), sizeBody),
			},
		},
	}
}

// BrandMark is the two-line wordmark to the right of the consignee block
func BrandMark() []Block {
	return []Block{{
		Section:    SectionBrandMark,
		Kind:       KindText,
		Anchor:     Point{X: brandX, Y: brandMarkY},
		Width:      contentRight - brandX,
		Align:      AlignRight,
		LineHeight: brandLineStep,
		Runs: []Run{
			text(brandLineOne, sizeDisplay),
			text(brandLineTwo, sizeDisplay),
		},
	}}
}

func divider(section Section, y float64) []Block {
	return []Block{{
		Section: section,
		Kind:    KindRule,
		Anchor:  Point{X: marginLeft, Y: y},
		To:      Point{X: contentRight, Y: y},
		Stroke:  1,
	}}
}

// UpperDivider separates the addresses from the shipment details
func UpperDivider() []Block {
	return divider(SectionUpperDivider, upperDividerY)
}

// LowerDivider separates the shipment details from the return address
func LowerDivider() []Block {
	return divider(SectionLowerDivider, lowerDividerY)
}

// DimensionsPayment is the left column of the shipment details band
func DimensionsPayment(rec *shipment.Record) []Block {
	wt := rec.ShipmentWt.String()
	mode := rec.PaymentMode.String()
	return []Block{
		{
			Section: SectionDimensionsPayment,
			Kind:    KindText,
			Anchor:  Point{X: marginLeft, Y: dimensionsY},
			Width:   leftColumnWidth,
			Align:   AlignLeft,
			Runs: []Run{
				text("Dimensions: "+wt+"*"+parcelLengthCM+"*"+parcelHeightCM+"(cm)", sizeBody),
				text("Weight: "+wt+" kg", sizeBody),
				text("Payment: "+mode, sizeBody),
			},
		},
		{
			Section: SectionDimensionsPayment,
			Kind:    KindText,
			Anchor:  Point{X: marginLeft, Y: paymentModeY},
			Width:   leftColumnWidth,
			Align:   AlignLeft,
			Runs:    []Run{boldText(mode, sizeDisplay)},
		},
	}
}

// CourierAWB is the right column of the shipment details band. The routing
// code is printed twice, the second time as a fixed placeholder; downstream
// scanners expect both lines.
func CourierAWB(rec *shipment.Record) []Block {
	return []Block{{
		Section:    SectionCourierAWB,
		Kind:       KindText,
		Anchor:     Point{X: rightColumnX, Y: dimensionsY},
		Width:      rightColumnWidth,
		Align:      AlignLeft,
		LineHeight: courierLineStep,
		Runs: []Run{
			text("Courier: "+rec.Courier.Name.String()+" "+rec.Courier.WeightLabel.String(), sizeBody),
			text("Awb: "+rec.AWBNumber.String(), sizeBody),
			text("Routing Code: "+rec.RoutingCode.String(), sizeBody),
			text(RoutingPlaceholder, sizeBody),
		},
	}}
}

// ShippedBy is the return address block
func ShippedBy(rec *shipment.Record) []Block {
	r := rec.ReturnTo
	return []Block{{
		Section: SectionShippedBy,
		Kind:    KindText,
		Anchor:  Point{X: marginLeft, Y: shippedByY},
		Width:   leftColumnWidth,
		Align:   AlignLeft,
		Runs: []Run{
			boldText(ShippedByHeading, sizeSection),
			boldText(r.CompanyName.String(), sizeBody),
			text(r.AddressText.String(), sizeSmall),
			text("Support No: "+r.SupportPhone.String(), sizeSmall),
			text("Support Email: "+r.SupportEmail.String(), sizeSmall),
			text("GST NO: "+r.GSTNumber.String(), sizeSmall),
		},
	}}
}

// OrderBlock sits to the right of the return address
func OrderBlock(rec *shipment.Record) []Block {
	return []Block{{
		Section:    SectionOrder,
		Kind:       KindText,
		Anchor:     Point{X: rightColumnX, Y: shippedByY},
		Width:      rightColumnWidth,
		Align:      AlignLeft,
		LineHeight: courierLineStep,
		Runs: []Run{
			text("ORDER ID: #"+rec.OrderID.String(), sizeLabel),
			text("INVOICE DATE: "+rec.OrderDate.String(), sizeLabel),
		},
	}}
}

// ProductTable is the header row and a single data row for p
func ProductTable(p shipment.ProductLine) []Block {
	columns := make([]Column, len(ProductTableColumns))
	copy(columns, ProductTableColumns)

	row := [][]string{
		{p.Name.String(), "SKU: " + p.SKU.String()},
		{p.HSNCode.String()},
		{FormatQuantity(p.Quantity)},
		{FormatMoney(p.UnitPrice)},
		{FormatMoney(p.TaxableValue)},
		{FormatMoney(p.CGST)},
		{FormatMoney(p.SGST)},
		{FormatMoney(p.Total)},
	}

	return []Block{{
		Section: SectionProductTable,
		Kind:    KindTable,
		Anchor:  Point{X: marginLeft, Y: productTableY},
		Width:   contentWidth,
		Table: &Table{
			Columns:     columns,
			Rows:        [][][]string{row},
			HeaderStyle: regular(sizeSmall).Bold(),
			BodyStyle:   regular(sizeSmall),
			CellPadding: 4,
			RowGap:      6,
		},
	}}
}

// Disclaimer is the fixed jurisdiction and returns notice
func Disclaimer() []Block {
	return []Block{{
		Section: SectionDisclaimer,
		Kind:    KindText,
		Anchor:  Point{X: marginLeft, Y: disclaimerY},
		Width:   contentWidth,
		Align:   AlignLeft,
		Runs:    []Run{text(DisclaimerText, sizeSmall)},
	}}
}

// Footer holds the signature notice and the attribution line
func Footer() []Block {
	return []Block{
		{
			Section: SectionFooter,
			Kind:    KindText,
			Anchor:  Point{X: marginLeft, Y: footerY},
			Width:   footerRightX - marginLeft - 10,
			Align:   AlignLeft,
			Runs:    []Run{text(FooterNotice, sizeFine)},
		},
		{
			Section: SectionFooter,
			Kind:    KindText,
			Anchor:  Point{X: footerRightX, Y: footerY},
			Width:   contentRight - footerRightX,
			Align:   AlignLeft,
			Runs:    []Run{text(FooterAttribution, sizeFine)},
		},
	}
}

// ClosingBanner is the dark bar across the bottom of the label
func ClosingBanner() []Block {
	return []Block{{
		Section: SectionClosingBanner,
		Kind:    KindBanner,
		Anchor:  Point{X: marginLeft, Y: closingBannerY},
		Width:   contentWidth,
		Align:   AlignCenter,
		Fill:    Black,
		Padding: 10,
		Runs: []Run{{
			Text:  ClosingBannerText,
			Style: Style{Size: sizeSubheading, Weight: WeightBold, Color: White},
		}},
	}}
}
