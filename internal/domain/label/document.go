package label

// Section names one of the fixed regions of a label, top to bottom
type Section string

const (
	SectionHeaderBand        Section = "header_band"
	SectionShipTo            Section = "ship_to"
	SectionBrandMark         Section = "brand_mark"
	SectionUpperDivider      Section = "upper_divider"
	SectionDimensionsPayment Section = "dimensions_payment"
	SectionCourierAWB        Section = "courier_awb"
	SectionLowerDivider      Section = "lower_divider"
	SectionShippedBy         Section = "shipped_by"
	SectionOrder             Section = "order"
	SectionProductTable      Section = "product_table"
	SectionDisclaimer        Section = "disclaimer"
	SectionFooter            Section = "footer"
	SectionClosingBanner     Section = "closing_banner"
)

// Sections lists every section in drawing order
func Sections() []Section {
	return []Section{
		SectionHeaderBand, SectionShipTo, SectionBrandMark, SectionUpperDivider,
		SectionDimensionsPayment, SectionCourierAWB, SectionLowerDivider,
		SectionShippedBy, SectionOrder, SectionProductTable,
		SectionDisclaimer, SectionFooter, SectionClosingBanner,
	}
}

// BlockKind selects how a block is drawn
type BlockKind string

const (
	KindText   BlockKind = "text"
	KindRule   BlockKind = "rule"
	KindTable  BlockKind = "table"
	KindBanner BlockKind = "banner"
)

// Align is horizontal text alignment inside a block's width
type Align string

const (
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
)

// Weight is the font weight
type Weight string

const (
	WeightRegular Weight = "regular"
	WeightBold    Weight = "bold"
)

// Color is an RGB color
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{}
	White = Color{R: 255, G: 255, B: 255}
)

// Style is the font treatment of a run of text
type Style struct {
	Size   float64
	Weight Weight
	Color  Color
}

// Bold returns a copy of s with bold weight
func (s Style) Bold() Style {
	s.Weight = WeightBold
	return s
}

// Point is a position on the page in points from the top-left corner
type Point struct {
	X, Y float64
}

// Run is one paragraph of a text block. Runs are laid out top to bottom;
// a run wraps inside the block width.
type Run struct {
	Text  string
	Style Style
}

// Column is a fixed-width table column
type Column struct {
	Title string
	Width float64
	Align Align
}

// Table is a header row followed by data rows. Each cell holds one or more
// lines; every line wraps inside its column.
type Table struct {
	Columns     []Column
	Rows        [][][]string
	HeaderStyle Style
	BodyStyle   Style
	// CellPadding is subtracted from the column width when wrapping
	CellPadding float64
	// RowGap separates the header row from the first data row
	RowGap float64
}

// Width returns the sum of the column widths
func (t *Table) Width() float64 {
	var w float64
	for _, c := range t.Columns {
		w += c.Width
	}
	return w
}

// Block is one drawing operation placed at an absolute anchor.
//
// Text blocks draw their runs downward from Anchor. Rule blocks draw a line
// from Anchor to To. Banner blocks fill Width x (text height + 2*Padding)
// with Fill and center their runs inside. Table blocks draw Table with its
// top-left corner at Anchor.
type Block struct {
	Section Section
	Kind    BlockKind
	Anchor  Point
	// Width bounds text wrapping and alignment; zero means unbounded
	Width float64
	Align Align
	Runs  []Run
	// LineHeight fixes the advance between runs; zero derives it from the
	// font size of each run
	LineHeight float64
	To         Point
	Stroke     float64
	Fill       Color
	Padding    float64
	Table      *Table
}

// Document is a fully laid out label, ready for a drawing engine
type Document struct {
	ID      string
	Title   string
	Subject string
	Page    Page
	Blocks  []Block
}

// Section returns the blocks belonging to s in drawing order
func (d *Document) Section(s Section) []Block {
	var out []Block
	for _, b := range d.Blocks {
		if b.Section == s {
			out = append(out, b)
		}
	}
	return out
}

// Texts returns every string the document will draw, in drawing order
func (d *Document) Texts() []string {
	var out []string
	for _, b := range d.Blocks {
		for _, r := range b.Runs {
			out = append(out, r.Text)
		}
		if b.Table != nil {
			for _, c := range b.Table.Columns {
				out = append(out, c.Title)
			}
			for _, row := range b.Table.Rows {
				for _, cell := range row {
					out = append(out, cell...)
				}
			}
		}
	}
	return out
}
