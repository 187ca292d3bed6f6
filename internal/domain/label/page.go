package label

// PaperSize represents the paper size a label is laid out on
type PaperSize string

const (
	PaperSizeA4 PaperSize = "A4" // 210mm x 297mm
)

// pointsPerMM converts millimeters to PDF points (1/72 inch)
const pointsPerMM = 72.0 / 25.4

// IsValid checks if the PaperSize is a valid value
func (p PaperSize) IsValid() bool {
	return p == PaperSizeA4
}

// String returns the string representation of PaperSize
func (p PaperSize) String() string {
	return string(p)
}

// Dimensions returns the paper dimensions in millimeters (width, height)
func (p PaperSize) Dimensions() (width, height int) {
	switch p {
	case PaperSizeA4:
		return 210, 297
	default:
		return 210, 297 // Default to A4
	}
}

// Points returns the paper dimensions in points (width, height)
func (p PaperSize) Points() (width, height float64) {
	w, h := p.Dimensions()
	return float64(w) * pointsPerMM, float64(h) * pointsPerMM
}

// Page is the single fixed-size canvas of a label. Coordinates are in points
// with the origin at the top-left corner; the outer margin is zero.
type Page struct {
	Size   PaperSize
	Width  float64
	Height float64
}

// NewPage returns the canvas for size
func NewPage(size PaperSize) Page {
	w, h := size.Points()
	return Page{Size: size, Width: w, Height: h}
}
