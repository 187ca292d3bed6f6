package printing

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/Pratham6392/shipment/internal/domain/label"
	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

const (
	fontFamily = "Helvetica"
	// Helvetica ascender, as a fraction of the font size. Block anchors
	// are the top of the first line; fpdf places text on its baseline.
	fontAscent = 0.718
	// Line advance as a fraction of the font size (ascender - descender + gap)
	lineSpacing = 1.156
	producer    = "shiplabel"
)

// DefaultDocumentDate is stamped into the PDF info dictionary so identical
// records produce identical bytes
var DefaultDocumentDate = time.Date(2024, time.December, 8, 0, 0, 0, 0, time.UTC)

// FPDFConfig contains configuration for the fpdf renderer
type FPDFConfig struct {
	// Author and Creator are written to the document metadata
	Author  string
	Creator string
	// DocumentDate is used for CreationDate and ModDate (default: DefaultDocumentDate)
	DocumentDate time.Time
	// Logger for debug output
	Logger *zap.Logger
}

// FPDFRenderer draws label documents in memory with the PDF core fonts.
// It needs no external process and no temporary files.
type FPDFRenderer struct {
	config *FPDFConfig
	logger *zap.Logger
}

// NewFPDFRenderer creates a new fpdf-based PDF renderer
func NewFPDFRenderer(config *FPDFConfig) *FPDFRenderer {
	if config == nil {
		config = &FPDFConfig{}
	}
	if config.DocumentDate.IsZero() {
		config.DocumentDate = DefaultDocumentDate
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FPDFRenderer{
		config: config,
		logger: logger,
	}
}

// Render draws every block of the document onto a single page
func (r *FPDFRenderer) Render(_ context.Context, req *RenderRequest) (*RenderResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	startTime := time.Now()
	doc := req.Document

	pdf := r.newPDF(doc)
	c := &canvas{pdf: pdf}
	for _, b := range doc.Blocks {
		c.draw(b)
	}
	if pdf.Err() {
		return nil, NewRenderError(ErrCodeRenderFailed, "fpdf drawing failed", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "fpdf output failed", err)
	}
	if buf.Len() == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	pdfData := buf.Bytes()
	renderDuration := time.Since(startTime)

	r.logger.Debug("PDF rendered",
		zap.String("engine", string(EngineFPDF)),
		zap.Int("bytes", len(pdfData)),
		zap.Int("blocks", len(doc.Blocks)),
		zap.Duration("duration", renderDuration))

	return &RenderResult{
		PDFData:        pdfData,
		PageCount:      estimatePageCount(pdfData),
		RenderDuration: renderDuration,
	}, nil
}

// newPDF creates a one-page document sized to the label page
func (r *FPDFRenderer) newPDF(doc *label.Document) *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: doc.Page.Width, Ht: doc.Page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	// Uncompressed content streams keep the drawn text searchable
	pdf.SetCompression(false)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(r.config.DocumentDate)
	pdf.SetModificationDate(r.config.DocumentDate)
	pdf.SetProducer(producer, false)
	pdf.SetTitle(doc.Title, true)
	if doc.Subject != "" {
		pdf.SetSubject(doc.Subject, true)
	}
	if r.config.Author != "" {
		pdf.SetAuthor(r.config.Author, true)
	}
	if r.config.Creator != "" {
		pdf.SetCreator(r.config.Creator, true)
	}
	pdf.AddPage()
	return pdf
}

// Close releases resources (no-op for fpdf)
func (r *FPDFRenderer) Close() error {
	return nil
}

// canvas is the draw-dispatch loop over label blocks
type canvas struct {
	pdf *fpdf.Fpdf
}

func (c *canvas) draw(b label.Block) {
	switch b.Kind {
	case label.KindText:
		c.drawText(b)
	case label.KindRule:
		c.drawRule(b)
	case label.KindBanner:
		c.drawBanner(b)
	case label.KindTable:
		c.drawTable(b)
	}
}

func (c *canvas) setStyle(s label.Style) {
	style := ""
	if s.Weight == label.WeightBold {
		style = "B"
	}
	c.pdf.SetFont(fontFamily, style, s.Size)
	c.pdf.SetTextColor(int(s.Color.R), int(s.Color.G), int(s.Color.B))
}

func lineAdvance(size float64) float64 {
	return size * lineSpacing
}

// wrap splits text into lines no wider than width. Words longer than the
// width are broken between characters. A zero width disables wrapping.
func (c *canvas) wrap(text string, width float64) []string {
	if width <= 0 {
		return []string{toWinAnsi(text)}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	space := c.pdf.GetStringWidth(" ")
	var lines []string
	var line string
	var lineWidth float64
	for _, w := range words {
		word := toWinAnsi(w)
		ww := c.pdf.GetStringWidth(word)
		if ww > width {
			if line != "" {
				lines = append(lines, line)
			}
			pieces := c.breakWord(word, width)
			lines = append(lines, pieces[:len(pieces)-1]...)
			line = pieces[len(pieces)-1]
			lineWidth = c.pdf.GetStringWidth(line)
			continue
		}
		switch {
		case line == "":
			line, lineWidth = word, ww
		case lineWidth+space+ww <= width:
			line += " " + word
			lineWidth += space + ww
		default:
			lines = append(lines, line)
			line, lineWidth = word, ww
		}
	}
	return append(lines, line)
}

// breakWord cuts an encoded word into pieces no wider than width. Each piece
// holds at least one byte so a column narrower than a glyph still advances.
func (c *canvas) breakWord(word string, width float64) []string {
	var pieces []string
	start := 0
	for i := 1; i <= len(word); i++ {
		if i-start > 1 && c.pdf.GetStringWidth(word[start:i]) > width {
			pieces = append(pieces, word[start:i-1])
			start = i - 1
		}
	}
	return append(pieces, word[start:])
}

// writeLines draws pre-wrapped lines downward from top and returns the top
// of the line after the last one.
func (c *canvas) writeLines(lines []string, x, top, width, step float64, align label.Align, size float64) float64 {
	y := top
	for _, line := range lines {
		if line != "" {
			lx := x
			if width > 0 {
				switch align {
				case label.AlignRight:
					lx = x + width - c.pdf.GetStringWidth(line)
				case label.AlignCenter:
					lx = x + (width-c.pdf.GetStringWidth(line))/2
				}
			}
			c.pdf.Text(lx, y+size*fontAscent, line)
		}
		y += step
	}
	return y
}

func (c *canvas) drawText(b label.Block) {
	y := b.Anchor.Y
	for _, run := range b.Runs {
		c.setStyle(run.Style)
		step := b.LineHeight
		if step == 0 {
			step = lineAdvance(run.Style.Size)
		}
		y = c.writeLines(c.wrap(run.Text, b.Width), b.Anchor.X, y, b.Width, step, b.Align, run.Style.Size)
	}
}

func (c *canvas) drawRule(b label.Block) {
	stroke := b.Stroke
	if stroke <= 0 {
		stroke = 1
	}
	c.pdf.SetDrawColor(0, 0, 0)
	c.pdf.SetLineWidth(stroke)
	c.pdf.Line(b.Anchor.X, b.Anchor.Y, b.To.X, b.To.Y)
}

func (c *canvas) drawBanner(b label.Block) {
	inner := b.Width - 2*b.Padding
	type wrapped struct {
		run   label.Run
		lines []string
	}
	var runs []wrapped
	height := 2 * b.Padding
	for _, run := range b.Runs {
		c.setStyle(run.Style)
		lines := c.wrap(run.Text, inner)
		runs = append(runs, wrapped{run: run, lines: lines})
		height += float64(len(lines)) * lineAdvance(run.Style.Size)
	}

	c.pdf.SetFillColor(int(b.Fill.R), int(b.Fill.G), int(b.Fill.B))
	c.pdf.Rect(b.Anchor.X, b.Anchor.Y, b.Width, height, "F")

	y := b.Anchor.Y + b.Padding
	for _, w := range runs {
		c.setStyle(w.run.Style)
		y = c.writeLines(w.lines, b.Anchor.X+b.Padding, y, inner, lineAdvance(w.run.Style.Size), b.Align, w.run.Style.Size)
	}
}

func (c *canvas) drawTable(b label.Block) {
	t := b.Table
	if t == nil {
		return
	}

	headerStep := lineAdvance(t.HeaderStyle.Size)
	c.setStyle(t.HeaderStyle)
	rowTop := b.Anchor.Y
	x := b.Anchor.X
	for _, col := range t.Columns {
		inner := col.Width - t.CellPadding
		bottom := c.writeLines(c.wrap(col.Title, inner), x, b.Anchor.Y, inner, headerStep, col.Align, t.HeaderStyle.Size)
		rowTop = max(rowTop, bottom)
		x += col.Width
	}
	rowTop += t.RowGap

	bodyStep := lineAdvance(t.BodyStyle.Size)
	for _, row := range t.Rows {
		c.setStyle(t.BodyStyle)
		rowBottom := rowTop
		x = b.Anchor.X
		for i, col := range t.Columns {
			if i >= len(row) {
				break
			}
			inner := col.Width - t.CellPadding
			y := rowTop
			for _, line := range row[i] {
				y = c.writeLines(c.wrap(line, inner), x, y, inner, bodyStep, col.Align, t.BodyStyle.Size)
			}
			rowBottom = max(rowBottom, y)
			x += col.Width
		}
		rowTop = rowBottom + t.RowGap
	}
}

// Ensure FPDFRenderer implements PDFRenderer
var _ PDFRenderer = (*FPDFRenderer)(nil)
