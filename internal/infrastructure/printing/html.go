package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/Pratham6392/shipment/internal/domain/label"
)

// labelHTML places every block absolutely on a page of the label's size.
// Text stays UTF-8; the browser engines wrap runs inside their block width.
const labelHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
@page { size: {{.PageWidth}} {{.PageHeight}}; margin: 0; }
html, body { margin: 0; padding: 0; }
body { position: relative; width: {{.PageWidth}}; height: {{.PageHeight}}; font-family: Helvetica, Arial, sans-serif; }
.block { position: absolute; box-sizing: border-box; }
.run { margin: 0; padding: 0; overflow-wrap: break-word; }
.rule { position: absolute; border: none; margin: 0; }
table { border-collapse: collapse; table-layout: fixed; }
th, td { vertical-align: top; text-align: inherit; padding: 0; overflow-wrap: break-word; }
td p { margin: 0; }
</style>
</head>
<body>
{{- range .Blocks}}
{{- if eq .Kind "rule"}}
<hr class="rule" data-section="{{.Section}}" style="{{.Style}}">
{{- else if eq .Kind "table"}}
<div class="block" data-section="{{.Section}}" style="{{.Style}}">
<table style="{{.Table.Style}}">
<colgroup>{{range .Table.Columns}}<col style="{{.Style}}">{{end}}</colgroup>
<thead><tr style="{{.Table.HeaderStyle}}">{{range .Table.Columns}}<th style="{{.CellStyle}}">{{.Title}}</th>{{end}}</tr></thead>
<tbody>{{range .Table.Rows}}<tr>{{range .}}<td style="{{.Style}}">{{range .Lines}}<p>{{.}}</p>{{end}}</td>{{end}}</tr>{{end}}</tbody>
</table>
</div>
{{- else}}
<div class="block" data-section="{{.Section}}" style="{{.Style}}">
{{- range .Runs}}<p class="run" style="{{.Style}}">{{.Text}}</p>{{end}}
</div>
{{- end}}
{{- end}}
</body>
</html>
`

var labelTemplate = template.Must(template.New("label").Parse(labelHTML))

type htmlRun struct {
	Text  string
	Style template.CSS
}

type htmlColumn struct {
	Title     string
	Style     template.CSS
	CellStyle template.CSS
}

type htmlCell struct {
	Lines []string
	Style template.CSS
}

type htmlTable struct {
	Style       template.CSS
	HeaderStyle template.CSS
	Columns     []htmlColumn
	Rows        [][]htmlCell
}

type htmlBlock struct {
	Section string
	Kind    string
	Style   template.CSS
	Runs    []htmlRun
	Table   *htmlTable
}

type htmlPage struct {
	Title      string
	PageWidth  template.CSS
	PageHeight template.CSS
	Blocks     []htmlBlock
}

// HTMLComposer turns a label document into a standalone HTML page for the
// browser-based engines
type HTMLComposer struct{}

// NewHTMLComposer creates a new HTMLComposer
func NewHTMLComposer() *HTMLComposer {
	return &HTMLComposer{}
}

// Compose renders doc as HTML
func (c *HTMLComposer) Compose(doc *label.Document) (string, error) {
	if doc == nil {
		return "", NewRenderError(ErrCodeInvalidDocument, "label document is nil", nil)
	}

	page := htmlPage{
		Title:      doc.Title,
		PageWidth:  template.CSS(pt(doc.Page.Width)),
		PageHeight: template.CSS(pt(doc.Page.Height)),
	}
	for _, b := range doc.Blocks {
		hb := htmlBlock{Section: string(b.Section), Kind: string(b.Kind)}
		switch b.Kind {
		case label.KindRule:
			hb.Style = ruleCSS(b)
		case label.KindTable:
			if b.Table == nil {
				continue
			}
			hb.Style = blockCSS(b)
			hb.Table = tableView(b.Table)
		case label.KindBanner:
			hb.Style = blockCSS(b) + css("background-color", rgb(b.Fill)) + css("padding", pt(b.Padding))
			hb.Runs = runViews(b)
		default:
			hb.Style = blockCSS(b)
			hb.Runs = runViews(b)
		}
		page.Blocks = append(page.Blocks, hb)
	}

	var buf bytes.Buffer
	if err := labelTemplate.Execute(&buf, page); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to compose label HTML", err)
	}
	return buf.String(), nil
}

func blockCSS(b label.Block) template.CSS {
	s := css("left", pt(b.Anchor.X)) + css("top", pt(b.Anchor.Y))
	if b.Width > 0 {
		s += css("width", pt(b.Width))
	} else {
		s += css("white-space", "nowrap")
	}
	return s + css("text-align", string(alignOrLeft(b.Align)))
}

func ruleCSS(b label.Block) template.CSS {
	stroke := b.Stroke
	if stroke <= 0 {
		stroke = 1
	}
	return css("left", pt(b.Anchor.X)) +
		css("top", pt(b.Anchor.Y-stroke/2)) +
		css("width", pt(b.To.X-b.Anchor.X)) +
		css("height", "0") +
		css("border-top", pt(stroke)+" solid #000")
}

func styleCSS(s label.Style) template.CSS {
	weight := "normal"
	if s.Weight == label.WeightBold {
		weight = "bold"
	}
	return css("font-size", pt(s.Size)) +
		css("font-weight", weight) +
		css("color", rgb(s.Color))
}

func runViews(b label.Block) []htmlRun {
	runs := make([]htmlRun, 0, len(b.Runs))
	for _, r := range b.Runs {
		step := b.LineHeight
		if step == 0 {
			step = lineAdvance(r.Style.Size)
		}
		// An empty paragraph still occupies its line
		s := styleCSS(r.Style) + css("line-height", pt(step)) + css("min-height", pt(step))
		runs = append(runs, htmlRun{Text: r.Text, Style: s})
	}
	return runs
}

func tableView(t *label.Table) *htmlTable {
	view := &htmlTable{
		Style:       css("width", pt(t.Width())),
		HeaderStyle: styleCSS(t.HeaderStyle) + css("line-height", pt(lineAdvance(t.HeaderStyle.Size))),
	}
	for _, c := range t.Columns {
		view.Columns = append(view.Columns, htmlColumn{
			Title:     c.Title,
			Style:     css("width", pt(c.Width)),
			CellStyle: css("text-align", string(alignOrLeft(c.Align))) + css("padding-right", pt(t.CellPadding)) + css("padding-bottom", pt(t.RowGap)),
		})
	}
	body := styleCSS(t.BodyStyle) + css("line-height", pt(lineAdvance(t.BodyStyle.Size)))
	for _, row := range t.Rows {
		cells := make([]htmlCell, 0, len(t.Columns))
		for i, col := range t.Columns {
			var lines []string
			if i < len(row) {
				lines = row[i]
			}
			cells = append(cells, htmlCell{
				Lines: lines,
				Style: body + css("text-align", string(alignOrLeft(col.Align))) + css("padding-right", pt(t.CellPadding)) + css("padding-bottom", pt(t.RowGap)),
			})
		}
		view.Rows = append(view.Rows, cells)
	}
	return view
}

func alignOrLeft(a label.Align) label.Align {
	switch a {
	case label.AlignRight, label.AlignCenter:
		return a
	default:
		return label.AlignLeft
	}
}

// css formats one declaration. Values come from numbers and fixed keywords
// only, never from record text.
func css(property, value string) template.CSS {
	return template.CSS(property + ": " + value + "; ")
}

func pt(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "" || s == "-" {
		s = "0"
	}
	return s + "pt"
}

func rgb(c label.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
