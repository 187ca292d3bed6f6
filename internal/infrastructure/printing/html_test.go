package printing

import (
	"strings"
	"testing"

	"github.com/Pratham6392/shipment/internal/domain/label"
	"github.com/Pratham6392/shipment/internal/domain/shipment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLComposer_Compose(t *testing.T) {
	html, err := NewHTMLComposer().Compose(defaultDocument(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Shipping Label LF9358</title>")
	assert.Contains(t, html, "size: 595.28pt 841.89pt")

	for _, s := range label.Sections() {
		assert.Contains(t, html, `data-section="`+string(s)+`"`, "section %s missing", s)
	}

	// Browser engines render UTF-8 directly
	assert.Contains(t, html, "LŌRITH")
	assert.Contains(t, html, "FRĀNCE")
	assert.Contains(t, html, "Routing Code: N/A")
	assert.Contains(t, html, "<td")
	assert.Contains(t, html, "1016.10")
	assert.Contains(t, html, "background-color: #000000")
	assert.Contains(t, html, "color: #ffffff")
}

func TestHTMLComposer_EscapesRecordText(t *testing.T) {
	rec := shipment.DefaultRecord()
	rec.Consignee.Name = `<script>alert("x")</script>`
	rec.Products[0].Name = "Oud & Amber <Giftset>"
	doc, err := label.Compose(rec)
	require.NoError(t, err)

	html, err := NewHTMLComposer().Compose(doc)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Oud &amp; Amber &lt;Giftset&gt;")
}

func TestHTMLComposer_BlankRunKeepsItsLine(t *testing.T) {
	rec := shipment.DefaultRecord()
	rec.Consignee.AddressLine2 = ""
	doc, err := label.Compose(rec)
	require.NoError(t, err)

	html, err := NewHTMLComposer().Compose(doc)
	require.NoError(t, err)
	assert.Contains(t, html, `min-height: 13.87pt; "></p>`)
}

func TestHTMLComposer_NilDocument(t *testing.T) {
	_, err := NewHTMLComposer().Compose(nil)
	requireRenderErrorCode(t, err, ErrCodeInvalidDocument)
}

func TestPt(t *testing.T) {
	assert.Equal(t, "40pt", pt(40))
	assert.Equal(t, "0pt", pt(0))
	assert.Equal(t, "595.28pt", pt(595.2755905511812))
	assert.Equal(t, "13.87pt", pt(12*lineSpacing))
	assert.Equal(t, "0.5pt", pt(0.5))
}
