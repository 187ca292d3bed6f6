package label

import (
	"strings"

	"github.com/Pratham6392/shipment/internal/domain/shipment"
	"github.com/google/uuid"
)

// Source tells where the printed record came from
type Source string

const (
	SourceCarrier  Source = "carrier"
	SourceFallback Source = "fallback"
)

// String implements fmt.Stringer
func (s Source) String() string {
	return string(s)
}

// ResolveResult is the record chosen for a waybill
type ResolveResult struct {
	Record *shipment.Record
	Source Source
}

// LabelResult is a finished label ready for delivery
type LabelResult struct {
	Waybill    string
	Filename   string
	Content    []byte
	Source     Source
	DocumentID uuid.UUID
	Engine     string
}

// Filename returns the download name for waybill. Bytes outside
// [A-Za-z0-9._-] are replaced with '_' so the name is safe in a header.
func Filename(waybill string) string {
	var b strings.Builder
	b.Grow(len(waybill) + len("shipping_label_.pdf"))
	b.WriteString("shipping_label_")
	for i := 0; i < len(waybill); i++ {
		c := waybill[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '_', c == '-':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	b.WriteString(".pdf")
	return b.String()
}
