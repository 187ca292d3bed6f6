package shipment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// CarrierClient fetches shipping-label data for a waybill from the carrier
type CarrierClient interface {
	FetchShipment(ctx context.Context, waybill string) (*CarrierResponse, error)
}

// CarrierResponse is the carrier's shipping-label payload. Entries stay raw
// until looked up so one malformed entry cannot fail an unrelated waybill.
type CarrierResponse struct {
	ResultDetails map[string]json.RawMessage `json:"resultDetails"`
}

// Lookup decodes the entry stored under waybill. found is false when the key
// is absent or its value is JSON null.
func (r *CarrierResponse) Lookup(waybill string) (rec *Record, found bool, err error) {
	if r == nil || r.ResultDetails == nil {
		return nil, false, nil
	}
	raw, ok := r.ResultDetails[waybill]
	if !ok {
		return nil, false, nil
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false, nil
	}

	var out Record
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, fmt.Errorf("decode result entry for %q: %w", waybill, err)
	}
	return &out, true, nil
}
