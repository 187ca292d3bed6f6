package shipment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Text is a display string decoded leniently from the carrier: JSON strings,
// numbers and booleans are kept as their literal text and null becomes "".
type Text string

// String returns the text as a plain string
func (t Text) String() string {
	return string(t)
}

// IsBlank reports whether the text is empty after trimming
func (t Text) IsBlank() bool {
	return strings.TrimSpace(string(t)) == ""
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case '{', '[':
		return fmt.Errorf("shipment: cannot decode %s into text", kindOf(data[0]))
	default:
		// numbers, true and false keep their literal form
		*t = Text(data)
		return nil
	}
}

// Count is a non-negative integer quantity. The carrier may send it as a
// JSON number, a numeric string or null.
type Count int

// String formats the count as an integer
func (c Count) String() string {
	return strconv.Itoa(int(c))
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*c = 0
			return nil
		}
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return c.set(n, raw)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("shipment: invalid quantity %q", raw)
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("shipment: quantity must be a whole number, got %s", raw)
	}
	if f < 0 {
		return fmt.Errorf("shipment: quantity must not be negative, got %s", raw)
	}
	if f > maxCount {
		return fmt.Errorf("shipment: quantity out of range, got %s", raw)
	}
	*c = Count(int64(f))
	return nil
}

// maxCount bounds quantities so they fit an int on every platform
const maxCount = math.MaxInt32

func (c *Count) set(n int64, raw string) error {
	if n < 0 {
		return fmt.Errorf("shipment: quantity must not be negative, got %s", raw)
	}
	if n > maxCount {
		return fmt.Errorf("shipment: quantity out of range, got %s", raw)
	}
	*c = Count(n)
	return nil
}

func kindOf(b byte) string {
	if b == '{' {
		return "object"
	}
	return "array"
}
