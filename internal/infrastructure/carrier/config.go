package carrier

import (
	"errors"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the carrier QC environment used by the form backend
	DefaultBaseURL = "https://capi-qc.fship.in"
	// DefaultLabelPath is the shipping-label lookup endpoint
	DefaultLabelPath = "/api/shippinglabel"
	// DefaultMaxResponseBytes caps how much of a carrier response is read
	DefaultMaxResponseBytes int64 = 10 << 20
)

// Errors for carrier configuration
var (
	ErrConfigMissingBaseURL = errors.New("carrier: base URL is required")
	ErrConfigInvalidBaseURL = errors.New("carrier: base URL must be an absolute http(s) URL")
	ErrConfigInvalidLimit   = errors.New("carrier: max response bytes must be positive")
	ErrConfigNegativeTime   = errors.New("carrier: timeout cannot be negative")
)

// Config holds the carrier API connection settings
type Config struct {
	// BaseURL is scheme and host, without a trailing path
	BaseURL string
	// LabelPath is appended to BaseURL for label lookups
	LabelPath string
	// Signature is sent verbatim in the "signature" header
	Signature string
	// Timeout bounds one round trip. Zero leaves the transport default.
	Timeout          time.Duration
	MaxResponseBytes int64
}

// NewConfig returns a configuration pointing at the default carrier endpoint
func NewConfig(signature string) *Config {
	return &Config{
		BaseURL:          DefaultBaseURL,
		LabelPath:        DefaultLabelPath,
		Signature:        signature,
		MaxResponseBytes: DefaultMaxResponseBytes,
	}
}

// Validate validates the carrier configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrConfigInvalidBaseURL
	}
	if c.MaxResponseBytes <= 0 {
		return ErrConfigInvalidLimit
	}
	if c.Timeout < 0 {
		return ErrConfigNegativeTime
	}
	return nil
}

// Endpoint returns the full label lookup URL
func (c *Config) Endpoint() string {
	return c.BaseURL + c.LabelPath
}
