package shipment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Pratham6392/shipment/internal/domain/shared"
)

// MaxWaybillLength bounds the waybill accepted from callers
const MaxWaybillLength = 64

// NewValidationError reports bad caller input. It is raised before any
// carrier call is made.
func NewValidationError(message string) *shared.DomainError {
	return shared.NewDomainError(shared.CodeValidation, message)
}

// NewUpstreamError reports a carrier call that could not be completed
func NewUpstreamError(message string, cause error) *shared.DomainError {
	return shared.WrapDomainError(shared.CodeUpstream, message, cause)
}

// ValidateWaybill trims raw and checks it can be used as a lookup key and in
// a file name.
func ValidateWaybill(raw string) (string, error) {
	waybill := strings.TrimSpace(raw)
	if waybill == "" {
		return "", NewValidationError("waybill is required")
	}
	if utf8.RuneCountInString(waybill) > MaxWaybillLength {
		return "", NewValidationError("waybill must be at most 64 characters")
	}
	for _, r := range waybill {
		if !unicode.IsPrint(r) {
			return "", NewValidationError("waybill contains invalid characters")
		}
	}
	return waybill, nil
}
