package printing

import (
	"context"
	"time"

	"github.com/Pratham6392/shipment/internal/domain/label"
)

// RenderRequest contains the laid out label to draw
type RenderRequest struct {
	// Document is the label produced by label.Compose
	Document *label.Document
	// Timeout overrides the default rendering timeout of engines that run
	// an external process
	Timeout time.Duration
}

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	// PDFData is the raw PDF file content
	PDFData []byte
	// PageCount is the number of pages in the PDF
	PageCount int
	// RenderDuration is how long the rendering took
	RenderDuration time.Duration
}

// PDFRenderer draws a label document into PDF bytes
type PDFRenderer interface {
	// Render draws every block of the document and returns the PDF
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	// Close releases any resources held by the renderer
	Close() error
}

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout    = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeInvalidDocument  = "INVALID_DOCUMENT"
	ErrCodeBinaryNotFound   = "BINARY_NOT_FOUND"
	ErrCodeInvalidPaperSize = "INVALID_PAPER_SIZE"
	ErrCodeUnknownEngine    = "UNKNOWN_ENGINE"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// validateRequest performs the checks shared by every engine
func validateRequest(req *RenderRequest) error {
	if req == nil {
		return NewRenderError(ErrCodeInvalidDocument, "render request is nil", nil)
	}
	if req.Document == nil {
		return NewRenderError(ErrCodeInvalidDocument, "label document is nil", nil)
	}
	if len(req.Document.Blocks) == 0 {
		return NewRenderError(ErrCodeInvalidDocument, "label document has no blocks", nil)
	}
	if !req.Document.Page.Size.IsValid() {
		return NewRenderError(ErrCodeInvalidPaperSize, "invalid paper size: "+string(req.Document.Page.Size), nil)
	}
	return nil
}
