package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	labelapp "github.com/Pratham6392/shipment/internal/application/label"
	"github.com/Pratham6392/shipment/internal/interfaces/http/dto"
	"github.com/Pratham6392/shipment/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// LabelGenerator produces a finished label for a waybill
type LabelGenerator interface {
	Generate(ctx context.Context, waybill string) (*labelapp.LabelResult, error)
}

// LabelHandler serves the label download endpoint
type LabelHandler struct {
	BaseHandler
	generator LabelGenerator
}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler(generator LabelGenerator) *LabelHandler {
	return &LabelHandler{generator: generator}
}

// Generate answers POST {"waybill": "..."} with the label PDF as an
// attachment named shipping_label_{waybill}.pdf.
func (h *LabelHandler) Generate(c *gin.Context) {
	var req dto.GenerateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, dto.MsgRequestTooLarge)
			return
		}
		h.BadRequest(c, middleware.ValidationMessage(err))
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), req.Waybill)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Header("Content-Length", strconv.Itoa(len(result.Content)))
	c.Header("Cache-Control", "no-store")
	c.Header("X-Label-Source", result.Source.String())
	c.Header("X-Document-ID", result.DocumentID.String())
	c.Data(http.StatusOK, "application/pdf", result.Content)
}
