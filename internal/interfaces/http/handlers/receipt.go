// internal/interfaces/http/handlers/receipt.go
package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/pkg/pdf"
	"github.com/your-org/storefront/internal/view"
)

// ReceiptGenerator renders a receipt document
type ReceiptGenerator interface {
	GenerateReceipt(receipt *pdf.Receipt) (*bytes.Buffer, error)
}

// ReceiptHandler serves the receipt of the last successful checkout
type ReceiptHandler struct {
	renderer  *view.Renderer
	generator ReceiptGenerator
	log       *logrus.Logger
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(renderer *view.Renderer, generator ReceiptGenerator, log *logrus.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		renderer:  renderer,
		generator: generator,
		log:       log,
	}
}

// Download handles GET /receipt.pdf
func (h *ReceiptHandler) Download(c *gin.Context) {
	receipt, ok := h.renderer.Receipt()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No completed checkout yet",
		})
		return
	}

	pdfBuffer, err := h.generator.GenerateReceipt(receipt)
	if err != nil {
		h.log.WithError(err).Error("Failed to generate receipt")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", receipt.Reference))
	c.Header("Content-Length", strconv.Itoa(pdfBuffer.Len()))
	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}
