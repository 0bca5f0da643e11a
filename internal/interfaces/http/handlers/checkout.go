// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/view"
)

// CheckoutHandler submits the cart to the store API
type CheckoutHandler struct {
	renderer *view.Renderer
	log      *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(renderer *view.Renderer, log *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		renderer: renderer,
		log:      log,
	}
}

// CheckoutForm is the customer part of the checkout form
type CheckoutForm struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Phone   string `form:"phone" json:"phone"`
	Address string `form:"address" json:"address"`
}

// Customer returns the non-empty form fields keyed by name
func (f CheckoutForm) Customer() map[string]string {
	customer := make(map[string]string)
	for name, value := range map[string]string{
		"name":    f.Name,
		"email":   f.Email,
		"phone":   f.Phone,
		"address": f.Address,
	} {
		if v := strings.TrimSpace(value); v != "" {
			customer[name] = v
		}
	}
	return customer
}

// Checkout handles POST /checkout. The outcome, good or bad, is shown as the
// page's checkout message; JSON callers also get a matching status code.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var form CheckoutForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid checkout form",
			"details": err.Error(),
		})
		return
	}

	result, err := h.renderer.Checkout(c.Request.Context(), form.Customer())
	if !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	page := h.renderer.Page()
	if err != nil {
		var rejected *checkout.RejectedError
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			status = http.StatusBadRequest
		case errors.As(err, &rejected):
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{
			"error": view.CheckoutErrorMessage(err),
			"page":  page,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": result.Message,
		"total":   result.Total,
		"page":    page,
	})
}
