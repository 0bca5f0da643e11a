// internal/interfaces/http/handlers/storefront.go
package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/view"
)

// StorefrontHandler serves the page and the catalog, filter and cart actions
type StorefrontHandler struct {
	renderer *view.Renderer
	log      *logrus.Logger
}

// NewStorefrontHandler creates a new storefront handler
func NewStorefrontHandler(renderer *view.Renderer, log *logrus.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		renderer: renderer,
		log:      log,
	}
}

// Index handles GET /. The q and category query parameters, when present,
// replace the current filters.
func (h *StorefrontHandler) Index(c *gin.Context) {
	query, hasQuery := c.GetQuery("q")
	category, hasCategory := c.GetQuery("category")
	if hasQuery || hasCategory {
		h.renderer.SetFilters(query, category)
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf); err != nil {
		h.log.WithError(err).Error("Failed to render storefront page")
		c.String(http.StatusInternalServerError, "Failed to render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// State handles GET /state
func (h *StorefrontHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.renderer.Page())
}

// ApplyFilters handles POST /filters
func (h *StorefrontHandler) ApplyFilters(c *gin.Context) {
	var req struct {
		Query    string `form:"q" json:"q"`
		Category string `form:"category" json:"category"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid filter parameters",
			"details": err.Error(),
		})
		return
	}

	h.renderer.SetFilters(req.Query, req.Category)
	afterAction(c, h.renderer)
}

// ClearFilters handles POST /filters/clear
func (h *StorefrontHandler) ClearFilters(c *gin.Context) {
	h.renderer.ClearFilters()
	afterAction(c, h.renderer)
}

// OpenCart handles POST /cart/open
func (h *StorefrontHandler) OpenCart(c *gin.Context) {
	h.renderer.OpenDrawer()
	afterAction(c, h.renderer)
}

// CloseCart handles POST /cart/close
func (h *StorefrontHandler) CloseCart(c *gin.Context) {
	h.renderer.CloseDrawer()
	afterAction(c, h.renderer)
}

// AddItem handles POST /cart/items/:id
func (h *StorefrontHandler) AddItem(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	if err := h.renderer.AddToCart(id); err != nil {
		if errors.Is(err, view.ErrUnknownProduct) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add item to cart",
		})
		return
	}
	afterAction(c, h.renderer)
}

// RemoveItem handles POST /cart/items/:id/remove
func (h *StorefrontHandler) RemoveItem(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	h.renderer.RemoveFromCart(id)
	afterAction(c, h.renderer)
}

// IncrementItem handles POST /cart/items/:id/increment
func (h *StorefrontHandler) IncrementItem(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	h.renderer.Increment(id)
	afterAction(c, h.renderer)
}

// DecrementItem handles POST /cart/items/:id/decrement
func (h *StorefrontHandler) DecrementItem(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	h.renderer.Decrement(id)
	afterAction(c, h.renderer)
}

// SetItemQuantity handles POST /cart/items/:id/quantity
func (h *StorefrontHandler) SetItemQuantity(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Quantity int `form:"qty" json:"qty"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid quantity",
			"details": err.Error(),
		})
		return
	}

	h.renderer.SetQuantity(id, req.Quantity)
	afterAction(c, h.renderer)
}

// ClearCart handles POST /cart/clear
func (h *StorefrontHandler) ClearCart(c *gin.Context) {
	h.renderer.ClearCart()
	afterAction(c, h.renderer)
}

// ReloadCatalog handles POST /catalog/reload. A failed reload is not an HTTP
// error: the page shows the catalog banner instead.
func (h *StorefrontHandler) ReloadCatalog(c *gin.Context) {
	if err := h.renderer.ReloadCatalog(c.Request.Context()); err != nil {
		h.log.WithError(err).Warn("Catalog reload failed")
	}
	afterAction(c, h.renderer)
}
