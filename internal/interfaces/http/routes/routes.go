// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/view"
)

// Handlers groups everything the router dispatches to
type Handlers struct {
	Storefront *handlers.StorefrontHandler
	Checkout   *handlers.CheckoutHandler
	Receipt    *handlers.ReceiptHandler
	Health     *handlers.HealthHandler
}

// SetupRoutes registers the storefront routes
func SetupRoutes(r gin.IRouter, h Handlers) {
	r.GET("/health", h.Health.Health)

	r.GET("/", h.Storefront.Index)
	r.GET("/state", h.Storefront.State)
	r.StaticFS("/static", view.StaticFS())

	r.POST("/filters", h.Storefront.ApplyFilters)
	r.POST("/filters/clear", h.Storefront.ClearFilters)
	r.POST("/catalog/reload", h.Storefront.ReloadCatalog)

	SetupCartRoutes(r, h.Storefront)

	r.POST("/checkout", h.Checkout.Checkout)
	r.GET("/receipt.pdf", h.Receipt.Download)
}

// SetupCartRoutes sets up the cart drawer routes
func SetupCartRoutes(r gin.IRouter, h *handlers.StorefrontHandler) {
	cart := r.Group("/cart")
	{
		cart.POST("/open", h.OpenCart)
		cart.POST("/close", h.CloseCart)
		cart.POST("/clear", h.ClearCart)

		items := cart.Group("/items/:id")
		{
			items.POST("", h.AddItem)
			items.POST("/remove", h.RemoveItem)
			items.POST("/increment", h.IncrementItem)
			items.POST("/decrement", h.DecrementItem)
			items.POST("/quantity", h.SetItemQuantity)
		}
	}
}
