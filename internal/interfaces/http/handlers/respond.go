// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/view"
)

// wantsJSON reports whether the caller asked for the page model instead of
// the HTML page
func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// afterAction finishes a form post. Browsers are redirected back to the page
// so a refresh does not repeat the action; JSON callers get the new page model.
func afterAction(c *gin.Context, renderer *view.Renderer) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, renderer.Page())
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// productIDParam parses the :id route parameter
func productIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return 0, false
	}
	return id, true
}
