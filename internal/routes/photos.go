package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dublin-fuel/prices-api/internal"
)

// PhotoDisplayURL resolves a stored photo reference into a URL safe for
// display. The url field is empty when there is nothing displayable.
func PhotoDisplayURL(resolver *internal.PhotoResolver) func(c *gin.Context) {
	return func(c *gin.Context) {
		ref := c.Query("ref")
		if ref == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ref parameter is required"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": resolver.DisplayURL(&ref)})
	}
}
