package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightclass/brightclass-backend/internal/platform/apierr"
)

func respondError(c *gin.Context, err error) {
	apiErr := apierr.From(err)
	if apiErr == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}
	c.JSON(apiErr.Status, gin.H{"error": apiErr.Error(), "code": apiErr.Code})
}

// respondableError renders an error for embedding in a batch response body.
func respondableError(err error) gin.H {
	apiErr := apierr.From(err)
	return gin.H{"message": apiErr.Error(), "code": apiErr.Code}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
