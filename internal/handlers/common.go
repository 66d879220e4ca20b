package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/ocean-hazard-api/internal/utils"
)

// respondList writes items under key. When the request carries page or
// limit, only that window is returned along with pagination metadata.
func respondList[T any](c *gin.Context, key string, items []T) {
	if p, ok := utils.GetPaginationParams(c); ok {
		page, meta := utils.Paginate(items, p)
		c.JSON(http.StatusOK, gin.H{key: page, "pagination": meta})
		return
	}
	c.JSON(http.StatusOK, gin.H{key: items})
}
