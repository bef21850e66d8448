package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStores handles GET /api/stores, listing every store id known to the
// observation feed.
func (h *Handler) GetStores(c *gin.Context) {
	ids, err := h.store.ListStoreIDs(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stores"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"store_ids": ids})
}
