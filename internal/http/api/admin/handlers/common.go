package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/icekidtech/information-systems/internal/store"
)

// respondStoreError maps storage failures to HTTP responses.
//
// Returns true when the error was handled.
func respondStoreError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable, try again"})
		return true
	}
	return false
}
