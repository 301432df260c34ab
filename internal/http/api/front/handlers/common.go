package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/icekidtech/information-systems/internal/store"
)

// getAccountID extracts the account ID from gin context.
func getAccountID(c *gin.Context) uint64 {
	val, exists := c.Get("accountID")
	if !exists {
		return 0
	}
	switch v := val.(type) {
	case uint64:
		return v
	case int64:
		return uint64(v)
	case uint:
		return uint64(v)
	case int:
		return uint64(v)
	default:
		return 0
	}
}

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
