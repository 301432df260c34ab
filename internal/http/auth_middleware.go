// Package http provides shared gin middleware for the API surface.
package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/icekidtech/information-systems/internal/config"
	"github.com/icekidtech/information-systems/internal/models"
	"github.com/icekidtech/information-systems/internal/security"
	"gorm.io/gorm"
)

// Context keys set by AccountAuthMiddleware.
const (
	// ContextAccountID carries the authenticated account's primary key.
	ContextAccountID = "accountID"
	// ContextAccountRole carries the authenticated account's role.
	ContextAccountRole = "accountRole"
)

// AccountAuthMiddleware validates bearer JWTs and loads the account into context.
func AccountAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "empty token"})
			return
		}

		claims, errJWT := security.ParseToken(jwtCfg.Secret, token)
		if errJWT != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		var account models.Account
		if errFind := db.WithContext(c.Request.Context()).First(&account, claims.AccountID).Error; errFind != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account not found"})
			return
		}
		if !account.IsActive() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account not active"})
			return
		}

		c.Set(ContextAccountID, account.ID)
		c.Set(ContextAccountRole, account.Role)
		c.Next()
	}
}

// RequireAdmin aborts requests whose account role is not admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextAccountRole)
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
