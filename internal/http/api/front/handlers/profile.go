package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/icekidtech/information-systems/internal/auth"
	"github.com/icekidtech/information-systems/internal/models"
	"gorm.io/gorm"
)

// ProfileHandler handles account profile endpoints.
type ProfileHandler struct {
	db   *gorm.DB
	auth *auth.Service
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(db *gorm.DB, authSvc *auth.Service) *ProfileHandler {
	return &ProfileHandler{db: db, auth: authSvc}
}

// Get returns the current account's profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	accountID := getAccountID(c)
	if accountID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var account models.Account
	if errFind := h.db.WithContext(c.Request.Context()).First(&account, accountID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         account.ID,
		"name":       account.Name,
		"regNumber":  account.ExternalID,
		"email":      account.Email,
		"role":       account.Role,
		"state":      account.State,
		"created_at": account.CreatedAt,
		"updated_at": account.UpdatedAt,
	})
}

// changePasscodeRequest defines the request body for passcode changes.
type changePasscodeRequest struct {
	CurrentPasscode string `json:"currentPasscode"`
	NewPasscode     string `json:"newPasscode"`
}

// ChangePasscode verifies the current passcode and stores a new one.
func (h *ProfileHandler) ChangePasscode(c *gin.Context) {
	accountID := getAccountID(c)
	if accountID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body changePasscodeRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	current := strings.TrimSpace(body.CurrentPasscode)
	next := strings.TrimSpace(body.NewPasscode)
	if current == "" || next == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currentPasscode and newPasscode are required"})
		return
	}

	if errChange := h.auth.ChangeSecret(c.Request.Context(), accountID, current, next); errChange != nil {
		switch {
		case errors.Is(errChange, auth.ErrWeakSecret):
			c.JSON(http.StatusBadRequest, gin.H{"error": "new passcode must be at least 6 characters"})
		case errors.Is(errChange, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		default:
			if respondStoreError(c, errChange) {
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "change passcode failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
