package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/icekidtech/information-systems/internal/registration"
	"github.com/icekidtech/information-systems/internal/store"
)

// RegistrationHandler manages pending registration endpoints.
type RegistrationHandler struct {
	reg *registration.Service
}

// NewRegistrationHandler constructs a RegistrationHandler.
func NewRegistrationHandler(reg *registration.Service) *RegistrationHandler {
	return &RegistrationHandler{reg: reg}
}

// ListPending returns registrations awaiting approval, newest first.
func (h *RegistrationHandler) ListPending(c *gin.Context) {
	rows, errList := h.reg.ListPending(c.Request.Context())
	if errList != nil {
		if respondStoreError(c, errList) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list pending registrations failed"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"id":         row.ID,
			"name":       row.Name,
			"regNumber":  row.ExternalID,
			"email":      row.Email,
			"created_at": row.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"registrations": out})
}

// Confirm approves a pending registration.
//
// The issued passcode is delivered by email only; it is deliberately not
// included in the response body.
func (h *RegistrationHandler) Confirm(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if _, errApprove := h.reg.Approve(c.Request.Context(), id); errApprove != nil {
		if errors.Is(errApprove, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no pending registration with that id"})
			return
		}
		if respondStoreError(c, errApprove) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "approve registration failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
