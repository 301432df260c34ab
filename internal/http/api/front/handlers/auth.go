package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/icekidtech/information-systems/internal/auth"
	"github.com/icekidtech/information-systems/internal/config"
	"github.com/icekidtech/information-systems/internal/registration"
	"github.com/icekidtech/information-systems/internal/security"
)

// AuthHandler handles signup and login endpoints.
type AuthHandler struct {
	reg    *registration.Service
	auth   *auth.Service
	jwtCfg config.JWTConfig
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(reg *registration.Service, authSvc *auth.Service, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{reg: reg, auth: authSvc, jwtCfg: jwtCfg}
}

// signUpRequest defines the request body for student signup.
type signUpRequest struct {
	Name      string `json:"name"`
	RegNumber string `json:"regNumber"`
	Email     string `json:"email"`
}

// SignUp creates a pending student registration.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var body signUpRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	id, errSignUp := h.reg.SignUp(c.Request.Context(), body.Name, body.RegNumber, body.Email)
	if errSignUp != nil {
		var validationErr *registration.ValidationError
		switch {
		case errors.As(errSignUp, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": validationErr.Message,
				"field": validationErr.Field,
			})
		case errors.Is(errSignUp, registration.ErrAccountExists):
			c.JSON(http.StatusConflict, gin.H{"error": "registration number or email already registered"})
		default:
			if respondStoreError(c, errSignUp) {
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "state": "pending"})
}

// loginRequest defines the request body for login.
type loginRequest struct {
	RegNumber string `json:"regNumber"`
	Passcode  string `json:"passcode"`
}

// Login authenticates an account and issues a JWT.
//
// Every authentication failure yields the same 401 body so responses cannot
// be used to probe which registration numbers exist or are still pending.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	regNumber := strings.TrimSpace(body.RegNumber)
	passcode := strings.TrimSpace(body.Passcode)
	if regNumber == "" || passcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "regNumber and passcode are required"})
		return
	}

	identity, errLogin := h.auth.Login(c.Request.Context(), regNumber, passcode)
	if errLogin != nil {
		if respondStoreError(c, errLogin) {
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, errToken := security.GenerateToken(
		h.jwtCfg.Secret, identity.AccountID, identity.ExternalID, identity.Name, identity.Role, h.jwtCfg.Expiry,
	)
	if errToken != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account_id": identity.AccountID,
		"regNumber":  identity.ExternalID,
		"name":       identity.Name,
		"role":       identity.Role,
		"token":      token,
	})
}
