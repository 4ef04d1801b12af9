// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-client/internal/domain/enrollment"
	"github.com/your-org/storefront-client/internal/domain/session"
	"github.com/your-org/storefront-client/internal/infrastructure/portal"
	"github.com/your-org/storefront-client/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication and enrollment endpoints
type AuthHandler struct {
	sessions   *session.Manager
	enrollment *enrollment.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *session.Manager, enrollmentService *enrollment.Service) *AuthHandler {
	return &AuthHandler{
		sessions:   sessions,
		enrollment: enrollmentService,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

// Login handles device login against the portal
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	deviceID := middleware.GetDeviceID(c)
	profile, err := h.sessions.Login(c.Request.Context(), deviceID, req.Email, req.Password, req.Remember)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    profile,
	})
}

// Logout handles device logout
func (h *AuthHandler) Logout(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	if err := h.sessions.Logout(c.Request.Context(), deviceID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetProfile returns the cached user profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	profile, err := h.sessions.Profile(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": profile,
	})
}

// GetSavedCredentials returns remembered credentials for pre-filling the
// login form. Nothing is submitted on the caller's behalf.
func (h *AuthHandler) GetSavedCredentials(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	email, password, err := h.sessions.SavedCredentials(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"email":    email,
			"password": password,
		},
	})
}

// Register handles new-user enrollment
func (h *AuthHandler) Register(c *gin.Context) {
	var req portal.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	message, err := h.enrollment.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": message,
	})
}

// GetCountries returns the country options for the enrollment form
func (h *AuthHandler) GetCountries(c *gin.Context) {
	countries, err := h.enrollment.Countries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": countries,
	})
}
