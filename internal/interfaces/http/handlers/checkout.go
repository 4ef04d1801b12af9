// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkout *checkout.Service
	carts    *cart.Manager
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, carts *cart.Manager) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkoutService,
		carts:    carts,
	}
}

// CheckoutRequest represents the checkout request body
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// CanCheckout reports whether checkout may proceed for the device
func (h *CheckoutHandler) CanCheckout(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	store := h.carts.ForDevice(deviceID)

	if err := h.checkout.CanCheckout(c.Request.Context(), deviceID, store.Snapshot()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout may proceed",
	})
}

// Submit submits the cart for payment and returns the provider redirect URL.
// The cart is left untouched; payment completion is confirmed server-side.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	deviceID := middleware.GetDeviceID(c)
	store := h.carts.ForDevice(deviceID)

	redirectURL, err := h.checkout.Submit(c.Request.Context(), deviceID, store, req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   redirectURL,
	})
}
