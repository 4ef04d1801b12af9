// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	carts *cart.Manager
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *cart.Manager) *CartHandler {
	return &CartHandler{
		carts: carts,
	}
}

// AddItemRequest represents an add-to-cart request
type AddItemRequest struct {
	ItemID      string `json:"item_id" binding:"required"`
	GradeID     int64  `json:"grade_id"`
	GradeName   string `json:"grade_name" binding:"required"`
	SubjectID   int64  `json:"subject_id"`
	SubjectName string `json:"subject_name" binding:"required"`
	Price       int64  `json:"price"` // cents; 0 means use the configured default
}

// RemoveItemRequest identifies the entry to remove
type RemoveItemRequest struct {
	ItemID      string `form:"item_id" binding:"required"`
	GradeName   string `form:"grade_name" binding:"required"`
	SubjectName string `form:"subject_name" binding:"required"`
}

// GetCart returns the cart snapshot for the device
func (h *CartHandler) GetCart(c *gin.Context) {
	store := h.carts.ForDevice(middleware.GetDeviceID(c))

	c.JSON(http.StatusOK, gin.H{
		"data": store.Snapshot(),
	})
}

// AddItem adds an item to the device's cart. Adding an item that is already
// in the cart is a no-op.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	store := h.carts.ForDevice(middleware.GetDeviceID(c))
	snapshot, err := store.Add(cart.Item{
		ItemID:      req.ItemID,
		GradeID:     req.GradeID,
		GradeName:   req.GradeName,
		SubjectID:   req.SubjectID,
		SubjectName: req.SubjectName,
		Price:       req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data":    snapshot,
	})
}

// RemoveItem removes the entry matching the identity key. Removing an absent
// key is not an error.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req RemoveItemRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	store := h.carts.ForDevice(middleware.GetDeviceID(c))
	snapshot := store.Remove(cart.Key{
		ItemID:      req.ItemID,
		GradeName:   req.GradeName,
		SubjectName: req.SubjectName,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data":    snapshot,
	})
}

// ClearCart empties the device's cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	store := h.carts.ForDevice(middleware.GetDeviceID(c))
	snapshot := store.Clear()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
		"data":    snapshot,
	})
}
