// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/domain/cart"
	"github.com/soulmedev/AromeNoir/internal/domain/catalog"
	"github.com/soulmedev/AromeNoir/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints for guests and users
type CartHandler struct {
	carts  *cart.Service
	config *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CartHandler {
	return &CartHandler{
		carts:  cart.NewService(db, redisClient, cfg),
		config: cfg,
	}
}

// Get handles GET /cart
func (h *CartHandler) Get(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	sessionID := middleware.GetSessionID(c)

	currentCart, err := h.carts.Get(c.Request.Context(), userID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": currentCart})
}

// Add handles POST /cart/items
func (h *CartHandler) Add(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req cart.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.carts.Add(c.Request.Context(), userID, sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, cart.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Remove handles DELETE /cart/items/:product_id
func (h *CartHandler) Remove(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	sessionID := middleware.GetSessionID(c)

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	summary, err := h.carts.Remove(c.Request.Context(), userID, sessionID, uint(productID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from cart"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	sessionID := middleware.GetSessionID(c)

	if err := h.carts.Clear(c.Request.Context(), userID, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "cart cleared",
		"total_items": 0,
		"total_price": "0",
	})
}

// Count handles GET /cart/count for the header badge
func (h *CartHandler) Count(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	sessionID := middleware.GetSessionID(c)

	count, err := h.carts.Count(c.Request.Context(), userID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_items": count})
}
