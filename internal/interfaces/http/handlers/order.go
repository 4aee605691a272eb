// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/domain/cart"
	"github.com/soulmedev/AromeNoir/internal/domain/order"
	"github.com/soulmedev/AromeNoir/internal/interfaces/http/middleware"
	"github.com/soulmedev/AromeNoir/internal/pkg/pdf"
)

// OrderHandler handles checkout and order endpoints
type OrderHandler struct {
	orders *order.Service
	pdf    *pdf.Service
	config *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *OrderHandler {
	carts := cart.NewService(db, redisClient, cfg)
	return &OrderHandler{
		orders: order.NewService(db, carts, redisClient, cfg),
		pdf:    pdf.NewService(cfg),
		config: cfg,
	}
}

// Create handles POST /orders turning the cart into an order
func (h *OrderHandler) Create(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newOrder, err := h.orders.Create(c.Request.Context(), userID, sessionID, &req)
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": newOrder})
}

// Get handles GET /orders/:id. Viewing someone else's order sends the
// caller back to their own history.
func (h *OrderHandler) Get(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	sessionID := middleware.GetSessionID(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ord, err := h.orders.Get(c.Request.Context(), uint(orderID), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, order.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error":    err.Error(),
				"redirect": "/orders",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": ord})
}

// History handles GET /orders for the authenticated user
func (h *OrderHandler) History(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	orders, err := h.orders.History(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// Invoice handles GET /orders/:id/invoice returning a PDF
func (h *OrderHandler) Invoice(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	sessionID := middleware.GetSessionID(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ord, err := h.orders.Get(c.Request.Context(), uint(orderID), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, order.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "redirect": "/orders"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order"})
		}
		return
	}

	if !ord.Paid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invoice is available once the order is paid"})
		return
	}

	buf, err := h.pdf.GenerateInvoice(ord)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invoice"})
		return
	}

	filename := fmt.Sprintf("invoice-%s.pdf", ord.OrderNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
