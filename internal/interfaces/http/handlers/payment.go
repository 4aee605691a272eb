// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/domain/cart"
	"github.com/soulmedev/AromeNoir/internal/domain/order"
	"github.com/soulmedev/AromeNoir/internal/domain/payment"
	"github.com/soulmedev/AromeNoir/internal/interfaces/http/middleware"
)

// maxWebhookBody bounds the webhook payload size
const maxWebhookBody = int64(65536)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	payments *payment.Service
	config   *config.Config
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *PaymentHandler {
	carts := cart.NewService(db, redisClient, cfg)
	orders := order.NewService(db, carts, redisClient, cfg)
	return &PaymentHandler{
		payments: payment.NewService(orders, cfg, logger),
		config:   cfg,
	}
}

// CreateIntent handles POST /payment/orders/:id/intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	sessionID := middleware.GetSessionID(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	intent, err := h.payments.CreateIntent(c.Request.Context(), uint(orderID), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, order.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "redirect": "/orders"})
		case errors.Is(err, payment.ErrAlreadyPaid):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		}
		return
	}

	c.JSON(http.StatusOK, intent)
}

// Confirm handles GET /payment/orders/:id/status. The success page
// polls it until the order turns paid.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	sessionID := middleware.GetSessionID(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	status, err := h.payments.Confirm(c.Request.Context(), uint(orderID), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, order.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "redirect": "/orders"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check payment status"})
		}
		return
	}

	c.JSON(http.StatusOK, status)
}

// Webhook handles POST /webhooks/stripe. A bad signature is rejected,
// everything after verification returns 200 so Stripe stops retrying.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payload"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.payments.ProcessWebhook(payload, signature); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
