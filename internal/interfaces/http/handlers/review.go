// internal/interfaces/http/handlers/review.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/domain/catalog"
	"github.com/soulmedev/AromeNoir/internal/interfaces/http/middleware"
)

// ReviewHandler handles product review endpoints
type ReviewHandler struct {
	reviews *catalog.ReviewService
	config  *config.Config
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(db *gorm.DB, cfg *config.Config) *ReviewHandler {
	return &ReviewHandler{
		reviews: catalog.NewReviewService(db),
		config:  cfg,
	}
}

// Create handles POST /products/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req catalog.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviews.Create(userID, uint(productID), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, catalog.ErrAlreadyReviewed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// List handles GET /products/:id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	reviews, err := h.reviews.ListByProduct(uint(productID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
