// internal/interfaces/http/handlers/favorite.go
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

// FavoriteHandler handles user favorites endpoints
type FavoriteHandler struct {
	favorites *catalog.FavoriteService
	config    *config.Config
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(db *gorm.DB, cfg *config.Config) *FavoriteHandler {
	return &FavoriteHandler{
		favorites: catalog.NewFavoriteService(db),
		config:    cfg,
	}
}

// Toggle handles POST /favorites/:product_id
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	favorited, err := h.favorites.Toggle(userID, uint(productID))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

// List handles GET /favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	favorites, err := h.favorites.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}
