// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/domain/catalog"
)

// CatalogHandler handles product catalog endpoints
type CatalogHandler struct {
	catalog *catalog.Service
	config  *config.Config
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(db *gorm.DB, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog.NewService(db, cfg),
		config:  cfg,
	}
}

// Home handles GET /home with featured products and categories
func (h *CatalogHandler) Home(c *gin.Context) {
	featured, err := h.catalog.Featured()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load featured products"})
		return
	}

	categories, err := h.catalog.Categories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"featured":   featured,
		"categories": categories,
	})
}

// List handles GET /products with filters, sorting and pagination
func (h *CatalogHandler) List(c *gin.Context) {
	var req catalog.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.catalog.List(&req)
	if err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBySlug handles GET /products/:slug
func (h *CatalogHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.catalog.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Categories handles GET /categories
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.catalog.Categories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
