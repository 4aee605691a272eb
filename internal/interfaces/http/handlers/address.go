// internal/interfaces/http/handlers/address.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/domain/order"
	"github.com/soulmedev/AromeNoir/internal/interfaces/http/middleware"
)

// AddressHandler handles delivery address endpoints
type AddressHandler struct {
	addresses *order.AddressService
	config    *config.Config
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(db *gorm.DB, cfg *config.Config) *AddressHandler {
	return &AddressHandler{
		addresses: order.NewAddressService(db),
		config:    cfg,
	}
}

// List handles GET /addresses
func (h *AddressHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	addresses, err := h.addresses.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list addresses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// Create handles POST /addresses
func (h *AddressHandler) Create(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req order.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address, err := h.addresses.Create(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"address": address})
}

// Update handles PUT /addresses/:id
func (h *AddressHandler) Update(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address ID"})
		return
	}

	var req order.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address, err := h.addresses.Update(userID, uint(addressID), &req)
	if err != nil {
		if errors.Is(err, order.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}

// SetDefault handles PUT /addresses/:id/default
func (h *AddressHandler) SetDefault(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address ID"})
		return
	}

	if err := h.addresses.SetDefault(userID, uint(addressID)); err != nil {
		if errors.Is(err, order.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set default address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Default address updated"})
}

// Delete handles DELETE /addresses/:id
func (h *AddressHandler) Delete(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address ID"})
		return
	}

	if err := h.addresses.Delete(userID, uint(addressID)); err != nil {
		if errors.Is(err, order.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}
