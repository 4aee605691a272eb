// internal/interfaces/http/handlers/support.go
package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/soulmedev/AromeNoir/internal/config"
)

// SupportHandler serves the static support pages
type SupportHandler struct {
	config *config.Config
	pages  map[string]supportPage
}

type supportPage struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewSupportHandler creates a new support handler
func NewSupportHandler(cfg *config.Config) *SupportHandler {
	return &SupportHandler{
		config: cfg,
		pages: map[string]supportPage{
			"delivery-payment": {
				Title:   "Delivery & Payment",
				Content: "Orders ship within 1-2 business days. We accept card payments processed securely by our payment provider.",
			},
			"returns": {
				Title:   "Returns",
				Content: "Unopened products can be returned within 14 days of delivery.",
			},
			"faq": {
				Title:   "FAQ",
				Content: "Answers to the most common questions about orders, shipping and fragrances.",
			},
			"quality-guarantee": {
				Title:   "Quality Guarantee",
				Content: "Every fragrance is sourced directly from the brand or an authorized distributor.",
			},
			"certificates": {
				Title:   "Certificates",
				Content: "Certificates of authenticity are available for all products on request.",
			},
		},
	}
}

// Page handles GET /support/:page
func (h *SupportHandler) Page(c *gin.Context) {
	name := c.Param("page")

	page, ok := h.pages[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   page.Title,
		"content": page.Content,
		"company": gin.H{
			"name":    h.config.App.CompanyName,
			"address": h.config.App.CompanyAddress,
			"email":   h.config.App.CompanyEmail,
			"phone":   h.config.App.CompanyPhone,
		},
	})
}

// Pages handles GET /support listing the available pages
func (h *SupportHandler) Pages(c *gin.Context) {
	names := make([]string, 0, len(h.pages))
	for name := range h.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	c.JSON(http.StatusOK, gin.H{"pages": names})
}
