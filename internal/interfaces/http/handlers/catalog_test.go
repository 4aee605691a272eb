// internal/interfaces/http/handlers/catalog_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/domain/catalog"
)

func setupCatalogRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Category{}, &catalog.Product{}, &catalog.Review{}, &catalog.Favorite{}))

	handler := NewCatalogHandler(db, &config.Config{})
	supportHandler := NewSupportHandler(&config.Config{})

	router := gin.New()
	router.GET("/home", handler.Home)
	router.GET("/products", handler.List)
	router.GET("/products/:slug", handler.GetBySlug)
	router.GET("/categories", handler.Categories)
	router.GET("/support/:page", supportHandler.Page)
	return router, db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	category := catalog.Category{Name: "Unisex", Slug: "unisex", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	products := []catalog.Product{
		{CategoryID: category.ID, Name: "Velvet Iris", Slug: "velvet-iris",
			Scent: catalog.ScentFloral, Price: decimal.RequireFromString("1850.00"), IsAvailable: true},
		{CategoryID: category.ID, Name: "Cedar Noir", Slug: "cedar-noir",
			Scent: catalog.ScentWoody, Price: decimal.RequireFromString("2240.00"), IsAvailable: true},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
}

func TestListProductsEndpoint(t *testing.T) {
	router, db := setupCatalogRouter(t)
	seedCatalog(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?scent=woody", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Products []catalog.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Products, 1)
	require.Equal(t, "cedar-noir", body.Products[0].Slug)
}

func TestListProductsBadScent(t *testing.T) {
	router, db := setupCatalogRouter(t)
	seedCatalog(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?scent=minty", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductDetailEndpoint(t *testing.T) {
	router, db := setupCatalogRouter(t)
	seedCatalog(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/velvet-iris", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/products/missing", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSupportPageEndpoint(t *testing.T) {
	router, _ := setupCatalogRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/support/delivery-payment", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Delivery & Payment", body["title"])

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/support/nope", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
