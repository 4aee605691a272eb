// internal/interfaces/http/handlers/order_test.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/domain/cart"
	"github.com/soulmedev/AromeNoir/internal/domain/catalog"
	"github.com/soulmedev/AromeNoir/internal/domain/order"
	"github.com/soulmedev/AromeNoir/internal/pkg/pdf"
)

func setupOrderRouter(t *testing.T) (*gin.Engine, *order.Service, *cart.Service, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Category{}, &catalog.Product{},
		&cart.CartItem{},
		&order.Order{}, &order.OrderItem{},
	))

	cfg := &config.Config{}
	carts := cart.NewServiceWithSessions(db, cart.NewMemorySessionStore(), cfg)
	orders := order.NewServiceWithStores(db, carts, order.NewMemoryLastOrderStore(), cfg)

	handler := &OrderHandler{orders: orders, pdf: pdf.NewService(cfg), config: cfg}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("session_id", "sess-1")
	})
	router.GET("/orders/:id/invoice", handler.Invoice)
	return router, orders, carts, db
}

func TestInvoiceRequiresPaidOrder(t *testing.T) {
	router, orders, carts, db := setupOrderRouter(t)
	ctx := context.Background()

	category := catalog.Category{Name: "Unisex", Slug: "unisex", IsActive: true}
	require.NoError(t, db.Create(&category).Error)
	product := catalog.Product{CategoryID: category.ID, Name: "Velvet Iris", Slug: "velvet-iris",
		Price: decimal.RequireFromString("1850.00"), IsAvailable: true}
	require.NoError(t, db.Create(&product).Error)

	_, err := carts.Add(ctx, nil, "sess-1", &cart.AddRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	ord, err := orders.Create(ctx, nil, "sess-1", &order.CreateOrderRequest{
		FullName: "Olena Kovalenko",
		Email:    "olena@example.com",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%d/invoice", ord.ID), nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/orders/999/invoice", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
