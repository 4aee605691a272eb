// internal/domain/order/service_test.go
package order

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/domain/cart"
	"github.com/soulmedev/AromeNoir/internal/domain/catalog"
)

func setupTestService(t *testing.T) (*Service, *cart.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Category{}, &catalog.Product{},
		&cart.CartItem{},
		&Order{}, &OrderItem{}, &DeliveryAddress{},
	))

	cfg := &config.Config{}
	carts := cart.NewServiceWithSessions(db, cart.NewMemorySessionStore(), cfg)
	orders := NewServiceWithStores(db, carts, NewMemoryLastOrderStore(), cfg)
	return orders, carts, db
}

func seedProducts(t *testing.T, db *gorm.DB) []catalog.Product {
	t.Helper()

	category := catalog.Category{Name: "Unisex", Slug: "unisex", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	products := []catalog.Product{
		{CategoryID: category.ID, Name: "Velvet Iris", Slug: "velvet-iris",
			Price: decimal.RequireFromString("1850.00"), IsAvailable: true},
		{CategoryID: category.ID, Name: "Cedar Noir", Slug: "cedar-noir",
			Price: decimal.RequireFromString("2240.00"), IsAvailable: true},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
	return products
}

func checkoutRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		FullName:   "Olena Kovalenko",
		Email:      "olena@example.com",
		Phone:      "+380501112233",
		City:       "Kyiv",
		Address:    "Khreshchatyk 1",
		PostalCode: "01001",
	}
}

func TestCreateOrderSnapshotsCartAndClearsIt(t *testing.T) {
	orders, carts, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()

	_, err := carts.Add(ctx, nil, "sess-1", &cart.AddRequest{ProductID: products[0].ID, Quantity: 2})
	require.NoError(t, err)
	_, err = carts.Add(ctx, nil, "sess-1", &cart.AddRequest{ProductID: products[1].ID, Quantity: 1})
	require.NoError(t, err)

	ord, err := orders.Create(ctx, nil, "sess-1", checkoutRequest())
	require.NoError(t, err)
	require.NotEmpty(t, ord.OrderNumber)
	require.Equal(t, StatusPending, ord.Status)
	require.Len(t, ord.Items, 2)
	require.True(t, ord.TotalPrice.Equal(decimal.RequireFromString("5940.00")))

	// Line prices are snapshots, later price changes do not matter
	require.NoError(t, db.Model(&catalog.Product{}).
		Where("id = ?", products[0].ID).
		Update("price", decimal.RequireFromString("9999.00")).Error)

	reloaded, err := orders.Get(ctx, ord.ID, nil, "sess-1")
	require.NoError(t, err)
	require.Equal(t, "01001", reloaded.PostalCode)
	total := decimal.Zero
	for _, item := range reloaded.Items {
		total = total.Add(item.Subtotal())
	}
	require.True(t, total.Equal(decimal.RequireFromString("5940.00")))

	// Cart is emptied by checkout
	remaining, err := carts.Get(ctx, nil, "sess-1")
	require.NoError(t, err)
	require.Empty(t, remaining.Lines)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	orders, _, db := setupTestService(t)
	seedProducts(t, db)

	_, err := orders.Create(context.Background(), nil, "sess-1", checkoutRequest())
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderNumbersDeriveFromID(t *testing.T) {
	orders, carts, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()

	numbers := map[string]bool{}
	for _, sess := range []string{"sess-1", "sess-2"} {
		_, err := carts.Add(ctx, nil, sess, &cart.AddRequest{ProductID: products[0].ID, Quantity: 1})
		require.NoError(t, err)

		ord, err := orders.Create(ctx, nil, sess, checkoutRequest())
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), ord.ID), ord.OrderNumber)
		require.False(t, numbers[ord.OrderNumber])
		numbers[ord.OrderNumber] = true
	}
}

func TestCreateOrderTotalOverride(t *testing.T) {
	orders, carts, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()

	_, err := carts.Add(ctx, nil, "sess-1", &cart.AddRequest{ProductID: products[0].ID, Quantity: 1})
	require.NoError(t, err)

	discounted := decimal.RequireFromString("1500.00")
	req := checkoutRequest()
	req.TotalPrice = &discounted

	ord, err := orders.Create(ctx, nil, "sess-1", req)
	require.NoError(t, err)
	require.True(t, ord.TotalPrice.Equal(discounted))
}

func TestGuestCanOnlySeeLastOrderOfSession(t *testing.T) {
	orders, carts, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()

	_, err := carts.Add(ctx, nil, "sess-1", &cart.AddRequest{ProductID: products[0].ID, Quantity: 1})
	require.NoError(t, err)
	first, err := orders.Create(ctx, nil, "sess-1", checkoutRequest())
	require.NoError(t, err)

	_, err = carts.Add(ctx, nil, "sess-1", &cart.AddRequest{ProductID: products[1].ID, Quantity: 1})
	require.NoError(t, err)
	second, err := orders.Create(ctx, nil, "sess-1", checkoutRequest())
	require.NoError(t, err)

	_, err = orders.Get(ctx, second.ID, nil, "sess-1")
	require.NoError(t, err)

	_, err = orders.Get(ctx, first.ID, nil, "sess-1")
	require.ErrorIs(t, err, ErrAccessDenied)

	_, err = orders.Get(ctx, second.ID, nil, "sess-other")
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestCrossUserOrderAccessDenied(t *testing.T) {
	orders, carts, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()

	owner := uint(1)
	intruder := uint(2)

	_, err := carts.Add(ctx, &owner, "sess-1", &cart.AddRequest{ProductID: products[0].ID, Quantity: 1})
	require.NoError(t, err)
	ord, err := orders.Create(ctx, &owner, "sess-1", checkoutRequest())
	require.NoError(t, err)

	_, err = orders.Get(ctx, ord.ID, &owner, "sess-1")
	require.NoError(t, err)

	_, err = orders.Get(ctx, ord.ID, &intruder, "sess-2")
	require.ErrorIs(t, err, ErrAccessDenied)

	_, err = orders.Get(ctx, 999, &owner, "sess-1")
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestHistoryListsOwnOrdersOnly(t *testing.T) {
	orders, carts, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()

	alice := uint(1)
	bob := uint(2)

	_, err := carts.Add(ctx, &alice, "s1", &cart.AddRequest{ProductID: products[0].ID, Quantity: 1})
	require.NoError(t, err)
	_, err = orders.Create(ctx, &alice, "s1", checkoutRequest())
	require.NoError(t, err)

	_, err = carts.Add(ctx, &bob, "s2", &cart.AddRequest{ProductID: products[1].ID, Quantity: 1})
	require.NoError(t, err)
	_, err = orders.Create(ctx, &bob, "s2", checkoutRequest())
	require.NoError(t, err)

	aliceOrders, err := orders.History(alice)
	require.NoError(t, err)
	require.Len(t, aliceOrders, 1)
	require.Equal(t, &alice, aliceOrders[0].UserID)
}

func TestMarkPaidIsIdempotent(t *testing.T) {
	orders, carts, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()

	_, err := carts.Add(ctx, nil, "sess-1", &cart.AddRequest{ProductID: products[0].ID, Quantity: 1})
	require.NoError(t, err)
	ord, err := orders.Create(ctx, nil, "sess-1", checkoutRequest())
	require.NoError(t, err)

	require.NoError(t, orders.MarkPaid(ord.ID, "pi_123"))
	require.NoError(t, orders.MarkPaid(ord.ID, "pi_123"))

	paid, err := orders.GetByPaymentIntent("pi_123")
	require.NoError(t, err)
	require.True(t, paid.Paid)
	require.Equal(t, StatusProcessing, paid.Status)
}

func TestStatusTransitions(t *testing.T) {
	orders, carts, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()

	_, err := carts.Add(ctx, nil, "sess-1", &cart.AddRequest{ProductID: products[0].ID, Quantity: 1})
	require.NoError(t, err)
	ord, err := orders.Create(ctx, nil, "sess-1", checkoutRequest())
	require.NoError(t, err)

	// pending cannot jump straight to delivered
	require.ErrorIs(t, orders.UpdateStatus(ord.ID, StatusDelivered), ErrInvalidTransition)

	require.NoError(t, orders.UpdateStatus(ord.ID, StatusProcessing))
	require.NoError(t, orders.UpdateStatus(ord.ID, StatusShipped))
	require.NoError(t, orders.UpdateStatus(ord.ID, StatusDelivered))

	// delivered is terminal
	require.ErrorIs(t, orders.UpdateStatus(ord.ID, StatusCancelled), ErrInvalidTransition)

	require.Error(t, orders.UpdateStatus(ord.ID, "unknown"))
}
