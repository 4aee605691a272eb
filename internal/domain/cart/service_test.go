// internal/domain/cart/service_test.go
package cart

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/domain/catalog"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Category{}, &catalog.Product{}, &CartItem{}))

	return NewServiceWithSessions(db, NewMemorySessionStore(), &config.Config{}), db
}

func seedProducts(t *testing.T, db *gorm.DB) []catalog.Product {
	t.Helper()

	category := catalog.Category{Name: "Unisex", Slug: "unisex", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	products := []catalog.Product{
		{
			CategoryID:  category.ID,
			Name:        "Velvet Iris",
			Slug:        "velvet-iris",
			Price:       decimal.RequireFromString("1850.00"),
			IsAvailable: true,
		},
		{
			CategoryID:  category.ID,
			Name:        "Cedar Noir",
			Slug:        "cedar-noir",
			Price:       decimal.RequireFromString("2240.00"),
			IsAvailable: true,
		},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
	return products
}

func TestGuestAddAndGet(t *testing.T) {
	svc, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()

	summary, err := svc.Add(ctx, nil, "sess-1", &AddRequest{ProductID: products[0].ID, Quantity: 2})
	require.NoError(t, err)
	require.True(t, summary.Success)
	require.Equal(t, 2, summary.TotalItems)
	require.True(t, summary.TotalPrice.Equal(decimal.RequireFromString("3700.00")))

	cart, err := svc.Get(ctx, nil, "sess-1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	require.Equal(t, 2, cart.Lines[0].Quantity)

	// Another session sees nothing
	other, err := svc.Get(ctx, nil, "sess-2")
	require.NoError(t, err)
	require.Empty(t, other.Lines)
}

func TestGuestAddOverrideReplacesQuantity(t *testing.T) {
	svc, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()

	_, err := svc.Add(ctx, nil, "sess-1", &AddRequest{ProductID: products[0].ID, Quantity: 2})
	require.NoError(t, err)

	// Without override quantities accumulate
	summary, err := svc.Add(ctx, nil, "sess-1", &AddRequest{ProductID: products[0].ID, Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, 5, summary.TotalItems)

	// With override the quantity is set
	summary, err = svc.Add(ctx, nil, "sess-1", &AddRequest{ProductID: products[0].ID, Quantity: 1, Override: true})
	require.NoError(t, err)
	require.Equal(t, 1, summary.TotalItems)
}

func TestAddQuantityBounds(t *testing.T) {
	svc, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()

	_, err := svc.Add(ctx, nil, "sess-1", &AddRequest{ProductID: products[0].ID, Quantity: 21})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Add(ctx, nil, "sess-1", &AddRequest{ProductID: products[0].ID, Quantity: -1})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	// Accumulation clamps at the maximum
	_, err = svc.Add(ctx, nil, "sess-1", &AddRequest{ProductID: products[0].ID, Quantity: 15})
	require.NoError(t, err)
	summary, err := svc.Add(ctx, nil, "sess-1", &AddRequest{ProductID: products[0].ID, Quantity: 15})
	require.NoError(t, err)
	require.Equal(t, MaxQuantity, summary.TotalItems)
}

func TestAddUnknownProduct(t *testing.T) {
	svc, db := setupTestService(t)
	seedProducts(t, db)

	_, err := svc.Add(context.Background(), nil, "sess-1", &AddRequest{ProductID: 999})
	require.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestRemoveAbsentProductIsNoop(t *testing.T) {
	svc, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()

	_, err := svc.Add(ctx, nil, "sess-1", &AddRequest{ProductID: products[0].ID, Quantity: 1})
	require.NoError(t, err)

	summary, err := svc.Remove(ctx, nil, "sess-1", products[1].ID)
	require.NoError(t, err)
	require.True(t, summary.Success)
	require.Equal(t, 1, summary.TotalItems)

	userID := uint(5)
	summary, err = svc.Remove(ctx, &userID, "sess-1", products[1].ID)
	require.NoError(t, err)
	require.Equal(t, 0, summary.TotalItems)
}

func TestUserCartStoredInDatabase(t *testing.T) {
	svc, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()
	userID := uint(42)

	_, err := svc.Add(ctx, &userID, "sess-1", &AddRequest{ProductID: products[0].ID, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.Add(ctx, &userID, "sess-1", &AddRequest{ProductID: products[1].ID, Quantity: 1})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&CartItem{}).Where("user_id = ?", userID).Count(&count).Error)
	require.Equal(t, int64(2), count)

	cart, err := svc.Get(ctx, &userID, "sess-1")
	require.NoError(t, err)
	require.Equal(t, 3, cart.TotalItems)
	require.True(t, cart.TotalPrice.Equal(decimal.RequireFromString("5940.00")))
}

func TestGuestCartKeepsPriceSnapshot(t *testing.T) {
	svc, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()

	_, err := svc.Add(ctx, nil, "sess-1", &AddRequest{ProductID: products[0].ID, Quantity: 1})
	require.NoError(t, err)

	// Price change after adding does not affect the session line
	require.NoError(t, db.Model(&catalog.Product{}).
		Where("id = ?", products[0].ID).
		Update("price", decimal.RequireFromString("2000.00")).Error)

	cart, err := svc.Get(ctx, nil, "sess-1")
	require.NoError(t, err)
	require.True(t, cart.TotalPrice.Equal(decimal.RequireFromString("1850.00")))
}

func TestMergeSessionIntoUser(t *testing.T) {
	svc, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()
	userID := uint(7)

	// Account cart already has one unit, guest session two
	_, err := svc.Add(ctx, &userID, "ignored", &AddRequest{ProductID: products[0].ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.Add(ctx, nil, "sess-1", &AddRequest{ProductID: products[0].ID, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.Add(ctx, nil, "sess-1", &AddRequest{ProductID: products[1].ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.MergeSessionIntoUser(ctx, userID, "sess-1"))

	cart, err := svc.Get(ctx, &userID, "sess-1")
	require.NoError(t, err)
	require.Equal(t, 4, cart.TotalItems)

	// Session cart is gone after the merge
	guest, err := svc.Get(ctx, nil, "sess-1")
	require.NoError(t, err)
	require.Empty(t, guest.Lines)
}

func TestMergeSkipsMissingProducts(t *testing.T) {
	svc, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()
	userID := uint(7)

	_, err := svc.Add(ctx, nil, "sess-1", &AddRequest{ProductID: products[0].ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.Add(ctx, nil, "sess-1", &AddRequest{ProductID: products[1].ID, Quantity: 1})
	require.NoError(t, err)

	// First product goes off sale before login
	require.NoError(t, db.Model(&catalog.Product{}).
		Where("id = ?", products[0].ID).
		Update("is_available", false).Error)

	require.NoError(t, svc.MergeSessionIntoUser(ctx, userID, "sess-1"))

	cart, err := svc.Get(ctx, &userID, "sess-1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	require.Equal(t, products[1].ID, cart.Lines[0].Product.ID)
}

func TestMirrorUserIntoSession(t *testing.T) {
	svc, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()
	userID := uint(11)

	_, err := svc.Add(ctx, &userID, "sess-1", &AddRequest{ProductID: products[0].ID, Quantity: 3})
	require.NoError(t, err)

	require.NoError(t, svc.MirrorUserIntoSession(ctx, userID, "sess-1"))

	// Logged out browser still sees the cart
	guest, err := svc.Get(ctx, nil, "sess-1")
	require.NoError(t, err)
	require.Equal(t, 3, guest.TotalItems)
	require.True(t, guest.TotalPrice.Equal(decimal.RequireFromString("5550.00")))

	// Account cart is untouched
	account, err := svc.Get(ctx, &userID, "sess-1")
	require.NoError(t, err)
	require.Equal(t, 3, account.TotalItems)
}

func TestClear(t *testing.T) {
	svc, db := setupTestService(t)
	products := seedProducts(t, db)
	ctx := context.Background()
	userID := uint(3)

	_, err := svc.Add(ctx, nil, "sess-1", &AddRequest{ProductID: products[0].ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.Add(ctx, &userID, "sess-1", &AddRequest{ProductID: products[1].ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, nil, "sess-1"))
	require.NoError(t, svc.Clear(ctx, &userID, "sess-1"))

	guest, err := svc.Get(ctx, nil, "sess-1")
	require.NoError(t, err)
	require.Empty(t, guest.Lines)

	account, err := svc.Get(ctx, &userID, "sess-1")
	require.NoError(t, err)
	require.Empty(t, account.Lines)
}
