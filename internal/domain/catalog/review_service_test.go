// internal/domain/catalog/review_service_test.go
package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewRecomputesRating(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewReviewService(db)

	var product Product
	require.NoError(t, db.Where("slug = ?", "velvet-iris").First(&product).Error)

	_, err := svc.Create(1, product.ID, &CreateReviewRequest{Rating: 4, Comment: "Nice"})
	require.NoError(t, err)
	_, err = svc.Create(2, product.ID, &CreateReviewRequest{Rating: 5})
	require.NoError(t, err)

	require.NoError(t, db.First(&product, product.ID).Error)
	require.True(t, product.Rating.Equal(decimal.RequireFromString("4.5")),
		"got rating %s", product.Rating)
}

func TestCreateReviewTwiceRejected(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewReviewService(db)

	var product Product
	require.NoError(t, db.Where("slug = ?", "cedar-noir").First(&product).Error)

	_, err := svc.Create(7, product.ID, &CreateReviewRequest{Rating: 3})
	require.NoError(t, err)

	_, err = svc.Create(7, product.ID, &CreateReviewRequest{Rating: 5})
	require.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreateReviewUnavailableProduct(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewReviewService(db)

	var hidden Product
	require.NoError(t, db.Where("slug = ?", "hidden-bloom").First(&hidden).Error)

	_, err := svc.Create(1, hidden.ID, &CreateReviewRequest{Rating: 5})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestFavoriteToggle(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewFavoriteService(db)

	var product Product
	require.NoError(t, db.Where("slug = ?", "amber-dusk").First(&product).Error)

	favorited, err := svc.Toggle(3, product.ID)
	require.NoError(t, err)
	require.True(t, favorited)

	isFav, err := svc.IsFavorite(3, product.ID)
	require.NoError(t, err)
	require.True(t, isFav)

	favorited, err = svc.Toggle(3, product.ID)
	require.NoError(t, err)
	require.False(t, favorited)

	list, err := svc.List(3)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestFavoriteListPreloadsProduct(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewFavoriteService(db)

	var product Product
	require.NoError(t, db.Where("slug = ?", "velvet-iris").First(&product).Error)

	_, err := svc.Toggle(9, product.ID)
	require.NoError(t, err)

	list, err := svc.List(9)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Product)
	require.Equal(t, "Velvet Iris", list[0].Product.Name)
}
